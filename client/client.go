// Package client implements a typed HTTP client for the access manager
// REST API. The client is generic over the four identifier axes of the
// access graph (user, group, application component, access level); each
// axis is converted to and from its wire string by a caller-supplied
// domain.Stringifier. The client holds no state beyond its configuration
// and is safe for concurrent use.
package client

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"accessgraph/domain"
)

// Transport executes a single HTTP request. *http.Client satisfies it.
// Timeouts, retries, connection pooling, and cancellation all live behind
// this interface.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a typed client for the access manager service. All
// configuration is fixed at construction.
type Client[TUser, TGroup, TComponent, TAccess any] struct {
	baseURL      *url.URL
	transport    Transport
	headers      http.Header
	logger       *slog.Logger
	users        domain.Stringifier[TUser]
	groups       domain.Stringifier[TGroup]
	components   domain.Stringifier[TComponent]
	accessLevels domain.Stringifier[TAccess]

	// statusHandlers maps an HTTP status to the decoder that refines a
	// structured error response into a typed domain error.
	statusHandlers map[int]errorHandler
}

// Option configures a Client at construction.
type Option func(*options)

type options struct {
	transport Transport
	headers   http.Header
	logger    *slog.Logger
}

// WithTransport sets the request-execution capability. Defaults to
// http.DefaultClient.
func WithTransport(t Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithHeaders sets headers added to every request (for example an
// Authorization bearer token).
func WithHeaders(h http.Header) Option {
	return func(o *options) { o.headers = h }
}

// WithLogger sets the logger used for request tracing. Defaults to a
// discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a client for the access manager at baseURL, using the four
// supplied stringifiers for identifier conversion. The fixed API version
// segment is appended to baseURL once here; an unparseable or non-HTTP
// base URL is a configuration error reported immediately.
func New[TUser, TGroup, TComponent, TAccess any](
	baseURL string,
	users domain.Stringifier[TUser],
	groups domain.Stringifier[TGroup],
	components domain.Stringifier[TComponent],
	accessLevels domain.Stringifier[TAccess],
	opts ...Option,
) (*Client[TUser, TGroup, TComponent, TAccess], error) {
	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	o := options{
		transport: http.DefaultClient,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client[TUser, TGroup, TComponent, TAccess]{
		baseURL:      u.JoinPath("api", "v1"),
		transport:    o.transport,
		headers:      o.headers,
		logger:       o.logger,
		users:        users,
		groups:       groups,
		components:   components,
		accessLevels: accessLevels,
	}
	c.statusHandlers = map[int]errorHandler{
		http.StatusNotFound: mapNotFound,
	}
	return c, nil
}

// StringClient is a Client whose four identifier axes are all plain
// strings.
type StringClient = Client[string, string, string, string]

// NewStringClient creates a client whose four identifier axes are all
// plain strings.
func NewStringClient(baseURL string, opts ...Option) (*Client[string, string, string, string], error) {
	s := domain.StringStringifier{}
	return New[string, string, string, string](baseURL, s, s, s, s, opts...)
}

// BaseURL returns the resolved base URL including the API version segment.
func (c *Client[TUser, TGroup, TComponent, TAccess]) BaseURL() string {
	return c.baseURL.String()
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, domain.ErrValidation("base URL cannot be empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, domain.ErrValidation("invalid base URL %q: %v", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, domain.ErrValidation("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, domain.ErrValidation("invalid base URL %q: missing host", baseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return nil, domain.ErrValidation("invalid base URL %q: must not include query or fragment", baseURL)
	}
	return u, nil
}

// buildURL appends percent-encoded path segments and an optional query
// string to the base URL. Identifier segments are encoded individually so
// reserved characters inside an identifier never split a path segment.
func (c *Client[TUser, TGroup, TComponent, TAccess]) buildURL(query url.Values, segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL.String())
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	if len(query) > 0 {
		b.WriteByte('?')
		b.WriteString(query.Encode())
	}
	return b.String()
}
