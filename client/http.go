package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"accessgraph/domain"
)

const contentTypeJSON = "application/json"

// response is the outcome of a request that reached the server: the status
// code plus the fully-read body. A request that produced no response is
// reported as a *domain.TransportError instead.
type response struct {
	statusCode int
	body       []byte
}

func (c *Client[TUser, TGroup, TComponent, TAccess]) send(ctx context.Context, method, urlStr string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, method, urlStr, nil)
	if err != nil {
		return response{}, fmt.Errorf("build %s request for %q: %w", method, urlStr, err)
	}
	req.Header = c.composeHeaders()

	c.logger.Debug("sending request", "method", method, "url", urlStr)

	resp, err := c.transport.Do(req)
	if err != nil {
		return response{}, domain.ErrTransport(err, "%s %s failed", method, urlStr)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, domain.ErrTransport(err, "read %s %s response", method, urlStr)
	}

	c.logger.Debug("received response", "method", method, "url", urlStr, "status", resp.StatusCode)

	return response{statusCode: resp.StatusCode, body: body}, nil
}

func (c *Client[TUser, TGroup, TComponent, TAccess]) composeHeaders() http.Header {
	h := make(http.Header)
	h.Set("Accept", contentTypeJSON)
	for k, vs := range c.headers {
		for _, v := range vs {
			h[k] = append(h[k], v)
		}
	}
	return h
}

// sendGet issues a GET expecting status 200 and decodes the JSON body into
// result.
func (c *Client[TUser, TGroup, TComponent, TAccess]) sendGet(ctx context.Context, urlStr string, result interface{}) error {
	resp, err := c.send(ctx, http.MethodGet, urlStr)
	if err != nil {
		return err
	}
	if resp.statusCode != http.StatusOK {
		return c.responseError(resp)
	}
	if err := json.Unmarshal(resp.body, result); err != nil {
		return fmt.Errorf("decode GET %s response: %w", urlStr, err)
	}
	return nil
}

// sendGetForExistence issues a GET interpreted as an existence check:
// 200 means the element exists, 404 means it does not. Any other status
// is an error.
func (c *Client[TUser, TGroup, TComponent, TAccess]) sendGetForExistence(ctx context.Context, urlStr string) (bool, error) {
	resp, err := c.send(ctx, http.MethodGet, urlStr)
	if err != nil {
		return false, err
	}
	switch resp.statusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, c.responseError(resp)
	}
}

// sendPost issues a POST expecting status 201.
func (c *Client[TUser, TGroup, TComponent, TAccess]) sendPost(ctx context.Context, urlStr string) error {
	resp, err := c.send(ctx, http.MethodPost, urlStr)
	if err != nil {
		return err
	}
	if resp.statusCode != http.StatusCreated {
		return c.responseError(resp)
	}
	return nil
}

// sendDelete issues a DELETE expecting status 200.
func (c *Client[TUser, TGroup, TComponent, TAccess]) sendDelete(ctx context.Context, urlStr string) error {
	resp, err := c.send(ctx, http.MethodDelete, urlStr)
	if err != nil {
		return err
	}
	if resp.statusCode != http.StatusOK {
		return c.responseError(resp)
	}
	return nil
}

// responseError translates a non-success response into a typed domain
// error: decode the structured error body if present, then dispatch on the
// HTTP status. Statuses without a registered handler produce a generic
// server error carrying the decoded code and message.
func (c *Client[TUser, TGroup, TComponent, TAccess]) responseError(resp response) error {
	record, ok := decodeErrorRecord(resp.body)
	if !ok {
		return &domain.UnstructuredServerError{
			StatusCode: resp.statusCode,
			Body:       renderBody(resp.body),
		}
	}
	if handler, ok := c.statusHandlers[resp.statusCode]; ok {
		return handler(record)
	}
	return &domain.ServerError{Code: record.Code, Message: record.Message}
}
