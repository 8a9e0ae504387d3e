package client

import (
	"bytes"
	"encoding/json"

	"accessgraph/domain"
)

// Wire shapes for the structured error body:
// {"error":{"code","message","target"?,"attributes"?,"innerError"?}}.
type wireErrorEnvelope struct {
	Error *wireError `json:"error"`
}

type wireError struct {
	Code       string          `json:"code"`
	Message    string          `json:"message"`
	Target     *string         `json:"target"`
	Attributes []wireAttribute `json:"attributes"`
	InnerError *wireError      `json:"innerError"`
}

type wireAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// decodeErrorRecord parses a response body into a normalized error record.
// The second return is false when the body is absent, not JSON, or lacks
// the mandatory code and message fields.
func decodeErrorRecord(body []byte) (*domain.ErrorRecord, bool) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, false
	}
	var env wireErrorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, false
	}
	if env.Error == nil || env.Error.Code == "" || env.Error.Message == "" {
		return nil, false
	}
	return toErrorRecord(env.Error), true
}

// toErrorRecord converts the wire shape to a domain.ErrorRecord. Nested
// innerError values are stored as received; only the outermost record is
// ever dispatched on.
func toErrorRecord(w *wireError) *domain.ErrorRecord {
	r := &domain.ErrorRecord{
		Code:    w.Code,
		Message: w.Message,
		Target:  w.Target,
	}
	for _, a := range w.Attributes {
		r.Attributes = append(r.Attributes, domain.NameValuePair{Name: a.Name, Value: a.Value})
	}
	if w.InnerError != nil {
		r.InnerError = toErrorRecord(w.InnerError)
	}
	return r
}

func renderBody(body []byte) string {
	return string(bytes.TrimSpace(body))
}

// Wire shapes for mapping query results. Each GET mapping endpoint returns
// an array of objects carrying the stringified identifiers of both edge
// ends; operations pick the fields they need.
type groupResult struct {
	Group string `json:"group"`
}

type userResult struct {
	User string `json:"user"`
}

type componentAndAccessResult struct {
	ApplicationComponent string `json:"applicationComponent"`
	AccessLevel          string `json:"accessLevel"`
}

type entityTypeAndEntityResult struct {
	EntityType string `json:"entityType"`
	Entity     string `json:"entity"`
}

type entityResult struct {
	Entity string `json:"entity"`
}
