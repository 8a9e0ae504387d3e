package domain

// NameValuePair is a single named attribute attached to a decoded error.
type NameValuePair struct {
	Name  string
	Value string
}

// ErrorRecord is the normalized form of a structured error response body.
// Code and Message are always present when decoding succeeds; the other
// fields are optional. InnerError is stored as received and is never
// re-decoded or mapped.
type ErrorRecord struct {
	Code       string
	Message    string
	Target     *string
	Attributes []NameValuePair
	InnerError *ErrorRecord
}

// Attribute returns the value of the attribute with the given name, or the
// empty string when no such attribute exists.
func (r *ErrorRecord) Attribute(name string) string {
	for _, a := range r.Attributes {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}
