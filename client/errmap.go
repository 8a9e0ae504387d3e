package client

import "accessgraph/domain"

// errorHandler refines a decoded error record into a typed domain error.
type errorHandler func(record *domain.ErrorRecord) error

// notFoundCode associates a known server error code with the element-type
// tag and the attribute carrying the element value.
type notFoundCode struct {
	code        string
	elementType string
	attribute   string
}

// Known element-not-found codes for status 404. Codes not listed here fall
// back to a generic not-found error keyed by the ResourceId attribute.
var notFoundCodes = []notFoundCode{
	{code: "UserNotFoundException", elementType: "User", attribute: "User"},
	{code: "GroupNotFoundException", elementType: "Group", attribute: "Group"},
	{code: "EntityTypeNotFoundException", elementType: "EntityType", attribute: "EntityType"},
	{code: "EntityNotFoundException", elementType: "Entity", attribute: "Entity"},
}

// resourceIDAttribute is the attribute carrying the missing resource
// identifier on unrecognized 404 codes.
const resourceIDAttribute = "ResourceId"

// mapNotFound is the registered handler for status 404. A missing
// attribute yields an empty element value, never a decode failure.
func mapNotFound(record *domain.ErrorRecord) error {
	for _, m := range notFoundCodes {
		if record.Code == m.code {
			return domain.ErrElementNotFound(m.elementType, record.Attribute(m.attribute), "%s", record.Message)
		}
	}
	return domain.ErrNotFound(record.Attribute(resourceIDAttribute), "%s", record.Message)
}
