// Package domain defines core types, capabilities, and errors for the
// access manager client.
package domain

import (
	"strconv"

	"github.com/google/uuid"
)

// Stringifier converts a typed identifier to and from its unique wire
// string. ToString must be injective over the values the caller passes:
// two distinct values must never produce the same string, and
// FromString(ToString(v)) must return v.
type Stringifier[T any] interface {
	ToString(value T) (string, error)
	FromString(s string) (T, error)
}

// StringStringifier is the identity stringifier for string identifiers.
type StringStringifier struct{}

func (StringStringifier) ToString(value string) (string, error) { return value, nil }

func (StringStringifier) FromString(s string) (string, error) { return s, nil }

// UUIDStringifier converts uuid.UUID identifiers to their canonical
// textual form.
type UUIDStringifier struct{}

func (UUIDStringifier) ToString(value uuid.UUID) (string, error) {
	return value.String(), nil
}

func (UUIDStringifier) FromString(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, ErrValidation("invalid uuid identifier %q: %v", s, err)
	}
	return id, nil
}

// Int64Stringifier converts int64 identifiers to base-10 strings.
type Int64Stringifier struct{}

func (Int64Stringifier) ToString(value int64) (string, error) {
	return strconv.FormatInt(value, 10), nil
}

func (Int64Stringifier) FromString(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrValidation("invalid numeric identifier %q: %v", s, err)
	}
	return v, nil
}
