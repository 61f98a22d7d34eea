package domain

import "strings"

// Name is a validated task name value object (1-255 characters).
type Name struct {
	value string
}

// NewName creates a new Name, validating the input.
func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)

	if s == "" {
		return Name{}, ErrNameRequired
	}

	if len(s) > 255 {
		return Name{}, ErrNameTooLong
	}

	return Name{value: s}, nil
}

// String returns the name value.
func (n Name) String() string {
	return n.value
}
