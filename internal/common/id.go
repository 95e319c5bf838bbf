package common

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates an opaque unique identifier for a stored document.
func NewID() string {
	return uuid.NewString()
}

// RandomSuffix generates a short random string used to disambiguate slugs.
func RandomSuffix() string {
	s := uuid.NewString()
	return strings.SplitN(s, "-", 2)[0]
}
