// Package id generates prefixed NanoID identifiers.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes used across the service.
const (
	PrefixReview = "rev"
)

// Generate creates a prefixed unique ID: prefix-nanoid (e.g. "rev-V1StGXR8_Z5jdHi6B-myT").
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// NewReviewID returns a fresh review session ID.
func NewReviewID() (string, error) {
	return Generate(PrefixReview)
}

// HasPrefix reports whether id was generated with prefix.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"-") && len(id) > len(prefix)+1
}
