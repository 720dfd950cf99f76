package util

import (
	"strings"

	"github.com/gofrs/uuid/v5"
)

// NormalizeMnemonic collapses any whitespace between the words.
func NormalizeMnemonic(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func NewRequestId() string {
	return uuid.Must(uuid.NewV4()).String()
}
