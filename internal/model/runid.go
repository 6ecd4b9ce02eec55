package model

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

// NewRunID generates a short identifier for one import run, used to correlate log lines.
func NewRunID() string {
	id := uuid.New()
	// 16 bytes -> 26 base32 characters
	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(id[:])
	return strings.ToLower(encoded)
}
