package core

import "github.com/google/uuid"

// NewID returns a random unique identifier for tool calls and benchmark runs.
func NewID() string { return uuid.NewString() }
