package utils

import "github.com/google/uuid"

// IDGenerator supplies unique identifiers for new log entries and
// participants. The tracker assumes nothing about the format, only
// uniqueness.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random UUID strings.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
