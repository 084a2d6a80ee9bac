package utils

import (
	"github.com/google/uuid"
)

// GeneratePlayerID creates a new UUID identifying a player namespace
func GeneratePlayerID() string {
	return uuid.New().String()
}

// GenerateOrderedID creates a time-ordered UUID (v7) so ids sort by creation
func GenerateOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
