package utils

import "github.com/google/uuid"

// CreateToken returns an opaque token built from two UUIDs. Refresh tokens
// and generated thread identifiers both use this format.
func CreateToken() string {
	firstUUID, err := uuid.NewUUID()

	if err != nil {
		return ""
	}

	secondUUID, err := uuid.NewUUID()

	if err != nil {
		return ""
	}

	token := firstUUID.String() + secondUUID.String()

	return token
}
