package types

import "github.com/google/uuid"

// TokenClaims holds the validated claims of a bearer token.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}
