package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/policy"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	TenantID *uuid.UUID
	Role     enums.ActorRole
	JTI      string
}

// AccessTokenClaims represents the typed JWT presented by customers and staff.
type AccessTokenClaims struct {
	UserID   uuid.UUID       `json:"user_id"`
	TenantID *uuid.UUID      `json:"tenant_id,omitempty"`
	Role     enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}

// Actor converts the claims into a policy principal.
func (c *AccessTokenClaims) Actor() policy.Actor {
	return policy.Actor{ID: c.UserID, TenantID: c.TenantID, Role: c.Role}
}

// IsStaff reports whether the token belongs to a tenant operator rather than a shopper.
func (c *AccessTokenClaims) IsStaff() bool {
	return c.Role != enums.ActorRoleCustomer && c.TenantID != nil
}
