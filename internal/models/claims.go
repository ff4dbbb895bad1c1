package models

import "github.com/golang-jwt/jwt/v5"

// Account roles
const (
	RoleMerchant = "merchant"
	RoleSupport  = "support"
	RoleBank     = "bank"
	RoleAdmin    = "admin"
)

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Merchant permissions
	PermissionProfileRead    = "profile:read"
	PermissionProfileWrite   = "profile:write"
	PermissionDocumentUpload = "document:upload"
	PermissionKYCWrite       = "kyc:write"
	PermissionChangePassword = "user:change-password"

	// Review permissions
	PermissionReviewSupport = "review:support"
	PermissionReviewBank    = "review:bank"

	// User management permissions
	PermissionUserRead  = "user:read"
	PermissionUserWrite = "user:write"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionProfileRead,
			PermissionProfileWrite,
			PermissionReviewSupport,
			PermissionReviewBank,
			PermissionUserRead,
			PermissionUserWrite,
			PermissionChangePassword,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case RoleSupport:
		return []string{
			PermissionProfileRead,
			PermissionReviewSupport,
			PermissionUserRead,
			PermissionChangePassword,
		}
	case RoleBank:
		return []string{
			PermissionProfileRead,
			PermissionReviewBank,
			PermissionChangePassword,
		}
	case RoleMerchant:
		return []string{
			PermissionProfileRead,
			PermissionProfileWrite,
			PermissionDocumentUpload,
			PermissionKYCWrite,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
