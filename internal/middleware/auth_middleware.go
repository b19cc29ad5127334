package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/nivedpm/hostelhub/internal/pkg/apperrors"
	"github.com/nivedpm/hostelhub/internal/pkg/auth"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	ContextAdmissionNumber = "admissionNumber"
	ContextRole            = "role"
)

// JWTAuth validates the Authorization bearer token and stores the caller's
// admission number and role on the request context.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(ContextAdmissionNumber, claims.AdmissionNumber)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RoleRequired rejects callers whose token role is not one of the allowed
// roles. Must run after JWTAuth.
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrPermissionDenied,
			"You do not have permission to perform this action"))
	}
}
