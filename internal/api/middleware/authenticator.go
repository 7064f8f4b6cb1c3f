package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sotyapp/backend/internal/api/handler/v1/response"
	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/pkg/jwthelper"
)

// Context keys set by VerifyJWT for downstream handlers.
const (
	CtxKeyUserID    = "userID"
	CtxKeyRole      = "role"
	CtxKeyStudentID = "studentID"
)

var (
	errMissingToken = errors.New("missing or malformed authorization header")
	errAdminOnly    = errors.New("admin access required")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(jwthelper.ErrInvalidToken))
			return
		}

		ctx.Set(CtxKeyUserID, claims.UserID)
		ctx.Set(CtxKeyRole, claims.Role)
		if claims.StudentID != nil {
			ctx.Set(CtxKeyStudentID, *claims.StudentID)
		}

		ctx.Next()
	}
}

// AdminOnly enforces the admin role server-side. It must run after
// VerifyJWT in the chain.
func AdminOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetString(CtxKeyRole) != domain.RoleAdmin {
			response.RenderErr(ctx, response.ErrPermissionDenied(errAdminOnly))
			return
		}

		ctx.Next()
	}
}
