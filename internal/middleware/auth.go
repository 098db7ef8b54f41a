package middleware

import (
	"net/http"
	"strings"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/auth"
	"github.com/ensia-dev/incubator/internal/authz"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/ensia-dev/incubator/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware rejects requests without a valid bearer token and stores the
// resolved Actor in the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := actorFromRequest(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "authentication_required",
			})
			return
		}

		ctx.Set(types.ContextActorKey, actor)
		ctx.Next()
	}
}

// OptionalAuthMiddleware resolves the Actor when a valid bearer token is
// present but lets anonymous requests through. Handlers that need a
// capability check the actor themselves, so identity-free routes stay open
// while admin-gated operations on the same resource fail closed.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if actor, ok := actorFromRequest(ctx); ok {
			ctx.Set(types.ContextActorKey, actor)
		}
		ctx.Next()
	}
}

func actorFromRequest(ctx *gin.Context) (authz.Actor, bool) {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader == "" {
		return authz.Actor{}, false
	}

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || parts[0] != "Bearer" {
		return authz.Actor{}, false
	}

	token, err := auth.VerifyJWT(parts[1])

	if err != nil || !token.Valid {
		return authz.Actor{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return authz.Actor{}, false
	}

	userIDFloat, ok := claims["user_id"].(float64)

	if !ok {
		return authz.Actor{}, false
	}

	var user models.User

	if err := db.DB.Preload("Role").Where("id = ?", uint(userIDFloat)).First(&user).Error; err != nil {
		return authz.Actor{}, false
	}

	return authz.Actor{
		ID:            user.ID,
		Email:         user.Email,
		Role:          user.Role.Name,
		IsActive:      user.IsActive,
		Authenticated: true,
	}, true
}
