package utils

import (
	"fmt"

	"github.com/ensia-dev/incubator/internal/authz"
	"github.com/ensia-dev/incubator/internal/types"
	"github.com/gin-gonic/gin"
)

// GetCurrentActor returns the actor resolved by the auth middleware, or an
// anonymous actor when the request carried no valid identity.
func GetCurrentActor(ctx *gin.Context) authz.Actor {
	value, exists := ctx.Get(types.ContextActorKey)

	if !exists {
		return authz.Actor{}
	}

	actor, ok := value.(authz.Actor)

	if !ok {
		return authz.Actor{}
	}

	return actor
}

// RequireCurrentActor returns the authenticated actor or an error when the
// request is anonymous.
func RequireCurrentActor(ctx *gin.Context) (authz.Actor, error) {
	actor := GetCurrentActor(ctx)

	if !actor.Authenticated {
		return authz.Actor{}, fmt.Errorf("User not authenticated")
	}

	return actor, nil
}
