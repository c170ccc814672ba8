package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"medidocs/internal/auth"
)

const (
	// ActorIDHeader carries the authenticated subject id, installed by the
	// authentication gateway in front of this service.
	ActorIDHeader = "X-Actor-ID"
	// ActorCapabilitiesHeader carries the subject's comma-separated
	// capability list.
	ActorCapabilitiesHeader = "X-Actor-Capabilities"
	// ActorLocalKey is the key the resolved actor is stored under in
	// Fiber's context locals.
	ActorLocalKey = "actor"
)

// Actor resolves the acting identity from the gateway headers and stores
// it in context locals. Requests without an actor id pass through
// unresolved; RequireActor gates the routes that need one.
func Actor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(ActorIDHeader))
		if id == "" {
			return c.Next()
		}

		var caps []auth.Capability
		for _, raw := range strings.Split(c.Get(ActorCapabilitiesHeader), ",") {
			if v := strings.TrimSpace(raw); v != "" {
				caps = append(caps, auth.Capability(strings.ToUpper(v)))
			}
		}

		c.Locals(ActorLocalKey, auth.Actor{ID: id, Capabilities: caps})
		return c.Next()
	}
}

// RequireActor rejects requests that did not resolve an actor.
func RequireActor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals(ActorLocalKey).(auth.Actor); !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		return c.Next()
	}
}

// ActorFromCtx returns the resolved actor, if any.
func ActorFromCtx(c *fiber.Ctx) (auth.Actor, bool) {
	actor, ok := c.Locals(ActorLocalKey).(auth.Actor)
	return actor, ok
}

func actorIDFromLocals(c *fiber.Ctx) string {
	if actor, ok := c.Locals(ActorLocalKey).(auth.Actor); ok {
		return actor.ID
	}
	return ""
}
