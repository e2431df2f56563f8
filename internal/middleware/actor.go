package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/auth"
)

// Actor is the caller identity extracted from a verified token. A zero ID
// means the request is anonymous.
type Actor struct {
	ID   string
	Name string
	Role string
}

// ActorFromContext reads the caller identity stored by the auth middlewares.
func ActorFromContext(c *fiber.Ctx) Actor {
	id, _ := c.Locals(auth.LocalUserID).(string)
	name, _ := c.Locals(auth.LocalUserName).(string)
	role, _ := c.Locals(auth.LocalUserRole).(string)
	return Actor{ID: id, Name: name, Role: role}
}

// Anonymous reports whether no authenticated user is attached to the request.
func (a Actor) Anonymous() bool {
	return a.ID == ""
}
