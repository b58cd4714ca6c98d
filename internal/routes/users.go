package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lastbite/user-service/internal/user"
)

// RegisterUserRoutes wires the account management endpoints. Registration is
// the only route behind the rate limiter.
func RegisterUserRoutes(r fiber.Router, h *user.Handler, registerLimiter fiber.Handler) {
	users := r.Group("/users")

	users.Post("/register", registerLimiter, h.Register)
	users.Get("/", h.List)
	users.Get("/:id", h.Get)
	users.Get("/:id/email", h.GetEmailInfo)
	users.Put("/:id/email", h.ChangeEmail)
	users.Put("/:id/password", h.ChangePassword)
	users.Put("/:id/phone", h.ChangePhone)
	users.Put("/:id/name", h.ChangeName)
	users.Delete("/:id", h.Delete)
}
