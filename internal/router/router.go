// Package router wires HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/hackhub/hackhub-server/internal/handler"
	"github.com/hackhub/hackhub-server/internal/middleware"
)

// Handlers groups every handler the router mounts.
type Handlers struct {
	Users         *handler.UserHandler
	Hackathons    *handler.HackathonHandler
	Registrations *handler.RegistrationHandler
	Auth          *handler.AuthHandler
	Email         *handler.EmailHandler
}

// Register mounts all routes. The main CRUD surface is deliberately
// unauthenticated: identity comes from the external provider and the
// client sends its uid in request bodies, exactly like the original
// deployment. Only the standalone /auth session endpoints use JWTs.
func Register(e *echo.Echo, h Handlers, env, jwtSecret string, rateLimit echo.MiddlewareFunc, listingCache *middleware.ListingCache) {
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	if rateLimit != nil {
		e.Use(rateLimit)
	}

	e.GET("/", handler.Root)
	e.GET("/health", handler.Health(env))

	// User directory
	e.POST("/users", h.Users.Create)
	e.GET("/users/:uid", h.Users.Get)

	// Hackathon catalog. Browse endpoints go through the listing cache.
	e.POST("/hackathons", h.Hackathons.Create)
	e.GET("/hackathons", h.Hackathons.List, listingCache.Middleware())
	e.GET("/hackathons/faculty/:facultyId", h.Hackathons.ListByFaculty, listingCache.Middleware())
	e.DELETE("/hackathons/:id", h.Hackathons.Delete)

	// Registration ledger
	e.POST("/registrations", h.Registrations.Create)
	e.GET("/registrations/student/:studentId", h.Registrations.ListByStudent)
	e.GET("/registrations/hackathon/:hackathonId", h.Registrations.ListByHackathon)
	e.DELETE("/registrations/:id", h.Registrations.Delete)
	e.DELETE("/registrations", h.Registrations.DeleteByPair)

	// Direct email endpoint used by the front end
	e.POST("/api/send-email", h.Email.Send)

	// Standalone email/password sessions
	g := e.Group("/auth")
	g.POST("/signup", h.Auth.Signup)
	g.POST("/login", h.Auth.Login)
	g.POST("/refresh", h.Auth.Refresh)
	g.POST("/logout", h.Auth.Logout)
	g.POST("/logout-all", h.Auth.LogoutAll, middleware.JWTAuth(jwtSecret))
	g.GET("/me", h.Auth.Me, middleware.JWTAuth(jwtSecret))
}
