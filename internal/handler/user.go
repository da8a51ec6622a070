package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hackhub/hackhub-server/internal/model"
	"github.com/hackhub/hackhub-server/internal/repository"
)

// UserDirectory is the slice of the user repository the user endpoints
// need. Keeping it an interface lets tests substitute an in-memory
// implementation for the MySQL-backed repo.
type UserDirectory interface {
	Create(ctx context.Context, uid, email, role string) (model.User, bool, error)
	GetByUID(ctx context.Context, uid string) (model.User, error)
}

// UserHandler serves the user directory endpoints. The uid in the body
// comes from the external identity provider via the client; the façade
// trusts it without verification, matching the original deployment.
type UserHandler struct {
	Users UserDirectory
}

func NewUserHandler(users UserDirectory) *UserHandler {
	return &UserHandler{Users: users}
}

type createUserReq struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Create handles POST /users. Creating the same uid twice is an
// idempotent no-op that returns the existing record untouched.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	log.Printf("POST /users | uid=%s email=%s role=%s", req.UID, req.Email, req.Role)

	if req.UID == "" || req.Email == "" || req.Role == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "UID, email, and role are required."})
	}
	if !model.ValidRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Role must be student or faculty."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, created, err := h.Users.Create(ctx, req.UID, req.Email, req.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error."})
	}
	if !created {
		return c.JSON(http.StatusOK, echo.Map{"message": "User already exists", "user": u})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User created successfully!"})
}

// Get handles GET /users/:uid.
func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUID(ctx, c.Param("uid"))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error."})
	}
	return c.JSON(http.StatusOK, u)
}
