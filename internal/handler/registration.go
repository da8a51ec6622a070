package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hackhub/hackhub-server/internal/middleware"
	"github.com/hackhub/hackhub-server/internal/model"
	"github.com/hackhub/hackhub-server/internal/queue"
	"github.com/hackhub/hackhub-server/internal/repository"
)

// RegistrationLedger is the ledger surface consumed by the registration
// endpoints. Register and the unregister variants keep the hackathon
// participant counter in step with the ledger.
type RegistrationLedger interface {
	Register(ctx context.Context, hackathonID uint64, studentID, name, email, phone string) (uint64, error)
	UnregisterByID(ctx context.Context, id uint64, studentID string) error
	UnregisterByPair(ctx context.Context, hackathonID uint64, studentID string) error
	ListByStudent(ctx context.Context, studentID string) ([]model.Registration, error)
	ListByHackathon(ctx context.Context, hackathonID uint64) ([]model.Registration, error)
}

// RegistrationHandler serves the registration ledger endpoints.
type RegistrationHandler struct {
	Users         RoleChecker
	Hackathons    HackathonCatalog
	Registrations RegistrationLedger
	Cache         *middleware.ListingCache
	Publish       Publisher
}

func NewRegistrationHandler(users RoleChecker, hackathons HackathonCatalog, registrations RegistrationLedger, cache *middleware.ListingCache, publish Publisher) *RegistrationHandler {
	return &RegistrationHandler{Users: users, Hackathons: hackathons, Registrations: registrations, Cache: cache, Publish: publish}
}

type createRegistrationReq struct {
	HackathonID uint64 `json:"hackathon_id"`
	StudentID   string `json:"student_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// Create handles POST /registrations. Check order matches the original
// service: student role, hackathon existence, duplicate pair, capacity.
// The ledger insert and counter increment commit atomically.
func (h *RegistrationHandler) Create(c echo.Context) error {
	var req createRegistrationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	log.Printf("POST /registrations | hackathon_id=%d student_id=%s", req.HackathonID, req.StudentID)

	if req.HackathonID == 0 || req.StudentID == "" || req.Name == "" || req.Email == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "All fields are required."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	student, err := h.Users.GetByUID(ctx, req.StudentID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Student not found. Please ensure you are logged in as a student."})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error."})
	}
	if student.Role != model.RoleStudent {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Only students can register for hackathons."})
	}

	hackathon, err := h.Hackathons.GetByID(ctx, req.HackathonID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Hackathon not found."})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error."})
	}

	id, err := h.Registrations.Register(ctx, req.HackathonID, req.StudentID, req.Name, req.Email, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "Student is already registered for this hackathon."})
		case errors.Is(err, repository.ErrCapacityFull):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Hackathon has reached maximum participants."})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Hackathon not found."})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error."})
		}
	}
	h.Cache.Bust(ctx)

	_ = h.Publish(ctx, queue.NotificationEvent{
		Kind:             queue.KindRegistrationConfirmation,
		To:               req.Email,
		Subject:          "Registration Confirmed: " + hackathon.Title,
		HackathonTitle:   hackathon.Title,
		RegistrationDate: time.Now().UTC().Format("January 2, 2006"),
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Registration successful!", "id": id})
}

// ListByStudent handles GET /registrations/student/:studentId.
func (h *RegistrationHandler) ListByStudent(c echo.Context) error {
	items, err := h.Registrations.ListByStudent(c.Request().Context(), c.Param("studentId"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error."})
	}
	return c.JSON(http.StatusOK, items)
}

// ListByHackathon handles GET /registrations/hackathon/:hackathonId.
func (h *RegistrationHandler) ListByHackathon(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("hackathonId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hackathon id"})
	}
	items, err := h.Registrations.ListByHackathon(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error."})
	}
	return c.JSON(http.StatusOK, items)
}

type deleteRegistrationReq struct {
	HackathonID uint64 `json:"hackathon_id"`
	StudentID   string `json:"student_id"`
}

// Delete handles DELETE /registrations/:id. Only the owning student may
// remove a registration; the counter decrement commits with the delete.
func (h *RegistrationHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
	}
	var req deleteRegistrationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	log.Printf("DELETE /registrations/%d | student_id=%s", id, req.StudentID)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Registrations.UnregisterByID(ctx, id, req.StudentID); err != nil {
		return h.deleteError(c, err)
	}
	h.Cache.Bust(ctx)
	return c.JSON(http.StatusOK, echo.Map{"message": "Registration deleted successfully!"})
}

// DeleteByPair handles DELETE /registrations with a JSON body naming
// the (hackathon_id, student_id) pair.
func (h *RegistrationHandler) DeleteByPair(c echo.Context) error {
	var req deleteRegistrationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.HackathonID == 0 || req.StudentID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hackathon_id and student_id are required."})
	}
	log.Printf("DELETE /registrations | hackathon_id=%d student_id=%s", req.HackathonID, req.StudentID)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Registrations.UnregisterByPair(ctx, req.HackathonID, req.StudentID); err != nil {
		return h.deleteError(c, err)
	}
	h.Cache.Bust(ctx)
	return c.JSON(http.StatusOK, echo.Map{"message": "Registration deleted successfully!"})
}

func (h *RegistrationHandler) deleteError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Registration not found."})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "You can only delete your own registrations."})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error."})
	}
}
