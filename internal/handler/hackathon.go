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

// HackathonCatalog is the catalog surface consumed by the hackathon
// endpoints.
type HackathonCatalog interface {
	Create(ctx context.Context, title, description, date string, imageURL *string, facultyID string, maxParticipants *uint32) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Hackathon, error)
	List(ctx context.Context) ([]model.Hackathon, error)
	ListByFaculty(ctx context.Context, facultyID string) ([]model.Hackathon, error)
	Delete(ctx context.Context, id uint64, requesterID string) error
}

// RoleChecker resolves whether a uid carries a role. Split from
// UserDirectory because the catalog and ledger handlers only ever ask
// this one question about users.
type RoleChecker interface {
	GetByUID(ctx context.Context, uid string) (model.User, error)
}

// Publisher enqueues a notification event. The request path always
// discards its error: notifications are fire-and-forget.
type Publisher func(ctx context.Context, event queue.NotificationEvent) error

// HackathonHandler serves the hackathon catalog endpoints.
type HackathonHandler struct {
	Users      RoleChecker
	Hackathons HackathonCatalog
	Cache      *middleware.ListingCache
	Publish    Publisher
}

func NewHackathonHandler(users RoleChecker, hackathons HackathonCatalog, cache *middleware.ListingCache, publish Publisher) *HackathonHandler {
	return &HackathonHandler{Users: users, Hackathons: hackathons, Cache: cache, Publish: publish}
}

type createHackathonReq struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Date            string  `json:"date"`
	ImageURL        *string `json:"image_url"`
	FacultyID       string  `json:"faculty_id"`
	MaxParticipants *uint32 `json:"max_participants"`
}

// Create handles POST /hackathons. Only users whose directory record
// carries the faculty role may create listings.
func (h *HackathonHandler) Create(c echo.Context) error {
	var req createHackathonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	log.Printf("POST /hackathons | title=%q faculty_id=%s", req.Title, req.FacultyID)

	if req.Title == "" || req.Description == "" || req.Date == "" || req.FacultyID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Title, description, date, and faculty_id are required."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	faculty, err := h.Users.GetByUID(ctx, req.FacultyID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error."})
	}
	if errors.Is(err, repository.ErrNotFound) || faculty.Role != model.RoleFaculty {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Only faculty members can create hackathons."})
	}

	id, err := h.Hackathons.Create(ctx, req.Title, req.Description, req.Date, req.ImageURL, req.FacultyID, req.MaxParticipants)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error."})
	}
	h.Cache.Bust(ctx)

	_ = h.Publish(ctx, queue.NotificationEvent{
		Kind:           queue.KindHackathonCreated,
		To:             faculty.Email,
		Subject:        "Hackathon Created: " + req.Title,
		HackathonTitle: req.Title,
		CreatedDate:    time.Now().UTC().Format("January 2, 2006"),
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Hackathon created successfully!", "id": id})
}

// List handles GET /hackathons, newest first.
func (h *HackathonHandler) List(c echo.Context) error {
	items, err := h.Hackathons.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error."})
	}
	return c.JSON(http.StatusOK, items)
}

// ListByFaculty handles GET /hackathons/faculty/:facultyId.
func (h *HackathonHandler) ListByFaculty(c echo.Context) error {
	items, err := h.Hackathons.ListByFaculty(c.Request().Context(), c.Param("facultyId"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error."})
	}
	return c.JSON(http.StatusOK, items)
}

type deleteHackathonReq struct {
	FacultyID string `json:"faculty_id"`
}

// Delete handles DELETE /hackathons/:id. Only the owning faculty user
// may delete a listing; its registrations are removed in the same
// transaction.
func (h *HackathonHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hackathon id"})
	}
	var req deleteHackathonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	log.Printf("DELETE /hackathons/%d | faculty_id=%s", id, req.FacultyID)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Hackathons.Delete(ctx, id, req.FacultyID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Hackathon not found."})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "You can only delete your own hackathons."})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error."})
		}
	}
	h.Cache.Bust(ctx)
	return c.JSON(http.StatusOK, echo.Map{"message": "Hackathon deleted successfully!"})
}
