package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hackhub/hackhub-server/internal/queue"
)

func newHackathonHandler(store *memStore) *HackathonHandler {
	return NewHackathonHandler(store, memCatalog{store}, nil, store.publish)
}

func TestHackathonCreate(t *testing.T) {
	store := newMemStore()
	store.addUser("fac1", "prof@uni.edu", "faculty")
	store.addUser("stu1", "kid@uni.edu", "student")
	h := newHackathonHandler(store)

	valid := map[string]any{
		"title":       "AI Jam",
		"description": "48h build",
		"date":        "2026-10-01",
		"faculty_id":  "fac1",
	}

	t.Run("missing fields", func(t *testing.T) {
		code, body := call(t, h.Create, http.MethodPost, "/hackathons",
			map[string]any{"title": "AI Jam", "faculty_id": "fac1"}, nil)
		require.Equal(t, http.StatusBadRequest, code)
		require.Equal(t, "Title, description, date, and faculty_id are required.", body["error"])
	})

	t.Run("unknown creator", func(t *testing.T) {
		req := map[string]any{"title": "x", "description": "y", "date": "z", "faculty_id": "ghost"}
		code, body := call(t, h.Create, http.MethodPost, "/hackathons", req, nil)
		require.Equal(t, http.StatusForbidden, code)
		require.Equal(t, "Only faculty members can create hackathons.", body["error"])
	})

	t.Run("student creator", func(t *testing.T) {
		req := map[string]any{"title": "x", "description": "y", "date": "z", "faculty_id": "stu1"}
		code, body := call(t, h.Create, http.MethodPost, "/hackathons", req, nil)
		require.Equal(t, http.StatusForbidden, code)
		require.Equal(t, "Only faculty members can create hackathons.", body["error"])
		require.Empty(t, store.hackathons)
	})

	t.Run("faculty creator", func(t *testing.T) {
		code, body := call(t, h.Create, http.MethodPost, "/hackathons", valid, nil)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "Hackathon created successfully!", body["message"])
		require.Len(t, store.hackathons, 1)

		// Creation notifies the owning faculty member.
		require.Len(t, store.published, 1)
		ev := store.published[0]
		require.Equal(t, queue.KindHackathonCreated, ev.Kind)
		require.Equal(t, "prof@uni.edu", ev.To)
		require.Equal(t, "AI Jam", ev.HackathonTitle)
	})
}

func TestHackathonList(t *testing.T) {
	store := newMemStore()
	store.addUser("fac1", "prof@uni.edu", "faculty")
	store.addUser("fac2", "doc@uni.edu", "faculty")
	h := newHackathonHandler(store)

	for _, req := range []map[string]any{
		{"title": "First", "description": "d", "date": "2026-10-01", "faculty_id": "fac1"},
		{"title": "Second", "description": "d", "date": "2026-10-02", "faculty_id": "fac2"},
		{"title": "Third", "description": "d", "date": "2026-10-03", "faculty_id": "fac1"},
	} {
		code, _ := call(t, h.Create, http.MethodPost, "/hackathons", req, nil)
		require.Equal(t, http.StatusOK, code)
	}

	items, err := memCatalog{store}.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	// Newest first.
	require.Equal(t, "Third", items[0].Title)
	require.Equal(t, "First", items[2].Title)

	mine, err := memCatalog{store}.ListByFaculty(context.Background(), "fac1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, it := range mine {
		require.Equal(t, "fac1", it.FacultyID)
	}
}

func TestHackathonDelete(t *testing.T) {
	store := newMemStore()
	store.addUser("fac1", "prof@uni.edu", "faculty")
	store.addUser("fac2", "doc@uni.edu", "faculty")
	store.addUser("stu1", "kid@uni.edu", "student")
	h := newHackathonHandler(store)

	code, body := call(t, h.Create, http.MethodPost, "/hackathons", map[string]any{
		"title": "AI Jam", "description": "d", "date": "2026-10-01", "faculty_id": "fac1",
	}, nil)
	require.Equal(t, http.StatusOK, code)
	id := uint64(body["id"].(float64))

	_, err := store.Register(context.Background(), id, "stu1", "Kid", "kid@uni.edu", "555")
	require.NoError(t, err)

	t.Run("not found", func(t *testing.T) {
		code, body := call(t, h.Delete, http.MethodDelete, "/hackathons/999",
			map[string]any{"faculty_id": "fac1"}, map[string]string{"id": "999"})
		require.Equal(t, http.StatusNotFound, code)
		require.Equal(t, "Hackathon not found.", body["error"])
	})

	t.Run("not the owner", func(t *testing.T) {
		code, body := call(t, h.Delete, http.MethodDelete, "/hackathons/1",
			map[string]any{"faculty_id": "fac2"}, map[string]string{"id": "1"})
		require.Equal(t, http.StatusForbidden, code)
		require.Equal(t, "You can only delete your own hackathons.", body["error"])
		require.Len(t, store.hackathons, 1)
		require.Len(t, store.regs, 1)
	})

	t.Run("owner deletes with cascade", func(t *testing.T) {
		code, body := call(t, h.Delete, http.MethodDelete, "/hackathons/1",
			map[string]any{"faculty_id": "fac1"}, map[string]string{"id": "1"})
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "Hackathon deleted successfully!", body["message"])
		require.Empty(t, store.hackathons)
		require.Empty(t, store.regs, "registrations must go with their hackathon")
	})
}
