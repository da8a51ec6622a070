package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// call runs a handler against an in-memory request and decodes the JSON
// response body. Shared by all handler tests in this package.
func call(t *testing.T, h echo.HandlerFunc, method, target string, body any, params map[string]string) (int, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(bs))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if len(params) > 0 {
		names := make([]string, 0, len(params))
		values := make([]string, 0, len(params))
		for k, v := range params {
			names = append(names, k)
			values = append(values, v)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	require.NoError(t, h(c))

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func TestUserCreate(t *testing.T) {
	store := newMemStore()
	h := NewUserHandler(memUsers{store})

	t.Run("missing fields", func(t *testing.T) {
		code, body := call(t, h.Create, http.MethodPost, "/users",
			map[string]any{"uid": "u1", "email": "a@b.edu"}, nil)
		require.Equal(t, http.StatusBadRequest, code)
		require.Equal(t, "UID, email, and role are required.", body["error"])
	})

	t.Run("invalid role", func(t *testing.T) {
		code, body := call(t, h.Create, http.MethodPost, "/users",
			map[string]any{"uid": "u1", "email": "a@b.edu", "role": "admin"}, nil)
		require.Equal(t, http.StatusBadRequest, code)
		require.Equal(t, "Role must be student or faculty.", body["error"])
		require.Empty(t, store.users)
	})

	t.Run("create", func(t *testing.T) {
		code, body := call(t, h.Create, http.MethodPost, "/users",
			map[string]any{"uid": "u1", "email": "a@b.edu", "role": "student"}, nil)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "User created successfully!", body["message"])
		require.Len(t, store.users, 1)
	})

	t.Run("same uid again is a no-op", func(t *testing.T) {
		code, body := call(t, h.Create, http.MethodPost, "/users",
			map[string]any{"uid": "u1", "email": "changed@b.edu", "role": "faculty"}, nil)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "User already exists", body["message"])

		// The stored record is untouched by the second payload.
		require.Len(t, store.users, 1)
		require.Equal(t, "a@b.edu", store.users["u1"].Email)
		require.Equal(t, "student", store.users["u1"].Role)
	})
}

func TestUserGet(t *testing.T) {
	store := newMemStore()
	store.addUser("u1", "a@b.edu", "faculty")
	h := NewUserHandler(memUsers{store})

	code, body := call(t, h.Get, http.MethodGet, "/users/u1", nil, map[string]string{"uid": "u1"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "a@b.edu", body["email"])
	require.Equal(t, "faculty", body["role"])

	code, body = call(t, h.Get, http.MethodGet, "/users/ghost", nil, map[string]string{"uid": "ghost"})
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "User not found.", body["error"])
}
