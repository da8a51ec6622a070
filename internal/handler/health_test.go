package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	code, body := call(t, Health("dev"), http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "dev", body["env"])
	require.NotEmpty(t, body["timestamp"])
}

func TestRoot(t *testing.T) {
	code, body := call(t, Root, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "HackHub API Server", body["message"])
	require.Equal(t, "1.0.0", body["version"])
	require.Equal(t, "Running", body["status"])
}
