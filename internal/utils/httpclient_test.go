package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"name":"matrix","year":1999}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(5 * time.Second)

	var result struct {
		Name string `json:"name"`
		Year int    `json:"year"`
	}
	err := client.GetJSON(context.Background(), srv.URL, &result)
	require.NoError(t, err)
	assert.Equal(t, "matrix", result.Name)
	assert.Equal(t, 1999, result.Year)
}

func TestGetJSONNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPClient(5 * time.Second)

	var result map[string]any
	err := client.GetJSON(context.Background(), srv.URL, &result)
	assert.Error(t, err)
}

func TestGetJSONMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := NewHTTPClient(5 * time.Second)

	var result map[string]any
	err := client.GetJSON(context.Background(), srv.URL, &result)
	assert.Error(t, err)
}

func TestGetJSONContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	client := NewHTTPClient(5 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var result map[string]any
	err := client.GetJSON(ctx, srv.URL, &result)
	assert.Error(t, err)
}

func TestNewHTTPClientDefaultTimeout(t *testing.T) {
	assert.NotNil(t, NewHTTPClient(0))
	assert.NotNil(t, NewHTTPClient(-time.Second))
}
