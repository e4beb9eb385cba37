package feedclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	t.Run("returns body on 200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR\n"))
		}))
		defer server.Close()

		client := NewClient(5 * time.Second)
		data, err := client.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Contains(t, string(data), "VCALENDAR")
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(5 * time.Second)
		_, err := client.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("unreachable host is an error", func(t *testing.T) {
		client := NewClient(500 * time.Millisecond)
		_, err := client.Fetch(context.Background(), "http://127.0.0.1:1/feed.ics")
		assert.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(2 * time.Second)
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		client := NewClient(5 * time.Second)
		_, err := client.Fetch(ctx, server.URL)
		assert.Error(t, err)
	})
}
