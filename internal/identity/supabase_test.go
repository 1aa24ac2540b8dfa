package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupabaseClient_Resolved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/recover", r.URL.Path)
		assert.Equal(t, "https://app.example.com/admin-reset-password", r.URL.Query().Get("redirect_to"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		var body recoverRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@x.com", body.Email)

		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewSupabaseClient(srv.URL+"/", "service-key", time.Second)
	got, err := c.TriggerReset(context.Background(), "a@x.com", "https://app.example.com/admin-reset-password")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.ID)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestSupabaseClient_AcceptedReplyIsManaged(t *testing.T) {
	cases := []struct {
		name, body string
		status     int
		wantID     string
	}{
		{"empty object", `{}`, http.StatusOK, ""},
		{"no body", ``, http.StatusOK, ""},
		{"no content", ``, http.StatusNoContent, ""},
		{"not json", `ok`, http.StatusOK, ""},
		{"with id", `{"id":"7f0c"}`, http.StatusOK, "7f0c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewSupabaseClient(srv.URL, "k", time.Second)
			got, err := c.TriggerReset(context.Background(), "a@x.com", "")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tc.wantID, got.ID)
			assert.Equal(t, "a@x.com", got.Email)
		})
	}
}

func TestSupabaseClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"msg":"rate limited"}`))
	}))
	defer srv.Close()

	c := NewSupabaseClient(srv.URL, "k", time.Second)
	_, err := c.TriggerReset(context.Background(), "a@x.com", "")
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "429")
}

func TestSupabaseClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewSupabaseClient(url, "k", time.Second)
	_, err := c.TriggerReset(context.Background(), "a@x.com", "")
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.TriggerReset(context.Background(), "a@x.com", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
