package requests

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"lolbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAttachesTheApiKey(t *testing.T) {
	var gotKey string
	var gotCount string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		gotCount = r.URL.Query().Get("count")
		testutil.ServeJSON(t, w, http.StatusOK, map[string]string{"puuid": "abc"})
	}))
	defer ts.Close()

	exec := NewExecutor("secret-key")
	params := url.Values{}
	params.Set("count", "20")

	body, status, err := exec.Get(context.Background(), ts.URL, params)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "abc")
	assert.Equal(t, "secret-key", gotKey, "the API key travels as a query parameter")
	assert.Equal(t, "20", gotCount)
}

func TestGetReturnsStatusErrorOnNon2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testutil.ServeRiotError(t, w, http.StatusNotFound, "Data not found")
	}))
	defer ts.Close()

	exec := NewExecutor("key")
	body, status, err := exec.Get(context.Background(), ts.URL, nil)

	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, body, "the body is still returned for the caller to inspect")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Equal(t, "Data not found", statusErr.Message)
}

func TestGetFallsBackToStatusTextWithoutErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	exec := NewExecutor("key")
	_, _, err := exec.Get(context.Background(), ts.URL, nil)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "Internal Server Error", statusErr.Message)
}

func TestGetPropagatesTransportFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	exec := NewExecutor("key")
	_, _, err := exec.Get(context.Background(), ts.URL, nil)
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr), "transport failures are not status errors")
}

func TestPlainGetDoesNotAttachTheApiKey(t *testing.T) {
	var query url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		testutil.ServeJSON(t, w, http.StatusOK, []string{"14.3.1"})
	}))
	defer ts.Close()

	body, status, err := PlainGet(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "14.3.1")
	assert.Empty(t, query.Get("api_key"))
}
