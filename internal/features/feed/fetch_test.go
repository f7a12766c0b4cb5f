package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_Success(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("sku,quantity\nA100,5\n"))
	}))
	defer server.Close()

	body, err := Fetch(context.Background(), server.URL, FetchOptions{Timeout: 5 * time.Second, VerifyTLS: true})
	require.NoError(t, err)

	assert.Equal(t, "sku,quantity\nA100,5\n", string(body))
	assert.Equal(t, DefaultUserAgent, gotAgent)
}

func TestFetch_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL, FetchOptions{Timeout: 5 * time.Second})
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.True(t, fetchErr.IsHTTPStatus())
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

func TestFetch_InvalidURL(t *testing.T) {
	_, err := Fetch(context.Background(), "not a url", FetchOptions{})

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.False(t, fetchErr.IsHTTPStatus())
	assert.Equal(t, "invalid URL", fetchErr.Message)
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL, FetchOptions{Timeout: 20 * time.Millisecond})

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.False(t, fetchErr.IsHTTPStatus())
	assert.Error(t, fetchErr.Unwrap())
}

func TestFetch_TLSVerification(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL, FetchOptions{Timeout: 5 * time.Second, VerifyTLS: true})
	assert.Error(t, err, "self-signed certificate must be rejected when verifying")

	body, err := Fetch(context.Background(), server.URL, FetchOptions{Timeout: 5 * time.Second, VerifyTLS: false})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestFetch_RedirectLimit(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL+"/", FetchOptions{Timeout: 5 * time.Second})

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.False(t, fetchErr.IsHTTPStatus())
}
