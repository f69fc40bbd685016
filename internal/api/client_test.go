package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"lounge/core"
)

func TestInvokeSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "PUT", r.Method)
		require.Equal(t, "/api/rest/v1/registration", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Lounge-Authorization"))
		require.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")

		require.NoError(t, r.ParseForm())
		require.Equal(t, "etag-1", r.PostForm.Get("settings_etag"))

		w.Write([]byte(")]}'\n" + `{"user": {"email": "jo@example.com"}}`))
	}))
	defer srv.Close()

	client := New(srv.URL, func() (map[string]string, error) {
		return map[string]string{"Lounge-Authorization": "Bearer token-123"}, nil
	})

	resp, err := client.Invoke("/api/rest/v1/registration", "PUT", url.Values{"settings_etag": {"etag-1"}})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	require.Equal(t, "jo@example.com", resp.User.Email)
}

func TestInvokeRejectsMissingPrefix(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user": null}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Invoke("/api/rest/v1/whoami", "GET", nil)

	var transport *core.TransportError
	require.ErrorAs(t, err, &transport)
	require.Contains(t, transport.Error(), "bad response prefix")
}

func TestInvokeRecognizesBusinessError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(")]}'\n" + `{"origin": "lounge.api.server", "code": "conflict", "message": "Settings changed, reload."}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Invoke("/api/rest/v1/profile", "POST", url.Values{})

	var business *core.BusinessError
	require.ErrorAs(t, err, &business)
	require.Equal(t, "conflict", business.Code)
	require.Equal(t, "Settings changed, reload.", business.Message)
}

func TestInvokeForeignErrorIsTransport(t *testing.T) {
	t.Parallel()

	// a proxy error page with a JSON shape close to ours must not be
	// mistaken for a structured server error
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(")]}'\n" + `{"origin": "some.proxy", "message": "upstream down"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Invoke("/api/rest/v1/posts", "GET", nil)

	var business *core.BusinessError
	require.False(t, errors.As(err, &business))
	var transport *core.TransportError
	require.ErrorAs(t, err, &transport)
	require.Equal(t, http.StatusBadGateway, transport.Status)
}

func TestInvokeHeaderFailureShortCircuits(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := New(srv.URL, func() (map[string]string, error) {
		return nil, errors.New("no user in session")
	})

	_, err := client.Invoke("/api/rest/v1/whoami", "GET", nil)

	var transport *core.TransportError
	require.ErrorAs(t, err, &transport)
	require.False(t, called, "request must not be sent without auth headers")
}
