// Package api is the server facade transport: form-encoded requests, JSON
// responses behind the anti-hijacking prefix, and best-effort recognition
// of structured server errors.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lounge/core"
)

const (
	// responsePrefix guards every JSON body the server emits.
	responsePrefix = ")]}'\n"

	// originMarker identifies structured errors as ours. Error bodies
	// without it are transport failures, whatever they contain.
	originMarker = "lounge.api.server"

	rpcTimeout = 5 * time.Second
)

// HeadersFunc supplies the auth headers for a request; nil means
// unauthenticated.
type HeadersFunc func() (map[string]string, error)

// Client implements core.Facade over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	headers HeadersFunc
}

func New(baseURL string, headers HeadersFunc) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: rpcTimeout},
		headers: headers,
	}
}

// Invoke performs one round trip. It returns a *core.BusinessError when the
// server reported a recognized structured error, else a *core.TransportError
// for any failure.
func (c *Client) Invoke(path, method string, body url.Values) (*core.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(body.Encode())
	}
	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, &core.TransportError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	}
	if c.headers != nil {
		headers, err := c.headers()
		if err != nil {
			return nil, &core.TransportError{Err: err}
		}
		for name, value := range headers {
			req.Header.Set(name, value)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &core.TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &core.TransportError{Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= 400 {
		if business := asBusinessError(data); business != nil {
			return nil, business
		}
		return nil, &core.TransportError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s %s: %s", method, path, http.StatusText(resp.StatusCode)),
		}
	}

	payload, ok := strings.CutPrefix(string(data), responsePrefix)
	if !ok {
		return nil, &core.TransportError{Status: resp.StatusCode, Err: errors.New("bad response prefix")}
	}
	var out core.Response
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, &core.TransportError{Status: resp.StatusCode, Err: err}
	}
	return &out, nil
}

// asBusinessError inspects an error body: it is a structured server error
// only if it carries the response prefix, parses, and names our origin.
func asBusinessError(data []byte) *core.BusinessError {
	payload, ok := strings.CutPrefix(string(data), responsePrefix)
	if !ok {
		return nil
	}
	var business core.BusinessError
	if err := json.Unmarshal([]byte(payload), &business); err != nil {
		return nil
	}
	if business.Origin != originMarker {
		return nil
	}
	return &business
}
