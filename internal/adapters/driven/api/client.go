// Package api implements the driven.API port: the mutation envelope
// around the chatdocs backend. Every request carries the ambient
// session cookie; mutating requests carry the anti-forgery header,
// read fresh from the cookie jar at call time because the backend can
// rotate the token at any point.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chatdocs-cli/internal/logger"
)

// Cookie names used by the backend.
const (
	csrfCookie    = "csrftoken"
	sessionCookie = "sessionid"
)

// csrfHeader carries the anti-forgery token on mutating requests.
const csrfHeader = "X-CSRFToken"

// bootstrapPath is the side-effect-only call that ensures the
// anti-forgery cookie exists.
const bootstrapPath = "/api/csrf"

// Ensure Client implements the interface.
var _ driven.API = (*Client)(nil)

// Client is an HTTP client for the chatdocs backend.
type Client struct {
	base  *url.URL
	http  *http.Client
	creds driven.CredentialSource
}

// NewClient creates a backend client. sessionValue, when non-empty, is
// installed as the ambient session cookie.
func NewClient(baseURL, sessionValue string) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	if sessionValue != "" {
		jar.SetCookies(base, []*http.Cookie{{Name: sessionCookie, Value: sessionValue}})
	}

	return &Client{
		base:  base,
		http:  &http.Client{Jar: jar},
		creds: &jarCredentials{jar: jar, base: base},
	}, nil
}

// Credentials exposes the anti-forgery token source backed by the
// client's cookie jar.
func (c *Client) Credentials() driven.CredentialSource {
	return c.creds
}

// Bootstrap ensures the anti-forgery cookie exists.
func (c *Client) Bootstrap(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, bootstrapPath, nil, nil, nil)
}

// Get issues a GET and decodes a 2xx JSON body into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a JSON POST and decodes a 2xx JSON body into out.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	return c.request(ctx, http.MethodPost, path, nil, bytes.NewReader(payload), "application/json", out)
}

// Upload issues a multipart file upload.
func (c *Client) Upload(ctx context.Context, path, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filePath, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("reading %s: %w", filePath, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finishing multipart body: %w", err)
	}

	return c.request(ctx, http.MethodPost, path, nil, &buf, mw.FormDataContentType(), nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, out any) error {
	return c.request(ctx, method, path, query, body, "", out)
}

// errorBody is the backend's error envelope on rejections.
type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) request(
	ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any,
) error {
	target := c.base.JoinPath(path)
	if query != nil {
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if method != http.MethodGet {
		if c.creds.Token() == "" && path != bootstrapPath {
			// First mutation of the session primes the anti-forgery
			// cookie, as the web client does on mount.
			if err := c.Bootstrap(ctx); err != nil {
				return err
			}
		}
		// Read fresh per request; the cookie is the source of truth.
		req.Header.Set(csrfHeader, c.creds.Token())
	}

	logger.Debug("%s %s", method, target.Path)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &domain.RequestError{Status: resp.StatusCode}
		var eb errorBody
		if derr := json.NewDecoder(resp.Body).Decode(&eb); derr == nil {
			reqErr.Reason = eb.Error
		}
		return reqErr
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// jarCredentials reads the anti-forgery token from the cookie jar.
// Reads are idempotent; only backend responses write the cookie.
type jarCredentials struct {
	jar  http.CookieJar
	base *url.URL
}

// Token returns the current anti-forgery token, or empty before the
// bootstrap call has run.
func (j *jarCredentials) Token() string {
	for _, c := range j.jar.Cookies(j.base) {
		if c.Name == csrfCookie {
			return c.Value
		}
	}
	return ""
}
