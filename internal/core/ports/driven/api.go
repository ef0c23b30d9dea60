package driven

import (
	"context"
	"net/url"
)

// API is the mutation envelope around the chatdocs backend. Every call
// includes ambient session credentials; mutating calls carry the
// anti-forgery header, read fresh per request.
//
// Failures are reported as *domain.RequestError for non-2xx responses
// and domain.ErrNetworkUnavailable (wrapped) for transport errors.
type API interface {
	// Get issues a GET and decodes a 2xx JSON body into out.
	// A nil out discards the body.
	Get(ctx context.Context, path string, query url.Values, out any) error

	// Post issues a JSON POST and decodes a 2xx JSON body into out.
	Post(ctx context.Context, path string, body any, out any) error

	// Upload issues a multipart file upload.
	Upload(ctx context.Context, path, filePath string) error

	// Bootstrap ensures the anti-forgery cookie exists. Side effect
	// only; the cookie stays the single source of truth.
	Bootstrap(ctx context.Context) error
}

// CredentialSource reads the current anti-forgery token. Reads are
// idempotent; the backing cookie is written only by the backend.
type CredentialSource interface {
	// Token returns the current anti-forgery token, or empty when the
	// bootstrap call has not run yet.
	Token() string
}
