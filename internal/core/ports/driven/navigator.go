package driven

// Navigator models the client's navigable URL and history. A full
// authorization redirect discards the running client; the persisted
// URL is the only state that survives it.
type Navigator interface {
	// Current returns the client's current URL.
	Current() (string, error)

	// Replace rewrites the current URL without adding a history
	// entry. Used to strip the resume marker so a refresh does not
	// re-trigger the flow.
	Replace(rawURL string) error

	// Redirect navigates away to rawURL, adding a history entry and
	// abandoning the running client (the identity provider hand-off).
	Redirect(rawURL string) error
}
