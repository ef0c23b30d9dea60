// Package statefile implements the driven.Navigator port on a TOML
// statefile. The persisted URL plays the role the address bar plays in
// a browser: it is the only client state that survives the
// authorization hand-off, and Replace rewrites it without leaving a
// history entry behind.
package statefile

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chatdocs-cli/internal/logger"
)

// DefaultClientURL is the client's home location.
const DefaultClientURL = "/chat"

// stateFileName is the statefile within the chatdocs state directory.
const stateFileName = "state.toml"

// Ensure Navigator implements the interface.
var _ driven.Navigator = (*Navigator)(nil)

// state is the on-disk shape of the statefile.
type state struct {
	CurrentURL string `toml:"current_url"`
}

// Navigator persists the client URL in stateDir and opens the system
// browser for redirects. The redirect target's `next` parameter is
// persisted ahead of time: the backend walks the browser through the
// identity provider and lands on next, and the statefile mirrors that
// landing so the next launch sees the resume marker.
type Navigator struct {
	mu      sync.Mutex
	path    string
	baseURL string
	open    func(url string) error
}

// NewNavigator creates a statefile navigator. open is invoked with the
// absolute redirect URL; pass browser.Open outside of tests.
func NewNavigator(stateDir, baseURL string, open func(url string) error) *Navigator {
	return &Navigator{
		path:    filepath.Join(stateDir, stateFileName),
		baseURL: baseURL,
		open:    open,
	}
}

// Current returns the client's current URL.
func (n *Navigator) Current() (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.load()
}

// Replace rewrites the current URL without adding a history entry.
func (n *Navigator) Replace(rawURL string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.store(rawURL)
}

// Redirect hands the browser to rawURL (resolved against the backend
// base URL). When the target carries a `next` return URL it becomes
// the persisted location, since that is where the round trip lands.
func (n *Navigator) Redirect(rawURL string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing redirect target: %w", err)
	}
	if next := u.Query().Get("next"); next != "" {
		if err := n.store(next); err != nil {
			return err
		}
	}

	target := rawURL
	if !u.IsAbs() {
		base, err := url.Parse(n.baseURL)
		if err != nil {
			return fmt.Errorf("parsing base url: %w", err)
		}
		target = base.ResolveReference(u).String()
	}

	logger.Info("Opening browser for authorization: %s", target)
	return n.open(target)
}

func (n *Navigator) load() (string, error) {
	data, err := os.ReadFile(n.path)
	if os.IsNotExist(err) {
		return DefaultClientURL, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading statefile: %w", err)
	}

	var s state
	if err := toml.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("parsing statefile: %w", err)
	}
	if s.CurrentURL == "" {
		return DefaultClientURL, nil
	}
	return s.CurrentURL, nil
}

func (n *Navigator) store(rawURL string) error {
	data, err := toml.Marshal(state{CurrentURL: rawURL})
	if err != nil {
		return fmt.Errorf("encoding statefile: %w", err)
	}
	if err := os.WriteFile(n.path, data, 0o600); err != nil {
		return fmt.Errorf("writing statefile: %w", err)
	}
	return nil
}
