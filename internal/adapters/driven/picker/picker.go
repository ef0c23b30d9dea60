// Package picker implements the driven.FilePicker port for Google
// Drive. The backend only brokers the access token; file selection
// happens client-side. A loopback HTTP server serves the selection
// page and the user picks files in their browser, mirroring the
// provider's own picker experience.
package picker

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chatdocs-cli/internal/logger"
)

// driveFilesURL lists the user's Drive files.
const driveFilesURL = "https://www.googleapis.com/drive/v3/files"

// selectionTimeout bounds how long Pick waits for the browser.
const selectionTimeout = 5 * time.Minute

// Ensure DrivePicker implements the interface.
var _ driven.FilePicker = (*DrivePicker)(nil)

// DrivePicker lists Drive files with the brokered access token and
// lets the user choose among them in the browser.
type DrivePicker struct {
	filesURL string
	open     func(url string) error
	timeout  time.Duration
}

// NewDrivePicker creates a Drive picker. open is invoked with the
// loopback selection URL; pass browser.Open outside of tests.
func NewDrivePicker(open func(url string) error) *DrivePicker {
	return &DrivePicker{
		filesURL: driveFilesURL,
		open:     open,
		timeout:  selectionTimeout,
	}
}

// Pick lists the user's Drive files and blocks until a selection is
// made in the browser. Returns domain.ErrUserCancelled when the user
// dismisses the picker without choosing.
func (p *DrivePicker) Pick(ctx context.Context, token *oauth2.Token) ([]domain.PickedFile, error) {
	files, err := p.listFiles(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.ErrUserCancelled
	}

	srv := newSelectionServer(files)
	if err := srv.Start(); err != nil {
		return nil, err
	}
	defer func() { _ = srv.Stop() }()

	logger.Info("Opening browser for file selection: %s", srv.URL())
	if err := p.open(srv.URL()); err != nil {
		return nil, fmt.Errorf("opening browser: %w", err)
	}

	return srv.WaitForSelection(ctx, p.timeout)
}

// driveFileList is the Drive v3 files.list response shape.
type driveFileList struct {
	Files []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"files"`
}

func (p *DrivePicker) listFiles(ctx context.Context, token *oauth2.Token) ([]domain.PickedFile, error) {
	src := oauth2.StaticTokenSource(token)
	client := oauth2.NewClient(ctx, src)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.filesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building file list request: %w", err)
	}
	q := req.URL.Query()
	q.Set("pageSize", "100")
	q.Set("fields", "files(id,name)")
	req.URL.RawQuery = q.Encode()

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.RequestError{Status: resp.StatusCode, Reason: "drive_list_failed"}
	}

	var list driveFileList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding file list: %w", err)
	}

	files := make([]domain.PickedFile, 0, len(list.Files))
	for _, f := range list.Files {
		files = append(files, domain.PickedFile{ID: f.ID, Name: f.Name})
	}
	return files, nil
}

// selectionServer receives the user's choice on the loopback
// interface. One selection (or cancellation) per server lifetime.
type selectionServer struct {
	mu       sync.Mutex
	files    []domain.PickedFile
	picked   chan []domain.PickedFile
	cancel   chan struct{}
	server   *http.Server
	listener net.Listener
	port     int
}

func newSelectionServer(files []domain.PickedFile) *selectionServer {
	return &selectionServer{
		files:  files,
		picked: make(chan []domain.PickedFile, 1),
		cancel: make(chan struct{}, 1),
	}
}

func (s *selectionServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/select", s.handleSelect)
	mux.HandleFunc("/cancel", s.handleCancel)

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("starting selection server: %w", err)
	}
	s.listener = listener
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Warn("Selection server stopped: %v", err)
		}
	}()

	return nil
}

func (s *selectionServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// URL returns the loopback address serving the selection page.
func (s *selectionServer) URL() string {
	return fmt.Sprintf("http://localhost:%d/", s.port)
}

// WaitForSelection blocks until the user picks files, cancels, the
// context ends, or the timeout elapses.
func (s *selectionServer) WaitForSelection(ctx context.Context, timeout time.Duration) ([]domain.PickedFile, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case files := <-s.picked:
		return files, nil
	case <-s.cancel:
		return nil, domain.ErrUserCancelled
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for file selection: %w", ctx.Err())
	}
}

func (s *selectionServer) handlePage(w http.ResponseWriter, _ *http.Request) {
	var rows strings.Builder
	for _, f := range s.files {
		fmt.Fprintf(&rows,
			`<label class="row"><input type="checkbox" name="id" value=%q> %s</label>`,
			f.ID, html.EscapeString(f.Name))
	}
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, selectionHTML(rows.String()))
}

func (s *selectionServer) handleSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	byID := make(map[string]domain.PickedFile, len(s.files))
	for _, f := range s.files {
		byID[f.ID] = f
	}

	var picked []domain.PickedFile
	for _, id := range r.Form["id"] {
		if f, ok := byID[id]; ok {
			picked = append(picked, f)
		}
	}
	if len(picked) == 0 {
		select {
		case s.cancel <- struct{}{}:
		default:
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, doneHTML("Nothing selected", "You can close this window and return to the application."))
		return
	}

	select {
	case s.picked <- picked:
	default:
	}
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, doneHTML("Selection received!", "You can close this window and return to the application."))
}

func (s *selectionServer) handleCancel(w http.ResponseWriter, _ *http.Request) {
	select {
	case s.cancel <- struct{}{}:
	default:
	}
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, doneHTML("Selection cancelled", "You can close this window and return to the application."))
}

func selectionHTML(rows string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>chatdocs - Select Drive Files</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            padding-top: 48px;
            margin: 0;
            background: #FAFAFA;
        }
        .container {
            background: white;
            padding: 32px 48px;
            border-radius: 16px;
            border: 1px solid #C7C8CC;
            box-shadow: 0 4px 24px rgba(0,0,0,0.08);
            min-width: 420px;
        }
        h1 { color: #333F50; font-size: 20px; margin: 0 0 16px 0; }
        .row { display: block; padding: 6px 0; color: #333F50; }
        .actions { margin-top: 24px; display: flex; gap: 12px; }
        button {
            padding: 8px 20px;
            border-radius: 8px;
            border: 1px solid #C7C8CC;
            background: #6675FF;
            color: white;
            cursor: pointer;
        }
        button.secondary { background: white; color: #333F50; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Select files to import</h1>
        <form method="POST" action="/select">
            %s
            <div class="actions">
                <button type="submit">Import</button>
                <button class="secondary" type="submit" formaction="/cancel" formmethod="GET">Cancel</button>
            </div>
        </form>
    </div>
</body>
</html>`, rows)
}

func doneHTML(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>chatdocs - Select Drive Files</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #FAFAFA;
        }
        .container {
            text-align: center;
            background: white;
            padding: 48px 64px;
            border-radius: 16px;
            border: 1px solid #C7C8CC;
            box-shadow: 0 4px 24px rgba(0,0,0,0.08);
        }
        h1 { color: #333F50; margin: 0 0 8px 0; font-size: 24px; font-weight: 600; }
        p { color: #7B8088; margin: 0; font-size: 16px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>`, title, message)
}
