package domain

// ConnectorKind identifies an external knowledge connector.
type ConnectorKind string

const (
	// ConnectorDrive is the cloud-storage connector (Google Drive).
	ConnectorDrive ConnectorKind = "drive"
	// ConnectorNotion is the workspace-notes connector (Notion).
	ConnectorNotion ConnectorKind = "notion"
)

// Label returns the source label attached to imported entries.
func (k ConnectorKind) Label() string {
	switch k {
	case ConnectorDrive:
		return "Drive"
	case ConnectorNotion:
		return "Notion"
	default:
		return string(k)
	}
}

// Valid reports whether the kind names a known connector.
func (k ConnectorKind) Valid() bool {
	return k == ConnectorDrive || k == ConnectorNotion
}

// ConnectorPhase is the lifecycle phase of a connector session.
// Phases advance monotonically except that failures return to Idle.
type ConnectorPhase int

const (
	// PhaseIdle means no connector flow is running.
	PhaseIdle ConnectorPhase = iota
	// PhaseAwaitingRedirectReturn means the user was handed to the
	// identity provider and the flow resumes on the next launch.
	PhaseAwaitingRedirectReturn
	// PhaseFetchingToken means the delegated token is being fetched.
	PhaseFetchingToken
	// PhasePickerOpen means the selection picker is showing.
	PhasePickerOpen
	// PhaseImporting means the selection is being persisted.
	PhaseImporting
)

// String returns the string representation of the phase.
func (p ConnectorPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingRedirectReturn:
		return "awaiting_redirect_return"
	case PhaseFetchingToken:
		return "fetching_token"
	case PhasePickerOpen:
		return "picker_open"
	case PhaseImporting:
		return "importing"
	default:
		return "unknown"
	}
}

// PickedFile is one item confirmed in a connector picker.
// For Drive the ID is the file ID; for Notion it is the page ID.
type PickedFile struct {
	ID   string
	Name string
}

// NotePage is a workspace page returned by the notes connector search.
type NotePage struct {
	ID    string
	Title string
}
