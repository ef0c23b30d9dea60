// Package domain defines the core business entities for chatdocs.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Message/Transcript: The append-only chat transcript
//   - KnowledgeEntry/Corpus: The visible knowledge corpus
//   - ConnectorKind/ConnectorPhase: Connector session lifecycle
//   - RequestError and the failure taxonomy
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
