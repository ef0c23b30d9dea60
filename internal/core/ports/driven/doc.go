// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - API: The mutation envelope around the chatdocs backend
//   - CredentialSource: Fresh anti-forgery token reads
//   - Navigator: The navigable URL and history of the client
//   - FilePicker: The externally-owned cloud-storage picker widget
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
