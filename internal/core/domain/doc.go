// Package domain defines the core types for drivelink.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - IntegrationStatus: server-side Google Drive connection state
//   - FolderRequest / FolderGenerationResult: channel folder provisioning
//   - IntegrationError: the closed set of failures an integration call can produce
//   - Panel, callback and wizard states with their snapshots
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
