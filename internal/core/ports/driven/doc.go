// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - IntegrationAPI: Google Drive integration endpoints on the application server
//   - TokenProvider: Bearer token for the application server
//   - Clock: Scheduling of deferred UI actions
//
// # Optional Interfaces
//
// These can be nil - the owning service degrades gracefully:
//
//   - FolderAPI: Channel folder generation endpoint
//   - IntegrationsStatusProvider: Shared, read-only integrations status
//   - BrowserOpener: Opens the authorization URL (nil leaves it to the caller)
//   - Confirmer: Disconnect confirmation (nil declines)
//   - Navigator: Return-to-settings navigation
//   - FolderInspector: Drive-side verification of provisioned folders
//   - Localizer: User-facing messages (nil renders message keys)
//   - ConfigStore: Persistent configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
