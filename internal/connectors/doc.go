// Package connectors holds clients that talk to third-party services
// directly rather than through the application server.
package connectors
