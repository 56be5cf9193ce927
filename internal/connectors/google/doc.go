// Package google provides shared infrastructure for talking to Google APIs.
//
// It contains:
//   - a TokenSource adapter that bridges driven.TokenProvider to oauth2.TokenSource
//   - a Drive service factory
//   - error classification for common Google API errors (401, 403, 404, 429)
//   - rate limiting to respect Google API quotas
//
// # Usage
//
//	ts := google.NewTokenSource(ctx, tokenProvider)
//	svc, err := google.NewDriveService(ctx, ts)
//
// # OAuth2 Scopes
//
// Folder checks only read metadata, so either of these is enough:
//   - https://www.googleapis.com/auth/drive.file
//   - https://www.googleapis.com/auth/drive.metadata.readonly
package google
