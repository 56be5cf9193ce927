// Package file provides the TOML configuration file used by drivelink.
//
// Keys are addressed in dot notation ("api.url") and written back as nested
// TOML tables, so the file stays readable when edited by hand:
//
//	[api]
//	url = "https://app.example.com"
//	rate_limit = 5
package file
