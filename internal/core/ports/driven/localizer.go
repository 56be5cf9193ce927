package driven

// Localizer renders user-facing text by message key.
type Localizer interface {
	// Text formats the message for key with args. Unknown keys render as
	// the key itself.
	Text(key string, args ...any) string
}
