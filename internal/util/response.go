package util

type Envelope map[string]any

// Message wraps a human-readable status line. Both success and failure
// responses use the same {"message": ...} shape.
func Message(text string) Envelope {
	return Envelope{"message": text}
}
