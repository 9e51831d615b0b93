package baseconv

import (
	"strings"

	"github.com/agbru/convkit/internal/numeric"
)

// Session holds the canonical integer of the base converter and the raw
// text of the most recently edited field.
//
// A Session is not safe for concurrent use; callers serialise access.
type Session struct {
	value    numeric.Value
	override *override
	err      error
}

type override struct {
	field Field
	text  string
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Get returns the text of field: the override text verbatim if field was the
// last one edited, otherwise the canonical value rendered in field.Base, or
// "" when the canonical value is unset.
func (s *Session) Get(field Field) string {
	if s.override != nil && s.override.field == field {
		return s.override.text
	}
	return s.value.Text(field.Base)
}

// Set records an edit of field. The raw text becomes the override before any
// parsing happens. The text is then trimmed, allowedPrefix is stripped when
// non-empty and present, and the rest is parsed in field.Base. A successful
// parse replaces the canonical value; a failed one leaves it unset.
//
// Parameters:
//   - field: The edited field.
//   - text: The raw text of the field.
//   - allowedPrefix: A literal prefix to strip before parsing, or "".
func (s *Session) Set(field Field, text, allowedPrefix string) {
	s.override = &override{field: field, text: text}

	digits := strings.TrimSpace(text)
	if allowedPrefix != "" {
		digits = strings.TrimPrefix(digits, allowedPrefix)
	}
	n, err := numeric.Parse(digits, field.Base)
	s.err = err
	if err != nil {
		s.value = numeric.None()
		return
	}
	s.value = numeric.Some(n)
}

// Paste classifies text with Detect and forwards it to Set on the detected
// base in the given view.
func (s *Session) Paste(text string, id int) Detection {
	d := Detect(text)
	s.Set(Field{Base: d.Base, ID: id}, d.Text, d.Prefix)
	return d
}

// Reset clears the canonical value and the override.
func (s *Session) Reset() {
	s.value = numeric.None()
	s.override = nil
	s.err = nil
}

// Value returns the canonical value.
func (s *Session) Value() numeric.Value {
	return s.value
}

// Err returns why the last edit left the value unset, or nil.
func (s *Session) Err() error {
	return s.err
}

// Override returns the last edited field and its raw text, if any.
func (s *Session) Override() (Field, string, bool) {
	if s.override == nil {
		return Field{}, "", false
	}
	return s.override.field, s.override.text, true
}
