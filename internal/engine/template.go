package engine

import "strings"

// TokenValue binds one bracketed template token to its replacement text
type TokenValue struct {
	Token string
	Value string
}

// BuildMessage substitutes bracketed tokens into a message template.
// Replacement is literal and ordered; tokens the template does not use
// are ignored, and tokens the table does not cover are left as-is.
func BuildMessage(template string, tokens []TokenValue) string {
	msg := template
	for _, t := range tokens {
		msg = strings.ReplaceAll(msg, t.Token, t.Value)
	}
	return msg
}
