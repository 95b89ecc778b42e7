package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// AllModels lists every table owned by this service, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Quiz{},
		&Attempt{},
		&Rating{},
		&Statistics{},
	}
}
