// Package slogx provides small slog.Attr constructors shared by programs
// that bridge zerolog into the standard library logger.
package slogx

import (
	"fmt"
	"log/slog"
)

// Error returns an attribute with the key "error" and the error's message.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// Stringer returns an attribute holding the string form of value.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}
