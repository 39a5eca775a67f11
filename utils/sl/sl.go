// Package sl holds slog attribute helpers.
package sl

import "log/slog"

// Err returns the error as an "error" attribute.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
