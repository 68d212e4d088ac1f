// Package db keeps the history of analyses completed during the current run
// in an in-memory SQLite database. The store dies with the process; nothing
// is ever written to disk.
package db

import "time"

// Analysis is one completed analysis recorded for the session history.
type Analysis struct {
	ID         string
	Mode       string
	MimeType   string
	AudioBytes int
	Markdown   string
	CreatedAt  time.Time
}
