// Package domain holds the listing lifecycle rules shared by service and
// repository layers.
package domain

// Listing status labels. StatusNew is assigned on capture; StatusCaptured is
// terminal and only ever set by promotion.
const (
	StatusNew      = "Novo"
	StatusCaptured = "Captado"
)

// IsTerminal reports whether a listing in this status accepts no further
// lifecycle changes.
func IsTerminal(status string) bool {
	return status == StatusCaptured
}
