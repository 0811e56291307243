// Package uiutil holds small presentation helpers shared by handlers and templates.
package uiutil

import (
	"strings"
	"time"
)

const (
	// FriendlyDateLayout renders calendar dates such as news publication days.
	FriendlyDateLayout = "January 2, 2006"
	// FriendlyDateTimeLayout renders timestamps such as message arrival.
	FriendlyDateTimeLayout = "Jan 2, 2006 3:04 PM"
)

// FormatFriendlyDate returns a long-form local date, or "" for a zero time.
func FormatFriendlyDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateLayout)
}

// FormatFriendlyDateTime returns a consistent, user-friendly local timestamp representation.
func FormatFriendlyDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateTimeLayout)
}

// TruncateWithEllipsis shortens text to the provided rune limit and appends an ellipsis when truncated.
func TruncateWithEllipsis(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 0 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
