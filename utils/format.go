package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FormatDuration renders a duration as compound units, e.g. "1d 2h 30m".
// Zero components are skipped; a zero duration renders as "0s".
func FormatDuration(d time.Duration) string {
	totalSeconds := int64(d / time.Second)
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	days := totalSeconds / 86400
	hours := (totalSeconds % 86400) / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}

	return strings.Join(parts, " ")
}

// Truncate shortens s to at most max runes, appending "..." when trimmed.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

var mentionPattern = regexp.MustCompile(`<(@[!&]?|#)(\d+)>`)

// EscapeMentions neutralizes @everyone, @here and user, role and channel
// mentions in user-supplied text by inserting a zero-width space.
func EscapeMentions(text string) string {
	text = strings.ReplaceAll(text, "@everyone", "@\u200beveryone")
	text = strings.ReplaceAll(text, "@here", "@\u200bhere")
	return mentionPattern.ReplaceAllString(text, "<${1}\u200b${2}>")
}
