package main

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// subtypeLabel renders a wire subtype ("project", "image") for display.
func subtypeLabel(subtype string) string {
	subtype = strings.TrimSpace(subtype)
	if subtype == "" {
		return "Unknown"
	}
	return titleCaser.String(subtype)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
