package tui

import "time"

// Package-level constants to avoid magic numbers and improve readability.
const (
	// inputCharLimit bounds typed numbers; "1275.72" is the longest useful value.
	inputCharLimit = 8
	inputWidth     = 8

	// panelWidth is the inner width of the Coffee and Water panels.
	panelWidth = 34
	panelGap   = 2
	// horizontalMinWidth is the terminal width needed to place both panels side by side.
	horizontalMinWidth = 2*(panelWidth+4) + panelGap

	statusTimeoutSeconds = 3

	statusTimeout = time.Duration(statusTimeoutSeconds) * time.Second
)
