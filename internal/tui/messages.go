package tui

// Message types for Bubble Tea update loop.

// clearStatusMsg expires the status line set by the edit with the same sequence number.
type clearStatusMsg struct{ Seq int }
