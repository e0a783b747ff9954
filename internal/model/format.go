package model

import (
	"fmt"
	"time"
)

// FormatBytes renders a byte count using binary units
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatSpeed renders a transfer rate in bytes per second
func FormatSpeed(bps float64) string {
	if bps <= 0 {
		return ""
	}
	return FormatBytes(int64(bps)) + "/s"
}

// FormatDuration renders a duration as H:MM:SS, or M:SS under an hour
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
