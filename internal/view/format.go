package view

import (
	"fmt"
	"strings"
	"time"
)

const (
	dayLayout   = "Jan 02"
	clockLayout = "15:04"
	// InputLayout is how dates are typed into the edit form.
	InputLayout = "02/01/06 15:04"
)

func formatDuration(d time.Duration) string {
	mins := int(d.Minutes())
	days, hours, m := mins/(24*60), (mins/60)%24, mins%60
	switch {
	case days > 0:
		return fmt.Sprintf("%02dD %02dH %02dM", days, hours, m)
	case hours > 0:
		return fmt.Sprintf("%02dH %02dM", hours, m)
	}
	return fmt.Sprintf("%02dM", m)
}

func formatInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(InputLayout)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
