package model

import "fmt"

// PrettyBytes formats a signed byte count with a decimal unit suffix,
// matching the units the backup tool prints (kB = 10^3, not 2^10).
func PrettyBytes(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	switch {
	case n < 1_000:
		return fmt.Sprintf("%s%d B", sign, n)
	case n < 1_000_000:
		return fmt.Sprintf("%s%.1f kB", sign, float64(n)/1e3)
	case n < 1_000_000_000:
		return fmt.Sprintf("%s%.1f MB", sign, float64(n)/1e6)
	case n < 1_000_000_000_000:
		return fmt.Sprintf("%s%.1f GB", sign, float64(n)/1e9)
	default:
		return fmt.Sprintf("%s%.1f TB", sign, float64(n)/1e12)
	}
}

// Describe returns a multi-line summary of a payload for the detail line:
// file type and change type, then content, permission and ownership
// transitions when present.
func (d *DiffData) Describe() string {
	s := fmt.Sprintf("%s %s", d.FileType, d.ChangeType)

	if d.ContentDelta != nil {
		s += fmt.Sprintf(", added %s, deleted %s",
			PrettyBytes(d.ContentDelta.Added), PrettyBytes(d.ContentDelta.Removed))
	}
	if d.ModeChange != nil {
		s += fmt.Sprintf(", %s -> %s", d.ModeChange.Old, d.ModeChange.New)
	}
	if d.OwnerChange != nil {
		s += fmt.Sprintf(", %s:%s -> %s:%s",
			d.OwnerChange.OldUser, d.OwnerChange.OldGroup,
			d.OwnerChange.NewUser, d.OwnerChange.NewGroup)
	}

	return s
}
