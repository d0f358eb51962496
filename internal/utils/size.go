package utils

import (
	"fmt"
	"time"
)

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
	tib = 1024 * gib
)

// Generates a human readable size from a byte count using binary
// multiples. Anything below a kilobyte is printed as a whole number.
func HumanSize(bytes int64) string {
	if bytes >= tib {
		return scaled(bytes, tib, "TB")
	} else if bytes >= gib {
		return scaled(bytes, gib, "GB")
	} else if bytes >= mib {
		return scaled(bytes, mib, "MB")
	} else if bytes >= kib {
		return scaled(bytes, kib, "KB")
	}

	return fmt.Sprintf("%d B", bytes)
}

func scaled(bytes int64, unit int64, suffix string) string {
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(unit), suffix)
}

// Seconds with two decimals, the way the report footer prints them.
func Seconds(duration time.Duration) string {
	return fmt.Sprintf("%.2f", duration.Seconds())
}
