package dateutil

import (
	"strings"
	"time"
)

const (
	// ISOLayout is the source date pattern accepted by default.
	ISOLayout = "2006-01-02"
	// DisplayLayout is the rendered date pattern.
	DisplayLayout = "02/01/2006"
)

func ParseISO(value string) (time.Time, error) {
	return time.Parse(ISOLayout, strings.TrimSpace(value))
}

func FormatDisplay(value time.Time) string {
	return value.Format(DisplayLayout)
}
