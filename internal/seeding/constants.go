package seeding

import (
	"strconv"
	"time"
)

// Defaults applied to zero Config fields.
const (
	DefaultPerCategory = 3
	DefaultWeeks       = 4
	DefaultThreshold   = 3
	DefaultPreviewSize = 4
	DefaultWorkers     = 4
	DefaultTimeout     = 10 * time.Second
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

func itoa(n int) string { return strconv.Itoa(n) }
