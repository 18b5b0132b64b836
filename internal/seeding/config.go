// Package seeding drives a running laurel service through its admin API
// and checks the award invariants against the public views.
package seeding

import (
	"time"

	"github.com/redstonehub/laurel/internal/domain/model"
)

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL     string        // Base URL of the service
	AdminSecret string        // Signs the admin token; empty sends none
	Month       string        // Month name, e.g. "July"
	Year        int           // Award year
	PerCategory int           // Hall of Fame submissions per category
	Weeks       int           // Weekly Best Content submissions
	Threshold   int           // Group size at which the category advances
	PreviewSize int           // Expected month tile preview cap
	Workers     int           // Concurrent submissions per group
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Where generated submissions are written
	Verbose     bool          // Log every submission
}

// Label returns the month label the submissions are stored under.
func (c Config) Label() string {
	if c.Year == 0 {
		return c.Month
	}
	return c.Month + ", " + itoa(c.Year)
}

// HofSubmission is one generated Hall of Fame create request.
type HofSubmission struct {
	Key      string           `json:"key"`
	Payload  model.HofPayload `json:"payload"`
	Conflict bool             `json:"conflict,omitempty"`
}

// WbcSubmission is one generated Weekly Best Content create request.
type WbcSubmission struct {
	Key     string           `json:"key"`
	Payload model.WbcPayload `json:"payload"`
}

// Plan is the full set of generated submissions.
type Plan struct {
	Hof [][]HofSubmission `json:"hof"` // one slice per category, in admin order
	Wbc []WbcSubmission   `json:"wbc"`
}

// Stats holds run statistics.
type Stats struct {
	HofSubmitted int
	HofCreated   int
	HofRejected  int
	WbcSubmitted int
	WbcCreated   int
	Duplicates   int
	Failed       int
	Advances     int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}
