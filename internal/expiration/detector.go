package expiration

import (
	"strings"
	"time"

	"sjsage522/jobaggregator/internal/model"
)

// DefaultThresholdDays is the age past which a posting counts as expired
const DefaultThresholdDays = 30

const secondsPerDay = 24 * 60 * 60

// dateLayouts are tried in order. Inputs without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.ANSIC,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate parses a posting timestamp in any of the accepted layouts
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Detector computes posting ages against a clock
type Detector struct {
	now func() time.Time
}

// NewDetector creates a detector; a nil clock means time.Now
func NewDetector(clock func() time.Time) *Detector {
	if clock == nil {
		clock = time.Now
	}
	return &Detector{now: clock}
}

// CalculateAge returns the whole days elapsed since postedDate. It returns nil
// for a missing, unparseable or future date.
func (d *Detector) CalculateAge(postedDate string) *int {
	posted, ok := ParseDate(postedDate)
	if !ok {
		return nil
	}
	// Unix seconds, not Duration: Sub saturates beyond ~292 years
	elapsed := d.now().Unix() - posted.Unix()
	if elapsed < 0 {
		return nil
	}
	age := int(elapsed / secondsPerDay)
	return &age
}

// IsExpired reports whether the job is older than thresholdDays. A job of
// unknown age never expires.
func (d *Detector) IsExpired(job model.Job, thresholdDays int) bool {
	age := d.CalculateAge(job.PostedDate)
	return age != nil && *age > thresholdDays
}

// MarkExpiration sets the age and expiry of every job. Inputs are not modified.
func (d *Detector) MarkExpiration(jobs []model.Job, thresholdDays int) []model.Job {
	out := make([]model.Job, len(jobs))
	for i, job := range jobs {
		c := job.Clone()
		c.AgeInDays = d.CalculateAge(job.PostedDate)
		c.IsExpired = c.AgeInDays != nil && *c.AgeInDays > thresholdDays
		out[i] = c
	}
	return out
}

// FilterExpired keeps the jobs not marked as expired, in order
func FilterExpired(jobs []model.Job) []model.Job {
	var kept []model.Job
	for _, job := range jobs {
		if !job.IsExpired {
			kept = append(kept, job)
		}
	}
	return kept
}

// FilterByAge keeps jobs of unknown age and jobs no older than maxAgeDays
func FilterByAge(jobs []model.Job, maxAgeDays int) []model.Job {
	var kept []model.Job
	for _, job := range jobs {
		if job.AgeInDays == nil || *job.AgeInDays <= maxAgeDays {
			kept = append(kept, job)
		}
	}
	return kept
}

// CountExpired returns the number of jobs marked as expired
func CountExpired(jobs []model.Job) int {
	n := 0
	for _, job := range jobs {
		if job.IsExpired {
			n++
		}
	}
	return n
}
