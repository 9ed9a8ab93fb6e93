// Package frequency decides how often a release notification may be shown.
package frequency

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownPolicy is returned when a frequency name is not recognised
var ErrUnknownPolicy = errors.New("unknown notification frequency")

// Policy is a named rule for the minimum time between notifications
type Policy string

const (
	Always  Policy = "always"
	Never   Policy = "never"
	Hourly  Policy = "hourly"
	Daily   Policy = "daily"
	Weekly  Policy = "weekly"
	Monthly Policy = "monthly"
	Yearly  Policy = "yearly"
)

// Default is used when no valid frequency has been stored
const Default = Daily

const day = 24 * time.Hour

// Policies lists the canonical policies from most to least frequent
var Policies = []Policy{Always, Hourly, Daily, Weekly, Monthly, Yearly, Never}

// legacyNames maps the older naming scheme onto canonical policies
var legacyNames = map[string]Policy{
	"none":  Always,
	"hour":  Hourly,
	"day":   Daily,
	"week":  Weekly,
	"month": Monthly,
	"year":  Yearly,
	"inf":   Never,
}

// minDays is the number of whole elapsed days required by day-based policies
var minDays = map[Policy]int64{
	Daily:   1,
	Weekly:  7,
	Monthly: 30,
	Yearly:  365,
}

// Parse converts a frequency name to a canonical Policy.
// Legacy names are accepted; matching ignores case and surrounding space.
func Parse(name string) (Policy, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))

	p := Policy(normalized)
	if p.Valid() {
		return p, nil
	}
	if legacy, ok := legacyNames[normalized]; ok {
		return legacy, nil
	}

	return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownPolicy, name, Names())
}

// Names returns the canonical policy names as a comma separated list
func Names() string {
	names := make([]string, len(Policies))
	for i, p := range Policies {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// Valid reports whether p is a canonical policy
func (p Policy) Valid() bool {
	switch p {
	case Always, Never, Hourly, Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

func (p Policy) String() string {
	return string(p)
}

// Allows reports whether enough time has passed since last to notify again at now
func (p Policy) Allows(now, last time.Time) bool {
	elapsed := now.Sub(last)

	switch p {
	case Always:
		return true
	case Never:
		return false
	case Hourly:
		return elapsed >= time.Hour
	}

	required, ok := minDays[p]
	if !ok {
		return false
	}
	return ElapsedDays(elapsed) >= required
}

// ElapsedDays returns the number of whole days in d, rounding towards
// negative infinity so a timestamp in the future never counts as a day.
func ElapsedDays(d time.Duration) int64 {
	days := int64(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}
