package frequency

import (
	"errors"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestPolicyAgeTable checks every policy against notifications shown
// two minutes, hours, days, weeks, months and years ago.
func TestPolicyAgeTable(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

	ages := []struct {
		name string
		ago  time.Duration
		// expected results in Policies order: always, hourly, daily, weekly, monthly, yearly, never
		want [7]bool
	}{
		{"two minutes", 140 * time.Second, [7]bool{true, false, false, false, false, false, false}},
		{"two hours", 8000 * time.Second, [7]bool{true, true, false, false, false, false, false}},
		{"two days", 2 * day, [7]bool{true, true, true, false, false, false, false}},
		{"two weeks", 14 * day, [7]bool{true, true, true, true, false, false, false}},
		{"two months", 70 * day, [7]bool{true, true, true, true, true, false, false}},
		{"two years", 800 * day, [7]bool{true, true, true, true, true, true, false}},
	}

	for _, age := range ages {
		t.Run(age.name, func(t *testing.T) {
			last := now.Add(-age.ago)
			for i, p := range Policies {
				if got := p.Allows(now, last); got != age.want[i] {
					t.Errorf("%s.Allows(%s ago) = %v, want %v", p, age.name, got, age.want[i])
				}
			}
		})
	}
}

func TestPolicyBoundaries(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		policy   Policy
		boundary time.Duration
	}{
		{Hourly, time.Hour},
		{Daily, day},
		{Weekly, 7 * day},
		{Monthly, 30 * day},
		{Yearly, 365 * day},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			if tt.policy.Allows(now, now.Add(-tt.boundary+time.Second)) {
				t.Errorf("%s should not allow one second before its boundary", tt.policy)
			}
			if !tt.policy.Allows(now, now.Add(-tt.boundary)) {
				t.Errorf("%s should allow exactly at its boundary", tt.policy)
			}
		})
	}
}

func TestPolicyFutureTimestampNeverCountsAsElapsed(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	last := now.Add(90 * time.Minute)

	for _, p := range []Policy{Hourly, Daily, Weekly, Monthly, Yearly, Never} {
		if p.Allows(now, last) {
			t.Errorf("%s should not allow a notification recorded in the future", p)
		}
	}
	if !Always.Allows(now, last) {
		t.Error("always should allow regardless of the stored time")
	}
}

func TestPolicyComparesAcrossZones(t *testing.T) {
	last := time.Date(2026, 3, 28, 23, 0, 0, 0, time.UTC)
	berlin := time.FixedZone("CEST", 2*60*60)
	// 25 hours later, rendered in another offset
	now := last.Add(25 * time.Hour).In(berlin)

	if !Daily.Allows(now, last) {
		t.Error("daily should allow after 25 hours regardless of zone")
	}
	if Weekly.Allows(now, last) {
		t.Error("weekly should not allow after 25 hours")
	}
}

func TestElapsedDays(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int64
	}{
		{0, 0},
		{23 * time.Hour, 0},
		{24 * time.Hour, 1},
		{47*time.Hour + 59*time.Minute, 1},
		{-time.Minute, -1},
		{-24 * time.Hour, -1},
		{-25 * time.Hour, -2},
	}

	for _, tt := range tests {
		if got := ElapsedDays(tt.d); got != tt.want {
			t.Errorf("ElapsedDays(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		want    Policy
		wantErr bool
	}{
		{"always", Always, false},
		{"never", Never, false},
		{"hourly", Hourly, false},
		{"daily", Daily, false},
		{"weekly", Weekly, false},
		{"monthly", Monthly, false},
		{"yearly", Yearly, false},
		{"  Weekly ", Weekly, false},
		{"none", Always, false},
		{"hour", Hourly, false},
		{"day", Daily, false},
		{"week", Weekly, false},
		{"month", Monthly, false},
		{"year", Yearly, false},
		{"inf", Never, false},
		{"", "", true},
		{"fortnightly", "", true},
		{"1h", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPolicy) {
					t.Errorf("Parse(%q) error = %v, want ErrUnknownPolicy", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	want := "always, hourly, daily, weekly, monthly, yearly, never"
	if got := Names(); got != want {
		t.Errorf("Names() = %q, want %q", got, want)
	}
}

func TestPolicyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	policyGen := gen.OneConstOf(Always, Hourly, Daily, Weekly, Monthly, Yearly, Never)
	// Up to roughly three years in seconds
	ageGen := gen.Int64Range(0, 3*365*24*60*60)

	properties.Property("once a policy allows, every older timestamp is allowed too", prop.ForAll(
		func(p Policy, ageSeconds, extraSeconds int64) bool {
			last := now.Add(-time.Duration(ageSeconds) * time.Second)
			older := last.Add(-time.Duration(extraSeconds) * time.Second)
			return !p.Allows(now, last) || p.Allows(now, older)
		},
		policyGen,
		ageGen,
		ageGen,
	))

	properties.Property("a less frequent policy never allows what a more frequent one refuses", prop.ForAll(
		func(i, j int, ageSeconds int64) bool {
			if i > j {
				i, j = j, i
			}
			last := now.Add(-time.Duration(ageSeconds) * time.Second)
			return !Policies[j].Allows(now, last) || Policies[i].Allows(now, last)
		},
		gen.IntRange(0, len(Policies)-1),
		gen.IntRange(0, len(Policies)-1),
		ageGen,
	))

	properties.Property("every canonical name parses to itself", prop.ForAll(
		func(p Policy) bool {
			parsed, err := Parse(string(p))
			return err == nil && parsed == p
		},
		policyGen,
	))

	properties.TestingRun(t)
}
