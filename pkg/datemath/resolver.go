package datemath

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISODateLayout is the calendar-date output layout for resolved expressions.
const ISODateLayout = "2006-01-02"

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsAbsolute reports whether s is already a plain YYYY-MM-DD calendar date.
func IsAbsolute(s string) bool {
	return isoDateRe.MatchString(s)
}

// Resolver converts relative due-date expressions ("next friday", "eom",
// "in 2 weeks") into absolute calendar dates anchored on a reference date.
type Resolver struct {
	rules []rule
}

// rule pairs a pattern with its resolution handler. Rules are evaluated in
// order and the first match wins.
type rule struct {
	re      *regexp.Regexp
	resolve func(m []string, ref time.Time) (time.Time, bool)
}

const (
	weekdayAlt = `(monday|tuesday|wednesday|thursday|friday|saturday|sunday)`
	monthAlt   = `(january|february|march|april|may|june|july|august|september|october|november|december)`
)

// NewResolver builds a Resolver with the fixed rule table.
func NewResolver() *Resolver {
	return &Resolver{rules: []rule{
		{regexp.MustCompile(`^tomorrow$`), func(_ []string, ref time.Time) (time.Time, bool) {
			return ref.AddDate(0, 0, 1), true
		}},
		{regexp.MustCompile(`^next ` + weekdayAlt + `$`), resolveWeekday},
		{regexp.MustCompile(`^this ` + weekdayAlt + `$`), resolveWeekday},
		{regexp.MustCompile(`^(?:end of week|eow)$`), func(_ []string, ref time.Time) (time.Time, bool) {
			return nextWeekday(ref, time.Friday), true
		}},
		{regexp.MustCompile(`^(?:end of month|eom)$`), func(_ []string, ref time.Time) (time.Time, bool) {
			return endOfMonth(ref.Year(), ref.Month()), true
		}},
		{regexp.MustCompile(`^(?:end of quarter|eoq)$`), func(_ []string, ref time.Time) (time.Time, bool) {
			q := (int(ref.Month())-1)/3 + 1
			return endOfQuarter(ref.Year(), q), true
		}},
		{regexp.MustCompile(`^in (\d+) days?$`), func(m []string, ref time.Time) (time.Time, bool) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return time.Time{}, false
			}
			return ref.AddDate(0, 0, n), true
		}},
		{regexp.MustCompile(`^in (\d+) weeks?$`), func(m []string, ref time.Time) (time.Time, bool) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return time.Time{}, false
			}
			return ref.AddDate(0, 0, n*7), true
		}},
		{regexp.MustCompile(`^in a week$`), func(_ []string, ref time.Time) (time.Time, bool) {
			return ref.AddDate(0, 0, 7), true
		}},
		{regexp.MustCompile(`^in two weeks$`), func(_ []string, ref time.Time) (time.Time, bool) {
			return ref.AddDate(0, 0, 14), true
		}},
		{regexp.MustCompile(`^next week$`), func(_ []string, ref time.Time) (time.Time, bool) {
			return ref.AddDate(0, 0, 7), true
		}},
		{regexp.MustCompile(`^q([1-4])$`), func(m []string, ref time.Time) (time.Time, bool) {
			q, _ := strconv.Atoi(m[1])
			year := ref.Year()
			// A quarter whose end month already passed rolls to next year.
			if time.Month(q*3) < ref.Month() {
				year++
			}
			return endOfQuarter(year, q), true
		}},
		{regexp.MustCompile(`^(?:asap|immediately|right away|urgent)$`), func(_ []string, ref time.Time) (time.Time, bool) {
			return ref.AddDate(0, 0, 1), true
		}},
		{regexp.MustCompile(`^by ` + weekdayAlt + `$`), resolveWeekday},
		{regexp.MustCompile(`^(?:by |in )?` + monthAlt + `$`), func(m []string, ref time.Time) (time.Time, bool) {
			month, ok := monthsByName[m[1]]
			if !ok {
				return time.Time{}, false
			}
			year := ref.Year()
			if month < ref.Month() {
				year++
			}
			return endOfMonth(year, month), true
		}},
	}}
}

// Resolve maps a relative date expression to a YYYY-MM-DD date anchored on
// ref. The second return value is false when no rule matches; callers must
// treat that as "no due date", not as a pass-through of the input.
func (r *Resolver) Resolve(expression string, ref time.Time) (string, bool) {
	expr := strings.ToLower(strings.TrimSpace(expression))
	if expr == "" {
		return "", false
	}

	for _, rl := range r.rules {
		m := rl.re.FindStringSubmatch(expr)
		if m == nil {
			continue
		}
		t, ok := rl.resolve(m, ref)
		if !ok {
			return "", false
		}
		return t.Format(ISODateLayout), true
	}

	return "", false
}

var weekdaysByName = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var monthsByName = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

func resolveWeekday(m []string, ref time.Time) (time.Time, bool) {
	wd, ok := weekdaysByName[m[1]]
	if !ok {
		return time.Time{}, false
	}
	return nextWeekday(ref, wd), true
}

// nextWeekday returns the strictly future occurrence of wd: a reference date
// that already falls on wd advances a full week.
func nextWeekday(ref time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(ref.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return ref.AddDate(0, 0, days)
}

func endOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

func endOfQuarter(year, quarter int) time.Time {
	return endOfMonth(year, time.Month(quarter*3))
}
