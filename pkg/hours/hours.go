package hours

import (
	"encoding/json"
	"strings"
	"time"
)

// Interval is a single open period within a day, "HH:MM" 24h clock.
// A close of "23:59" means open until end of day.
type Interval struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Weekly maps lower-case day names ("monday".."sunday") to open intervals.
// Days without entries are closed. This is the platform's canonical
// opening-hours shape.
type Weekly map[string][]Interval

// Parse decodes raw opening-hours metadata. Empty or null input yields a nil
// map, which every evaluator method treats as "always open" so that POIs
// without hours data are never filtered out.
func Parse(raw json.RawMessage) (Weekly, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var w Weekly
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return w, nil
}

// Evaluator answers time-sensitive questions over raw opening-hours metadata.
// All methods are pure over (metadata, now).
type Evaluator interface {
	IsOpen(raw json.RawMessage, now time.Time) bool
	IsOpeningSoon(raw json.RawMessage, now time.Time) bool
	IsClosingSoon(raw json.RawMessage, now time.Time) bool
}

// WeeklyEvaluator is the default Evaluator over the Weekly JSON format.
type WeeklyEvaluator struct {
	// Horizon bounds "soon" for opening/closing checks.
	Horizon time.Duration
}

// NewEvaluator returns a WeeklyEvaluator with the default 60 minute horizon.
func NewEvaluator() *WeeklyEvaluator {
	return &WeeklyEvaluator{Horizon: 60 * time.Minute}
}

func (e *WeeklyEvaluator) IsOpen(raw json.RawMessage, now time.Time) bool {
	w, err := Parse(raw)
	if err != nil || w == nil {
		// Unknown hours never exclude a POI.
		return true
	}
	minute := minuteOfDay(now)
	for _, iv := range w[dayName(now)] {
		open, close, ok := iv.minutes()
		if !ok {
			continue
		}
		if minute >= open && minute < close {
			return true
		}
	}
	return false
}

func (e *WeeklyEvaluator) IsOpeningSoon(raw json.RawMessage, now time.Time) bool {
	w, err := Parse(raw)
	if err != nil || w == nil {
		return false
	}
	if e.IsOpen(raw, now) {
		return false
	}
	minute := minuteOfDay(now)
	horizon := minute + int(e.horizon().Minutes())
	for _, iv := range w[dayName(now)] {
		open, _, ok := iv.minutes()
		if !ok {
			continue
		}
		if open > minute && open <= horizon {
			return true
		}
	}
	return false
}

func (e *WeeklyEvaluator) IsClosingSoon(raw json.RawMessage, now time.Time) bool {
	w, err := Parse(raw)
	if err != nil || w == nil {
		return false
	}
	minute := minuteOfDay(now)
	horizon := minute + int(e.horizon().Minutes())
	for _, iv := range w[dayName(now)] {
		open, close, ok := iv.minutes()
		if !ok {
			continue
		}
		if minute >= open && minute < close && close <= horizon {
			// End-of-day close is not "closing soon" near midnight wrap.
			if close >= endOfDayMinute {
				return false
			}
			return true
		}
	}
	return false
}

func (e *WeeklyEvaluator) horizon() time.Duration {
	if e.Horizon <= 0 {
		return 60 * time.Minute
	}
	return e.Horizon
}

// endOfDayMinute marks the "23:59" sentinel close.
const endOfDayMinute = 23*60 + 59

// minutes parses an interval into minute-of-day bounds.
func (iv Interval) minutes() (int, int, bool) {
	open, ok := parseClock(iv.Open)
	if !ok {
		return 0, 0, false
	}
	close, ok := parseClock(iv.Close)
	if !ok {
		return 0, 0, false
	}
	if close == endOfDayMinute {
		close = 24 * 60
	}
	if close <= open {
		return 0, 0, false
	}
	return open, close, true
}

func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func minuteOfDay(now time.Time) int {
	return now.Hour()*60 + now.Minute()
}

func dayName(now time.Time) string {
	return strings.ToLower(now.Weekday().String())
}
