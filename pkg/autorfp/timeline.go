package autorfp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Phase struct {
	Name          string `json:"name"`
	DurationWeeks int    `json:"durationWeeks"`
}

type TimelinePhase struct {
	Name          string    `json:"name"`
	DurationWeeks int       `json:"durationWeeks"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
}

type Timeline struct {
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	TotalWeeks int             `json:"totalWeeks"`
	Phases     []TimelinePhase `json:"phases"`
}

// BuildTimeline lays phases end to end from start. A phase without a positive duration
// takes one week.
func BuildTimeline(phases []Phase, start time.Time) Timeline {
	timeline := Timeline{Start: start, End: start, Phases: make([]TimelinePhase, 0, len(phases))}

	cursor := start
	for _, p := range phases {
		weeks := p.DurationWeeks
		if weeks <= 0 {
			weeks = 1
		}
		end := cursor.AddDate(0, 0, 7*weeks)
		timeline.Phases = append(timeline.Phases, TimelinePhase{
			Name:          p.Name,
			DurationWeeks: weeks,
			Start:         cursor,
			End:           end,
		})
		timeline.TotalWeeks += weeks
		cursor = end
	}
	timeline.End = cursor

	return timeline
}

var weeksPattern = regexp.MustCompile(`(?i)(\d+)\s*(week|wk|month|day)?`)

// PhasesFromContent reads phases out of a generated projectTimeline value. It accepts a
// list of phases or an object with a "phases" (or "milestones") list.
func PhasesFromContent(v any) []Phase {
	var items []any
	switch val := v.(type) {
	case []any:
		items = val
	case map[string]any:
		for _, key := range []string{"phases", "milestones", "stages"} {
			if list, ok := val[key].([]any); ok {
				items = list
				break
			}
		}
	}

	phases := make([]Phase, 0, len(items))
	for i, item := range items {
		switch it := item.(type) {
		case map[string]any:
			phases = append(phases, Phase{
				Name:          firstString(it, fmt.Sprintf("Phase %d", i+1), "name", "phase", "title"),
				DurationWeeks: durationWeeks(it),
			})
		case string:
			phases = append(phases, Phase{Name: it, DurationWeeks: 1})
		}
	}
	return phases
}

func firstString(m map[string]any, fallback string, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

func durationWeeks(m map[string]any) int {
	for _, k := range []string{"durationWeeks", "weeks", "duration"} {
		switch v := m[k].(type) {
		case float64:
			return int(v)
		case string:
			if weeks := parseWeeks(v); weeks > 0 {
				return weeks
			}
		}
	}
	return 1
}

func parseWeeks(s string) int {
	match := weeksPattern.FindStringSubmatch(s)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}

	switch strings.ToLower(match[2]) {
	case "month":
		return n * 4
	case "day":
		return (n + 6) / 7
	default:
		return n
	}
}
