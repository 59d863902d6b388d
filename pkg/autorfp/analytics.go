package autorfp

import (
	"sort"
	"time"
)

type StageSample struct {
	Stage       string
	StartedAt   time.Time
	CompletedAt *time.Time
}

type StageStats struct {
	Stage        string  `json:"stage"`
	Completed    int     `json:"completed"`
	InProgress   int     `json:"inProgress"`
	AverageHours float64 `json:"averageHours"`
	MinHours     float64 `json:"minHours"`
	MaxHours     float64 `json:"maxHours"`
	TotalHours   float64 `json:"totalHours"`
}

// StageDurations aggregates completed stage rows per stage name, sorted by name. Rows
// still in progress are only counted.
func StageDurations(samples []StageSample) []StageStats {
	byStage := map[string]*StageStats{}

	for _, s := range samples {
		stats, ok := byStage[s.Stage]
		if !ok {
			stats = &StageStats{Stage: s.Stage}
			byStage[s.Stage] = stats
		}

		if s.CompletedAt == nil {
			stats.InProgress++
			continue
		}

		hours := s.CompletedAt.Sub(s.StartedAt).Hours()
		if hours < 0 {
			hours = 0
		}
		if stats.Completed == 0 || hours < stats.MinHours {
			stats.MinHours = hours
		}
		if hours > stats.MaxHours {
			stats.MaxHours = hours
		}
		stats.TotalHours += hours
		stats.Completed++
	}

	out := make([]StageStats, 0, len(byStage))
	for _, stats := range byStage {
		if stats.Completed > 0 {
			stats.AverageHours = stats.TotalHours / float64(stats.Completed)
		}
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stage < out[j].Stage })

	return out
}

type ResponseSummary struct {
	Total                int64            `json:"total"`
	ByStatus             map[string]int64 `json:"byStatus"`
	AcceptanceRate       float64          `json:"acceptanceRate"`
	AverageResponseHours float64          `json:"averageResponseHours"`
}

// SummarizeResponses computes the acceptance rate over answered invitations and the mean
// time to answer.
func SummarizeResponses(counts map[string]int64, responseTimes []time.Duration) ResponseSummary {
	out := ResponseSummary{ByStatus: map[string]int64{}}
	for status, n := range counts {
		out.ByStatus[status] = n
		out.Total += n
	}

	answered := counts["accepted"] + counts["declined"]
	if answered > 0 {
		out.AcceptanceRate = float64(counts["accepted"]) / float64(answered)
	}

	if len(responseTimes) > 0 {
		var total time.Duration
		for _, d := range responseTimes {
			total += d
		}
		out.AverageResponseHours = (total / time.Duration(len(responseTimes))).Hours()
	}

	return out
}
