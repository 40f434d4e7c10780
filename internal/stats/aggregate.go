// Package stats derives poker session metrics from raw action logs.
// Every function here is pure: inputs are never mutated and nothing is cached.
package stats

import (
	"math"
	"slices"
	"time"

	"github.com/vytor/pokerdash/internal/models"
)

// DateLayout is the calendar-day format used for ranges and ROI points.
const DateLayout = "2006-01-02"

// ComputeStats summarises the actions whose timestamp falls inside the
// inclusive day range [start 00:00:00, end 23:59:59]. start and end are
// interpreted as calendar days in their own locations.
func ComputeStats(actions []models.Action, start, end time.Time) models.StatsSummary {
	from := StartOfDay(start)
	to := EndOfDay(end)

	games := make(map[string]struct{})
	var totalBuyin, totalQuit float64
	buyinCount := 0

	for _, a := range actions {
		if a.Timestamp.Before(from) || a.Timestamp.After(to) {
			continue
		}
		games[a.GameID] = struct{}{}
		switch a.Kind {
		case models.ActionBuyin:
			totalBuyin += a.Amount
			buyinCount++
		case models.ActionQuit:
			totalQuit += a.Amount
		}
	}

	summary := models.StatsSummary{
		GamesPlayed: len(games),
		TotalBuyin:  totalBuyin,
		Profit:      totalQuit - totalBuyin,
	}
	summary.ROI = roi(totalQuit, totalBuyin)
	if summary.GamesPlayed > 0 {
		summary.AvgBuyinsPerGame = float64(buyinCount) / float64(summary.GamesPlayed)
	}
	return summary
}

// ComputeRoiHistory returns one cumulative ROI point per calendar day that has
// at least one action, in ascending date order. The value for a day reflects
// the running totals after the last action of that day.
func ComputeRoiHistory(actions []models.Action) []models.RoiPoint {
	if len(actions) == 0 {
		return []models.RoiPoint{}
	}

	sorted := slices.Clone(actions)
	slices.SortStableFunc(sorted, func(a, b models.Action) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	daily := make(map[string]float64)
	var cumBuyin, cumQuit float64
	for _, a := range sorted {
		switch a.Kind {
		case models.ActionBuyin:
			cumBuyin += a.Amount
		case models.ActionQuit:
			cumQuit += a.Amount
		}
		daily[FormatDate(a.Timestamp)] = RoundTenth(roi(cumQuit, cumBuyin))
	}

	days := make([]string, 0, len(daily))
	for d := range daily {
		days = append(days, d)
	}
	slices.Sort(days)

	points := make([]models.RoiPoint, 0, len(days))
	for _, d := range days {
		points = append(points, models.RoiPoint{Date: d, ROI: daily[d]})
	}
	return points
}

// RoundTenth rounds to one decimal place, ties away from zero.
func RoundTenth(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		// collapse -0 so it never renders as "-0"
		return 0
	}
	return r
}

func roi(quit, buyin float64) float64 {
	if buyin <= 0 {
		return 0
	}
	return (quit - buyin) / buyin * 100
}
