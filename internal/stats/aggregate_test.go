package stats_test

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pokerdash/internal/models"
	"github.com/vytor/pokerdash/internal/stats"
)

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := stats.ParseTimestamp(s, time.UTC)
	require.NoError(t, err)
	return v
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := stats.ParseDate(s, time.UTC)
	require.NoError(t, err)
	return v
}

func TestComputeStats_SingleGameProfit(t *testing.T) {
	actions := []models.Action{
		{GameID: "1", Kind: models.ActionBuyin, Amount: 100, Timestamp: ts(t, "2024-01-01T10:00:00")},
		{GameID: "1", Kind: models.ActionQuit, Amount: 150, Timestamp: ts(t, "2024-01-01T12:00:00")},
	}

	got := stats.ComputeStats(actions, day(t, "2024-01-01"), day(t, "2024-01-01"))

	assert.Equal(t, models.StatsSummary{
		GamesPlayed:      1,
		TotalBuyin:       100,
		AvgBuyinsPerGame: 1,
		Profit:           50,
		ROI:              50,
	}, got)
}

func TestComputeStats_RebuysInOneGame(t *testing.T) {
	actions := []models.Action{
		{GameID: "7", Kind: models.ActionBuyin, Amount: 50, Timestamp: ts(t, "2024-03-02T18:00:00")},
		{GameID: "7", Kind: models.ActionBuyin, Amount: 50, Timestamp: ts(t, "2024-03-02T19:00:00")},
		{GameID: "7", Kind: models.ActionQuit, Amount: 80, Timestamp: ts(t, "2024-03-02T23:00:00")},
	}

	got := stats.ComputeStats(actions, day(t, "2024-03-01"), day(t, "2024-03-31"))

	assert.Equal(t, 1, got.GamesPlayed)
	assert.Equal(t, 100.0, got.TotalBuyin)
	assert.Equal(t, 2.0, got.AvgBuyinsPerGame)
	assert.Equal(t, -20.0, got.Profit)
	assert.Equal(t, -20.0, got.ROI)
}

func TestComputeStats_EmptyInput(t *testing.T) {
	got := stats.ComputeStats(nil, day(t, "2024-01-01"), day(t, "2024-12-31"))
	assert.Equal(t, models.StatsSummary{}, got)
}

func TestComputeStats_NoBuyinMeansZeroROI(t *testing.T) {
	actions := []models.Action{
		{GameID: "1", Kind: models.ActionQuit, Amount: 40, Timestamp: ts(t, "2024-05-05T10:00:00")},
		{GameID: "2", Kind: "seat", Timestamp: ts(t, "2024-05-06T10:00:00")},
	}

	got := stats.ComputeStats(actions, day(t, "2024-05-01"), day(t, "2024-05-31"))

	assert.Equal(t, 0.0, got.ROI)
	assert.False(t, math.IsNaN(got.ROI) || math.IsInf(got.ROI, 0))
	assert.Equal(t, 40.0, got.Profit)
	assert.Equal(t, 0.0, got.AvgBuyinsPerGame)
}

func TestComputeStats_UnknownKindsStillCountAsGames(t *testing.T) {
	actions := []models.Action{
		{GameID: "1", Kind: models.ActionBuyin, Amount: 10, Timestamp: ts(t, "2024-05-05T10:00:00")},
		{GameID: "2", Kind: "join", Amount: 999, Timestamp: ts(t, "2024-05-05T11:00:00")},
		{GameID: "3", Kind: "", Timestamp: ts(t, "2024-05-05T12:00:00")},
	}

	got := stats.ComputeStats(actions, day(t, "2024-05-05"), day(t, "2024-05-05"))

	assert.Equal(t, 3, got.GamesPlayed)
	assert.Equal(t, 10.0, got.TotalBuyin)
	assert.InDelta(t, 1.0/3.0, got.AvgBuyinsPerGame, 1e-9)
	assert.Equal(t, -10.0, got.Profit)
}

func TestComputeStats_RangeBoundsAreInclusiveDays(t *testing.T) {
	actions := []models.Action{
		{GameID: "before", Kind: models.ActionBuyin, Amount: 1, Timestamp: ts(t, "2024-01-31T23:59:59")},
		{GameID: "first", Kind: models.ActionBuyin, Amount: 2, Timestamp: ts(t, "2024-02-01T00:00:00")},
		{GameID: "last", Kind: models.ActionBuyin, Amount: 4, Timestamp: ts(t, "2024-02-29T23:59:59")},
		{GameID: "after", Kind: models.ActionBuyin, Amount: 8, Timestamp: ts(t, "2024-03-01T00:00:00")},
	}

	got := stats.ComputeStats(actions, day(t, "2024-02-01"), day(t, "2024-02-29"))

	assert.Equal(t, 2, got.GamesPlayed)
	assert.Equal(t, 6.0, got.TotalBuyin)
}

func TestComputeStats_ROIDividesBeforeScaling(t *testing.T) {
	actions := []models.Action{
		{GameID: "1", Kind: models.ActionBuyin, Amount: 300, Timestamp: ts(t, "2024-07-01T10:00:00")},
		{GameID: "1", Kind: models.ActionQuit, Amount: 400, Timestamp: ts(t, "2024-07-01T12:00:00")},
	}
	got := stats.ComputeStats(actions, day(t, "2024-07-01"), day(t, "2024-07-01"))

	// profit / buyin * 100, not profit * 100 / buyin (33.333333333333336)
	assert.Equal(t, 33.33333333333333, got.ROI)
}

func TestComputeStats_InvertedRangeIsEmpty(t *testing.T) {
	actions := []models.Action{
		{GameID: "1", Kind: models.ActionBuyin, Amount: 5, Timestamp: ts(t, "2024-06-10T10:00:00")},
	}
	got := stats.ComputeStats(actions, day(t, "2024-06-11"), day(t, "2024-06-09"))
	assert.Equal(t, models.StatsSummary{}, got)
}

func TestComputeStats_IdempotentAndDoesNotMutate(t *testing.T) {
	actions := []models.Action{
		{GameID: "2", Kind: models.ActionQuit, Amount: 30, Timestamp: ts(t, "2024-01-02T10:00:00")},
		{GameID: "1", Kind: models.ActionBuyin, Amount: 20, Timestamp: ts(t, "2024-01-01T10:00:00")},
		{GameID: "2", Kind: models.ActionBuyin, Amount: 20, Timestamp: ts(t, "2024-01-02T09:00:00")},
	}
	original := slices.Clone(actions)

	first := stats.ComputeStats(actions, day(t, "2024-01-01"), day(t, "2024-01-31"))
	second := stats.ComputeStats(actions, day(t, "2024-01-01"), day(t, "2024-01-31"))

	assert.Equal(t, first, second)
	assert.Equal(t, original, actions)
}

func TestComputeRoiHistory_Empty(t *testing.T) {
	assert.Empty(t, stats.ComputeRoiHistory(nil))
	assert.Empty(t, stats.ComputeRoiHistory([]models.Action{}))
}

func TestComputeRoiHistory_TwoDaysInterleaved(t *testing.T) {
	actions := []models.Action{
		{GameID: "2", Kind: models.ActionQuit, Amount: 60, Timestamp: ts(t, "2024-04-02T22:00:00")},
		{GameID: "1", Kind: models.ActionBuyin, Amount: 100, Timestamp: ts(t, "2024-04-01T18:00:00")},
		{GameID: "2", Kind: models.ActionBuyin, Amount: 100, Timestamp: ts(t, "2024-04-02T18:00:00")},
		{GameID: "1", Kind: models.ActionQuit, Amount: 200, Timestamp: ts(t, "2024-04-01T21:00:00")},
	}
	original := slices.Clone(actions)

	got := stats.ComputeRoiHistory(actions)

	require.Len(t, got, 2)
	assert.Equal(t, models.RoiPoint{Date: "2024-04-01", ROI: 100}, got[0])
	// cumulative buyin 200, quit 260
	assert.Equal(t, models.RoiPoint{Date: "2024-04-02", ROI: 30}, got[1])
	assert.Equal(t, original, actions)
}

func TestComputeRoiHistory_DayValueIsLastActionOfDay(t *testing.T) {
	actions := []models.Action{
		{GameID: "1", Kind: models.ActionBuyin, Amount: 100, Timestamp: ts(t, "2023-01-01T10:00:00")},
		{GameID: "1", Kind: models.ActionQuit, Amount: 150, Timestamp: ts(t, "2023-01-01T11:00:00")},
		{GameID: "2", Kind: models.ActionBuyin, Amount: 200, Timestamp: ts(t, "2023-01-02T10:00:00")},
		{GameID: "2", Kind: models.ActionQuit, Amount: 100, Timestamp: ts(t, "2023-01-02T11:00:00")},
		{GameID: "3", Kind: models.ActionBuyin, Amount: 100, Timestamp: ts(t, "2023-01-03T10:00:00")},
		{GameID: "3", Kind: models.ActionQuit, Amount: 300, Timestamp: ts(t, "2023-01-03T11:00:00")},
	}

	got := stats.ComputeRoiHistory(actions)

	assert.Equal(t, []models.RoiPoint{
		{Date: "2023-01-01", ROI: 50},
		{Date: "2023-01-02", ROI: -16.7},
		{Date: "2023-01-03", ROI: 37.5},
	}, got)
}

func TestComputeRoiHistory_DatesStrictlyAscending(t *testing.T) {
	var actions []models.Action
	base := ts(t, "2024-01-01T12:00:00")
	for _, offset := range []int{40, 3, 17, 3, 0, 365, 40, 12} {
		actions = append(actions, models.Action{
			GameID:    "g",
			Kind:      models.ActionBuyin,
			Amount:    10,
			Timestamp: base.AddDate(0, 0, offset),
		})
	}

	got := stats.ComputeRoiHistory(actions)

	require.Len(t, got, 6)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Date, got[i].Date)
	}
}

func TestComputeRoiHistory_RoundsHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		name string
		quit float64
		want float64
	}{
		{name: "positive tie", quit: 449, want: 12.3},
		{name: "negative tie", quit: 351, want: -12.3},
		{name: "below tie", quit: 448.8, want: 12.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := []models.Action{
				{GameID: "1", Kind: models.ActionBuyin, Amount: 400, Timestamp: ts(t, "2024-02-02T10:00:00")},
				{GameID: "1", Kind: models.ActionQuit, Amount: tt.quit, Timestamp: ts(t, "2024-02-02T11:00:00")},
			}
			got := stats.ComputeRoiHistory(actions)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].ROI)
		})
	}
}

func TestComputeRoiHistory_QuitBeforeAnyBuyin(t *testing.T) {
	actions := []models.Action{
		{GameID: "1", Kind: models.ActionQuit, Amount: 50, Timestamp: ts(t, "2024-02-01T10:00:00")},
	}
	got := stats.ComputeRoiHistory(actions)
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].ROI)
}

func TestRoundTenth(t *testing.T) {
	assert.Equal(t, 0.0, stats.RoundTenth(-0.04))
	assert.False(t, math.Signbit(stats.RoundTenth(-0.04)))
	assert.Equal(t, 0.5, stats.RoundTenth(0.45))
	assert.Equal(t, -2.5, stats.RoundTenth(-2.45))
}
