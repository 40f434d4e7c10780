package models

type StatsSummary struct {
	GamesPlayed      int     `json:"games_played"`
	TotalBuyin       float64 `json:"total_buyin"`
	AvgBuyinsPerGame float64 `json:"avg_buyins_per_game"`
	Profit           float64 `json:"profit"`
	ROI              float64 `json:"roi"`
}

// RoiPoint is the cumulative ROI percent at the end of a calendar day.
type RoiPoint struct {
	Date string  `json:"date"`
	ROI  float64 `json:"roi"`
}
