// Package dashboard holds the view models behind the stats table and the ROI
// chart. State changes only through named transitions; derivations are pure
// functions of the current state.
package dashboard

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/vytor/pokerdash/internal/models"
	"github.com/vytor/pokerdash/internal/stats"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField names a sortable table column.
type SortField string

const (
	SortUsername         SortField = "username"
	SortGamesPlayed      SortField = "games_played"
	SortTotalBuyin       SortField = "total_buyin"
	SortAvgBuyinsPerGame SortField = "avg_buyins_per_game"
	SortProfit           SortField = "profit"
	SortROI              SortField = "roi"
)

// SortFields lists the table columns in display order.
var SortFields = []SortField{
	SortUsername, SortGamesPlayed, SortTotalBuyin, SortAvgBuyinsPerGame, SortProfit, SortROI,
}

// ParseSortField validates a column name.
func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.TrimSpace(s))
	if slices.Contains(SortFields, f) {
		return f, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// SmallSampleThreshold is the minimum games played kept when small samples are hidden.
const SmallSampleThreshold = 3

// TableState is a snapshot of the table's user-controlled state.
type TableState struct {
	Search          string
	SortField       SortField
	SortAsc         bool
	HideSmallSample bool
	Start           time.Time
	End             time.Time
}

// Row is one derived table line.
type Row struct {
	User  models.User
	Stats models.StatsSummary
}

// settings are shared by both view models.
type settings struct {
	now  func() time.Time
	loc  *time.Location
	lang language.Tag
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now, loc: time.Local, lang: language.English}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures a view model.
type Option func(*settings)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithLocation sets the zone calendar days are taken in.
func WithLocation(loc *time.Location) Option {
	return func(s *settings) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLanguage sets the collation used for username sorting.
func WithLanguage(tag language.Tag) Option {
	return func(s *settings) { s.lang = tag }
}

// TableModel is the state machine behind the stats table.
type TableModel struct {
	settings
	users []models.User
	state TableState
}

// NewTableModel builds a table over users with the default state: sorted by
// ROI descending, small samples hidden, range set to the current year.
func NewTableModel(users []models.User, opts ...Option) *TableModel {
	m := &TableModel{
		settings: newSettings(opts),
		users:    users,
		state: TableState{
			SortField:       SortROI,
			HideSmallSample: true,
		},
	}
	m.SetThisYear()
	return m
}

// State returns a copy of the current state.
func (m *TableModel) State() TableState {
	return m.state
}

// Users returns the users the table was built over.
func (m *TableModel) Users() []models.User {
	return m.users
}

func (m *TableModel) today() time.Time {
	return stats.StartOfDay(m.now().In(m.loc))
}

// SetSearch sets the free-text filter.
func (m *TableModel) SetSearch(q string) {
	m.state.Search = q
}

// SetSort flips the direction when field is already active, otherwise
// switches to field in descending order.
func (m *TableModel) SetSort(field SortField) {
	m.state = m.state.nextSort(field)
}

func (s TableState) nextSort(field SortField) TableState {
	if s.SortField == field {
		s.SortAsc = !s.SortAsc
	} else {
		s.SortField = field
		s.SortAsc = false
	}
	return s
}

// NextSort reports the state a SetSort(field) would produce, without applying it.
func (m *TableModel) NextSort(field SortField) TableState {
	return m.state.nextSort(field)
}

// SetSortDirection sets field and direction explicitly.
func (m *TableModel) SetSortDirection(field SortField, asc bool) {
	m.state.SortField = field
	m.state.SortAsc = asc
}

// SetHideSmallSample toggles the small-sample filter.
func (m *TableModel) SetHideSmallSample(hide bool) {
	m.state.HideSmallSample = hide
}

// SetDateRange sets the inclusive calendar-day range. Both days are read in
// the table's location.
func (m *TableModel) SetDateRange(start, end time.Time) {
	m.state.Start = stats.StartOfDay(start.In(m.loc))
	m.state.End = stats.StartOfDay(end.In(m.loc))
}

// SetAllTime spans from the earliest action of any user (filtered or not) to today.
func (m *TableModel) SetAllTime() {
	today := m.today()
	start := today
	if earliest, ok := models.EarliestAction(m.users); ok && earliest.Before(today) {
		start = earliest
	}
	m.SetDateRange(start, today)
}

// SetThisYear spans from January 1 of the current year to today.
func (m *TableModel) SetThisYear() {
	today := m.today()
	m.SetDateRange(time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, m.loc), today)
}

// FilteredAndSorted derives the displayed rows from the current state.
func (m *TableModel) FilteredAndSorted() []Row {
	st := m.state
	search := strings.ToLower(st.Search)

	rows := make([]Row, 0, len(m.users))
	for _, u := range m.users {
		summary := stats.ComputeStats(u.Actions, st.Start, st.End)

		id := strconv.FormatInt(u.UserID, 10)
		nameMatches := strings.Contains(strings.ToLower(u.Username), search) ||
			strings.Contains(id, st.Search)
		sampleOK := !st.HideSmallSample || summary.GamesPlayed >= SmallSampleThreshold
		if nameMatches && sampleOK {
			rows = append(rows, Row{User: u, Stats: summary})
		}
	}

	var compare func(a, b Row) int
	if st.SortField == SortUsername {
		col := collate.New(m.lang)
		compare = func(a, b Row) int {
			return col.CompareString(a.User.DisplayName(), b.User.DisplayName())
		}
	} else {
		field := st.SortField
		compare = func(a, b Row) int {
			return cmp.Compare(numericField(a.Stats, field), numericField(b.Stats, field))
		}
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		c := compare(a, b)
		if !st.SortAsc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.User.UserID, b.User.UserID)
	})
	return rows
}

func numericField(s models.StatsSummary, field SortField) float64 {
	switch field {
	case SortGamesPlayed:
		return float64(s.GamesPlayed)
	case SortTotalBuyin:
		return s.TotalBuyin
	case SortAvgBuyinsPerGame:
		return s.AvgBuyinsPerGame
	case SortProfit:
		return s.Profit
	default:
		return s.ROI
	}
}
