package dashboard

import (
	"errors"
	"fmt"

	"github.com/vytor/pokerdash/internal/models"
	"github.com/vytor/pokerdash/internal/stats"
)

// Chart is a live rendering resource owned by a Renderer.
type Chart interface {
	Destroy()
}

// Renderer draws a line chart of ROI percent over day labels.
type Renderer interface {
	Draw(x []string, y []float64, title string) (Chart, error)
}

// ErrChartClosed is returned by transitions that need an open chart.
var ErrChartClosed = errors.New("chart is not open")

// ChartModel is the state machine behind the ROI chart modal.
type ChartModel struct {
	settings
	renderer Renderer

	user    *models.User
	open    bool
	history []models.RoiPoint
	start   string
	end     string
	chart   Chart
}

// NewChartModel returns a closed chart model drawing through renderer.
func NewChartModel(renderer Renderer, opts ...Option) *ChartModel {
	return &ChartModel{settings: newSettings(opts), renderer: renderer}
}

// Open selects user, computes its full ROI history once, picks the default
// sub-range and draws. On a render failure the model closes again.
func (m *ChartModel) Open(user models.User) error {
	m.release()

	u := user
	m.user = &u
	m.open = true
	m.history = stats.ComputeRoiHistory(user.Actions)

	if len(m.history) > 0 {
		m.start = m.history[0].Date
		m.end = m.history[len(m.history)-1].Date
	} else {
		today := stats.FormatDate(m.now().In(m.loc))
		m.start, m.end = today, today
	}

	if err := m.draw(); err != nil {
		m.Close()
		return fmt.Errorf("render roi chart for user %d: %w", user.UserID, err)
	}
	return nil
}

// SetRange narrows the visible window to [start, end] (YYYY-MM-DD) and redraws.
// The history itself is not recomputed.
func (m *ChartModel) SetRange(start, end string) error {
	if !m.open {
		return ErrChartClosed
	}
	if _, err := stats.ParseDate(start, m.loc); err != nil {
		return err
	}
	if _, err := stats.ParseDate(end, m.loc); err != nil {
		return err
	}
	m.start, m.end = start, end
	return m.draw()
}

// Close hides the chart and releases its rendering resource.
func (m *ChartModel) Close() {
	m.open = false
	m.release()
}

// IsOpen reports whether the modal is showing.
func (m *ChartModel) IsOpen() bool {
	return m.open
}

// User returns the selected user, if any.
func (m *ChartModel) User() (models.User, bool) {
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// History returns the full ROI history of the selected user.
func (m *ChartModel) History() []models.RoiPoint {
	return m.history
}

// Current returns the live rendering resource, or nil when nothing is drawn.
func (m *ChartModel) Current() Chart {
	return m.chart
}

// Range returns the current sub-range.
func (m *ChartModel) Range() (start, end string) {
	return m.start, m.end
}

// Title is the chart heading for the selected user.
func (m *ChartModel) Title() string {
	if m.user == nil {
		return ""
	}
	return "ROI History: " + m.user.DisplayName()
}

// FilteredRoiData returns the history points inside the current sub-range.
func (m *ChartModel) FilteredRoiData() []models.RoiPoint {
	out := make([]models.RoiPoint, 0, len(m.history))
	for _, p := range m.history {
		// YYYY-MM-DD compares chronologically as text
		if p.Date >= m.start && p.Date <= m.end {
			out = append(out, p)
		}
	}
	return out
}

func (m *ChartModel) draw() error {
	m.release()

	data := m.FilteredRoiData()
	x := make([]string, len(data))
	y := make([]float64, len(data))
	for i, p := range data {
		x[i] = p.Date
		y[i] = p.ROI
	}

	chart, err := m.renderer.Draw(x, y, m.Title())
	if err != nil {
		return err
	}
	m.chart = chart
	return nil
}

func (m *ChartModel) release() {
	if m.chart != nil {
		m.chart.Destroy()
		m.chart = nil
	}
}
