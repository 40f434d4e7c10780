package dashboard

import (
	"encoding/json"
	"sync"
)

// ChartJSConfig is a Chart.js line chart configuration, serialised as-is to
// the browser which only instantiates it.
type ChartJSConfig struct {
	Type    string         `json:"type"`
	Data    chartJSData    `json:"data"`
	Options map[string]any `json:"options"`
}

type chartJSData struct {
	Labels   []string         `json:"labels"`
	Datasets []chartJSDataset `json:"datasets"`
}

type chartJSDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	Tension         float64   `json:"tension"`
	Fill            bool      `json:"fill"`
}

// ChartJSRenderer turns draw requests into Chart.js configurations and tracks
// the ones that have not been destroyed yet.
type ChartJSRenderer struct {
	mu   sync.Mutex
	live map[*ChartJSChart]struct{}
}

func NewChartJSRenderer() *ChartJSRenderer {
	return &ChartJSRenderer{live: make(map[*ChartJSChart]struct{})}
}

// ChartJSChart is one drawn chart.
type ChartJSChart struct {
	Config   ChartJSConfig
	renderer *ChartJSRenderer
}

func (r *ChartJSRenderer) Draw(x []string, y []float64, title string) (Chart, error) {
	cfg := ChartJSConfig{
		Type: "line",
		Data: chartJSData{
			Labels: append([]string{}, x...),
			Datasets: []chartJSDataset{{
				Label:           "ROI (%)",
				Data:            append([]float64{}, y...),
				BorderColor:     "rgb(59, 130, 246)",
				BackgroundColor: "rgba(59, 130, 246, 0.1)",
				Tension:         0.1,
				Fill:            true,
			}},
		},
		Options: map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
			"scales": map[string]any{
				"y": map[string]any{
					"beginAtZero": false,
					"title":       map[string]any{"display": true, "text": "ROI %"},
				},
				"x": map[string]any{
					"title": map[string]any{"display": true, "text": "Date"},
				},
			},
			"plugins": map[string]any{
				"title": map[string]any{"display": true, "text": title},
			},
		},
	}

	c := &ChartJSChart{Config: cfg, renderer: r}
	r.mu.Lock()
	r.live[c] = struct{}{}
	r.mu.Unlock()
	return c, nil
}

// Live reports how many drawn charts have not been destroyed.
func (r *ChartJSRenderer) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

func (c *ChartJSChart) Destroy() {
	c.renderer.mu.Lock()
	delete(c.renderer.live, c)
	c.renderer.mu.Unlock()
}

// MarshalJSON emits the bare Chart.js configuration.
func (c *ChartJSChart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Config)
}
