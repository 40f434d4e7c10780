package api

import (
	"context"
	stderrors "errors"
	"html/template"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/pokerdash/internal/dashboard"
	"github.com/vytor/pokerdash/internal/errors"
	"github.com/vytor/pokerdash/internal/jobs"
	"github.com/vytor/pokerdash/internal/logger"
	"github.com/vytor/pokerdash/internal/models"
	"github.com/vytor/pokerdash/internal/services"
	"github.com/vytor/pokerdash/internal/stats"
	"github.com/vytor/pokerdash/internal/worker"
	"golang.org/x/text/language"
)

// Pinger is a dependency that can report its own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	Snapshots services.SnapshotService
	Jobs      jobs.JobQueue
	Renderer  dashboard.Renderer
	Templates *template.Template
	Store     Pinger // optional
	Location  *time.Location
	Language  language.Tag
	Now       func() time.Time
}

type pageData map[string]any

func (s *Server) viewOptions() []dashboard.Option {
	opts := []dashboard.Option{
		dashboard.WithLocation(s.Location),
		dashboard.WithLanguage(s.Language),
	}
	if s.Now != nil {
		opts = append(opts, dashboard.WithClock(s.Now))
	}
	return opts
}

func (s *Server) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// buildTable loads the current snapshot and derives the table the request asks for.
func (s *Server) buildTable(r *http.Request) (*models.Snapshot, *dashboard.TableModel, error) {
	snap, err := s.Snapshots.Current(r.Context())
	if err != nil {
		return nil, nil, err
	}
	table := dashboard.NewTableModel(snap.Users, s.viewOptions()...)
	if err := applyTableQuery(table, r.URL.Query(), s.location()); err != nil {
		return nil, nil, err
	}
	return snap, table, nil
}

type rowView struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"display_name"`
	Failed      bool   `json:"failed,omitempty"`
	models.StatsSummary
}

func rowViews(snap *models.Snapshot, rows []dashboard.Row) []rowView {
	out := make([]rowView, len(rows))
	for i, row := range rows {
		out[i] = rowView{
			UserID:       row.User.UserID,
			Username:     row.User.Username,
			DisplayName:  row.User.DisplayName(),
			Failed:       slices.Contains(snap.FailedUserIDs, row.User.UserID),
			StatsSummary: row.Stats,
		}
	}
	return out
}

type columnView struct {
	Field  dashboard.SortField
	Label  string
	Href   string
	Active bool
	Asc    bool
}

var columnLabels = map[dashboard.SortField]string{
	dashboard.SortUsername:         "Username",
	dashboard.SortGamesPlayed:      "Games",
	dashboard.SortTotalBuyin:       "Total Buy-in",
	dashboard.SortAvgBuyinsPerGame: "Avg Buy-ins/Game",
	dashboard.SortProfit:           "Profit",
	dashboard.SortROI:              "ROI %",
}

func columnViews(table *dashboard.TableModel) []columnView {
	st := table.State()
	cols := make([]columnView, 0, len(dashboard.SortFields))
	for _, f := range dashboard.SortFields {
		cols = append(cols, columnView{
			Field:  f,
			Label:  columnLabels[f],
			Href:   "/?" + tableQuery(table.NextSort(f)).Encode(),
			Active: st.SortField == f,
			Asc:    st.SortAsc,
		})
	}
	return cols
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering dashboard")

	snap, table, err := s.buildTable(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	st := table.State()
	rows := rowViews(snap, table.FilteredAndSorted())
	log.WithField("rows", len(rows)).Debug("table derived")

	toggle := st
	toggle.HideSmallSample = !st.HideSmallSample

	s.render(w, r, "pages/dashboard.html", pageData{
		"rows":          rows,
		"columns":       columnViews(table),
		"state":         st,
		"start":         stats.FormatDate(st.Start),
		"end":           stats.FormatDate(st.End),
		"threshold":     dashboard.SmallSampleThreshold,
		"fetched_at":    snap.FetchedAt,
		"failed_count":  len(snap.FailedUserIDs),
		"all_time_href": "/?" + presetQuery(st, presetAllTime).Encode(),
		"year_href":     "/?" + presetQuery(st, presetThisYear).Encode(),
		"toggle_href":   "/?" + tableQuery(toggle).Encode(),
	})
}

type tableResponse struct {
	Search          string    `json:"search"`
	Sort            string    `json:"sort"`
	Asc             bool      `json:"asc"`
	HideSmallSample bool      `json:"hide_small"`
	Start           string    `json:"start"`
	End             string    `json:"end"`
	FetchedAt       time.Time `json:"fetched_at"`
	FailedUserIDs   []int64   `json:"failed_user_ids"`
	Rows            []rowView `json:"rows"`
}

func (s *Server) handleTableJSON(w http.ResponseWriter, r *http.Request) {
	snap, table, err := s.buildTable(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	st := table.State()
	failed := snap.FailedUserIDs
	if failed == nil {
		failed = []int64{}
	}
	writeJSON(w, r, http.StatusOK, tableResponse{
		Search:          st.Search,
		Sort:            string(st.SortField),
		Asc:             st.SortAsc,
		HideSmallSample: st.HideSmallSample,
		Start:           stats.FormatDate(st.Start),
		End:             stats.FormatDate(st.End),
		FetchedAt:       snap.FetchedAt,
		FailedUserIDs:   failed,
		Rows:            rowViews(snap, table.FilteredAndSorted()),
	})
}

type roiResponse struct {
	UserID int64           `json:"user_id"`
	Title  string          `json:"title"`
	Start  string          `json:"start"`
	End    string          `json:"end"`
	X      []string        `json:"x"`
	Y      []float64       `json:"y"`
	Chart  dashboard.Chart `json:"chart"`
}

func (s *Server) handleUserROI(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	log := logger.FromContext(r.Context()).WithField("user_id", userID)

	snap, err := s.Snapshots.Current(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	idx := slices.IndexFunc(snap.Users, func(u models.User) bool { return u.UserID == userID })
	if idx < 0 {
		handleError(w, r, errors.NewNotFoundError("user", userID))
		return
	}

	chart := dashboard.NewChartModel(s.Renderer, s.viewOptions()...)
	if err := chart.Open(snap.Users[idx]); err != nil {
		handleError(w, r, err)
		return
	}
	defer chart.Close()

	q := r.URL.Query()
	if q.Get("start") != "" || q.Get("end") != "" {
		start, end := chart.Range()
		for _, p := range []struct {
			name string
			dst  *string
		}{{"start", &start}, {"end", &end}} {
			v := q.Get(p.name)
			if v == "" {
				continue
			}
			if _, err := stats.ParseDate(v, s.location()); err != nil {
				handleError(w, r, errors.NewValidationError(p.name, "must be a YYYY-MM-DD date"))
				return
			}
			*p.dst = v
		}
		if err := chart.SetRange(start, end); err != nil {
			handleError(w, r, err)
			return
		}
	}

	data := chart.FilteredRoiData()
	resp := roiResponse{
		UserID: userID,
		Title:  chart.Title(),
		X:      make([]string, len(data)),
		Y:      make([]float64, len(data)),
		Chart:  chart.Current(),
	}
	resp.Start, resp.End = chart.Range()
	for i, p := range data {
		resp.X[i] = p.Date
		resp.Y[i] = p.ROI
	}
	log.Debug("roi history served: points=%d", len(data))
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := s.Jobs.EnqueueRefresh(); err != nil {
		if stderrors.Is(err, worker.ErrQueueFull) {
			handleError(w, r, errors.NewUnavailableError("a refresh is already queued"))
			return
		}
		if stderrors.Is(err, worker.ErrPoolStopped) {
			handleError(w, r, errors.NewUnavailableError("server is shutting down"))
			return
		}
		handleError(w, r, err)
		return
	}
	log.Info("snapshot refresh queued")

	if wantsJSON(r) {
		writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "queued"})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}

	log := logger.FromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
