package api

import (
	"net/url"
	"strconv"
	"time"

	"github.com/vytor/pokerdash/internal/dashboard"
	"github.com/vytor/pokerdash/internal/errors"
	"github.com/vytor/pokerdash/internal/stats"
)

const (
	presetAllTime  = "all"
	presetThisYear = "year"
)

// applyTableQuery moves table into the state described by the request's
// query string. A preset is applied before explicit start/end days.
func applyTableQuery(table *dashboard.TableModel, q url.Values, loc *time.Location) error {
	table.SetSearch(q.Get("q"))

	st := table.State()
	field := st.SortField
	asc := st.SortAsc
	if v := q.Get("sort"); v != "" {
		f, err := dashboard.ParseSortField(v)
		if err != nil {
			return errors.NewValidationError("sort", err.Error())
		}
		field = f
	}
	if v := q.Get("asc"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.NewValidationError("asc", "must be a boolean")
		}
		asc = b
	}
	table.SetSortDirection(field, asc)

	if v := q.Get("hide_small"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.NewValidationError("hide_small", "must be a boolean")
		}
		table.SetHideSmallSample(b)
	}

	switch q.Get("preset") {
	case "":
	case presetAllTime:
		table.SetAllTime()
	case presetThisYear:
		table.SetThisYear()
	default:
		return errors.NewValidationError("preset", "must be one of all, year")
	}

	start, end := table.State().Start, table.State().End
	if v := q.Get("start"); v != "" {
		d, err := stats.ParseDate(v, loc)
		if err != nil {
			return errors.NewValidationError("start", "must be a YYYY-MM-DD date")
		}
		start = d
	}
	if v := q.Get("end"); v != "" {
		d, err := stats.ParseDate(v, loc)
		if err != nil {
			return errors.NewValidationError("end", "must be a YYYY-MM-DD date")
		}
		end = d
	}
	table.SetDateRange(start, end)
	return nil
}

// tableQuery encodes st so that applyTableQuery reproduces it.
func tableQuery(st dashboard.TableState) url.Values {
	q := url.Values{}
	if st.Search != "" {
		q.Set("q", st.Search)
	}
	q.Set("sort", string(st.SortField))
	q.Set("asc", strconv.FormatBool(st.SortAsc))
	q.Set("hide_small", strconv.FormatBool(st.HideSmallSample))
	q.Set("start", stats.FormatDate(st.Start))
	q.Set("end", stats.FormatDate(st.End))
	return q
}

// presetQuery is tableQuery with the explicit range swapped for a preset.
func presetQuery(st dashboard.TableState, preset string) url.Values {
	q := tableQuery(st)
	q.Del("start")
	q.Del("end")
	q.Set("preset", preset)
	return q
}

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("id", "must be an integer user id")
	}
	return id, nil
}
