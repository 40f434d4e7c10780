package api

import (
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"path/filepath"
	"time"

	"github.com/vytor/pokerdash/internal/stats"
)

// LoadTemplates parses the layouts, pages and partials under dir.
func LoadTemplates(dir string) (*template.Template, error) {
	funcs := template.FuncMap{
		// money renders an amount with two decimals
		"money": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		// percent renders a ratio already expressed in percent with one decimal
		"percent": func(v float64) string {
			return fmt.Sprintf("%.1f%%", stats.RoundTenth(v))
		},
		"ratio": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"signClass": func(v float64) string {
			switch {
			case math.Signbit(v) && v != 0:
				return "negative"
			case v > 0:
				return "positive"
			default:
				return ""
			}
		},
		"timestamp": func(t time.Time) string {
			if t.IsZero() {
				return "never"
			}
			return t.Format("2006-01-02 15:04:05 MST")
		},
		// json marshals a value to JSON string
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
	}

	t := template.New("base").Funcs(funcs)

	patterns := []string{
		filepath.Join(dir, "layouts", "*.html"),
		filepath.Join(dir, "pages", "*.html"),
		filepath.Join(dir, "partials", "*.html"),
	}
	for _, p := range patterns {
		if matches, _ := filepath.Glob(p); len(matches) == 0 {
			continue
		}
		if _, err := t.ParseGlob(p); err != nil {
			return nil, err
		}
	}

	return t, nil
}
