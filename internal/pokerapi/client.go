package pokerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vytor/pokerdash/internal/logger"
	"github.com/vytor/pokerdash/internal/models"
	"github.com/vytor/pokerdash/internal/stats"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	loc        *time.Location
}

// New returns a client for the stats API rooted at baseURL. Action timestamps
// are normalised into loc.
func New(baseURL string, timeout time.Duration, loc *time.Location) *Client {
	if loc == nil {
		loc = time.Local
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		loc:        loc,
	}
}

type usersResp struct {
	Users []struct {
		UserID   int64   `json:"user_id"`
		Username *string `json:"username"`
	} `json:"users"`
}

type actionResp struct {
	GameID    json.RawMessage `json:"game_id"`
	Action    string          `json:"action"`
	Amount    *float64        `json:"amount"`
	Timestamp string          `json:"timestamp"`
}

func (c *Client) GetUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("pokerapi")

	var out usersResp
	if err := c.getJSON(ctx, log, "/api/users", &out); err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(out.Users))
	for _, u := range out.Users {
		user := models.User{UserID: u.UserID}
		if u.Username != nil {
			user.Username = *u.Username
		}
		users = append(users, user)
	}
	log.Info("fetched %d users", len(users))
	return users, nil
}

func (c *Client) GetUserActions(ctx context.Context, userID int64) ([]models.Action, error) {
	log := logger.FromContext(ctx).WithPrefix("pokerapi").WithField("user_id", userID)

	var payload struct {
		Actions []actionResp `json:"actions"`
	}
	path := fmt.Sprintf("/api/stats/%d/actions", userID)
	if err := c.getJSON(ctx, log, path, &payload); err != nil {
		return nil, err
	}

	actions := make([]models.Action, 0, len(payload.Actions))
	for i, a := range payload.Actions {
		ts, err := stats.ParseTimestamp(a.Timestamp, c.loc)
		if err != nil {
			log.Warn("skipping action %d: %v", i, err)
			continue
		}
		action := models.Action{
			GameID:    normalizeGameID(a.GameID),
			Kind:      models.ActionKind(a.Action),
			Timestamp: ts,
		}
		if a.Amount != nil {
			action.Amount = *a.Amount
		}
		actions = append(actions, action)
	}

	log.Debug("fetched %d actions", len(actions))
	return actions, nil
}

func (c *Client) getJSON(ctx context.Context, log *logger.Logger, path string, dst any) error {
	url := c.baseURL + path
	log.Debug("fetching %s", url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request to %s failed: %v", path, err)
		return err
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Warn("request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		log.Error("failed to decode %s response: %v", path, err)
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s status %d: %s", e.Path, e.StatusCode, e.Body)
}

// normalizeGameID turns a JSON number or string into its textual identity so
// that 7 and "7" name the same game.
func normalizeGameID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return string(raw)
}
