// Package record is a client for the remote record service that stores
// daily sessions, cycle events and baselines
package record

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"

	"github.com/ayoisaiah/ultradian/internal/apperr"
	"github.com/ayoisaiah/ultradian/internal/models"
	"github.com/ayoisaiah/ultradian/internal/segment"
)

const (
	createSessionPath = "/api/records/"
	cycleEventPath    = "/api/cycles/"
	endSessionPath    = "/api/records/%s"
	baselinePath      = "/records"
	vibeScorePath     = "/api/vibe-score/"

	wallClockLayout = "15:04:05"
)

var (
	errMissingCredential = &apperr.Error{
		Message: "no access token available: log in and try again",
	}

	errUnexpectedStatus = &apperr.Error{
		Message: "%s %s: unexpected status %d",
	}

	errMissingRecordID = &apperr.Error{
		Message: "the record service did not return a record id",
	}
)

var (
	// ErrMissingCredential is returned when no bearer token is available.
	ErrMissingCredential = errMissingCredential
	// ErrUnexpectedStatus is returned for non-2xx responses.
	ErrUnexpectedStatus = errUnexpectedStatus
)

// ID is an opaque record identifier. The service may encode it as a JSON
// string or number; numeric ids are sent back as numbers.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}

	*id = ID(n.String())

	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := json.Number(id).Int64(); err == nil {
		return []byte(id), nil
	}

	return json.Marshal(string(id))
}

// Credentials supplies the bearer token sent with every request.
type Credentials interface {
	Token() (string, error)
}

// StaticToken is a Credentials that always returns the same token.
type StaticToken string

func (s StaticToken) Token() (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", errMissingCredential
	}

	return string(s), nil
}

// CreateSessionRequest is the payload for a new daily session record.
type CreateSessionRequest struct {
	StartedAt time.Time `json:"started_at"`
	WakeTime  string    `json:"wake_time"`
	Peak      int       `json:"peak_duration"`
	Trough    int       `json:"trough_duration"`
	Grog      int       `json:"grog_duration"`
	Cycles    int       `json:"cycles_count"`
}

// CycleEvent reports one peak or trough segment.
type CycleEvent struct {
	Start    time.Time
	End      time.Time
	RecordID ID
	Kind     segment.Kind
}

type cycleEventPayload struct {
	RecordID  ID     `json:"user_daily_record_id"`
	EventType string `json:"event_type"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type endSessionPayload struct {
	EndedAt time.Time `json:"ended_at"`
}

type baselinePayload struct {
	WakeTime   string  `json:"wake_time"`
	Mood       string  `json:"mood"`
	HRV        int     `json:"hrv"`
	RHR        int     `json:"rhr"`
	SleepHours float64 `json:"sleep_duration"`
}

// VibeScore is the wellness score computed by the record service.
type VibeScore struct {
	Score *float64 `json:"score"`
	Zone  string   `json:"zone"`
}

// Client talks to the record service over HTTP/JSON.
type Client struct {
	creds   Credentials
	http    *http.Client
	baseURL string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New returns a client for the service at baseURL.
func New(baseURL string, creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http:    &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CreateSession creates the record for a new day and returns its id.
func (c *Client) CreateSession(
	ctx context.Context,
	req CreateSessionRequest,
) (ID, error) {
	var resp struct {
		ID ID `json:"id"`
	}

	err := c.do(ctx, http.MethodPost, createSessionPath, req, &resp)
	if err != nil {
		return "", err
	}

	if resp.ID == "" {
		return "", errMissingRecordID
	}

	return resp.ID, nil
}

// LogCycleEvent reports a peak or trough segment for a session record.
func (c *Client) LogCycleEvent(ctx context.Context, e CycleEvent) error {
	payload := cycleEventPayload{
		RecordID:  e.RecordID,
		EventType: string(e.Kind),
		StartTime: e.Start.Format(wallClockLayout),
		EndTime:   e.End.Format(wallClockLayout),
	}

	return c.do(ctx, http.MethodPost, cycleEventPath, payload, nil)
}

// EndSession marks a session record as ended.
func (c *Client) EndSession(ctx context.Context, id ID, endedAt time.Time) error {
	path := fmt.Sprintf(endSessionPath, url.PathEscape(string(id)))

	return c.do(ctx, http.MethodPut, path, endSessionPayload{EndedAt: endedAt}, nil)
}

// LogBaseline records the day's physiological baseline.
func (c *Client) LogBaseline(ctx context.Context, b *models.Baseline) error {
	payload := baselinePayload{
		WakeTime:   b.WakeTime,
		HRV:        b.HRV,
		RHR:        b.RHR,
		SleepHours: b.SleepHours,
		Mood:       string(b.Mood),
	}

	return c.do(ctx, http.MethodPost, baselinePath, payload, nil)
}

// GetVibeScore retrieves today's vibe score.
func (c *Client) GetVibeScore(ctx context.Context) (*VibeScore, error) {
	var v VibeScore

	err := c.do(ctx, http.MethodGet, vibeScorePath, nil, &v)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	body, out any,
) error {
	token, err := c.creds.Token()
	if err != nil {
		return err
	}

	if token == "" {
		return errMissingCredential
	}

	var reader io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}

		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		slog.DebugContext(
			ctx,
			"record service request",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.String("payload", spew.Sdump(body)),
		)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return errUnexpectedStatus.Fmt(method, path, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
