package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/creatorstation/creator-dashboard/internal/config"
)

var calClient = resty.New().
	SetBaseURL("https://www.googleapis.com/calendar/v3").
	SetTimeout(30 * time.Second)

// Schedule types shown on the dashboard.
const (
	TypeYouTubeLive = "YouTubeライブ配信"
	TypeXAutoPost   = "X自動投稿"
	TypeImportant   = "重要イベント"
	TypeOther       = "その他"
)

// Google Calendar color IDs per schedule type.
var typeColors = map[string]string{
	TypeYouTubeLive: "5",
	TypeXAutoPost:   "9",
	TypeImportant:   "11",
	TypeOther:       "8",
}

// Event is the dashboard-facing schedule entry.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Type        string `json:"type"`
	ColorID     string `json:"color_id"`
}

type gcalTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type gcalEvent struct {
	ID          string   `json:"id,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Description string   `json:"description,omitempty"`
	Start       gcalTime `json:"start,omitempty"`
	End         gcalTime `json:"end,omitempty"`
	ColorID     string   `json:"colorId,omitempty"`
}

// ClassifyEvent decides the schedule type. The description prefix wins,
// then title markers in priority order.
func ClassifyEvent(title, description string) string {
	if strings.HasPrefix(description, "[種類: ") {
		if end := strings.Index(description, "]"); end > 0 {
			t := strings.TrimPrefix(description[:end], "[種類: ")
			if _, ok := typeColors[t]; ok {
				return t
			}
		}
	}
	if strings.Contains(title, "#重要") {
		return TypeImportant
	}
	if strings.Contains(strings.ToLower(title), "youtube") {
		return TypeYouTubeLive
	}
	if strings.Contains(title, "X") {
		return TypeXAutoPost
	}
	return TypeOther
}

func eventFromGcal(e gcalEvent) Event {
	return Event{
		ID:          e.ID,
		Title:       e.Summary,
		Description: strippedDescription(e.Description),
		Start:       coalesce(e.Start.DateTime, e.Start.Date),
		End:         coalesce(e.End.DateTime, e.End.Date),
		Type:        ClassifyEvent(e.Summary, e.Description),
		ColorID:     e.ColorID,
	}
}

func strippedDescription(desc string) string {
	if strings.HasPrefix(desc, "[種類: ") {
		if end := strings.Index(desc, "]"); end > 0 {
			return strings.TrimPrefix(desc[end+1:], "\n")
		}
	}
	return desc
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// normalizeTimes parses JST event times, pushing the end to the next day
// for overnight entries.
func normalizeTimes(start, end string) (time.Time, time.Time, error) {
	s, err := parseJST(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("開始日時の形式が不正です: %w", err)
	}
	e, err := parseJST(end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("終了日時の形式が不正です: %w", err)
	}
	if !e.After(s) {
		e = e.AddDate(0, 0, 1)
	}
	return s, e, nil
}

func parseJST(s string) (time.Time, error) {
	// all-day events carry a bare date
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, config.JST); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported datetime %q", s)
}

// ListEvents fetches events in [from, to) ordered by start time.
func ListEvents(from, to time.Time) ([]Event, error) {
	token, err := AccessToken()
	if err != nil {
		return nil, err
	}

	var out struct {
		Items []gcalEvent `json:"items"`
	}
	resp, err := calClient.R().
		SetAuthToken(token).
		SetQueryParams(map[string]string{
			"timeMin":      from.UTC().Format(time.RFC3339),
			"timeMax":      to.UTC().Format(time.RFC3339),
			"singleEvents": "true",
			"orderBy":      "startTime",
			"maxResults":   "2500",
		}).
		SetResult(&out).
		Get("/calendars/primary/events")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("イベント一覧の取得に失敗しました: %s", resp.Status())
	}

	events := make([]Event, 0, len(out.Items))
	for _, item := range out.Items {
		events = append(events, eventFromGcal(item))
	}
	return events, nil
}

// UpcomingScheduleIDs feeds the websocket poller: future dashboard-managed
// schedules within a year.
func UpcomingScheduleIDs() ([]string, error) {
	now := time.Now().In(config.JST)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, config.JST)

	events, err := ListEvents(today, today.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, e := range events {
		switch e.Type {
		case TypeXAutoPost, TypeYouTubeLive, TypeImportant:
			if start, err := parseJST(e.Start); err == nil && start.Before(now) {
				continue
			}
			ids = append(ids, e.ID)
		}
	}
	return ids, nil
}

// CreateEvent inserts an event with the type prefix and color.
func CreateEvent(body EventBody) (*Event, error) {
	token, err := AccessToken()
	if err != nil {
		return nil, err
	}

	start, end, err := normalizeTimes(body.Start, body.End)
	if err != nil {
		return nil, err
	}

	payload := gcalEvent{
		Summary:     body.Title,
		Description: fmt.Sprintf("[種類: %s]\n%s", body.Type, body.Description),
		Start:       gcalTime{DateTime: start.Format(time.RFC3339), TimeZone: "Asia/Tokyo"},
		End:         gcalTime{DateTime: end.Format(time.RFC3339), TimeZone: "Asia/Tokyo"},
		ColorID:     typeColors[body.Type],
	}

	var created gcalEvent
	resp, err := calClient.R().
		SetAuthToken(token).
		SetBody(payload).
		SetResult(&created).
		Post("/calendars/primary/events")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("イベントの作成に失敗しました: %s, %s", resp.Status(), resp.String())
	}

	event := eventFromGcal(created)
	return &event, nil
}

// UpdateEvent rewrites an existing event.
func UpdateEvent(id string, body EventBody) (*Event, error) {
	token, err := AccessToken()
	if err != nil {
		return nil, err
	}

	start, end, err := normalizeTimes(body.Start, body.End)
	if err != nil {
		return nil, err
	}

	payload := gcalEvent{
		Summary:     body.Title,
		Description: fmt.Sprintf("[種類: %s]\n%s", body.Type, body.Description),
		Start:       gcalTime{DateTime: start.Format(time.RFC3339), TimeZone: "Asia/Tokyo"},
		End:         gcalTime{DateTime: end.Format(time.RFC3339), TimeZone: "Asia/Tokyo"},
		ColorID:     typeColors[body.Type],
	}

	var updated gcalEvent
	resp, err := calClient.R().
		SetAuthToken(token).
		SetBody(payload).
		SetResult(&updated).
		Put("/calendars/primary/events/" + id)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("イベントの更新に失敗しました: %s, %s", resp.Status(), resp.String())
	}

	event := eventFromGcal(updated)
	return &event, nil
}

// DeleteEvent removes an event.
func DeleteEvent(id string) error {
	token, err := AccessToken()
	if err != nil {
		return err
	}

	resp, err := calClient.R().
		SetAuthToken(token).
		Delete("/calendars/primary/events/" + id)
	if err != nil {
		return err
	}
	if resp.StatusCode() == 404 {
		return fmt.Errorf("イベントが見つかりません: %s", id)
	}
	if resp.IsError() {
		return fmt.Errorf("イベントの削除に失敗しました: %s", resp.Status())
	}
	return nil
}

// VerifyAccess lists calendars to confirm the token works.
func VerifyAccess() error {
	token, err := AccessToken()
	if err != nil {
		return err
	}
	resp, err := calClient.R().
		SetAuthToken(token).
		SetQueryParam("maxResults", "1").
		Get("/users/me/calendarList")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("カレンダーAPIへのアクセスに失敗しました: %s", resp.Status())
	}
	return nil
}
