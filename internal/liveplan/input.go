package liveplan

import (
	"errors"

	v "github.com/go-ozzo/ozzo-validation/v4"
)

type GenerateBody struct {
	Type               string   `json:"type"`
	Title              string   `json:"title"`
	DurationHours      int      `json:"duration_hours"`
	DurationMinutes    int      `json:"duration_minutes"`
	Purposes           []string `json:"purposes"`
	TargetAudience     string   `json:"target_audience"`
	PreferredTimeStart string   `json:"preferred_time_start"`
	PreferredTimeEnd   string   `json:"preferred_time_end"`
	Notes              string   `json:"notes"`
	Difficulty         string   `json:"difficulty"`
}

func (b GenerateBody) TotalMinutes() int {
	return b.DurationHours*60 + b.DurationMinutes
}

func (b GenerateBody) Validate() error {
	if err := v.ValidateStruct(&b,
		v.Field(&b.Type, v.Required),
		v.Field(&b.Title, v.Required),
		v.Field(&b.DurationHours, v.Min(0), v.Max(8)),
		v.Field(&b.DurationMinutes, v.Min(0), v.Max(59)),
		v.Field(&b.Purposes, v.Required, v.Length(1, 0)),
		v.Field(&b.TargetAudience, v.Required),
		v.Field(&b.Notes, v.Length(0, 500)),
		v.Field(&b.Difficulty, v.In("", "low", "medium", "high")),
	); err != nil {
		return err
	}

	if total := b.TotalMinutes(); total < 10 || total > 480 {
		return errors.New("予定ライブ時間は10分以上480分以下で入力してください")
	}
	return nil
}
