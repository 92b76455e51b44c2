package storage

import (
	v "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/creatorstation/creator-dashboard/internal/models"
)

type SaveReportBody struct {
	ReportType            string         `json:"report_type"`
	AnalyticsData         map[string]any `json:"analytics_data"`
	ImprovementSuggestion map[string]any `json:"improvement_suggestion"`
	Period                string         `json:"period"`
	Description           string         `json:"description"`
}

func (b SaveReportBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.ReportType, v.Required,
			v.In(models.ReportTypeYouTubeAnalytics, models.ReportTypeXAnalytics)),
		v.Field(&b.AnalyticsData, v.Required),
		v.Field(&b.Period, v.Required),
	)
}

type ScheduledPostBody struct {
	Content           string `json:"content" form:"content"`
	ScheduledDatetime string `json:"scheduled_datetime" form:"scheduled_datetime"`
}

func (b ScheduledPostBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.Content, v.Required, v.RuneLength(1, 280)),
		v.Field(&b.ScheduledDatetime, v.Required),
	)
}
