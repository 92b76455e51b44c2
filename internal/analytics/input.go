package analytics

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
)

type XImprovementsBody struct {
	LikesCount       int               `json:"likes_count"`
	RetweetsCount    int               `json:"retweets_count"`
	RepliesCount     int               `json:"replies_count"`
	ImpressionsCount int               `json:"impressions_count"`
	FollowersCount   int               `json:"followers_count"`
	HashtagAnalysis  []HashtagAnalysis `json:"hashtag_analysis"`
	Period           string            `json:"period"`
}

func (b XImprovementsBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.LikesCount, v.Min(0)),
		v.Field(&b.RetweetsCount, v.Min(0)),
		v.Field(&b.RepliesCount, v.Min(0)),
		v.Field(&b.ImpressionsCount, v.Min(0)),
		v.Field(&b.FollowersCount, v.Min(0)),
		v.Field(&b.Period, v.Required),
	)
}

type YouTubeImprovementsBody struct {
	Views                   int      `json:"views"`
	EstimatedMinutesWatched float64  `json:"estimatedMinutesWatched"`
	AverageViewDuration     float64  `json:"averageViewDuration"`
	SubscribersGained       int      `json:"subscribersGained"`
	SubscribersLost         int      `json:"subscribersLost"`
	ViewerRetentionRate     *float64 `json:"viewerRetentionRate"`
	AverageVideoDuration    *float64 `json:"averageVideoDuration"`
	PrevViews               *int     `json:"previousPeriodViews"`
	PrevEstimatedMinutes    *float64 `json:"previousPeriodEstimatedMinutesWatched"`
	PrevAverageViewDuration *float64 `json:"previousPeriodAverageViewDuration"`
	PrevViewerRetentionRate *float64 `json:"previousPeriodViewerRetentionRate"`
	PrevNetSubscribers      *int     `json:"previousPeriodNetSubscribers"`
}

func (b YouTubeImprovementsBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.Views, v.Min(0)),
		v.Field(&b.SubscribersGained, v.Min(0)),
		v.Field(&b.SubscribersLost, v.Min(0)),
	)
}
