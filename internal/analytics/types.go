package analytics

// Response shapes match the dashboard frontend interfaces.

type EngagementTrendItem struct {
	Time        string `json:"time"`
	Engagement  int    `json:"engagement"`
	Impressions int    `json:"impressions"`
}

type HashtagDataItem struct {
	Time  string `json:"time"`
	Likes int    `json:"likes"`
}

type HashtagAnalysis struct {
	Tag   string            `json:"tag"`
	Likes int               `json:"likes"`
	Data  []HashtagDataItem `json:"data"`
}

type XAnalyticsData struct {
	LikesCount        int                   `json:"likes_count"`
	RetweetsCount     int                   `json:"retweets_count"`
	RepliesCount      int                   `json:"replies_count"`
	ImpressionsCount  int                   `json:"impressions_count"`
	FollowersCount    int                   `json:"followers_count"`
	EngagementTrend   []EngagementTrendItem `json:"engagement_trend"`
	HashtagAnalysis   []HashtagAnalysis     `json:"hashtag_analysis"`
	IsCached          bool                  `json:"is_cached"`
	DataAgeMinutes    int                   `json:"data_age_minutes"`
	APITimeout        bool                  `json:"api_timeout"`
	RetryAfterSeconds *int                  `json:"retry_after_seconds"`
	Message           string                `json:"message,omitempty"`
}

type ImprovementSuggestion struct {
	Summary                string   `json:"summary"`
	KeyInsights            []string `json:"key_insights"`
	Recommendations        []string `json:"recommendations"`
	BestPostingTime        string   `json:"best_posting_time"`
	HashtagRecommendations []string `json:"hashtag_recommendations"`
}

type DailyDataItem struct {
	Date                  string   `json:"date"`
	Views                 int      `json:"views"`
	EstimatedMinutes      float64  `json:"estimatedMinutesWatched"`
	NetSubscribers        int      `json:"netSubscribers"`
	AverageViewDuration   float64  `json:"averageViewDuration"`
	PostClickQualityScore *float64 `json:"postClickQualityScore"`
}

type YouTubeAnalyticsData struct {
	Views                    int             `json:"views"`
	EstimatedMinutesWatched  float64         `json:"estimatedMinutesWatched"`
	AverageViewDuration      float64         `json:"averageViewDuration"`
	Impressions              int             `json:"impressions"`
	SubscribersGained        int             `json:"subscribersGained"`
	SubscribersLost          int             `json:"subscribersLost"`
	Shares                   int             `json:"shares"`
	ImpressionCTR            *float64        `json:"impressionClickThroughRate"`
	ViewerRetentionRate      *float64        `json:"viewerRetentionRate"`
	TopVideoViews            *int            `json:"topVideoViews"`
	TopVideoSubscribers      *int            `json:"topVideoSubscribersGained"`
	AverageVideoDuration     *float64        `json:"averageVideoDuration"`
	PrevViews                *int            `json:"previousPeriodViews"`
	PrevEstimatedMinutes     *float64        `json:"previousPeriodEstimatedMinutesWatched"`
	PrevAverageViewDuration  *float64        `json:"previousPeriodAverageViewDuration"`
	PrevImpressions          *int            `json:"previousPeriodImpressions"`
	PrevViewerRetentionRate  *float64        `json:"previousPeriodViewerRetentionRate"`
	PrevNetSubscribers       *int            `json:"previousPeriodNetSubscribers"`
	PrevShares               *int            `json:"previousPeriodShares"`
	DailyData                []DailyDataItem `json:"dailyData"`
}
