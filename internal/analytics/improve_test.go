package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/creatorstation/creator-dashboard/internal/config"
)

func TestRuleBasedXImprovements(t *testing.T) {
	body := XImprovementsBody{
		LikesCount:       300,
		RetweetsCount:    150,
		RepliesCount:     60,
		ImpressionsCount: 10000,
		FollowersCount:   500,
		Period:           Period1Week,
	}

	s := ruleBasedXImprovements(body)

	// 510/10000 = 5.1% engagement, high tier
	assert.Contains(t, s.KeyInsights[0], "非常に高い水準")
	// ratios are taken against likes: retweets 150/300 = 50% > 30%
	assert.Contains(t, s.KeyInsights, "リツイート比率が高く、拡散力のある投稿ができています。")
	// replies 60/300 = 20% > 10%
	assert.Contains(t, s.KeyInsights, "リプライが多く、フォロワーとの交流が活発です。")
	assert.Len(t, s.HashtagRecommendations, 5)
	assert.NotEmpty(t, s.Recommendations)
	assert.NotEmpty(t, s.BestPostingTime)
}

func TestRuleBasedXImprovementsZeroImpressions(t *testing.T) {
	s := ruleBasedXImprovements(XImprovementsBody{Period: Period1Day})
	assert.Contains(t, s.KeyInsights[0], "改善の余地")
}

func TestRuleBasedXImprovementsRatiosBelowThreshold(t *testing.T) {
	s := ruleBasedXImprovements(XImprovementsBody{
		LikesCount:    300,
		RetweetsCount: 80, // 27%
		RepliesCount:  20, // 7%
		Period:        Period1Week,
	})
	assert.NotContains(t, s.KeyInsights, "リツイート比率が高く、拡散力のある投稿ができています。")
	assert.NotContains(t, s.KeyInsights, "リプライが多く、フォロワーとの交流が活発です。")
}

func TestBestPostingTime(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2025, 8, 20, hour, 0, 0, 0, config.JST)
	}
	assert.Equal(t, "20:00〜24:00", bestPostingTime(at(9)))
	assert.Equal(t, "12:00〜14:00 または 19:00〜23:00", bestPostingTime(at(14)))
	assert.Equal(t, "20:00〜22:00", bestPostingTime(at(21)))
	assert.Equal(t, "20:00〜22:00", bestPostingTime(at(3)))
}

func TestRuleBasedYouTubeImprovements(t *testing.T) {
	prevViews := 1000
	retention := 55.0
	body := YouTubeImprovementsBody{
		Views:                   1500,
		EstimatedMinutesWatched: 4000,
		SubscribersGained:       30,
		SubscribersLost:         10,
		ViewerRetentionRate:     &retention,
		PrevViews:               &prevViews,
	}

	s := ruleBasedYouTubeImprovements(body)

	assert.Contains(t, s.KeyInsights[0], "+50.0%")
	assert.Contains(t, s.KeyInsights[1], "優秀")
	assert.Contains(t, s.KeyInsights[2], "純増+20人")
	assert.Contains(t, s.Summary, "視聴回数1500回")
}

func TestRuleBasedYouTubeImprovementsWatchRatio(t *testing.T) {
	avgDur := 600.0

	// 100 min watched over 100 views is 60s per view, 10% of video length
	low := ruleBasedYouTubeImprovements(YouTubeImprovementsBody{
		Views:                   100,
		EstimatedMinutesWatched: 100,
		AverageVideoDuration:    &avgDur,
	})
	foundInsight := false
	for _, insight := range low.KeyInsights {
		if strings.Contains(insight, "動画長に対する視聴割合は10.0%") {
			foundInsight = true
		}
	}
	assert.True(t, foundInsight)
	assert.Contains(t, low.Recommendations, "動画を短く編集して、最後まで見てもらえる長さにしましょう。")

	// 700 min over 100 views is 420s per view, 70% of video length
	high := ruleBasedYouTubeImprovements(YouTubeImprovementsBody{
		Views:                   100,
		EstimatedMinutesWatched: 700,
		AverageVideoDuration:    &avgDur,
	})
	foundInsight = false
	for _, insight := range high.KeyInsights {
		if strings.Contains(insight, "動画長に対する視聴割合70.0%は十分") {
			foundInsight = true
		}
	}
	assert.True(t, foundInsight)
	assert.NotContains(t, high.Recommendations, "動画を短く編集して、最後まで見てもらえる長さにしましょう。")
}

func TestRuleBasedYouTubeImprovementsLowRetention(t *testing.T) {
	retention := 20.0
	s := ruleBasedYouTubeImprovements(YouTubeImprovementsBody{
		ViewerRetentionRate: &retention,
	})

	found := false
	for _, insight := range s.KeyInsights {
		if strings.Contains(insight, "低め") {
			found = true
		}
	}
	assert.True(t, found)
}
