package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorstation/creator-dashboard/internal/config"
)

func TestNormalizeHashtag(t *testing.T) {
	// NFD input collapses to the same key as its NFC form
	assert.Equal(t, normalizeHashtag("ボ"), normalizeHashtag("ボ"))
	assert.Equal(t, "VTuber", normalizeHashtag("VTuber"))
	assert.NotEqual(t, normalizeHashtag("vtuber"), normalizeHashtag("VTuber"))
}

func TestIsRetweet(t *testing.T) {
	own := tweet{}
	assert.False(t, own.isRetweet())

	quoted := tweet{ReferencedTweets: []referencedTweet{{Type: "quoted"}}}
	assert.False(t, quoted.isRetweet())

	rt := tweet{ReferencedTweets: []referencedTweet{{Type: "retweeted", ID: "1"}}}
	assert.True(t, rt.isRetweet())
}

func TestAggregateTweets(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, config.JST)
	at := now.Add(-30 * time.Minute)

	own := tweet{
		CreatedAt:     at,
		PublicMetrics: tweetMetrics{LikeCount: 10, RetweetCount: 4, ReplyCount: 1, ImpressionCount: 200},
		Entities:      &tweetEntities{Hashtags: []tweetHashtag{{Tag: "VTuber"}}},
	}
	rt := tweet{
		CreatedAt:        at,
		PublicMetrics:    tweetMetrics{LikeCount: 2, RetweetCount: 50},
		ReferencedTweets: []referencedTweet{{Type: "retweeted", ID: "1"}},
	}

	data := aggregateTweets(Period1Day, now, 800, []tweet{own, rt})

	assert.Equal(t, 800, data.FollowersCount)
	assert.Equal(t, 12, data.LikesCount)
	// the retweet's 50 retweets belong to the original author
	assert.Equal(t, 4, data.RetweetsCount)

	// but the trend still counts them: (10+4+1) + (2+50+0)
	idx := bucketIndex(Period1Day, periodWindow(Period1Day, now), at)
	assert.Equal(t, 67, data.EngagementTrend[idx].Engagement)
	assert.Equal(t, 200, data.EngagementTrend[idx].Impressions)

	require.Len(t, data.HashtagAnalysis, 1)
	assert.Equal(t, "VTuber", data.HashtagAnalysis[0].Tag)
	assert.Equal(t, 10, data.HashtagAnalysis[0].Likes)
}

func TestAggregateTweetsEmptyWindow(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, config.JST)
	stale := tweet{CreatedAt: now.Add(-3 * time.Hour)}

	data := aggregateTweets(Period2Hours, now, 0, []tweet{stale})

	assert.Contains(t, data.Message, "過去2時間")
	require.Len(t, data.HashtagAnalysis, 1)
	assert.Equal(t, "データなし", data.HashtagAnalysis[0].Tag)
}

func TestWarmFollowerCacheSkipsWhenUnconfigured(t *testing.T) {
	t.Setenv("X_BEARER_TOKEN", "")
	t.Setenv("X_USERNAME", "")

	// must return without touching the network
	WarmFollowerCache()
}

func TestFollowerCache(t *testing.T) {
	storeFollowers("42", 1234)

	userID, followers, fresh := cachedFollowers()
	assert.Equal(t, "42", userID)
	assert.Equal(t, 1234, followers)
	assert.True(t, fresh)
}
