package analytics

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slices"
	"golang.org/x/text/unicode/norm"

	"github.com/creatorstation/creator-dashboard/internal/config"
)

var xClient = resty.New().
	SetBaseURL("https://api.twitter.com/2").
	SetTimeout(30 * time.Second)

const (
	followerCacheTTL = 5 * time.Minute
	maxTweetResults  = 100
)

// RateLimitError carries the wait hint extracted from X API 429 headers.
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("X APIのレート制限に達しました。%d秒後に再試行してください。", e.RetryAfter)
}

type tweetMetrics struct {
	RetweetCount    int `json:"retweet_count"`
	ReplyCount      int `json:"reply_count"`
	LikeCount       int `json:"like_count"`
	ImpressionCount int `json:"impression_count"`
}

type tweetHashtag struct {
	Tag string `json:"tag"`
}

type tweetEntities struct {
	Hashtags []tweetHashtag `json:"hashtags"`
}

type referencedTweet struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type tweet struct {
	ID               string            `json:"id"`
	Text             string            `json:"text"`
	CreatedAt        time.Time         `json:"created_at"`
	PublicMetrics    tweetMetrics      `json:"public_metrics"`
	Entities         *tweetEntities    `json:"entities"`
	ReferencedTweets []referencedTweet `json:"referenced_tweets"`
}

// isRetweet reports whether the tweet is a plain retweet of someone else.
func (t tweet) isRetweet() bool {
	for _, ref := range t.ReferencedTweets {
		if ref.Type == "retweeted" {
			return true
		}
	}
	return false
}

type tweetsResponse struct {
	Data []tweet `json:"data"`
}

type userResponse struct {
	Data struct {
		ID            string `json:"id"`
		Username      string `json:"username"`
		PublicMetrics struct {
			FollowersCount int `json:"followers_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

var followerCache = struct {
	mu        sync.RWMutex
	userID    string
	followers int
	fetchedAt time.Time
}{}

func cachedFollowers() (string, int, bool) {
	followerCache.mu.RLock()
	defer followerCache.mu.RUnlock()
	if followerCache.userID == "" {
		return "", 0, false
	}
	fresh := time.Since(followerCache.fetchedAt) < followerCacheTTL
	return followerCache.userID, followerCache.followers, fresh
}

func storeFollowers(userID string, followers int) {
	followerCache.mu.Lock()
	followerCache.userID = userID
	followerCache.followers = followers
	followerCache.fetchedAt = time.Now()
	followerCache.mu.Unlock()
}

func rateLimitFromHeaders(resp *resty.Response) *RateLimitError {
	retryAfter := 60
	if reset := resp.Header().Get("x-rate-limit-reset"); reset != "" {
		if epoch, err := strconv.ParseInt(reset, 10, 64); err == nil {
			if wait := int(time.Until(time.Unix(epoch, 0)).Seconds()); wait > retryAfter {
				retryAfter = wait
			}
		}
	}
	return &RateLimitError{RetryAfter: retryAfter}
}

// lookupUser fetches the configured account, refreshing the follower cache.
// On rate limit it falls back to the cached value.
func lookupUser() (string, int, error) {
	if userID, followers, fresh := cachedFollowers(); fresh {
		return userID, followers, nil
	}

	var out userResponse
	resp, err := xClient.R().
		SetAuthToken(config.XBearerToken()).
		SetQueryParam("user.fields", "public_metrics").
		SetResult(&out).
		Get("/users/by/username/" + config.XUsername())
	if err != nil {
		return "", 0, err
	}

	if resp.StatusCode() == 429 {
		if userID, followers, _ := cachedFollowers(); userID != "" {
			log.Printf("X user lookup rate limited, using cached followers")
			return userID, followers, nil
		}
		return "", 0, rateLimitFromHeaders(resp)
	}
	if resp.IsError() {
		return "", 0, fmt.Errorf("X APIユーザー取得に失敗しました: %s", resp.Status())
	}

	storeFollowers(out.Data.ID, out.Data.PublicMetrics.FollowersCount)
	return out.Data.ID, out.Data.PublicMetrics.FollowersCount, nil
}

// fetchRecentTweets pulls up to 100 recent tweets for the account.
func fetchRecentTweets(userID string) ([]tweet, error) {
	var out tweetsResponse
	resp, err := xClient.R().
		SetAuthToken(config.XBearerToken()).
		SetQueryParams(map[string]string{
			"max_results":  strconv.Itoa(maxTweetResults),
			"tweet.fields": "created_at,public_metrics,entities,referenced_tweets",
		}).
		SetResult(&out).
		Get("/users/" + userID + "/tweets")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == 429 {
		return nil, rateLimitFromHeaders(resp)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("X APIツイート取得に失敗しました: %s", resp.Status())
	}

	return out.Data, nil
}

// normalizeHashtag applies NFC and strips combining marks so visually
// identical Japanese tags collapse to one key.
func normalizeHashtag(tag string) string {
	var b strings.Builder
	for _, r := range norm.NFC.String(tag) {
		if unicode.IsMark(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AnalyzeX aggregates recent tweets into dashboard metrics for the period.
func AnalyzeX(period string) (*XAnalyticsData, error) {
	userID, followers, err := lookupUser()
	if err != nil {
		return nil, err
	}

	tweets, err := fetchRecentTweets(userID)
	if err != nil {
		return nil, err
	}

	return aggregateTweets(period, time.Now().In(config.JST), followers, tweets), nil
}

// aggregateTweets buckets the window's tweets and builds the dashboard
// payload.
func aggregateTweets(period string, now time.Time, followers int, tweets []tweet) *XAnalyticsData {
	start := periodWindow(period, now)
	labels := bucketLabels(period, start)
	spec := bucketSpecs[period]

	data := &XAnalyticsData{
		FollowersCount:  followers,
		EngagementTrend: make([]EngagementTrendItem, spec.count),
		HashtagAnalysis: []HashtagAnalysis{},
	}
	for i, label := range labels {
		data.EngagementTrend[i] = EngagementTrendItem{Time: label}
	}

	type tagStat struct {
		display string
		likes   int
		series  []int
	}
	tagStats := map[string]*tagStat{}
	inWindow := 0

	for _, t := range tweets {
		idx := bucketIndex(period, start, t.CreatedAt.In(config.JST))
		if idx < 0 {
			continue
		}
		inWindow++

		m := t.PublicMetrics
		data.LikesCount += m.LikeCount
		data.RepliesCount += m.ReplyCount
		data.ImpressionsCount += m.ImpressionCount

		// Retweet counts on a retweet belong to the original author, but
		// only for the total. The trend always sums all three metrics.
		if !t.isRetweet() {
			data.RetweetsCount += m.RetweetCount
		}

		data.EngagementTrend[idx].Engagement += m.LikeCount + m.RetweetCount + m.ReplyCount
		data.EngagementTrend[idx].Impressions += m.ImpressionCount

		if t.Entities == nil {
			continue
		}
		for _, h := range t.Entities.Hashtags {
			key := normalizeHashtag(h.Tag)
			st, ok := tagStats[key]
			if !ok {
				st = &tagStat{display: h.Tag, series: make([]int, spec.count)}
				tagStats[key] = st
			}
			st.likes += m.LikeCount
			st.series[idx] += m.LikeCount
		}
	}

	stats := make([]*tagStat, 0, len(tagStats))
	for _, st := range tagStats {
		stats = append(stats, st)
	}
	slices.SortFunc(stats, func(a, b *tagStat) int { return b.likes - a.likes })
	if len(stats) > 10 {
		stats = stats[:10]
	}

	for _, st := range stats {
		h := HashtagAnalysis{Tag: st.display, Likes: st.likes}
		for i, label := range labels {
			h.Data = append(h.Data, HashtagDataItem{Time: label, Likes: st.series[i]})
		}
		data.HashtagAnalysis = append(data.HashtagAnalysis, h)
	}

	if len(data.HashtagAnalysis) == 0 {
		placeholder := HashtagAnalysis{Tag: "データなし"}
		for _, label := range labels {
			placeholder.Data = append(placeholder.Data, HashtagDataItem{Time: label})
		}
		data.HashtagAnalysis = append(data.HashtagAnalysis, placeholder)
	}

	if inWindow == 0 && period == Period2Hours {
		data.Message = fmt.Sprintf(
			"過去2時間（%s〜%s）の期間内にツイートが見つかりませんでした。",
			start.Format("15:04"), now.Format("15:04"),
		)
	}

	return data
}

// WarmFollowerCache refreshes the follower cache ahead of dashboard
// requests. The cron dispatcher calls this every five minutes, matching
// the cache TTL.
func WarmFollowerCache() {
	if config.XBearerToken() == "" || config.XUsername() == "" {
		return
	}
	if _, _, err := lookupUser(); err != nil {
		log.Printf("follower cache refresh failed: %v", err)
	}
}

// XStatus reports whether the X API integration is configured.
func XStatus() map[string]any {
	_, followers, fresh := cachedFollowers()
	return map[string]any{
		"configured":       config.XBearerToken() != "" && config.XUsername() != "",
		"username":         config.XUsername(),
		"cached_followers": followers,
		"cache_fresh":      fresh,
	}
}
