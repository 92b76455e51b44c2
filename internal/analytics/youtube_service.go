package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slices"
	"golang.org/x/oauth2"

	"github.com/creatorstation/creator-dashboard/internal/config"
)

var ytClient = resty.New().SetTimeout(30 * time.Second)

const (
	ytAnalyticsURL = "https://youtubeanalytics.googleapis.com/v2/reports"
	ytDataURL      = "https://www.googleapis.com/youtube/v3"
)

// ErrYouTubeAuth is returned when OAuth2 credentials are missing; the
// Analytics API has no API-key fallback for channel reports.
var ErrYouTubeAuth = fmt.Errorf("YouTube Analyticsの認証情報が設定されていません。OAuth2認証が必要です。")

type clientSecret struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	TokenURI     string `json:"token_uri"`
}

func loadClientSecret() (*clientSecret, error) {
	raw := config.YouTubeClientSecretJSON()
	if raw == "" {
		return nil, ErrYouTubeAuth
	}
	var wrapper map[string]clientSecret
	if err := json.Unmarshal([]byte(raw), &wrapper); err != nil {
		return nil, fmt.Errorf("client secret JSONの解析に失敗しました: %w", err)
	}
	for _, key := range []string{"installed", "web"} {
		if cs, ok := wrapper[key]; ok && cs.ClientID != "" {
			return &cs, nil
		}
	}
	return nil, fmt.Errorf("client secret JSONにinstalled/webキーがありません")
}

// youtubeAccessToken refreshes and returns an OAuth2 access token for the
// Analytics API.
func youtubeAccessToken() (string, error) {
	cs, err := loadClientSecret()
	if err != nil {
		return "", err
	}

	refresh := config.YouTubeRefreshToken()
	if refresh == "" {
		var saved struct {
			RefreshToken string `json:"refresh_token"`
		}
		if raw := config.YouTubeTokenJSON(); raw != "" {
			_ = json.Unmarshal([]byte(raw), &saved)
		}
		refresh = saved.RefreshToken
	}
	if refresh == "" {
		return "", ErrYouTubeAuth
	}

	tokenURI := cs.TokenURI
	if tokenURI == "" {
		tokenURI = "https://oauth2.googleapis.com/token"
	}
	conf := &oauth2.Config{
		ClientID:     cs.ClientID,
		ClientSecret: cs.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURI},
	}

	tok, err := conf.TokenSource(context.Background(), &oauth2.Token{RefreshToken: refresh}).Token()
	if err != nil {
		return "", fmt.Errorf("アクセストークンの更新に失敗しました: %w", err)
	}
	return tok.AccessToken, nil
}

type analyticsReport struct {
	// rows mix the day dimension (string) with numeric metrics
	Rows [][]any `json:"rows"`
}

// ytWindow returns the start/end dates of the period at JST day boundaries.
// End is tomorrow, the Analytics API treats endDate as exclusive.
func ytWindow(period string, now time.Time) (start, end time.Time, days int) {
	now = now.In(config.JST)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, config.JST)
	days = 7
	if period == Period1Month {
		days = 30
	}
	return today.AddDate(0, 0, -days), today.AddDate(0, 0, 1), days
}

func queryAnalytics(token, channelID string, start, end time.Time, daily bool) (*analyticsReport, error) {
	params := map[string]string{
		"ids":       "channel==" + channelID,
		"startDate": start.Format("2006-01-02"),
		"endDate":   end.Format("2006-01-02"),
		"metrics":   "views,estimatedMinutesWatched,averageViewDuration,subscribersGained,subscribersLost,shares",
	}
	if daily {
		params["dimensions"] = "day"
	}

	var out analyticsReport
	resp, err := ytClient.R().
		SetAuthToken(token).
		SetQueryParams(params).
		SetResult(&out).
		Get(ytAnalyticsURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("YouTube Analytics APIエラー: %s, %s", resp.Status(), resp.String())
	}
	return &out, nil
}

type periodTotals struct {
	views            int
	estimatedMinutes float64
	avgViewDuration  float64
	gained           int
	lost             int
	shares           int
}

func totalsFromReport(rep *analyticsReport) periodTotals {
	var t periodTotals
	for _, row := range rep.Rows {
		if len(row) < 6 {
			continue
		}
		t.views += asInt(row[0])
		t.estimatedMinutes += asFloat(row[1])
		t.avgViewDuration = asFloat(row[2])
		t.gained += asInt(row[3])
		t.lost += asInt(row[4])
		t.shares += asInt(row[5])
	}
	return t
}

func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	}
	return 0
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var isoDurationRe = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

func parseISODuration(s string) float64 {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	return float64(h*3600 + min*60 + sec)
}

type videoStats struct {
	averageDuration float64
	topViews        int
}

// fetchVideoStats walks the uploads playlist and averages video durations.
func fetchVideoStats(token, channelID string) (*videoStats, error) {
	var channels struct {
		Items []struct {
			ContentDetails struct {
				RelatedPlaylists struct {
					Uploads string `json:"uploads"`
				} `json:"relatedPlaylists"`
			} `json:"contentDetails"`
		} `json:"items"`
	}
	resp, err := ytClient.R().
		SetAuthToken(token).
		SetQueryParams(map[string]string{"part": "contentDetails", "id": channelID}).
		SetResult(&channels).
		Get(ytDataURL + "/channels")
	if err != nil {
		return nil, err
	}
	if resp.IsError() || len(channels.Items) == 0 {
		return nil, fmt.Errorf("チャンネル情報の取得に失敗しました: %s", resp.Status())
	}
	uploads := channels.Items[0].ContentDetails.RelatedPlaylists.Uploads

	var videoIDs []string
	pageToken := ""
	for {
		var page struct {
			Items []struct {
				ContentDetails struct {
					VideoID string `json:"videoId"`
				} `json:"contentDetails"`
			} `json:"items"`
			NextPageToken string `json:"nextPageToken"`
		}
		req := ytClient.R().
			SetAuthToken(token).
			SetQueryParams(map[string]string{
				"part":       "contentDetails",
				"playlistId": uploads,
				"maxResults": "50",
			}).
			SetResult(&page)
		if pageToken != "" {
			req.SetQueryParam("pageToken", pageToken)
		}
		resp, err := req.Get(ytDataURL + "/playlistItems")
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("アップロード動画一覧の取得に失敗しました: %s", resp.Status())
		}
		for _, item := range page.Items {
			videoIDs = append(videoIDs, item.ContentDetails.VideoID)
		}
		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	stats := &videoStats{}
	var totalDur float64
	var count int
	for i := 0; i < len(videoIDs); i += 50 {
		end := i + 50
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		var vids struct {
			Items []struct {
				ContentDetails struct {
					Duration string `json:"duration"`
				} `json:"contentDetails"`
				Statistics struct {
					ViewCount string `json:"viewCount"`
				} `json:"statistics"`
			} `json:"items"`
		}
		resp, err := ytClient.R().
			SetAuthToken(token).
			SetQueryParams(map[string]string{
				"part": "contentDetails,statistics",
				"id":   joinIDs(videoIDs[i:end]),
			}).
			SetResult(&vids).
			Get(ytDataURL + "/videos")
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("動画詳細の取得に失敗しました: %s", resp.Status())
		}
		for _, v := range vids.Items {
			totalDur += parseISODuration(v.ContentDetails.Duration)
			count++
			if views, err := strconv.Atoi(v.Statistics.ViewCount); err == nil && views > stats.topViews {
				stats.topViews = views
			}
		}
	}
	if count > 0 {
		stats.averageDuration = totalDur / float64(count)
	}
	return stats, nil
}

func joinIDs(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += id
	}
	return out
}

// postClickQuality scores each day 0-100 from min-max normalised view share,
// subscribers gained and shares, weighted 0.6/0.2/0.2.
func postClickQuality(days []DailyDataItem, gained, shares []int) {
	totalViews := 0
	for _, d := range days {
		totalViews += d.Views
	}

	viewPct := make([]float64, len(days))
	for i, d := range days {
		if totalViews > 0 {
			viewPct[i] = float64(d.Views) / float64(totalViews) * 100
		}
	}

	normed := func(vals []float64) []float64 {
		mn, mx := math.Inf(1), math.Inf(-1)
		for _, v := range vals {
			mn = math.Min(mn, v)
			mx = math.Max(mx, v)
		}
		out := make([]float64, len(vals))
		for i, v := range vals {
			if mx == mn {
				if v > 0 {
					out[i] = 100
				}
				continue
			}
			out[i] = (v - mn) / (mx - mn) * 100
		}
		return out
	}

	toF := func(ints []int) []float64 {
		out := make([]float64, len(ints))
		for i, v := range ints {
			out[i] = float64(v)
		}
		return out
	}

	nv := normed(viewPct)
	ng := normed(toF(gained))
	ns := normed(toF(shares))
	for i := range days {
		score := round2(0.6*nv[i] + 0.2*ng[i] + 0.2*ns[i])
		days[i].PostClickQualityScore = &score
	}
}

// AnalyzeYouTube runs the Analytics API queries for the period and builds
// the dashboard payload with previous-period comparison.
func AnalyzeYouTube(period string) (*YouTubeAnalyticsData, error) {
	channelID := config.YouTubeChannelID()
	if channelID == "" {
		return nil, fmt.Errorf("YOUTUBE_CHANNEL_IDが設定されていません")
	}

	token, err := youtubeAccessToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().In(config.JST)
	start, end, days := ytWindow(period, now)
	prevStart := start.AddDate(0, 0, -days)

	current, err := queryAnalytics(token, channelID, start, end, false)
	if err != nil {
		return nil, err
	}
	totals := totalsFromReport(current)

	data := &YouTubeAnalyticsData{
		Views:                   totals.views,
		EstimatedMinutesWatched: totals.estimatedMinutes,
		AverageViewDuration:     totals.avgViewDuration,
		SubscribersGained:       totals.gained,
		SubscribersLost:         totals.lost,
		Shares:                  totals.shares,
	}

	if prev, err := queryAnalytics(token, channelID, prevStart, start, false); err == nil {
		pt := totalsFromReport(prev)
		net := pt.gained - pt.lost
		data.PrevViews = &pt.views
		data.PrevEstimatedMinutes = &pt.estimatedMinutes
		data.PrevAverageViewDuration = &pt.avgViewDuration
		zero := 0
		data.PrevImpressions = &zero
		data.PrevNetSubscribers = &net
		data.PrevShares = &pt.shares
	}

	if daily, err := queryAnalytics(token, channelID, start, end, true); err == nil {
		var gained, shares []int
		for _, row := range daily.Rows {
			if len(row) < 7 {
				continue
			}
			item := DailyDataItem{
				Date:                asString(row[0]),
				Views:               asInt(row[1]),
				EstimatedMinutes:    asFloat(row[2]),
				AverageViewDuration: asFloat(row[3]),
				NetSubscribers:      asInt(row[4]) - asInt(row[5]),
			}
			data.DailyData = append(data.DailyData, item)
			gained = append(gained, asInt(row[4]))
			shares = append(shares, asInt(row[6]))
		}
		postClickQuality(data.DailyData, gained, shares)
		slices.SortFunc(data.DailyData, func(a, b DailyDataItem) int {
			if a.Date < b.Date {
				return -1
			}
			if a.Date > b.Date {
				return 1
			}
			return 0
		})
	}

	if vs, err := fetchVideoStats(token, channelID); err == nil && vs.averageDuration > 0 {
		avg := round2(vs.averageDuration)
		data.AverageVideoDuration = &avg
		data.TopVideoViews = &vs.topViews
		retention := round2(data.AverageViewDuration / vs.averageDuration * 100)
		data.ViewerRetentionRate = &retention
		if data.PrevAverageViewDuration != nil {
			prevRet := round2(*data.PrevAverageViewDuration / vs.averageDuration * 100)
			data.PrevViewerRetentionRate = &prevRet
		}
	}

	return data, nil
}
