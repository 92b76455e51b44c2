package analytics

import (
	"fmt"
	"log"
	"time"

	"github.com/creatorstation/creator-dashboard/internal/config"
	"github.com/creatorstation/creator-dashboard/internal/db"
	"github.com/creatorstation/creator-dashboard/pkg/openai"
)

var vtuberHashtags = []string{
	"#新人VTuber", "#Vtuber好きと繋がりたい", "#VTuber",
	"#配信者", "#ゲーム配信", "#歌ってみた",
}

const improveSystemPrompt = "あなたはSNS運用とコンテンツ戦略の専門家です。" +
	"分析データに基づいて、日本語で具体的かつ実行可能な改善提案をJSON形式で出力してください。"

// SuggestXImprovements asks the LLM for suggestions, falling back to the
// rule-based generator when the LLM is unavailable or misbehaves.
func SuggestXImprovements(body XImprovementsBody) *ImprovementSuggestion {
	user := fmt.Sprintf(
		"以下のX(Twitter)分析データ（期間: %s）を分析してください。\n"+
			"いいね: %d, リツイート: %d, リプライ: %d, インプレッション: %d, フォロワー: %d\n"+
			"上位ハッシュタグ: %s\n"+
			`JSONで出力: {"summary": 文字列, "key_insights": 文字列配列(最大4), `+
			`"recommendations": 文字列配列(最大5), "best_posting_time": 文字列, `+
			`"hashtag_recommendations": 文字列配列(最大5)}`,
		body.Period, body.LikesCount, body.RetweetsCount, body.RepliesCount,
		body.ImpressionsCount, body.FollowersCount, topTags(body.HashtagAnalysis),
	)

	var s ImprovementSuggestion
	raw, err := openai.ChatJSON(improveSystemPrompt, user, 0.7, 0, &s)
	if err != nil {
		if err != openai.ErrNotConfigured {
			log.Printf("X improvement generation fell back to rules: %v", err)
		}
		s = ruleBasedXImprovements(body)
		db.LogGeneration(db.GenerationLog{Kind: "x_improvements", Prompt: user, Fallback: true})
		return &s
	}

	clampList(&s.KeyInsights, 4)
	clampList(&s.Recommendations, 5)
	clampList(&s.HashtagRecommendations, 5)
	db.LogGeneration(db.GenerationLog{
		Kind: "x_improvements", Model: config.OpenAIModel(), Prompt: user, Response: raw,
	})
	return &s
}

func topTags(tags []HashtagAnalysis) string {
	out := ""
	for i, t := range tags {
		if i >= 3 {
			break
		}
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s(%d likes)", t.Tag, t.Likes)
	}
	if out == "" {
		out = "なし"
	}
	return out
}

func clampList(list *[]string, max int) {
	if len(*list) > max {
		*list = (*list)[:max]
	}
}

// bestPostingTime picks a slot by the current JST hour.
func bestPostingTime(now time.Time) string {
	switch h := now.In(config.JST).Hour(); {
	case h >= 6 && h < 12:
		return "20:00〜24:00"
	case h >= 12 && h < 18:
		return "12:00〜14:00 または 19:00〜23:00"
	default:
		return "20:00〜22:00"
	}
}

func ruleBasedXImprovements(body XImprovementsBody) ImprovementSuggestion {
	total := body.LikesCount + body.RetweetsCount + body.RepliesCount

	var engagementRate float64
	if body.ImpressionsCount > 0 {
		engagementRate = float64(total) / float64(body.ImpressionsCount) * 100
	}

	var insights []string
	switch {
	case engagementRate >= 3.0:
		insights = append(insights, fmt.Sprintf("エンゲージメント率%.1f%%は非常に高い水準です。現在の投稿スタイルを継続しましょう。", engagementRate))
	case engagementRate >= 1.0:
		insights = append(insights, fmt.Sprintf("エンゲージメント率%.1f%%は平均的な水準です。画像や動画の活用で向上が見込めます。", engagementRate))
	default:
		insights = append(insights, fmt.Sprintf("エンゲージメント率%.1f%%は改善の余地があります。投稿内容の見直しを検討しましょう。", engagementRate))
	}

	if body.LikesCount > 0 {
		if float64(body.RetweetsCount)/float64(body.LikesCount) > 0.3 {
			insights = append(insights, "リツイート比率が高く、拡散力のある投稿ができています。")
		}
		if float64(body.RepliesCount)/float64(body.LikesCount) > 0.1 {
			insights = append(insights, "リプライが多く、フォロワーとの交流が活発です。")
		}
	}

	recommendations := []string{
		"投稿時間を視聴者のアクティブな時間帯に合わせましょう。",
		"ハッシュタグを2〜3個に絞って関連性の高いものを使いましょう。",
		"画像や動画付きの投稿でインプレッションを増やしましょう。",
		"フォロワーのリプライには積極的に返信しましょう。",
	}

	return ImprovementSuggestion{
		Summary: fmt.Sprintf("期間「%s」の合計エンゲージメントは%d件、エンゲージメント率は%.1f%%でした。",
			body.Period, total, engagementRate),
		KeyInsights:            insights,
		Recommendations:        recommendations,
		BestPostingTime:        bestPostingTime(time.Now()),
		HashtagRecommendations: vtuberHashtags[:5],
	}
}

// SuggestYouTubeImprovements mirrors the X flow for YouTube metrics.
func SuggestYouTubeImprovements(body YouTubeImprovementsBody) *ImprovementSuggestion {
	user := fmt.Sprintf(
		"以下のYouTube分析データを分析してください。\n"+
			"視聴回数: %d, 総再生時間(分): %.0f, 平均視聴時間(秒): %.0f, "+
			"登録者増: %d, 登録者減: %d, 視聴維持率: %s\n"+
			`JSONで出力: {"summary": 文字列, "key_insights": 文字列配列(最大5), `+
			`"recommendations": 文字列配列(最大6), "best_posting_time": 文字列, `+
			`"hashtag_recommendations": 文字列配列(最大5)}`,
		body.Views, body.EstimatedMinutesWatched, body.AverageViewDuration,
		body.SubscribersGained, body.SubscribersLost, fmtRate(body.ViewerRetentionRate),
	)

	var s ImprovementSuggestion
	raw, err := openai.ChatJSON(improveSystemPrompt, user, 0.7, 0, &s)
	if err != nil {
		if err != openai.ErrNotConfigured {
			log.Printf("YouTube improvement generation fell back to rules: %v", err)
		}
		s = ruleBasedYouTubeImprovements(body)
		db.LogGeneration(db.GenerationLog{Kind: "youtube_improvements", Prompt: user, Fallback: true})
		return &s
	}

	clampList(&s.KeyInsights, 5)
	clampList(&s.Recommendations, 6)
	clampList(&s.HashtagRecommendations, 5)
	db.LogGeneration(db.GenerationLog{
		Kind: "youtube_improvements", Model: config.OpenAIModel(), Prompt: user, Response: raw,
	})
	return &s
}

func fmtRate(v *float64) string {
	if v == nil {
		return "不明"
	}
	return fmt.Sprintf("%.1f%%", *v)
}

func ruleBasedYouTubeImprovements(body YouTubeImprovementsBody) ImprovementSuggestion {
	var insights []string

	if body.PrevViews != nil && *body.PrevViews > 0 {
		change := (float64(body.Views) - float64(*body.PrevViews)) / float64(*body.PrevViews) * 100
		if change >= 0 {
			insights = append(insights, fmt.Sprintf("視聴回数が前期間比+%.1f%%と伸びています。", change))
		} else {
			insights = append(insights, fmt.Sprintf("視聴回数が前期間比%.1f%%と減少しています。投稿頻度の見直しを検討しましょう。", change))
		}
	}

	if body.ViewerRetentionRate != nil {
		switch r := *body.ViewerRetentionRate; {
		case r >= 50:
			insights = append(insights, fmt.Sprintf("視聴維持率%.1f%%は優秀です。冒頭の構成が機能しています。", r))
		case r >= 30:
			insights = append(insights, fmt.Sprintf("視聴維持率%.1f%%は平均的です。冒頭15秒のフックを強化しましょう。", r))
		default:
			insights = append(insights, fmt.Sprintf("視聴維持率%.1f%%は低めです。動画の長さと構成を見直しましょう。", r))
		}
	}

	net := body.SubscribersGained - body.SubscribersLost
	if net > 0 {
		insights = append(insights, fmt.Sprintf("登録者が純増+%d人です。この調子で継続しましょう。", net))
	} else {
		insights = append(insights, "登録者の純増が伸び悩んでいます。登録を促す導線を強化しましょう。")
	}

	recommendations := []string{
		"サムネイルとタイトルのA/Bテストを行いましょう。",
		"ショート動画で新規視聴者の入口を増やしましょう。",
		"終了画面で関連動画への誘導を設定しましょう。",
		"コメントへの返信で視聴者との関係を深めましょう。",
		"アナリティクスの視聴者属性に合わせた投稿時間にしましょう。",
	}

	// watch ratio: average watch seconds per view against the average
	// video length
	if body.AverageVideoDuration != nil && *body.AverageVideoDuration > 0 && body.Views > 0 {
		avgWatch := body.EstimatedMinutesWatched * 60 / float64(body.Views)
		ratio := avgWatch / *body.AverageVideoDuration * 100
		if ratio >= 60 {
			insights = append(insights, fmt.Sprintf("動画長に対する視聴割合%.1f%%は十分です。動画の長さが視聴者に合っています。", ratio))
		} else {
			insights = append(insights, fmt.Sprintf("動画長に対する視聴割合は%.1f%%です。離脱ポイントを分析して構成を見直しましょう。", ratio))
		}
		if ratio < 50 {
			recommendations = append(recommendations, "動画を短く編集して、最後まで見てもらえる長さにしましょう。")
		}
	}

	return ImprovementSuggestion{
		Summary: fmt.Sprintf("視聴回数%d回、総再生時間%.0f分、登録者純増%d人でした。",
			body.Views, body.EstimatedMinutesWatched, net),
		KeyInsights:            insights,
		Recommendations:        recommendations,
		BestPostingTime:        "19:00〜22:00",
		HashtagRecommendations: vtuberHashtags[:5],
	}
}
