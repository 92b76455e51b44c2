package metadata

import (
	"fmt"
	"log"
	"strings"

	"github.com/creatorstation/creator-dashboard/internal/config"
	"github.com/creatorstation/creator-dashboard/internal/db"
	"github.com/creatorstation/creator-dashboard/pkg/openai"
)

type ThumbnailText struct {
	Main string `json:"main"`
	Sub  string `json:"sub"`
}

type Result struct {
	Titles        []string      `json:"titles"`
	Description   string        `json:"description"`
	Hashtags      []string      `json:"hashtags"`
	ThumbnailText ThumbnailText `json:"thumbnail_text"`
}

var formatHashtags = map[string][]string{
	"ショート動画": {"#Shorts", "#ショート"},
	"通常動画":   {"#YouTube"},
	"ライブ":    {"#ライブ配信", "#生配信"},
}

var purposeHashtags = map[string][]string{
	"同時接続増加": {"#参加型"},
	"登録者増加":  {"#チャンネル登録"},
	"発見性向上":  {"#おすすめ"},
	"視聴維持改善": {"#最後まで見てね"},
}

// Generate produces titles, description, hashtags and thumbnail text,
// filtered against the forbidden word list.
func Generate(body GenerateBody) *Result {
	system := "あなたはYouTubeのメタデータ最適化の専門家です。" +
		"クリックされやすく検索に強いメタデータを日本語のJSONで出力してください。"
	user := fmt.Sprintf(
		"以下の動画のメタデータを作成してください。\n"+
			"脚本要約: %s\n動画形式: %s\n目的: %s\nチャンネル概要: %s\n"+
			`JSON形式: {"titles": 文字列配列(3〜5個), "description": 文字列, `+
			`"hashtags": 文字列配列(3〜10個、#付き), `+
			`"thumbnail_text": {"main": 10文字以内, "sub": 文字列}}`,
		body.ScriptSummary, body.VideoFormat,
		strings.Join(body.Purposes, "、"), body.ChannelSummary,
	)

	var r Result
	raw, err := openai.ChatJSON(system, user, 0.7, 2000, &r)
	fallback := false
	if err != nil {
		if err != openai.ErrNotConfigured {
			log.Printf("metadata generation fell back to rules: %v", err)
		}
		r = ruleBasedMetadata(body)
		fallback = true
	}

	db.LogGeneration(db.GenerationLog{
		Kind: "metadata", Model: config.OpenAIModel(), Prompt: user,
		Response: raw, Fallback: fallback,
	})

	applyForbiddenWords(&r, body.ForbiddenWords)
	normalizeResult(&r)
	return &r
}

// applyForbiddenWords drops titles and hashtags containing a banned word and
// blanks matching description lines.
func applyForbiddenWords(r *Result, raw string) {
	words := splitForbidden(raw)
	if len(words) == 0 {
		return
	}

	contains := func(s string) bool {
		for _, w := range words {
			if strings.Contains(s, w) {
				return true
			}
		}
		return false
	}

	var titles []string
	for _, t := range r.Titles {
		if !contains(t) {
			titles = append(titles, t)
		}
	}
	r.Titles = titles

	var lines []string
	for _, line := range strings.Split(r.Description, "\n") {
		if !contains(line) {
			lines = append(lines, line)
		}
	}
	r.Description = strings.Join(lines, "\n")

	var tags []string
	for _, t := range r.Hashtags {
		if !contains(t) {
			tags = append(tags, t)
		}
	}
	r.Hashtags = tags
}

func splitForbidden(raw string) []string {
	var words []string
	for _, w := range strings.Split(raw, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// normalizeResult pads titles to 3 and hashtags to 3, caps at 5 and 10,
// and trims thumbnail main text to 10 runes.
func normalizeResult(r *Result) {
	for i := len(r.Titles); i < 3; i++ {
		r.Titles = append(r.Titles, fmt.Sprintf("タイトル候補%d", i+1))
	}
	if len(r.Titles) > 5 {
		r.Titles = r.Titles[:5]
	}

	for len(r.Hashtags) < 3 {
		r.Hashtags = append(r.Hashtags, "#VTuber")
	}
	if len(r.Hashtags) > 10 {
		r.Hashtags = r.Hashtags[:10]
	}

	if main := []rune(r.ThumbnailText.Main); len(main) > 10 {
		r.ThumbnailText.Main = string(main[:10])
	}
}

func ruleBasedMetadata(body GenerateBody) Result {
	summary := []rune(body.ScriptSummary)
	keyword := string(summary)
	if len(summary) > 20 {
		keyword = string(summary[:20])
	}

	titles := []string{
		fmt.Sprintf("【%s】%s", body.VideoFormat, keyword),
		fmt.Sprintf("%s｜見逃し厳禁の内容です", keyword),
		fmt.Sprintf("知らないと損！%s", keyword),
	}

	description := fmt.Sprintf(
		"%s\n\nご視聴ありがとうございます！\nチャンネル登録・高評価で応援よろしくお願いします。",
		body.ScriptSummary,
	)

	hashtags := append([]string{}, formatHashtags[body.VideoFormat]...)
	for _, p := range body.Purposes {
		hashtags = append(hashtags, purposeHashtags[p]...)
	}
	hashtags = append(hashtags, "#VTuber")

	return Result{
		Titles:      titles,
		Description: description,
		Hashtags:    hashtags,
		ThumbnailText: ThumbnailText{
			Main: string([]rune(keyword)[:min(10, len([]rune(keyword)))]),
			Sub:  "最後まで見てね",
		},
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
