package autopost

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/creatorstation/creator-dashboard/internal/config"
	"github.com/creatorstation/creator-dashboard/internal/db"
	"github.com/creatorstation/creator-dashboard/pkg/openai"
)

const maxPostLength = 280

type Result struct {
	Text           string `json:"text"`
	CharacterCount int    `json:"character_count"`
}

var toneOpeners = map[string]string{
	"カジュアル": "やっほー！",
	"丁寧":    "こんにちは。",
	"活発":    "みんなー！",
	"落ち着いた": "こんばんは。",
	"専門的":   "お知らせです。",
}

var purposeLines = map[string]string{
	"親近感を高めたい":     "今日もまったり過ごしてます",
	"視聴・参加を誘導したい": "今日の配信、ぜひ遊びに来てください",
	"情報を届けたい":      "大事なお知らせがあります",
}

var ctaLines = map[string]string{
	"見てほしい":       "チェックしてみてね！",
	"参加してほしい":     "一緒に楽しみましょう！",
	"詳細を確認してほしい":  "詳しくはリンクから！",
}

// Generate produces a post within the 280 character limit. LLM first,
// template fallback second.
func Generate(body GenerateBody) *Result {
	system := "あなたはSNS投稿文のコピーライターです。" +
		"X(Twitter)の280文字制限内で魅力的な投稿文を日本語で1つだけ出力してください。" +
		"投稿文以外の説明は不要です。"
	user := fmt.Sprintf(
		"投稿タイプ: %s\n目的: %s\n絵文字スタイル: %s / 使用度: %s\n"+
			"トーン: %s\n投稿主: %s\n必須情報: %s\n画像の役割: %s\nCTA: %s %s",
		body.PostType, body.Purpose, body.EmojiStyle, body.EmojiUsage,
		body.Tone, body.PosterType, body.RequiredInfo, body.ImageRole,
		body.CTA, body.CTACustom,
	)

	text, err := openai.Chat(system, user, 0.8, 500, false)
	fallback := false
	if err != nil {
		if err != openai.ErrNotConfigured {
			log.Printf("auto post generation fell back to template: %v", err)
		}
		text = templatePost(body)
		fallback = true
	}

	text = strings.TrimSpace(openai.StripCodeFence(text))
	if utf8.RuneCountInString(text) > maxPostLength {
		runes := []rune(text)
		text = string(runes[:maxPostLength-3]) + "..."
	}

	db.LogGeneration(db.GenerationLog{
		Kind: "auto_post", Model: config.OpenAIModel(), Prompt: user,
		Response: text, Fallback: fallback,
	})

	return &Result{Text: text, CharacterCount: utf8.RuneCountInString(text)}
}

func templatePost(body GenerateBody) string {
	var parts []string

	if opener, ok := toneOpeners[body.Tone]; ok {
		parts = append(parts, opener)
	}
	if line, ok := purposeLines[body.Purpose]; ok {
		parts = append(parts, line)
	} else {
		parts = append(parts, body.PostType)
	}
	if body.RequiredInfo != "" {
		parts = append(parts, body.RequiredInfo)
	}

	switch body.CTA {
	case "なし":
	case "自由入力":
		if body.CTACustom != "" {
			parts = append(parts, body.CTACustom)
		}
	default:
		if line, ok := ctaLines[body.CTA]; ok {
			parts = append(parts, line)
		}
	}

	text := strings.Join(parts, "\n")
	switch body.EmojiUsage {
	case "多用する":
		text += "\n✨🎉💫"
	case "バランス良く":
		text += " ✨"
	}
	return text
}
