package autopost

import (
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatePost(t *testing.T) {
	text := templatePost(GenerateBody{
		PostType:     "配信告知",
		Purpose:      "視聴・参加を誘導したい",
		Tone:         "カジュアル",
		EmojiUsage:   "バランス良く",
		CTA:          "参加してほしい",
		RequiredInfo: "本日21時より配信",
	})

	assert.Contains(t, text, "やっほー！")
	assert.Contains(t, text, "本日21時より配信")
	assert.Contains(t, text, "一緒に楽しみましょう！")
	assert.Contains(t, text, "✨")
}

func TestTemplatePostCustomCTA(t *testing.T) {
	text := templatePost(GenerateBody{
		PostType:  "お知らせ",
		Purpose:   "情報を届けたい",
		Tone:      "丁寧",
		CTA:       "自由入力",
		CTACustom: "リプライで教えてください",
	})

	assert.Contains(t, text, "リプライで教えてください")
}

func TestTemplatePostNoCTA(t *testing.T) {
	text := templatePost(GenerateBody{
		PostType: "朝の挨拶",
		Purpose:  "親近感を高めたい",
		Tone:     "活発",
		CTA:      "なし",
	})

	assert.NotContains(t, text, "チェックしてみてね")
}

// Generate without an API key takes the template path and still honors the
// character limit.
func TestGenerateFallsBackWithinLimit(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	result := Generate(GenerateBody{
		PostType:     "配信告知",
		Purpose:      "視聴・参加を誘導したい",
		EmojiStyle:   "適度に",
		EmojiUsage:   "多用する",
		Tone:         "カジュアル",
		PosterType:   "VTuber",
		RequiredInfo: strings.Repeat("長い必須情報です。", 50),
		CTA:          "見てほしい",
	})

	assert.LessOrEqual(t, result.CharacterCount, maxPostLength)
	assert.Equal(t, utf8.RuneCountInString(result.Text), result.CharacterCount)
	assert.True(t, strings.HasSuffix(result.Text, "..."))
}

func TestGenerateHandlerRequiresFields(t *testing.T) {
	app := fiber.New()
	MountController(app.Group("/auto-post"))

	req := httptest.NewRequest("POST", "/auto-post/generate",
		strings.NewReader(`{"post_type": "朝の挨拶"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
