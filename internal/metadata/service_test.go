package metadata

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBodyValidation(t *testing.T) {
	valid := GenerateBody{
		ScriptSummary: "新曲の歌ってみた動画",
		VideoFormat:   "ショート動画",
		Purposes:      []string{"発見性向上"},
	}
	assert.NoError(t, valid.Validate())

	badFormat := valid
	badFormat.VideoFormat = "ポッドキャスト"
	assert.Error(t, badFormat.Validate())

	badPurpose := valid
	badPurpose.Purposes = []string{"バズりたい"}
	assert.Error(t, badPurpose.Validate())

	longSummary := valid
	longSummary.ScriptSummary = strings.Repeat("あ", 1001)
	assert.Error(t, longSummary.Validate())

	longChannel := valid
	longChannel.ChannelSummary = strings.Repeat("い", 201)
	assert.Error(t, longChannel.Validate())
}

func TestApplyForbiddenWords(t *testing.T) {
	r := Result{
		Titles:      []string{"最悪の事件", "楽しい動画", "ひどい話"},
		Description: "楽しい内容です\n最悪な部分もあります",
		Hashtags:    []string{"#楽しい", "#最悪"},
	}

	applyForbiddenWords(&r, "最悪, ひどい")

	assert.Equal(t, []string{"楽しい動画"}, r.Titles)
	assert.Equal(t, "楽しい内容です", r.Description)
	assert.Equal(t, []string{"#楽しい"}, r.Hashtags)
}

func TestNormalizeResult(t *testing.T) {
	r := Result{
		Titles:        []string{"タイトルA"},
		Hashtags:      []string{"#A"},
		ThumbnailText: ThumbnailText{Main: strings.Repeat("あ", 15)},
	}

	normalizeResult(&r)

	assert.Len(t, r.Titles, 3)
	assert.Len(t, r.Hashtags, 3)
	assert.Equal(t, "#VTuber", r.Hashtags[1])
	assert.Equal(t, strings.Repeat("あ", 10), r.ThumbnailText.Main)
}

func TestNormalizeResultCaps(t *testing.T) {
	r := Result{}
	for i := 0; i < 8; i++ {
		r.Titles = append(r.Titles, "t")
	}
	for i := 0; i < 12; i++ {
		r.Hashtags = append(r.Hashtags, "#t")
	}

	normalizeResult(&r)

	assert.Len(t, r.Titles, 5)
	assert.Len(t, r.Hashtags, 10)
}

func TestRuleBasedMetadata(t *testing.T) {
	r := ruleBasedMetadata(GenerateBody{
		ScriptSummary: "ゲーム実況のハイライトまとめ",
		VideoFormat:   "ショート動画",
		Purposes:      []string{"発見性向上", "登録者増加"},
	})

	assert.GreaterOrEqual(t, len(r.Titles), 3)
	assert.Contains(t, r.Hashtags, "#Shorts")
	assert.Contains(t, r.Hashtags, "#おすすめ")
	assert.Contains(t, r.Hashtags, "#チャンネル登録")
	assert.NotEmpty(t, r.Description)
	assert.LessOrEqual(t, len([]rune(r.ThumbnailText.Main)), 10)
}

func TestGenerateHandlerRejectsBadBody(t *testing.T) {
	app := fiber.New()
	MountController(app.Group("/metadata"))

	req := httptest.NewRequest("POST", "/metadata/generate",
		strings.NewReader(`{"script_summary": ""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
