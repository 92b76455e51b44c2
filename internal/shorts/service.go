package shorts

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/creatorstation/creator-dashboard/internal/config"
	"github.com/creatorstation/creator-dashboard/internal/db"
	"github.com/creatorstation/creator-dashboard/internal/models"
	"github.com/creatorstation/creator-dashboard/pkg/openai"
)

type Section struct {
	TimeRange string `json:"timeRange"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

type Script struct {
	ID           string    `json:"id"`
	Theme        string    `json:"theme"`
	Duration     int       `json:"duration"`
	ScriptFormat string    `json:"scriptFormat"`
	Tone         string    `json:"tone"`
	Sections     []Section `json:"sections"`
	GeneratedAt  string    `json:"generatedAt"`
}

var formatGuidance = map[string]string{
	"解説・教育":           "冒頭で結論を提示し、本編で根拠を順に説明する構成にしてください。",
	"物語・ストーリー":        "起承転結を意識し、続きが気になる展開にしてください。",
	"リスト・ランキング":       "項目を番号付きで紹介し、1位や最重要項目を最後に持ってきてください。",
	"How-to":          "手順を具体的なステップで示し、すぐ実践できる内容にしてください。",
	"レビュー・紹介":         "対象の特徴と率直な感想をバランス良く伝えてください。",
	"エンターテインメント・雑談":   "テンポ良く、笑いや共感を誘う内容にしてください。",
}

var toneGuidance = map[string]string{
	"カジュアル":  "友達に話すようなフランクな口調で書いてください。",
	"丁寧":     "です・ます調の丁寧な口調で書いてください。",
	"活発":     "勢いのある明るい口調で書いてください。",
	"落ち着いた":  "穏やかで聞き取りやすい口調で書いてください。",
	"専門的":    "専門用語を適度に使った信頼感のある口調で書いてください。",
}

var detailMultipliers = map[string]float64{
	"concise":  0.7,
	"standard": 1.0,
	"detailed": 1.5,
}

var detailMaxTokens = map[string]int{
	"concise":  1500,
	"standard": 2500,
	"detailed": 4000,
}

// sectionPlan splits the duration into opening/main/closing seconds.
func sectionPlan(duration int) (opening, main, closing int) {
	opening = int(float64(duration) * 0.2)
	if opening < 3 {
		opening = 3
	}
	if opening > 7 {
		opening = 7
	}
	closing = int(float64(duration) * 0.15)
	if closing < 3 {
		closing = 3
	}
	if closing > 6 {
		closing = 6
	}
	main = duration - opening - closing
	if main < 10 {
		main = 10
	}
	return opening, main, closing
}

// Generate builds a three-section script via the LLM, with a deterministic
// template fallback, and persists the result.
func Generate(body GenerateBody) (*Script, error) {
	detail := body.DetailLevel
	if detail == "" {
		detail = "standard"
	}

	opening, main, closing := sectionPlan(body.Duration)
	targetChars := int(float64(body.Duration*4) * detailMultipliers[detail])

	system := "あなたはYouTubeショート動画の放送作家です。" +
		"視聴者を惹きつける台本を日本語のJSONで出力してください。"
	user := fmt.Sprintf(
		"テーマ「%s」、長さ%d秒のショート動画台本を作成してください。\n"+
			"構成: オープニング%d秒、メイン%d秒、クロージング%d秒の3セクション。\n"+
			"全体の目安文字数: %d文字。\n%s\n%s\n"+
			`JSON形式: {"sections": [{"timeRange": "0-%d秒", "title": 文字列, "content": 文字列}, ...]}`,
		body.Theme, body.Duration, opening, main, closing, targetChars,
		formatGuidance[body.ScriptFormat], toneGuidance[body.Tone], opening,
	)

	var out struct {
		Sections []Section `json:"sections"`
	}
	raw, err := openai.ChatJSON(system, user, 0.8, detailMaxTokens[detail], &out)
	sections := out.Sections

	fallback := false
	if err != nil || len(sections) != 3 {
		if err != nil && err != openai.ErrNotConfigured {
			log.Printf("shorts generation fell back to template: %v", err)
		}
		sections = templateSections(body.Theme, opening, main, closing)
		fallback = true
	}

	db.LogGeneration(db.GenerationLog{
		Kind: "shorts", Model: config.OpenAIModel(), Prompt: user,
		Response: raw, Fallback: fallback,
	})

	now := time.Now().In(config.JST)
	script := &Script{
		ID:           uuid.NewString(),
		Theme:        body.Theme,
		Duration:     body.Duration,
		ScriptFormat: body.ScriptFormat,
		Tone:         body.Tone,
		Sections:     sections,
		GeneratedAt:  now.Format("2006/01/02 15:04:05"),
	}

	sectionsJSON, _ := json.Marshal(sections)
	record := models.ShortsScript{
		ID:           script.ID,
		Theme:        script.Theme,
		Duration:     script.Duration,
		ScriptFormat: script.ScriptFormat,
		Tone:         script.Tone,
		Sections:     sectionsJSON,
		GeneratedAt:  now,
	}
	if err := db.GetDB().Create(&record).Error; err != nil {
		return nil, fmt.Errorf("台本の保存に失敗しました: %w", err)
	}

	return script, nil
}

func templateSections(theme string, opening, main, closing int) []Section {
	return []Section{
		{
			TimeRange: fmt.Sprintf("0-%d秒", opening),
			Title:     "オープニング",
			Content:   fmt.Sprintf("「%s」について、今日は知らないと損する話をします！最後まで見てください。", theme),
		},
		{
			TimeRange: fmt.Sprintf("%d-%d秒", opening, opening+main),
			Title:     "メイン",
			Content:   fmt.Sprintf("%sのポイントを順番に紹介していきます。具体的な内容をここで展開してください。", theme),
		},
		{
			TimeRange: fmt.Sprintf("%d-%d秒", opening+main, opening+main+closing),
			Title:     "クロージング",
			Content:   "参考になったらチャンネル登録といいねをお願いします！",
		},
	}
}

// List returns saved scripts, newest first.
func List() ([]Script, error) {
	var records []models.ShortsScript
	if err := db.GetDB().Order("created_at desc").Find(&records).Error; err != nil {
		return nil, err
	}

	scripts := make([]Script, 0, len(records))
	for _, r := range records {
		var sections []Section
		_ = json.Unmarshal(r.Sections, &sections)
		scripts = append(scripts, Script{
			ID:           r.ID,
			Theme:        r.Theme,
			Duration:     r.Duration,
			ScriptFormat: r.ScriptFormat,
			Tone:         r.Tone,
			Sections:     sections,
			GeneratedAt:  r.GeneratedAt.In(config.JST).Format("2006/01/02 15:04:05"),
		})
	}
	return scripts, nil
}

var ErrNotFound = errors.New("指定された台本が見つかりません")

// Delete removes a saved script.
func Delete(id string) error {
	res := db.GetDB().Delete(&models.ShortsScript{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
