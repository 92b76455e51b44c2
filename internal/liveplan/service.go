package liveplan

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creatorstation/creator-dashboard/internal/config"
	"github.com/creatorstation/creator-dashboard/internal/db"
	"github.com/creatorstation/creator-dashboard/internal/models"
	"github.com/creatorstation/creator-dashboard/pkg/openai"
)

type FlowItem struct {
	TimeRange string `json:"time_range"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

type Plan struct {
	ID                 string     `json:"id"`
	Type               string     `json:"type"`
	Title              string     `json:"title"`
	DurationHours      int        `json:"duration_hours"`
	DurationMinutes    int        `json:"duration_minutes"`
	Purposes           []string   `json:"purposes"`
	TargetAudience     string     `json:"target_audience"`
	PreferredTimeStart string     `json:"preferred_time_start,omitempty"`
	PreferredTimeEnd   string     `json:"preferred_time_end,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	Difficulty         string     `json:"difficulty,omitempty"`
	Flow               []FlowItem `json:"flow"`
	Preparations       []string   `json:"preparations"`
	GeneratedAt        string     `json:"generated_at"`
}

var ErrNotFound = errors.New("指定された企画案が見つかりません")

// section templates per stream type, used when the LLM is unavailable
var typeSections = map[string][]string{
	"雑談":     {"近況トーク", "視聴者コメント拾い", "フリートーク"},
	"ゲーム":    {"ゲーム紹介と目標設定", "ゲームプレイ", "ハイライト振り返り"},
	"コラボ":    {"ゲスト紹介", "コラボ企画本編", "感想とお知らせ"},
	"トーク企画":  {"企画説明", "企画本編", "結果発表"},
	"歌枠":     {"喉慣らしと選曲", "歌唱パート", "リクエスト対応"},
	"ASMR":   {"導入と環境説明", "ASMR本編", "クールダウン"},
	"Q&A":    {"質問の集め方説明", "質問回答", "締めの挨拶"},
	"特別イベント": {"イベント開始の挨拶", "イベント本編", "お礼と今後の告知"},
}

var basePreparations = []string{
	"配信タイトルとサムネイルの用意",
	"配信ソフトの動作確認",
	"SNSでの告知投稿",
}

var typePreparations = map[string][]string{
	"雑談":     {"話題リストの用意"},
	"ゲーム":    {"ゲームの起動確認とキャプチャ設定"},
	"コラボ":    {"ゲストとの通話テスト", "コラボ相手への事前共有資料"},
	"トーク企画":  {"企画の進行台本"},
	"歌枠":     {"セットリストの作成", "音源と歌詞の準備"},
	"ASMR":   {"マイクとバイノーラル機材の確認"},
	"Q&A":    {"事前質問の収集"},
	"特別イベント": {"イベント用素材・演出の準備"},
}

// Generate builds a stream plan via the LLM with a rule-based fallback,
// then persists it.
func Generate(body GenerateBody) (*Plan, error) {
	total := body.TotalMinutes()

	system := "あなたはVTuberの配信プロデューサーです。" +
		"実行しやすいライブ配信の進行表を日本語のJSONで出力してください。"
	user := fmt.Sprintf(
		"形式「%s」、タイトル「%s」、合計%d分のライブ配信企画を作成してください。\n"+
			"目的: %s / ターゲット層: %s\n補足: %s\n"+
			`JSON形式: {"flow": [{"time_range": "0-10分", "title": 文字列, "content": 文字列}, ...], `+
			`"preparations": 文字列配列}`,
		body.Type, body.Title, total,
		strings.Join(body.Purposes, "、"), body.TargetAudience, body.Notes,
	)

	var out struct {
		Flow         []FlowItem `json:"flow"`
		Preparations []string   `json:"preparations"`
	}
	raw, err := openai.ChatJSON(system, user, 0.7, 2500, &out)

	flow, preparations := out.Flow, out.Preparations
	fallback := false
	if err != nil || len(flow) == 0 {
		if err != nil && err != openai.ErrNotConfigured {
			log.Printf("live plan generation fell back to rules: %v", err)
		}
		flow, preparations = ruleBasedPlan(body.Type, total, body.Difficulty)
		fallback = true
	}

	db.LogGeneration(db.GenerationLog{
		Kind: "live_plan", Model: config.OpenAIModel(), Prompt: user,
		Response: raw, Fallback: fallback,
	})

	now := time.Now().In(config.JST)
	plan := &Plan{
		ID:                 uuid.NewString(),
		Type:               body.Type,
		Title:              body.Title,
		DurationHours:      body.DurationHours,
		DurationMinutes:    body.DurationMinutes,
		Purposes:           body.Purposes,
		TargetAudience:     body.TargetAudience,
		PreferredTimeStart: body.PreferredTimeStart,
		PreferredTimeEnd:   body.PreferredTimeEnd,
		Notes:              body.Notes,
		Difficulty:         body.Difficulty,
		Flow:               flow,
		Preparations:       preparations,
		GeneratedAt:        now.Format("2006-01-02 15:04:05"),
	}

	purposesJSON, _ := json.Marshal(plan.Purposes)
	flowJSON, _ := json.Marshal(plan.Flow)
	prepJSON, _ := json.Marshal(plan.Preparations)
	record := models.LivePlan{
		ID:                 plan.ID,
		Type:               plan.Type,
		Title:              plan.Title,
		DurationHours:      plan.DurationHours,
		DurationMinutes:    plan.DurationMinutes,
		Purposes:           purposesJSON,
		TargetAudience:     plan.TargetAudience,
		PreferredTimeStart: plan.PreferredTimeStart,
		PreferredTimeEnd:   plan.PreferredTimeEnd,
		Notes:              plan.Notes,
		Difficulty:         plan.Difficulty,
		Flow:               flowJSON,
		Preparations:       prepJSON,
		GeneratedAt:        now,
	}
	if err := db.GetDB().Create(&record).Error; err != nil {
		return nil, fmt.Errorf("企画案の保存に失敗しました: %w", err)
	}

	return plan, nil
}

// ruleBasedPlan splits the stream into opening/main/ending and fills the
// main block with per-type sections.
func ruleBasedPlan(streamType string, total int, difficulty string) ([]FlowItem, []string) {
	edge := int(float64(total) * 0.1)
	if edge < 5 {
		edge = 5
	}
	if edge > 10 {
		edge = 10
	}

	sections, ok := typeSections[streamType]
	if !ok {
		sections = []string{"メインコンテンツ前半", "メインコンテンツ中盤", "メインコンテンツ後半"}
	}

	mainTotal := total - edge*2
	per := mainTotal / len(sections)

	flow := []FlowItem{{
		TimeRange: fmt.Sprintf("0-%d分", edge),
		Title:     "オープニング",
		Content:   "挨拶と今日の配信内容の説明、初見さんへの声かけ。",
	}}
	cursor := edge
	for i, title := range sections {
		width := per
		if i == len(sections)-1 {
			width = mainTotal - per*(len(sections)-1)
		}
		flow = append(flow, FlowItem{
			TimeRange: fmt.Sprintf("%d-%d分", cursor, cursor+width),
			Title:     title,
			Content:   fmt.Sprintf("%sを中心に進行します。コメントを拾いながらテンポを保ちましょう。", title),
		})
		cursor += width
	}
	flow = append(flow, FlowItem{
		TimeRange: fmt.Sprintf("%d-%d分", cursor, total),
		Title:     "エンディング",
		Content:   "今日のまとめと次回予告、チャンネル登録のお願い。",
	})

	preparations := append([]string{}, basePreparations...)
	preparations = append(preparations, typePreparations[streamType]...)
	switch difficulty {
	case "high":
		preparations = append(preparations,
			"リハーサルの実施",
			"切り抜き用のタイムスタンプ記録の準備",
		)
	case "low":
		if len(preparations) > 3 {
			preparations = preparations[:3]
		}
	}

	return flow, preparations
}

func planFromRecord(r models.LivePlan) Plan {
	var purposes, preparations []string
	var flow []FlowItem
	_ = json.Unmarshal(r.Purposes, &purposes)
	_ = json.Unmarshal(r.Flow, &flow)
	_ = json.Unmarshal(r.Preparations, &preparations)
	return Plan{
		ID:                 r.ID,
		Type:               r.Type,
		Title:              r.Title,
		DurationHours:      r.DurationHours,
		DurationMinutes:    r.DurationMinutes,
		Purposes:           purposes,
		TargetAudience:     r.TargetAudience,
		PreferredTimeStart: r.PreferredTimeStart,
		PreferredTimeEnd:   r.PreferredTimeEnd,
		Notes:              r.Notes,
		Difficulty:         r.Difficulty,
		Flow:               flow,
		Preparations:       preparations,
		GeneratedAt:        r.GeneratedAt.In(config.JST).Format("2006-01-02 15:04:05"),
	}
}

// List returns saved plans, newest first.
func List() ([]Plan, error) {
	var records []models.LivePlan
	if err := db.GetDB().Order("created_at desc").Find(&records).Error; err != nil {
		return nil, err
	}
	plans := make([]Plan, 0, len(records))
	for _, r := range records {
		plans = append(plans, planFromRecord(r))
	}
	return plans, nil
}

// Get returns one plan by id.
func Get(id string) (*Plan, error) {
	var record models.LivePlan
	res := db.GetDB().First(&record, "id = ?", id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, res.Error
	}
	plan := planFromRecord(record)
	return &plan, nil
}

// Delete removes a saved plan.
func Delete(id string) error {
	res := db.GetDB().Delete(&models.LivePlan{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
