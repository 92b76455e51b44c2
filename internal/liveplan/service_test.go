package liveplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBodyValidation(t *testing.T) {
	valid := GenerateBody{
		Type:            "雑談",
		Title:           "夜のまったり配信",
		DurationHours:   1,
		DurationMinutes: 30,
		Purposes:        []string{"交流強化"},
		TargetAudience:  "既存ファン",
	}
	assert.NoError(t, valid.Validate())

	tooShort := valid
	tooShort.DurationHours = 0
	tooShort.DurationMinutes = 5
	err := tooShort.Validate()
	assert.EqualError(t, err, "予定ライブ時間は10分以上480分以下で入力してください")

	noPurpose := valid
	noPurpose.Purposes = nil
	assert.Error(t, noPurpose.Validate())

	badDifficulty := valid
	badDifficulty.Difficulty = "extreme"
	assert.Error(t, badDifficulty.Validate())
}

func TestRuleBasedPlanStructure(t *testing.T) {
	flow, preparations := ruleBasedPlan("歌枠", 90, "")

	// opening + 3 type sections + ending
	assert.Len(t, flow, 5)
	assert.Equal(t, "オープニング", flow[0].Title)
	assert.Equal(t, "0-9分", flow[0].TimeRange)
	assert.Equal(t, "エンディング", flow[4].Title)
	assert.Equal(t, "81-90分", flow[4].TimeRange)

	assert.Contains(t, preparations, "セットリストの作成")
}

func TestRuleBasedPlanEdgeClamp(t *testing.T) {
	// 10% of 30min is below the 5 minute floor
	flow, _ := ruleBasedPlan("雑談", 30, "")
	assert.Equal(t, "0-5分", flow[0].TimeRange)

	// 10% of 240min is above the 10 minute ceiling
	flow, _ = ruleBasedPlan("雑談", 240, "")
	assert.Equal(t, "0-10分", flow[0].TimeRange)
}

func TestRuleBasedPlanDifficulty(t *testing.T) {
	_, high := ruleBasedPlan("ゲーム", 120, "high")
	assert.Contains(t, high, "リハーサルの実施")

	_, low := ruleBasedPlan("ゲーム", 120, "low")
	assert.Len(t, low, 3)
}

func TestRuleBasedPlanUnknownType(t *testing.T) {
	flow, _ := ruleBasedPlan("未知の形式", 60, "")
	assert.Len(t, flow, 5)
	// section widths cover the whole stream
	assert.Equal(t, "54-60分", flow[4].TimeRange)
}
