package shorts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionPlan(t *testing.T) {
	opening, main, closing := sectionPlan(60)
	assert.Equal(t, 7, opening)
	assert.Equal(t, 6, closing)
	assert.Equal(t, 47, main)

	opening, main, closing = sectionPlan(15)
	assert.Equal(t, 3, opening)
	assert.Equal(t, 3, closing)
	assert.Equal(t, 10, main)

	// short totals still get a 10 second main block
	opening, main, closing = sectionPlan(5)
	assert.Equal(t, 3, opening)
	assert.Equal(t, 3, closing)
	assert.Equal(t, 10, main)
}

func TestTemplateSections(t *testing.T) {
	sections := templateSections("雑談テーマ", 5, 20, 5)

	assert.Len(t, sections, 3)
	assert.Equal(t, "0-5秒", sections[0].TimeRange)
	assert.Equal(t, "5-25秒", sections[1].TimeRange)
	assert.Equal(t, "25-30秒", sections[2].TimeRange)
	assert.Contains(t, sections[0].Content, "雑談テーマ")
}

func TestGenerateBodyValidation(t *testing.T) {
	valid := GenerateBody{Theme: "t", Duration: 30, ScriptFormat: "How-to", Tone: "カジュアル"}
	assert.NoError(t, valid.Validate())

	tooLong := valid
	tooLong.Duration = 61
	assert.Error(t, tooLong.Validate())

	tooShort := valid
	tooShort.Duration = 4
	assert.Error(t, tooShort.Validate())

	noTheme := valid
	noTheme.Theme = ""
	assert.Error(t, noTheme.Validate())

	badDetail := valid
	badDetail.DetailLevel = "verbose"
	assert.Error(t, badDetail.Validate())

	okDetail := valid
	okDetail.DetailLevel = "detailed"
	assert.NoError(t, okDetail.Validate())
}
