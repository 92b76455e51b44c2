package shorts

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
)

type GenerateBody struct {
	Theme        string `json:"theme"`
	Duration     int    `json:"duration"`
	ScriptFormat string `json:"scriptFormat"`
	Tone         string `json:"tone"`
	DetailLevel  string `json:"detailLevel"`
}

func (b GenerateBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.Theme, v.Required),
		v.Field(&b.Duration, v.Required, v.Min(5), v.Max(60)),
		v.Field(&b.ScriptFormat, v.Required),
		v.Field(&b.Tone, v.Required),
		v.Field(&b.DetailLevel, v.In("", "concise", "standard", "detailed")),
	)
}
