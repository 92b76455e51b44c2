package metadata

import (
	"fmt"

	v "github.com/go-ozzo/ozzo-validation/v4"
)

var videoFormats = []any{"ショート動画", "通常動画", "ライブ"}

var allowedPurposes = map[string]bool{
	"同時接続増加": true,
	"登録者増加":  true,
	"発見性向上":  true,
	"視聴維持改善": true,
}

type GenerateBody struct {
	ScriptSummary  string   `json:"script_summary"`
	VideoFormat    string   `json:"video_format"`
	Purposes       []string `json:"purposes"`
	ChannelSummary string   `json:"channel_summary"`
	ForbiddenWords string   `json:"forbidden_words"`
}

func (b GenerateBody) Validate() error {
	if err := v.ValidateStruct(&b,
		v.Field(&b.ScriptSummary, v.Required, v.RuneLength(1, 1000)),
		v.Field(&b.VideoFormat, v.Required, v.In(videoFormats...)),
		v.Field(&b.Purposes, v.Required, v.Length(1, 0)),
		v.Field(&b.ChannelSummary, v.RuneLength(0, 200)),
	); err != nil {
		return err
	}

	for _, p := range b.Purposes {
		if !allowedPurposes[p] {
			return fmt.Errorf("不正な目的です: %s", p)
		}
	}
	return nil
}
