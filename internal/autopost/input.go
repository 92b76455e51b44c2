package autopost

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
)

type GenerateBody struct {
	PostType     string `json:"post_type"`
	Purpose      string `json:"purpose"`
	EmojiStyle   string `json:"emoji_style"`
	EmojiUsage   string `json:"emoji_usage"`
	Tone         string `json:"tone"`
	PosterType   string `json:"poster_type"`
	RequiredInfo string `json:"required_info"`
	ImageRole    string `json:"image_role"`
	CTA          string `json:"cta"`
	CTACustom    string `json:"cta_custom"`
}

func (b GenerateBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.PostType, v.Required),
		v.Field(&b.Purpose, v.Required),
		v.Field(&b.EmojiStyle, v.Required),
		v.Field(&b.EmojiUsage, v.Required),
		v.Field(&b.Tone, v.Required),
		v.Field(&b.PosterType, v.Required),
		v.Field(&b.CTA, v.Required),
	)
}
