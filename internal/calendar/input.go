package calendar

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
)

type EventBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Type        string `json:"type"`
}

func (b EventBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.Title, v.Required),
		v.Field(&b.Start, v.Required),
		v.Field(&b.End, v.Required),
		v.Field(&b.Type, v.Required,
			v.In(TypeYouTubeLive, TypeXAutoPost, TypeImportant, TypeOther)),
	)
}
