package speech

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
)

type SpeakBody struct {
	Text string `json:"text"`
	Cast string `json:"cast"`
}

func (b SpeakBody) Validate() error {
	casts := make([]any, len(AvailableCasts))
	for i, c := range AvailableCasts {
		casts[i] = c
	}
	return v.ValidateStruct(&b,
		v.Field(&b.Text, v.Required),
		v.Field(&b.Cast, v.In(casts...)),
	)
}
