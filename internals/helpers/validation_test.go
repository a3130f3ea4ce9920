package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleSlide struct {
	AltText string `json:"alt_text" validate:"required"`
}

type sampleRequest struct {
	SkbID  string        `json:"skb_id" validate:"required,skbid"`
	Name   string        `json:"name" validate:"required,person_name"`
	Mobile string        `json:"mobile" validate:"required,mobile"`
	Belt   string        `json:"belt" validate:"omitempty,enum=belt"`
	Slides []sampleSlide `json:"slides" validate:"max=2,dive"`
}

func TestValidateStruct(t *testing.T) {
	ok := sampleRequest{SkbID: "SKB001", Name: "Rashida Akter", Mobile: "01712345678", Belt: "Blue"}
	assert.Nil(t, ValidateStruct(ok))

	bad := sampleRequest{
		SkbID:  "skb-1",
		Name:   "R2D2",
		Mobile: "12345",
		Belt:   "Purple-ish",
		Slides: []sampleSlide{{AltText: "a"}, {}},
	}
	fe := ValidateStruct(bad)
	assert.Equal(t, []string{"must contain only uppercase letters and numbers"}, fe["skb_id"])
	assert.Equal(t, []string{"must contain only letters and spaces"}, fe["name"])
	assert.Equal(t, []string{"must be 11-15 digits"}, fe["mobile"])
	assert.Contains(t, fe["belt"][0], "must be one of: ")
	assert.Equal(t, []string{"is required"}, fe["slides[1].alt_text"])

	tooMany := ok
	tooMany.Slides = []sampleSlide{{"a"}, {"b"}, {"c"}}
	assert.Equal(t, []string{"must contain at most 2 items"}, ValidateStruct(tooMany)["slides"])
}

func TestFieldErrorMaps(t *testing.T) {
	var m map[string][]string
	m = AddFieldError(m, "date", "bad")
	m = AddFieldError(m, "date", "worse")
	assert.Equal(t, []string{"bad", "worse"}, m["date"])

	assert.Nil(t, MergeFieldErrors(nil, map[string][]string{}))
	merged := MergeFieldErrors(m, map[string][]string{"date": {"third"}, "title": {"x"}})
	assert.Len(t, merged["date"], 3)
	assert.Equal(t, []string{"x"}, merged["title"])
}
