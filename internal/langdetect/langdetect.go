// Package langdetect guesses the language a post is written in.
package langdetect

import (
	"strings"

	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/abadojack/whatlanggo"
)

// Unknown is reported by detectors that cannot tell the language.
const Unknown = "UNKNOWN"

type Detector interface {
	Detect(text string) string
}

type Whatlang struct{}

func NewWhatlang() *Whatlang {
	return &Whatlang{}
}

// Detect returns the ISO 639-1 code of text, or Unknown when the guess is not
// reliable.
func (Whatlang) Detect(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return Unknown
	}

	code := info.Lang.Iso6391()
	if code == "" {
		return Unknown
	}

	return code
}

// Normalize maps a detector result to the value stored with a post: empty
// when unknown or too long to be a language tag.
func Normalize(code string) string {
	if strings.EqualFold(code, Unknown) || len(code) > model.MaxLanguageLength {
		return ""
	}

	return code
}
