// Package langdetect identifies the language of submitted comments.
package langdetect

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Undetermined is stored when the language of a comment cannot be
// detected.
const Undetermined = "und"

// English is the language sentiment scores are computed in.
const English = "eng"

// Detect returns the ISO 639-3 code of the dominant language of text and
// whether the detection is trustworthy. Texts under two words always come
// back undetermined, trigram detection is hopeless on them.
func Detect(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if len(strings.Fields(trimmed)) < 2 {
		return Undetermined, false
	}

	info := whatlanggo.Detect(trimmed)
	code := whatlanggo.LangToString(info.Lang)
	if code == "" {
		return Undetermined, false
	}
	return code, info.IsReliable()
}

// NeedsTranslation reports whether a comment in the detected language has
// to be translated before scoring.
func NeedsTranslation(code string) bool {
	return code != English && code != Undetermined
}
