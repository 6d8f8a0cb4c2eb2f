package translate

import "fmt"

// languageNames maps the ISO 639-3 codes the language detector emits to
// the names used in prompts. Unknown codes pass through unchanged.
var languageNames = map[string]string{
	"eng": "English",
	"spa": "Spanish",
	"por": "Portuguese",
	"fra": "French",
	"deu": "German",
	"ita": "Italian",
	"nld": "Dutch",
	"pol": "Polish",
	"rus": "Russian",
	"ukr": "Ukrainian",
	"tur": "Turkish",
	"ara": "Arabic",
	"hin": "Hindi",
	"cmn": "Mandarin Chinese",
	"jpn": "Japanese",
	"kor": "Korean",
	"vie": "Vietnamese",
	"tgl": "Tagalog",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// TranslationPrompt returns the system prompt used when translating a
// comment into the target language.
func TranslationPrompt(targetLang string) string {
	return fmt.Sprintf(`You are a translation engine for a public transit feedback platform.
Translate the text of the next message into the language inside the <target_language> tags.

<target_language>%s</target_language>

Rules:
- Output only the translation, with no explanations, quotes or tags.
- Keep the tone of the original, including slang and complaints.
- Leave route numbers, line names and station names unchanged.
- If the text is already in the target language, return it unchanged.`, languageName(targetLang))
}
