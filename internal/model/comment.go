package model

import "time"

// Sentiment labels assigned to comments.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Comment is a public transit comment together with its sentiment scores.
// Text holds the submission as received (after sanitizing); TranslatedText
// holds the English text the scores were computed on, when the original
// needed translation.
type Comment struct {
	ID                 int64
	SubmitterName      string
	SubmitterEmail     *string
	Text               string
	TranslatedText     *string
	Language           string
	ScoreNegative      float64
	ScoreNeutral       float64
	ScorePositive      float64
	ScoreCompound      float64
	Label              string
	TranslationPending bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
