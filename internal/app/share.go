package app

import (
	"fmt"
	"time"

	"quizzle/internal/domain"
	"quizzle/internal/i18n"
)

// DisplayDateLayout is how dates appear in the subtitle and share text.
const DisplayDateLayout = "Jan 02, 2006"

// FormatDisplayDate renders date for people.
func FormatDisplayDate(date time.Time) string {
	return date.Format(DisplayDateLayout)
}

// Tier is the end-screen verdict for a score.
type Tier string

const (
	TierFlawless Tier = "flawless"
	TierSharp    Tier = "sharp"
	TierSolid    Tier = "solid"
	TierWarming  Tier = "warming"
	TierFresh    Tier = "fresh"
)

var tierMessages = map[Tier]string{
	TierFlawless: i18n.MsgCommentFlawless,
	TierSharp:    i18n.MsgCommentSharp,
	TierSolid:    i18n.MsgCommentSolid,
	TierWarming:  i18n.MsgCommentWarming,
	TierFresh:    i18n.MsgCommentFresh,
}

// TierFor grades correct out of total.
func TierFor(correct, total int) Tier {
	switch {
	case total <= 0 || correct <= 0:
		return TierFresh
	case correct >= total:
		return TierFlawless
	case correct*5 >= total*4:
		return TierSharp
	case correct*5 >= total*3:
		return TierSolid
	default:
		return TierWarming
	}
}

// FinalComment returns the localized end-screen comment for a score.
func FinalComment(tr *i18n.Translator, score Score) string {
	return tr.T(tierMessages[TierFor(score.Correct, score.Total)], nil)
}

// ShareText builds the summary copied to the clipboard or a share sheet.
func ShareText(tr *i18n.Translator, date time.Time, score Score) string {
	return fmt.Sprintf("%s %s\n%d/%d\n\n%s\n%s\n",
		tr.T(i18n.MsgShareTitle, nil),
		FormatDisplayDate(date),
		score.Correct, score.Total,
		domain.CategoryRow,
		score.Glyphs.String(),
	)
}
