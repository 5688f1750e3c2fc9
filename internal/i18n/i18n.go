package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Message IDs used across the app.
const (
	MsgShareTitle       = "ShareTitle"
	MsgSubtitle         = "Subtitle"
	MsgNoticeStale      = "NoticeStale"
	MsgErrorUnavailable = "ErrorUnavailable"
	MsgResultCorrect    = "ResultCorrect"
	MsgResultIncorrect  = "ResultIncorrect"

	MsgCommentFlawless = "CommentFlawless"
	MsgCommentSharp    = "CommentSharp"
	MsgCommentSolid    = "CommentSolid"
	MsgCommentWarming  = "CommentWarming"
	MsgCommentFresh    = "CommentFresh"
)

// Translator resolves message IDs for one language.
type Translator struct {
	localizer *i18n.Localizer
}

// New loads every embedded locale and returns a translator for lang.
// Unknown languages fall back to English.
func New(lang string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale file %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("parse locale file %s: %w", e.Name(), err)
		}
	}

	if lang == "" {
		lang = "en"
	}
	return &Translator{localizer: i18n.NewLocalizer(bundle, lang, "en")}, nil
}

// T returns the translation of id, or id itself if it is missing.
func (t *Translator) T(id string, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}
