package i18n

import (
	"time"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/dmitrymomot/folio/pkg/lang"
)

// Translator renders messages in one language.
type Translator struct {
	localizer *goi18n.Localizer
	// fallback is the default language's localizer, nil for the default
	// language itself.
	fallback *goi18n.Localizer
	format   dateFormat
	code      lang.Code
}

// Language returns the translator's language.
func (t *Translator) Language() lang.Code {
	return t.code
}

// T renders a message. Unknown IDs are returned unchanged.
func (t *Translator) T(id string, data ...M) string {
	return t.localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: merge(data),
	})
}

// Tn renders the plural form of a message selected by n.
func (t *Translator) Tn(id string, n int, data ...M) string {
	td := merge(data)
	if td == nil {
		td = M{}
	}
	if _, ok := td["Count"]; !ok {
		td["Count"] = n
	}
	return t.localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  n,
		TemplateData: td,
	})
}

// FormatDate renders a calendar date the way the language writes it.
func (t *Translator) FormatDate(d time.Time) string {
	return t.format.date(d)
}

func (t *Translator) localize(cfg *goi18n.LocalizeConfig) string {
	if t == nil || t.localizer == nil {
		return cfg.MessageID
	}
	if msg, err := t.localizer.Localize(cfg); err == nil && msg != "" {
		return msg
	}
	if t.fallback != nil {
		if msg, err := t.fallback.Localize(cfg); err == nil && msg != "" {
			return msg
		}
	}
	return cfg.MessageID
}

func merge(data []M) M {
	switch len(data) {
	case 0:
		return nil
	case 1:
		return data[0]
	}
	out := M{}
	for _, d := range data {
		for k, v := range d {
			out[k] = v
		}
	}
	return out
}
