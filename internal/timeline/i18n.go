package timeline

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-agestack/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator renders the localized presentation strings of the feed. The
// bucket labels themselves stay in their canonical English form; only the
// strings wrapped around them are translated.
type Translator struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
}

// NewTranslator loads the embedded locale files and localizes to lang.
func NewTranslator(lang string) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
		} else {
			slog.Debug(config.MsgLocaleLoaded,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
		}
	}

	if lang == "" {
		lang = config.DefaultLanguage
	}

	return &Translator{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, lang, config.DefaultLanguage),
	}
}

// Msg translates a simple key, falling back to the key itself.
func (t *Translator) Msg(key string) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// Summary renders an event summary for a bucket with plural handling.
func (t *Translator) Summary(label string, count int) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    config.TKeyEvtSummary,
		TemplateData: map[string]interface{}{"Label": label, "Count": count},
		PluralCount:  count,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, config.TKeyEvtSummary,
			config.LogKeyError, err,
		)
		return label
	}
	return msg
}

// Describe renders the feed description for a person.
func (t *Translator) Describe(name string) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    config.TKeyFeedDescribe,
		TemplateData: map[string]interface{}{"Name": name},
	})
	if err != nil {
		return name
	}
	return msg
}
