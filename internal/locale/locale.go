// Package locale holds the UI translations and locale-aware formatting.
//
// Message catalogs are embedded from locales/active.<lang>.json and loaded
// into a go-i18n bundle. Brazilian Portuguese is the default language and
// the fallback for any missing message.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/JonMunkholm/utiming/internal/core"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLanguage is used when a request names no supported language.
const DefaultLanguage = "pt-BR"

// Translator owns the message bundle. It is read-only after New and safe
// for concurrent use.
type Translator struct {
	bundle    *i18n.Bundle
	languages []string
}

// New loads every embedded catalog. defaultLang sets the bundle fallback;
// an empty value means DefaultLanguage.
func New(defaultLang string) (*Translator, error) {
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}
	tag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("default language %q: %w", defaultLang, err)
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	t := &Translator{bundle: bundle}
	for _, entry := range entries {
		name := entry.Name()
		lang, ok := strings.CutPrefix(name, "active.")
		if !ok || !strings.HasSuffix(lang, ".json") {
			slog.Debug("skipping locale file", "file", name)
			continue
		}
		lang = strings.TrimSuffix(lang, ".json")

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("load locale %s: %w", name, err)
		}
		t.languages = append(t.languages, lang)
	}
	if !t.Supports(tag.String()) {
		return nil, fmt.Errorf("no catalog for default language %q", defaultLang)
	}
	return t, nil
}

// Languages returns the languages with a loaded catalog.
func (t *Translator) Languages() []string {
	out := make([]string, len(t.languages))
	copy(out, t.languages)
	return out
}

// Supports reports whether lang has a catalog. The match is case-insensitive.
func (t *Translator) Supports(lang string) bool {
	for _, l := range t.languages {
		if strings.EqualFold(l, lang) {
			return true
		}
	}
	return false
}

// Localizer returns a localizer for the first supported entry of langs.
// Entries may be plain tags or Accept-Language header values.
func (t *Translator) Localizer(langs ...string) *Localizer {
	l := i18n.NewLocalizer(t.bundle, langs...)
	_, tag, _ := l.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: "app.name"})
	return &Localizer{l: l, tag: tag}
}

// Localizer translates messages for one request.
type Localizer struct {
	l   *i18n.Localizer
	tag language.Tag
}

// Lang returns the matched language tag, such as "pt-BR".
func (l *Localizer) Lang() string {
	if l.tag == language.Und {
		return DefaultLanguage
	}
	return l.tag.String()
}

// T translates id. Missing messages return id.
func (l *Localizer) T(id string) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: id}, id)
}

// Tf translates id with template data.
func (l *Localizer) Tf(id string, data map[string]any) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data}, id)
}

// Plural translates id choosing the plural form for n. The count is
// available to the message as {{.Count}}.
func (l *Localizer) Plural(id string, n int) string {
	return l.localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  n,
		TemplateData: map[string]any{"Count": n},
	}, id)
}

// Column returns the header label for c, falling back to c.Label.
func (l *Localizer) Column(c core.Column) string {
	if c.LabelID == "" {
		return c.Label
	}
	return l.localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: c.LabelID, Other: c.Label},
	}, c.Label)
}

// Error translates a mapped error by its code. Fields without a
// translation keep the text from m.
func (l *Localizer) Error(m core.UserMessage) core.UserMessage {
	if m.Code == "" {
		return m
	}
	prefix := "error." + m.Code + "."
	m.Message = l.localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: prefix + "message", Other: m.Message},
	}, m.Message)
	m.Action = l.localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: prefix + "action", Other: m.Action},
	}, m.Action)
	return m
}

// LongDate renders a YYYYMMDD date in long form, for example
// "15 de março de 2024". Input that is not a valid date is returned as is.
func (l *Localizer) LongDate(s string) string {
	d, err := core.ParseRaceDate(s)
	if err != nil {
		return s
	}
	year, month, day := d.Parts()
	return l.Tf("date.long", map[string]any{
		"Day":    fmt.Sprintf("%02d", day),
		"DayNum": day,
		"Month":  l.T(fmt.Sprintf("month.%d", int(month))),
		"Year":   year,
	})
}

func (l *Localizer) localize(cfg *i18n.LocalizeConfig, fallback string) string {
	msg, err := l.l.Localize(cfg)
	if msg != "" {
		return msg
	}
	if err != nil {
		slog.Debug("translation missing", "fallback", fallback, "error", err)
	}
	return fallback
}
