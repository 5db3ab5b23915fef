// Package i18n localizes the user-facing messages around results.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/abhisek/examportal/internal/grading"
	"github.com/abhisek/examportal/internal/timefmt"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "en"

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error
)

// loadBundle parses every embedded locale file once.
func loadBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("json", json.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			bundleErr = fmt.Errorf("read locales dir: %w", err)
			return
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			data, err := localeFS.ReadFile("locales/" + e.Name())
			if err != nil {
				bundleErr = fmt.Errorf("read locale file %s: %w", e.Name(), err)
				return
			}
			if _, err := b.ParseMessageFileBytes(data, e.Name()); err != nil {
				bundleErr = fmt.Errorf("parse locale file %s: %w", e.Name(), err)
				return
			}
			log.Debug().Str("file", e.Name()).Msg("loaded locale file")
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Languages lists the tags with a bundled locale.
func Languages() []string {
	b, err := loadBundle()
	if err != nil {
		return []string{DefaultLanguage}
	}
	tags := b.LanguageTags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

// Translator renders messages in one language, falling back to English.
type Translator struct {
	lang string
	loc  *i18n.Localizer
}

// New returns a translator for lang. An unparseable tag is an error.
func New(lang string) (*Translator, error) {
	if lang == "" {
		lang = DefaultLanguage
	}
	if _, err := language.Parse(lang); err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}
	return &Translator{lang: lang, loc: i18n.NewLocalizer(b, lang, DefaultLanguage)}, nil
}

// English returns the default translator. It panics only if the embedded
// locales are broken.
func English() *Translator {
	t, err := New(DefaultLanguage)
	if err != nil {
		panic(err)
	}
	return t
}

// Lang returns the requested language tag.
func (t *Translator) Lang() string {
	return t.lang
}

// T translates a message by ID.
func (t *Translator) T(msgID string) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: msgID})
}

// Td translates a message by ID with template data.
func (t *Translator) Td(msgID string, data map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: msgID, TemplateData: data})
}

// Tp translates a pluralized message by ID.
func (t *Translator) Tp(msgID string, count int) string {
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (t *Translator) localize(cfg *i18n.LocalizeConfig) string {
	s, err := t.loc.Localize(cfg)
	if err != nil {
		log.Warn().Str("id", cfg.MessageID).Str("lang", t.lang).Err(err).Msg("missing translation")
		return cfg.MessageID
	}
	return s
}

// Performance returns the encouragement message for a performance band.
func (t *Translator) Performance(p grading.Performance) string {
	switch p {
	case grading.PerformanceOutstanding:
		return t.T("PerfOutstanding")
	case grading.PerformanceGreat:
		return t.T("PerfGreat")
	case grading.PerformanceGood:
		return t.T("PerfGood")
	case grading.PerformanceFair:
		return t.T("PerfFair")
	default:
		return t.T("PerfNeedsReview")
	}
}

// Improvement describes the change from the previous attempt. A nil
// improvement renders as an empty string.
func (t *Translator) Improvement(imp *grading.Improvement) string {
	switch {
	case imp == nil:
		return ""
	case imp.Delta > 0:
		return t.Td("ImprovementUp", map[string]any{"Delta": imp.Delta})
	case imp.Delta < 0:
		return t.Td("ImprovementDown", map[string]any{"Delta": strconv.Itoa(imp.Delta)})
	default:
		return t.T("ImprovementSame")
	}
}

// Ago renders a relative date.
func (t *Translator) Ago(e timefmt.Elapsed) string {
	switch e.Unit {
	case timefmt.UnitToday:
		return t.T("AgoToday")
	case timefmt.UnitYesterday:
		return t.T("AgoYesterday")
	case timefmt.UnitDays:
		return t.Tp("AgoDays", e.Count)
	case timefmt.UnitWeeks:
		return t.Tp("AgoWeeks", e.Count)
	default:
		return t.Tp("AgoMonths", e.Count)
	}
}

// Band labels a topic band.
func (t *Translator) Band(b grading.Band) string {
	switch b {
	case grading.BandGood:
		return t.T("BandGood")
	case grading.BandFair:
		return t.T("BandFair")
	default:
		return t.T("BandPoor")
	}
}

// PassLabel labels a pass or fail outcome.
func (t *Translator) PassLabel(passed bool) string {
	if passed {
		return t.T("Passed")
	}
	return t.T("NotPassed")
}
