// Package multilingual resolves multilingual strings and names to a single
// display form, driven by per-script configuration.
package multilingual

import (
	"strings"
	"sync"
	"unicode"

	"github.com/pemistahl/lingua-go"
	"golang.org/x/text/language"

	"github.com/dtnitsch/citefmt/models"
)

// Resolver picks display forms for multilingual content. A zero config
// resolves everything to the primary (original-script) form.
type Resolver struct {
	cfg         models.MultilingualConfig
	styleLocale language.Tag

	detectorOnce sync.Once
	detector     lingua.LanguageDetector
}

// NewResolver builds a resolver for a style locale ("en-US" when empty).
func NewResolver(cfg *models.MultilingualConfig, styleLocale string) *Resolver {
	r := &Resolver{}
	if cfg != nil {
		r.cfg = *cfg
	}
	if styleLocale == "" {
		styleLocale = "en-US"
	}
	tag, err := language.Parse(styleLocale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	r.styleLocale = tag
	return r
}

// detectorLanguages is the closed set the language detector considers.
// Detection only has to separate scripts and major languages, not dialects.
var detectorLanguages = []lingua.Language{
	lingua.English, lingua.French, lingua.German, lingua.Spanish,
	lingua.Italian, lingua.Portuguese, lingua.Dutch, lingua.Russian,
	lingua.Ukrainian, lingua.Japanese, lingua.Chinese, lingua.Korean,
	lingua.Arabic, lingua.Hebrew, lingua.Greek, lingua.Hindi,
}

func (r *Resolver) languageDetector() lingua.LanguageDetector {
	r.detectorOnce.Do(func() {
		r.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectorLanguages...).
			Build()
	})
	return r.detector
}

// DetectLang returns a BCP 47 tag for text whose language is not declared.
// Empty result means detection failed or the text is too short.
func (r *Resolver) DetectLang(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	lang, ok := r.languageDetector().DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

// Script classifies the dominant script of text by its first letter runs.
func Script(text string) string {
	for _, c := range text {
		switch {
		case unicode.Is(unicode.Han, c):
			return "Hani"
		case unicode.Is(unicode.Hiragana, c) || unicode.Is(unicode.Katakana, c):
			return "Jpan"
		case unicode.Is(unicode.Hangul, c):
			return "Kore"
		case unicode.Is(unicode.Cyrillic, c):
			return "Cyrl"
		case unicode.Is(unicode.Arabic, c):
			return "Arab"
		case unicode.Is(unicode.Hebrew, c):
			return "Hebr"
		case unicode.Is(unicode.Greek, c):
			return "Grek"
		case unicode.Is(unicode.Latin, c):
			return "Latn"
		}
	}
	return ""
}

// NativeOrdering reports whether names in the script of text keep
// family-given order, per the script configuration.
func (r *Resolver) NativeOrdering(text string) bool {
	sc := Script(text)
	if sc == "" {
		return false
	}
	conf, ok := r.cfg.Scripts[sc]
	return ok && conf.UseNativeOrdering
}

// ResolveString picks the display form of a multilingual string for the
// given mode. Missing variants fall back to the primary form, so a plain
// string always resolves to itself. A value already in the style language
// never picks up a translation or the bracketed combined form.
func (r *Resolver) ResolveString(ms models.MultiString, mode models.MultilingualMode) string {
	switch mode {
	case models.MultilingualTransliterated:
		if t := r.transliteration(ms); t != "" {
			return t
		}
	case models.MultilingualTranslated:
		if r.inStyleLanguage(ms) {
			return ms.Value
		}
		if t := r.translation(ms); t != "" {
			return t
		}
	case models.MultilingualCombined:
		if r.inStyleLanguage(ms) {
			return ms.Value
		}
		translit := r.transliteration(ms)
		if translit == "" {
			translit = ms.Value
		}
		if trans := r.translation(ms); trans != "" {
			return translit + " [" + trans + "]"
		}
		return translit
	}
	return ms.Value
}

// langOf returns the language of a value: the declared tag when present,
// detection otherwise. Detection runs only for values that carry variants,
// so monolingual libraries never build the detector.
func (r *Resolver) langOf(ms models.MultiString) string {
	if ms.Lang != "" {
		return ms.Lang
	}
	if len(ms.Transliterations) == 0 && len(ms.Translations) == 0 {
		return ""
	}
	return r.DetectLang(ms.Value)
}

// inStyleLanguage reports whether the value's language (declared or
// detected) matches the style locale's base language.
func (r *Resolver) inStyleLanguage(ms models.MultiString) bool {
	lang := r.langOf(ms)
	if lang == "" {
		return false
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	styleBase, _ := r.styleLocale.Base()
	return base == styleBase
}

// transliteration finds the variant matching the preferred script.
// Keys may be bare script codes ("Latn") or full tags ("ja-Latn").
func (r *Resolver) transliteration(ms models.MultiString) string {
	if len(ms.Transliterations) == 0 {
		return ""
	}
	want := r.cfg.PreferredScript
	if want == "" {
		want = "Latn"
	}
	if v, ok := ms.Transliterations[want]; ok {
		return v
	}
	for key, v := range ms.Transliterations {
		if scriptOf(key) == want {
			return v
		}
	}
	// Any transliteration beats the original when one was asked for.
	for _, v := range ms.Transliterations {
		return v
	}
	return ""
}

// translation finds the variant best matching the style locale.
func (r *Resolver) translation(ms models.MultiString) string {
	if len(ms.Translations) == 0 {
		return ""
	}
	tags := make([]language.Tag, 0, len(ms.Translations))
	keys := make([]string, 0, len(ms.Translations))
	for key := range ms.Translations {
		tag, err := language.Parse(key)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		keys = append(keys, key)
	}
	if len(tags) == 0 {
		return ""
	}
	m := language.NewMatcher(tags)
	_, index, conf := m.Match(r.styleLocale)
	if conf == language.No {
		return ""
	}
	return ms.Translations[keys[index]]
}

// scriptOf extracts the script subtag from a transliteration key.
func scriptOf(key string) string {
	tag, err := language.Parse(key)
	if err != nil {
		return key
	}
	script, _ := tag.Script()
	return script.String()
}

// FlatNames flattens a contributor list for rendering: every name part is
// resolved with the name mode, and CJK names keep native ordering when the
// script config says so.
func (r *Resolver) FlatNames(list models.ContributorList) []models.FlatName {
	mode := r.cfg.NameMode
	if mode == "" {
		mode = models.MultilingualPrimary
	}
	out := make([]models.FlatName, 0, len(list))
	for i := range list {
		c := &list[i]
		if c.IsStructured() {
			out = append(out, models.FlatName{
				Family:              r.ResolveString(c.Family, mode),
				Given:               r.ResolveString(c.Given, mode),
				Suffix:              c.Suffix,
				DroppingParticle:    c.DroppingParticle,
				NonDroppingParticle: c.NonDroppingParticle,
			})
			continue
		}
		out = append(out, models.FlatName{Literal: r.ResolveString(c.Name, mode)})
	}
	return out
}

// ResolveTitle resolves a title with the title mode, joining main and sub
// parts with delim.
func (r *Resolver) ResolveTitle(t *models.Title, delim string) string {
	if t == nil {
		return ""
	}
	mode := r.cfg.TitleMode
	if mode == "" {
		mode = models.MultilingualPrimary
	}
	main := r.ResolveString(t.Main, mode)
	if t.Sub == "" {
		return main
	}
	if delim == "" {
		delim = ": "
	}
	return main + delim + t.Sub
}
