// Package i18n provides the user-facing translation catalog and the
// persisted language preference.
package i18n

import (
	"sync"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/tongbarn/tube/internal/infra/store"
)

// LanguageKey is the storage key for the language preference. It matches the
// original browser-store entry.
const LanguageKey = "tongbarntube-language"

// ErrUnsupportedLanguage is returned for language tags outside the catalog.
var ErrUnsupportedLanguage = errors.New("unsupported language")

var supported = []language.Tag{
	language.English, // first tag is the fallback
	language.Thai,
}

var matcher = language.NewMatcher(supported)

// Translator resolves translation keys for the active language.
type Translator struct {
	mu    sync.RWMutex
	store store.Store
	lang  string
}

// New creates a translator, restoring the persisted language preference.
// An absent or unusable stored value falls back to fallbackLang, then "en".
func New(s store.Store, fallbackLang string) *Translator {
	t := &Translator{store: s, lang: "en"}

	if fallbackLang != "" {
		if code, err := match(fallbackLang); err == nil {
			t.lang = code
		}
	}
	if stored, ok := s.GetString(LanguageKey); ok {
		if code, err := match(stored); err == nil {
			t.lang = code
		} else {
			zlog.Warn().Str("stored", stored).Msg("i18n: ignoring unsupported stored language")
		}
	}
	return t
}

// match normalizes a language tag to a supported catalog code.
func match(tag string) (string, error) {
	parsed, err := language.Parse(tag)
	if err != nil {
		return "", errors.Wrapf(ErrUnsupportedLanguage, "%s", tag)
	}
	_, idx, conf := matcher.Match(parsed)
	if conf == language.No {
		return "", errors.Wrapf(ErrUnsupportedLanguage, "%s", tag)
	}
	switch supported[idx] {
	case language.Thai:
		return "th", nil
	default:
		return "en", nil
	}
}

// Language returns the active language code.
func (t *Translator) Language() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// SetLanguage switches the active language and persists the preference.
func (t *Translator) SetLanguage(tag string) error {
	code, err := match(tag)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.lang = code
	t.mu.Unlock()

	if err := t.store.PutString(LanguageKey, code); err != nil {
		zlog.Warn().Err(err).Msg("i18n: failed to persist language preference")
	}
	return nil
}

// Toggle flips between the two catalog languages and returns the new code.
func (t *Translator) Toggle() string {
	t.mu.Lock()
	if t.lang == "en" {
		t.lang = "th"
	} else {
		t.lang = "en"
	}
	code := t.lang
	t.mu.Unlock()

	if err := t.store.PutString(LanguageKey, code); err != nil {
		zlog.Warn().Err(err).Msg("i18n: failed to persist language preference")
	}
	return code
}

// T resolves a translation key: active language, then English, then the key
// itself.
func (t *Translator) T(key string) string {
	t.mu.RLock()
	lang := t.lang
	t.mu.RUnlock()

	if msg, ok := catalog[lang][key]; ok {
		return msg
	}
	if msg, ok := catalog["en"][key]; ok {
		return msg
	}
	return key
}
