package i18n

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

const (
	translatorKey = "i18n_translator"
	localeKey     = "i18n_locale"
)

// Middleware stores the translator and the sender's language on the update
// context so handlers can use T without threading the translator around.
// The language comes from the sender's client settings, defaulting to "en".
func Middleware(tr *Translator) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			lang := DefaultLanguage
			if user := c.Sender(); user != nil && user.LanguageCode != "" {
				lang = user.LanguageCode
			}
			c.Set(translatorKey, tr)
			c.Set(localeKey, lang)
			return next(c)
		}
	}
}

// Locale returns the language selected for this update.
func Locale(c tele.Context) string {
	if lang, ok := c.Get(localeKey).(string); ok && lang != "" {
		return lang
	}
	return DefaultLanguage
}

// TextEquals reports whether text matches the key's translation in any
// loaded language. Reply-keyboard buttons render in the language the user had
// at the time, so the comparison cannot be limited to the current locale.
func TextEquals(c tele.Context, key, text string) bool {
	tr, _ := c.Get(translatorKey).(*Translator)
	if tr == nil {
		return false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	for _, lang := range tr.Languages() {
		if tr.Get(lang, key) == text {
			return true
		}
	}
	return false
}

// T returns the message lookup bound to this update's language. Without a
// translator on the context it degrades to echoing keys, which keeps
// handlers total in tests.
func T(c tele.Context) func(string) string {
	tr, _ := c.Get(translatorKey).(*Translator)
	if tr == nil {
		return func(key string) string { return key }
	}
	return tr.Bind(Locale(c))
}
