// Package i18n localizes keylint's own user-facing strings.
//
// It wraps the gotext library behind T() and N(); translations are
// embedded in the binary via //go:embed and loaded at startup with Init().
//
//	i18n.Init("") // auto-detect from LANGUAGE/LC_ALL/LC_MESSAGES/LANG
//	fmt.Println(i18n.T("Scan complete"))
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the PO translation files.
// Directory structure: locales/{lang}/LC_MESSAGES/keylint.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for keylint.
const domain = "keylint"

var po *gotext.Locale

// Init initializes translations. An empty lang auto-detects from the
// environment following GNU gettext conventions. Call once at startup,
// before any T() or N() call.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates a string, returning it unchanged when no translation is
// available.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates a string with plural forms.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// detectLanguage reads LANGUAGE > LC_ALL > LC_MESSAGES > LANG, the GNU
// gettext priority order.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE can be a colon-separated list; take the first.
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// Strip encoding suffix ("ru_RU.UTF-8" -> "ru_RU").
		if idx := strings.IndexByte(val, '.'); idx >= 0 {
			val = val[:idx]
		}
		// "C" and "POSIX" mean no translation.
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
