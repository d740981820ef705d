// Package i18n localizes the user-facing messages of openai-dictionary.
//
// Message ids are the Chinese strings the dictionary has always shown, so an
// uninitialized or unmatched locale falls back to Chinese. Other languages are
// provided by gettext catalogs embedded under locales/ and loaded via Init():
//
//	i18n.Init("")  // auto-detect from LANGUAGE/LC_ALL/LC_MESSAGES/LANG
//	fmt.Println(i18n.T("未知错误"))
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// Directory structure: locales/{lang}/LC_MESSAGES/openai-dictionary.po
//
//go:embed all:locales
var locales embed.FS

const domain = "openai-dictionary"

var po *gotext.Locale

// Init loads the catalog for lang. An empty lang is detected from the
// environment the same way GNU gettext does it. "zh" and "C" keep the
// built-in Chinese messages.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates msgid, returning it unchanged when no translation exists.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// detectLanguage reads LANGUAGE, LC_ALL, LC_MESSAGES and LANG in that order.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if val := os.Getenv(env); val != "" {
			// LANGUAGE can be a colon-separated list; take the first
			if env == "LANGUAGE" {
				parts := strings.SplitN(val, ":", 2)
				val = parts[0]
			}
			// "zh_CN.UTF-8" -> "zh_CN"
			if idx := strings.IndexByte(val, '.'); idx >= 0 {
				val = val[:idx]
			}
			if val == "C" || val == "POSIX" || val == "" {
				continue
			}
			return val
		}
	}
	return "zh"
}
