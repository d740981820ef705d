// Package lang holds the language table offered to the host.
package lang

// Language pairs a host language code with its English name
type Language struct {
	Code string
	Name string
}

// Source and target of the only direction a lookup may take
const (
	Source = "en"
	Target = "zh-Hans"
)

var languages = []Language{
	{"auto", "Auto"},
	{"zh-Hans", "Simplified Chinese"},
	{"zh-Hant", "Traditional Chinese"},
	{"yue", "Cantonese"},
	{"wyw", "Classical Chinese"},
	{"pysx", "Pinyin"},
	{"en", "English"},
	{"ja", "Japanese"},
	{"ko", "Korean"},
	{"fr", "French"},
	{"de", "German"},
	{"es", "Spanish"},
	{"it", "Italian"},
	{"ru", "Russian"},
	{"pt", "Portuguese"},
	{"nl", "Dutch"},
	{"pl", "Polish"},
	{"ar", "Arabic"},
}

// All returns the table in display order
func All() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Codes returns the language codes in display order
func Codes() []string {
	codes := make([]string, len(languages))
	for i, l := range languages {
		codes[i] = l.Code
	}
	return codes
}

// Lookup finds a language by code
func Lookup(code string) (Language, bool) {
	for _, l := range languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Supported reports whether from -> to is the English to Simplified Chinese
// direction.
func Supported(from, to string) bool {
	return from == Source && to == Target
}
