// Package prompt assembles the system and user prompts sent with every
// dictionary lookup.
package prompt

import "strings"

// SystemPrompt is the built-in dictionary persona.
const SystemPrompt = "As an English-Chinese Dictionary, this GPT is tailored to provide bilingual translations between English and Chinese. " +
	"It is adept at presenting the American English pronunciation, part of speech, and the Chinese translation of English words. " +
	"For example, for the word 'resist':" +
	"[rīˈzɪst]" +
	"v. 抗拒，抗拔; 忽耐; 反对，抗制" +
	"n. 防染剂; 防腐剂" +
	"This GPT delivers pronunciations in phonetic notation, with parts of speech abbreviated ('v.' for verbs, 'n.' for nouns) and meanings clearly separated by semicolons. " +
	"It aims for efficiency and precision, providing quick and accurate translations suitable for language learners and anyone needing bilingual word references. " +
	"It utilizes internet searches to ensure accuracy and comprehensiveness in its translations."

// Placeholders recognized in custom templates
const (
	PlaceholderText       = "$text"
	PlaceholderSourceLang = "$sourceLang"
	PlaceholderTargetLang = "$targetLang"
)

// Vars are the values substituted into templates
type Vars struct {
	Text       string
	SourceLang string
	TargetLang string
}

// Templates are the optional user overrides; empty means built-in default
type Templates struct {
	System string
	User   string
}

// Prompts is the final pair sent to the model
type Prompts struct {
	System string
	User   string
}

// Build resolves the system and user prompts for one lookup
func Build(v Vars, tpl Templates) Prompts {
	p := Prompts{
		System: SystemPrompt,
		User:   v.Text,
	}
	if tpl.System != "" {
		p.System = Substitute(tpl.System, v)
	}
	if tpl.User != "" {
		p.User = Substitute(tpl.User, v)
	}
	return p
}

// Substitute replaces the first occurrence of each placeholder, in the order
// text, source language, target language. Anything else is left verbatim.
func Substitute(tpl string, v Vars) string {
	if tpl == "" {
		return tpl
	}
	out := strings.Replace(tpl, PlaceholderText, v.Text, 1)
	out = strings.Replace(out, PlaceholderSourceLang, v.SourceLang, 1)
	return strings.Replace(out, PlaceholderTargetLang, v.TargetLang, 1)
}
