package nlg

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// PhraseHelper decides whether a modifier goes before or after the head of
// a phrase.
type PhraseHelper interface {
	// AddModifier places an already built element.
	AddModifier(p *Phrase, mod Element)
	// AddModifierText resolves text (a lexicon key or free text) and places
	// the result.
	AddModifierText(p *Phrase, text string)
}

func helperFor(lang Language) PhraseHelper {
	if lang == French {
		return frenchHelper{}
	}
	return englishHelper{}
}

// englishHelper puts adjectives and preposed adjective phrases before the
// head and everything else after it.
type englishHelper struct{}

func (englishHelper) AddModifier(p *Phrase, mod Element) {
	placeModifier(p, mod, func(w *Word) bool { return true })
}

func (h englishHelper) AddModifierText(p *Phrase, text string) {
	if mod := resolveModifier(p, text); mod != nil {
		h.AddModifier(p, mod)
	}
}

// frenchHelper keeps only preposed adjectives before the head.
type frenchHelper struct{}

func (frenchHelper) AddModifier(p *Phrase, mod Element) {
	placeModifier(p, mod, func(w *Word) bool { return w.features.Preposed })
}

func (h frenchHelper) AddModifierText(p *Phrase, text string) {
	if mod := resolveModifier(p, text); mod != nil {
		h.AddModifier(p, mod)
	}
}

// resolveModifier turns raw modifier text into an element: the first
// lexicon match, else a new adjective registered in the lexicon when text
// is a single token. Multi-word text not in the lexicon is appended to the
// post-modifiers as an opaque string and nil is returned.
func resolveModifier(p *Phrase, text string) Element {
	if text == "" {
		return nil
	}
	lex := p.tree.lex
	if w := lex.First(text, CategoryAny); w != nil {
		return w
	}
	if strings.IndexFunc(text, unicode.IsSpace) < 0 {
		w := NewWord(text, CategoryAdjective)
		w.ID = "adhoc-" + uuid.NewString()
		registered, _, err := lex.FirstOrRegister(w)
		if err != nil {
			lex.logger.Warn("register ad-hoc word",
				slog.String("language", string(lex.lang)),
				slog.String("base", text),
				slog.String("error", err.Error()))
			return w
		}
		return registered
	}
	p.AddPostModifier(p.tree.NewString(text))
	return nil
}

// placeModifier applies the placement order shared by both languages:
// preposed adjective phrase without complements, then single adjective
// accepted by preAdjective, go before the head; the rest goes after.
func placeModifier(p *Phrase, mod Element, preAdjective func(*Word) bool) {
	if isNil(mod) {
		return
	}
	switch m := mod.(type) {
	case *Phrase:
		if m.Category() == CategoryAdjectivePhrase && len(m.Complements) == 0 && !isNil(m.Head) && m.Head.Features().Preposed {
			p.AddPreModifier(m)
			return
		}
	case *Word:
		if m.Category() == CategoryAdjective && preAdjective(m) {
			p.AddPreModifier(m)
			return
		}
	}
	p.AddPostModifier(mod)
}
