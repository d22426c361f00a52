package nlg

import "strings"

// FrenchMorphology holds the French inflection rules. Comparatives are
// syntactic in French: only forms stored in the lexicon are used here.
type FrenchMorphology struct{}

// Realise dispatches on the word category. Categories without rules
// realise as their base form.
func (m FrenchMorphology) Realise(w *Word) *String {
	switch w.Category() {
	case CategoryDeterminer:
		return m.MorphDeterminer(w)
	case CategoryNoun:
		return m.MorphNoun(w)
	case CategoryAdjective:
		return m.MorphAdjective(w)
	case CategoryAdverb:
		return m.MorphAdverb(w)
	}
	return newString(baseForm(w), w)
}

// MorphDeterminer agrees the determiner with the phrase it introduces.
// "des" contracts to "de" in front of pre-modified nouns.
func (FrenchMorphology) MorphDeterminer(w *Word) *String {
	parent := w.Parent()
	gender := genderOf(parent)
	if gender == GenderUnset {
		gender = w.features.Gender
	}

	var realised string
	switch {
	case isPlural(w) || isPlural(parent):
		realised = storedForm(w, func(f *Features) string { return f.Plural })
		if gender == Feminine {
			if fp := storedForm(w, func(f *Features) string { return f.FemininePlural }); fp != "" {
				realised = fp
			}
		}
		if realised == "" {
			realised = baseForm(w)
		}
		if p, ok := parent.(*Phrase); ok && realised == "des" && len(p.PreModifiers) > 0 {
			realised = "de"
		}
	case gender == Feminine && storedForm(w, func(f *Features) string { return f.FeminineSingular }) != "":
		realised = storedForm(w, func(f *Features) string { return f.FeminineSingular })
	default:
		realised = baseForm(w)
		if w.features.Particle != "" {
			realised = strings.TrimSpace(strings.ReplaceAll(realised, w.features.Particle, ""))
		}
	}
	return newString(realised, w)
}

// MorphAdjective agrees the adjective in gender and number with its
// agreement source, the adjective's own features taking precedence.
func (FrenchMorphology) MorphAdjective(w *Word) *String {
	realised := baseForm(w)
	forms := w
	if w.features.Comparative {
		if cmp := storedForm(w, func(f *Features) string { return f.ComparativeForm }); cmp != "" {
			realised = cmp
			forms = replaceWord(w, cmp)
		}
	}

	src := agreementSource(w)
	gender := w.features.Gender
	if gender == GenderUnset {
		gender = genderOf(src)
	}
	number := w.features.Number
	if number == NumberUnset {
		number = numberOf(src)
	}

	feminine := gender == Feminine
	if feminine {
		realised = feminize(forms, realised)
	}
	if number == Plural {
		switch {
		case feminine:
			if fp := storedForm(forms, func(f *Features) string { return f.FemininePlural }); fp != "" {
				realised = fp
			} else {
				realised += "s"
			}
		case storedForm(forms, func(f *Features) string { return f.Plural }) != "":
			realised = storedForm(forms, func(f *Features) string { return f.Plural })
		default:
			realised = frenchPluralize(realised)
		}
	}
	return newString(realised+w.features.Particle, w)
}

// MorphNoun swaps a noun for its opposite-gender counterpart when the
// requested gender differs from the lexicon entry's, then pluralises.
func (FrenchMorphology) MorphNoun(w *Word) *String {
	if entry := w.baseWord; entry != nil && entry.features.OppositeGender != "" && oppositeGenders(entry.features.Gender, w.features.Gender) {
		w.Base = entry.features.OppositeGender
		w.features.Plural = ""
		w.baseWord = nil
		if w.lexicon != nil {
			if other := w.lexicon.First(w.Base, CategoryNoun); other != nil {
				w.baseWord = other.baseWord
				w.features.Plural = other.features.Plural
			}
		}
	}

	realised := baseForm(w)
	if (isPlural(w) || isPlural(w.Parent())) && !w.features.Proper {
		if plural := storedForm(w, func(f *Features) string { return f.Plural }); plural != "" {
			realised = plural
		} else {
			realised = frenchPluralize(realised)
		}
	}
	return newString(realised+w.features.Particle, w)
}

// MorphAdverb only honours a stored comparative.
func (FrenchMorphology) MorphAdverb(w *Word) *String {
	realised := baseForm(w)
	if w.features.Comparative {
		if cmp := storedForm(w, func(f *Features) string { return f.ComparativeForm }); cmp != "" {
			realised = cmp
		}
	}
	return newString(realised+w.features.Particle, w)
}

func oppositeGenders(a, b Gender) bool {
	return (a == Masculine && b == Feminine) || (a == Feminine && b == Masculine)
}

// agreementSource returns the element an adjective agrees with: the
// direct object of a governing verb phrase for attributive modifiers,
// else the nearest ancestor with a gender.
func agreementSource(w *Word) Element {
	parent := w.Parent()
	if isNil(parent) {
		return w
	}

	role := w.features.Discourse
	if role == DiscourseHead {
		role = parent.Features().Discourse
	}
	if role.isModifier() {
		for _, gov := range []Element{parent, parent.Parent()} {
			if isNil(gov) || gov.Category() != CategoryVerbPhrase {
				continue
			}
			if obj := directObject(gov); obj != nil {
				return obj
			}
		}
	}

	for a := parent; !isNil(a); a = a.Parent() {
		if genderOf(a) != GenderUnset {
			return a
		}
	}
	return parent
}

func directObject(vp Element) Element {
	var complements []Element
	switch vp := vp.(type) {
	case *Phrase:
		complements = vp.Complements
	case *List:
		complements = vp.Components
	}
	for _, c := range complements {
		if c.Features().Discourse == DiscourseObject {
			return c
		}
	}
	return nil
}

// replaceWord looks up base in the lexicon under w's category. The result
// inherits the features w sets and it lacks; w itself is returned on a
// miss.
func replaceWord(w *Word, base string) *Word {
	if w.lexicon == nil {
		return w
	}
	r := w.lexicon.First(base, w.category)
	if r == nil {
		return w
	}
	f, old := &r.features, &w.features
	if f.Gender == GenderUnset {
		f.Gender = old.Gender
	}
	if f.Number == NumberUnset {
		f.Number = old.Number
	}
	if f.Discourse == DiscourseNone {
		f.Discourse = old.Discourse
	}
	if f.Particle == "" {
		f.Particle = old.Particle
	}
	return r
}

// feminineSuffixes is checked in order; the first match wins.
var feminineSuffixes = []struct {
	suffix string
	apply  func(w *Word, s string) (string, bool)
}{
	{"el", appendSuffix("le")},
	{"eil", appendSuffix("le")},
	{"as", appendSuffix("se")},
	{"en", appendSuffix("ne")},
	{"on", appendSuffix("ne")},
	{"et", appendSuffix("te")},
	{"eux", replaceSuffix(1, "se")},
	{"er", replaceSuffix(2, "ère")},
	{"eau", replaceSuffix(3, "elle")},
	{"os", appendSuffix("se")},
	{"gu", appendSuffix("ë")},
	{"g", appendSuffix("ue")},
	{"eur", func(w *Word, s string) (string, bool) {
		// chanteur → chanteuse, only when "chantant" is a known form.
		if w.lexicon == nil || !w.lexicon.HasVariant(strings.TrimSuffix(s, "eur")+"ant") {
			return "", false
		}
		return strings.TrimSuffix(s, "r") + "se", true
	}},
	{"teur", replaceSuffix(4, "trice")},
	{"if", replaceSuffix(1, "ve")},
}

func appendSuffix(add string) func(*Word, string) (string, bool) {
	return func(_ *Word, s string) (string, bool) { return s + add, true }
}

func replaceSuffix(drop int, add string) func(*Word, string) (string, bool) {
	return func(_ *Word, s string) (string, bool) {
		rs := []rune(s)
		return string(rs[:len(rs)-drop]) + add, true
	}
}

// feminize returns the feminine singular of realised: the stored form when
// realised is still the base form, else the first matching suffix rule,
// else realised + "e".
func feminize(w *Word, realised string) string {
	if realised == baseForm(w) {
		if fs := storedForm(w, func(f *Features) string { return f.FeminineSingular }); fs != "" {
			return fs
		}
	}
	for _, rule := range feminineSuffixes {
		if !strings.HasSuffix(realised, rule.suffix) {
			continue
		}
		if out, ok := rule.apply(w, realised); ok {
			return out
		}
	}
	return realised + "e"
}

// frenchPluralize applies the regular plural rules; irregular plurals come
// from the lexicon.
func frenchPluralize(s string) string {
	switch {
	case strings.HasSuffix(s, "s"), strings.HasSuffix(s, "x"), strings.HasSuffix(s, "z"):
		return s
	case strings.HasSuffix(s, "au"), strings.HasSuffix(s, "eu"):
		return s + "x"
	case strings.HasSuffix(s, "al"):
		return strings.TrimSuffix(s, "al") + "aux"
	}
	return s + "s"
}
