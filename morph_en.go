package nlg

import "strings"

// MorphologyRules computes the surface form of a word from its features and
// syntactic context.
type MorphologyRules interface {
	Realise(w *Word) *String
}

func rulesFor(lang Language) (MorphologyRules, bool) {
	switch lang {
	case English:
		return EnglishMorphology{}, true
	case French:
		return FrenchMorphology{}, true
	}
	return nil, false
}

// EnglishMorphology holds the English inflection rules. It is stateless.
type EnglishMorphology struct{}

// Realise dispatches on the word category. Categories without rules
// realise as their base form.
func (m EnglishMorphology) Realise(w *Word) *String {
	switch w.Category() {
	case CategoryDeterminer:
		return m.MorphDeterminer(w)
	case CategoryNoun:
		return m.MorphNoun(w)
	case CategoryAdjective:
		return m.MorphAdjective(w)
	case CategoryAdverb:
		return m.MorphAdverb(w)
	case CategoryPronoun:
		return m.MorphPronoun(w)
	}
	return newString(baseForm(w), w)
}

// MorphDeterminer returns the base form: English determiners do not inflect
// here.
func (EnglishMorphology) MorphDeterminer(w *Word) *String {
	return newString(w.Base, w)
}

// MorphNoun pluralises when the noun or its parent is plural, unless the
// noun is proper. A stored plural wins over the suffix rule.
func (EnglishMorphology) MorphNoun(w *Word) *String {
	realised := baseForm(w)
	if (isPlural(w) || isPlural(w.Parent())) && !w.features.Proper {
		if plural := storedForm(w, func(f *Features) string { return f.Plural }); plural != "" {
			realised = plural
		} else {
			realised = englishPlural(realised)
		}
	}
	return newString(realised+w.features.Particle, w)
}

// MorphAdjective builds comparative and superlative forms; other
// adjectives keep their base form.
func (EnglishMorphology) MorphAdjective(w *Word) *String {
	return newString(gradeForm(w, baseForm(w), false), w)
}

// MorphAdverb grades like adjectives, except that adverbs in -ly always
// take "more"/"most".
func (EnglishMorphology) MorphAdverb(w *Word) *String {
	return newString(gradeForm(w, baseForm(w), true), w)
}

// gradeForm returns the comparative or superlative of base when w asks for
// one: stored form first, then the suffix rules.
func gradeForm(w *Word, base string, adverb bool) string {
	f := &w.features
	switch {
	case f.Comparative:
		if stored := storedForm(w, func(f *Features) string { return f.ComparativeForm }); stored != "" {
			return stored
		}
		if adverb && strings.HasSuffix(base, "ly") {
			return "more " + base
		}
		if w.DefaultInflection == InflRegularDouble {
			return doubleFinal(base) + "er"
		}
		return regularComparative(base)
	case f.Superlative:
		if stored := storedForm(w, func(f *Features) string { return f.SuperlativeForm }); stored != "" {
			return stored
		}
		if adverb && strings.HasSuffix(base, "ly") {
			return "most " + base
		}
		if w.DefaultInflection == InflRegularDouble {
			return doubleFinal(base) + "est"
		}
		return regularSuperlative(base)
	}
	return base
}

func regularComparative(base string) string {
	switch {
	case syllables(base) >= 2:
		return "more " + base
	case endsWithConsonantY(base):
		return strings.TrimSuffix(base, "y") + "ier"
	case strings.HasSuffix(base, "e"):
		return base + "r"
	}
	return base + "er"
}

func regularSuperlative(base string) string {
	switch {
	case syllables(base) >= 2:
		return "most " + base
	case endsWithConsonantY(base):
		return strings.TrimSuffix(base, "y") + "iest"
	case strings.HasSuffix(base, "e"):
		return base + "st"
	}
	return base + "est"
}

// englishPlural appends "es" after a final s and "s" otherwise. Irregular
// plurals come from the lexicon.
func englishPlural(s string) string {
	if strings.HasSuffix(s, "s") {
		return s + "es"
	}
	return s + "s"
}

// Pronoun usage slots, in table order.
const (
	slotSubject = iota
	slotObject
	slotReflexive
	slotPossessiveStandalone
	slotPossessiveSpecifier
)

// englishPronouns is indexed by [number][slot][person], third person being
// split by gender: he/she/it.
var englishPronouns = [2][5][5]string{
	{
		{"I", "you", "he", "she", "it"},
		{"me", "you", "him", "her", "it"},
		{"myself", "yourself", "himself", "herself", "itself"},
		{"mine", "yours", "his", "hers", "its"},
		{"my", "your", "his", "her", "its"},
	},
	{
		{"we", "you", "they", "they", "they"},
		{"us", "you", "them", "them", "them"},
		{"ourselves", "yourselves", "themselves", "themselves", "themselves"},
		{"ours", "yours", "theirs", "theirs", "theirs"},
		{"our", "your", "their", "their", "their"},
	},
}

var whPronouns = map[string]bool{
	"who": true, "what": true, "which": true, "where": true,
	"why": true, "how": true, "how many": true,
}

// MorphPronoun looks the pronoun up by number, usage slot, person and, for
// the third person, gender. Wh-words and non-morph pronouns keep their base
// form. A pronoun with no discourse function takes the subject case.
func (EnglishMorphology) MorphPronoun(w *Word) *String {
	f := &w.features
	if f.NonMorph || whPronouns[strings.ToLower(w.Base)] {
		return newString(w.Base, w)
	}

	number := 0
	if isPlural(w) {
		number = 1
	}

	var person int
	switch f.Person {
	case First:
		person = 0
	case Second:
		person = 1
	default:
		person = 2
		switch f.Gender {
		case Masculine:
		case Feminine:
			person++
		default:
			person += 2
		}
	}

	return newString(englishPronouns[number][pronounSlot(f)][person], w)
}

func pronounSlot(f *Features) int {
	switch {
	case f.Reflexive:
		return slotReflexive
	case f.Possessive:
		if f.Discourse == DiscourseSpecifier {
			return slotPossessiveSpecifier
		}
		return slotPossessiveStandalone
	case f.Discourse == DiscourseNone,
		f.Discourse == DiscourseSubject && !f.Passive,
		(f.Discourse == DiscourseObject || f.Discourse == DiscourseComplement) && f.Passive,
		f.Discourse == DiscourseSpecifier:
		return slotSubject
	}
	return slotObject
}
