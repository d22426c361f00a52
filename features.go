package nlg

import "strings"

// Category is the syntactic category of a word or phrase.
// Word categories match the upper-cased <category> values of the lexicon
// sources.
type Category string

const (
	CategoryAny            Category = "ANY"
	CategoryNoun           Category = "NOUN"
	CategoryVerb           Category = "VERB"
	CategoryAdjective      Category = "ADJECTIVE"
	CategoryAdverb         Category = "ADVERB"
	CategoryDeterminer     Category = "DETERMINER"
	CategoryPronoun        Category = "PRONOUN"
	CategoryPreposition    Category = "PREPOSITION"
	CategoryConjunction    Category = "CONJUNCTION"
	CategoryComplementiser Category = "COMPLEMENTISER"

	CategoryNounPhrase          Category = "NOUN_PHRASE"
	CategoryVerbPhrase          Category = "VERB_PHRASE"
	CategoryAdjectivePhrase     Category = "ADJECTIVE_PHRASE"
	CategoryAdverbPhrase        Category = "ADVERB_PHRASE"
	CategoryPrepositionalPhrase Category = "PREPOSITIONAL_PHRASE"
	CategoryClause              Category = "CLAUSE"
	CategoryCannedText          Category = "CANNED_TEXT"
)

// ParseCategory normalises a category name the way the lexicon does
// (case-insensitive, stored upper-cased). Empty input yields CategoryAny.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryAny
	}
	return Category(strings.ToUpper(s))
}

// Gender of a word or phrase. The zero value means "not set".
type Gender uint8

const (
	GenderUnset Gender = iota
	Masculine
	Feminine
	Neuter
)

// Number of a word or phrase. The zero value means "not set".
type Number uint8

const (
	NumberUnset Number = iota
	Singular
	Plural
	NumberBoth
)

// Person of a pronoun or verb. The zero value means "not set".
type Person uint8

const (
	PersonUnset Person = iota
	First
	Second
	Third
)

// Tense of a verb. Carried for completeness; verb morphology is not realised.
type Tense uint8

const (
	TenseUnset Tense = iota
	Present
	Past
	Future
	Conditional
)

// DiscourseFunction is the role a constituent plays relative to its governor.
type DiscourseFunction uint8

const (
	DiscourseNone DiscourseFunction = iota
	DiscourseSubject
	DiscourseObject
	DiscourseIndirectObject
	DiscourseComplement
	DiscourseSpecifier
	DiscourseFrontModifier
	DiscoursePreModifier
	DiscoursePostModifier
	DiscourseHead
)

// isModifier reports whether d is one of the front/pre/post modifier roles.
func (d DiscourseFunction) isModifier() bool {
	return d == DiscourseFrontModifier || d == DiscoursePreModifier || d == DiscoursePostModifier
}

var genderNames = map[string]Gender{"masculine": Masculine, "feminine": Feminine, "neuter": Neuter}

var numberNames = map[string]Number{"singular": Singular, "plural": Plural, "both": NumberBoth}

var personNames = map[string]Person{"first": First, "second": Second, "third": Third}

var tenseNames = map[string]Tense{"present": Present, "past": Past, "future": Future, "conditional": Conditional}

var discourseNames = map[string]DiscourseFunction{
	"subject":         DiscourseSubject,
	"object":          DiscourseObject,
	"indirect_object": DiscourseIndirectObject,
	"complement":      DiscourseComplement,
	"specifier":       DiscourseSpecifier,
	"front_modifier":  DiscourseFrontModifier,
	"pre_modifier":    DiscoursePreModifier,
	"post_modifier":   DiscoursePostModifier,
	"head":            DiscourseHead,
}

// String returns the lexicon name of g, or "" when unset.
func (g Gender) String() string { return nameOf(genderNames, g) }

// String returns the lexicon name of n, or "" when unset.
func (n Number) String() string { return nameOf(numberNames, n) }

// String returns the lexicon name of p, or "" when unset.
func (p Person) String() string { return nameOf(personNames, p) }

func nameOf[T comparable](names map[string]T, v T) string {
	for name, x := range names {
		if x == v {
			return name
		}
	}
	return ""
}

// ParseGender maps "masculine", "feminine" or "neuter" to a Gender.
func ParseGender(s string) Gender { return genderNames[strings.ToLower(strings.TrimSpace(s))] }

// ParseNumber maps "singular", "plural" or "both" to a Number.
func ParseNumber(s string) Number { return numberNames[strings.ToLower(strings.TrimSpace(s))] }

// ParsePerson maps "first", "second" or "third" to a Person.
func ParsePerson(s string) Person { return personNames[strings.ToLower(strings.TrimSpace(s))] }

// ParseDiscourseFunction maps a snake_case role name to a DiscourseFunction.
func ParseDiscourseFunction(s string) DiscourseFunction {
	return discourseNames[strings.ToLower(strings.TrimSpace(s))]
}

// Features is the grammatical feature record of an element.
// Well-known features are typed fields; anything else a lexicon declares
// lands in Extra.
type Features struct {
	Gender    Gender
	Number    Number
	Person    Person
	Tense     Tense
	Discourse DiscourseFunction

	Comparative bool
	Superlative bool
	Passive     bool
	Possessive  bool
	Reflexive   bool
	Proper      bool
	Preposed    bool
	NonMorph    bool

	// Particle is appended after inflection (clitic or attached suffix).
	Particle string

	// Stored irregular forms, declared in the lexicon or set by the caller.
	Plural            string
	ComparativeForm   string
	SuperlativeForm   string
	FeminineSingular  string
	FemininePlural    string
	OppositeGender    string
	PresentParticiple string

	Extra map[string]string
}

// Clone returns a deep copy of f.
func (f Features) Clone() Features {
	if f.Extra != nil {
		extra := make(map[string]string, len(f.Extra))
		for k, v := range f.Extra {
			extra[k] = v
		}
		f.Extra = extra
	}
	return f
}

// Set stores a valued feature under its lexicon name.
func (f *Features) Set(name, value string) {
	switch name {
	case "gender":
		f.Gender = ParseGender(value)
	case "number":
		f.Number = ParseNumber(value)
	case "person":
		f.Person = ParsePerson(value)
	case "tense":
		f.Tense = tenseNames[strings.ToLower(value)]
	case "discourse_function":
		f.Discourse = ParseDiscourseFunction(value)
	case "particle":
		f.Particle = value
	case "plural":
		f.Plural = value
	case "comparative":
		f.ComparativeForm = value
	case "superlative":
		f.SuperlativeForm = value
	case "feminine_singular":
		f.FeminineSingular = value
	case "feminine_plural":
		f.FemininePlural = value
	case "opposite_gender":
		f.OppositeGender = value
	case "present_participle":
		f.PresentParticiple = value
	default:
		if f.Extra == nil {
			f.Extra = make(map[string]string)
		}
		f.Extra[name] = value
	}
}

// SetFlag stores an empty-bodied lexicon feature as boolean true.
func (f *Features) SetFlag(name string) {
	switch name {
	case "proper":
		f.Proper = true
	case "preposed":
		f.Preposed = true
	case "reflexive":
		f.Reflexive = true
	case "possessive":
		f.Possessive = true
	case "passive":
		f.Passive = true
	case "non_morph":
		f.NonMorph = true
	case "is_comparative":
		f.Comparative = true
	case "is_superlative":
		f.Superlative = true
	default:
		f.Set(name, "true")
	}
}

// Flag reports whether an extension flag is set in Extra.
func (f *Features) Flag(name string) bool {
	return f.Extra[name] == "true"
}

// variants lists the stored surface forms, used to fill the variant index.
func (f *Features) variants() []string {
	var out []string
	for _, v := range []string{
		f.Plural, f.ComparativeForm, f.SuperlativeForm,
		f.FeminineSingular, f.FemininePlural, f.PresentParticiple,
	} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
