package nlg

import "fmt"

// Realiser turns phrase trees into surface tokens using the morphology
// rules of its lexicon's language.
type Realiser struct {
	lex   *Lexicon
	rules MorphologyRules
}

// NewRealiser returns a realiser for lex. It fails with
// ErrUnsupportedLanguage when the language has no morphology rules.
func NewRealiser(lex *Lexicon) (*Realiser, error) {
	rules, ok := rulesFor(lex.Language())
	if !ok {
		return nil, fmt.Errorf("%w: no morphology rules for %s", ErrUnsupportedLanguage, lex.Language())
	}
	return &Realiser{lex: lex, rules: rules}, nil
}

// Lexicon returns the lexicon the realiser was built for.
func (r *Realiser) Lexicon() *Lexicon { return r.lex }

// NewTree returns an empty tree bound to the realiser's lexicon.
func (r *Realiser) NewTree() *Tree { return NewTree(r.lex) }

// NounPhrase builds a noun phrase from a specifier, a head and modifiers
// placed by the language's phrase helper. det and head may be nil.
func (t *Tree) NounPhrase(det, head Element, mods ...Element) *Phrase {
	p := t.NewPhrase(CategoryNounPhrase)
	p.SetHead(head)
	p.SetSpecifier(det)
	for _, m := range mods {
		p.AddModifier(m)
	}
	return p
}

// NounPhraseText is NounPhrase for raw text: the specifier is looked up as
// a determiner, the head as a noun and every modifier goes through the
// phrase helper's resolution (lexicon, ad-hoc adjective or opaque text).
// A head missing from the lexicon becomes an ad-hoc noun.
func (t *Tree) NounPhraseText(det, head string, mods ...string) *Phrase {
	p := t.NewPhrase(CategoryNounPhrase)
	if head != "" {
		h := t.lex.First(head, CategoryNoun)
		if h == nil {
			h = NewWord(head, CategoryNoun)
		}
		p.SetHead(h)
	}
	if det != "" {
		if d := t.lex.First(det, CategoryDeterminer); d != nil {
			p.SetSpecifier(d)
		}
	}
	for _, m := range mods {
		p.AddModifierText(m)
	}
	return p
}

// RealiseSyntax flattens p into a List in surface order. Words are copied
// with their discourse function filled in from the slot they occupy, and
// sub-phrases become nested lists. The list keeps p's category, features
// and parent, and remembers which component is the head. A pronoun head
// takes the discourse function of its phrase, so that case follows the
// phrase's role in the clause.
func (r *Realiser) RealiseSyntax(p *Phrase) *List {
	return r.realiseSyntax(p, DiscourseNone)
}

// realiseSyntax is RealiseSyntax for a phrase occupying slot role in its
// parent; role applies when p has no discourse function of its own.
func (r *Realiser) realiseSyntax(p *Phrase, role DiscourseFunction) *List {
	t := p.tree
	list := t.NewList()
	list.category = p.category
	list.features = p.features.Clone()
	list.parent = p.parent
	if list.features.Discourse == DiscourseNone {
		list.features.Discourse = role
	}

	add := func(child Element, role DiscourseFunction, isHead bool) {
		if isNil(child) {
			return
		}
		var c Element
		switch child := child.(type) {
		case *Word:
			c = child.Clone()
		case *String:
			s := &String{node: newNode(child.category), Text: child.Text, Word: child.Word}
			s.features = child.features.Clone()
			c = s
		case *Phrase:
			c = r.realiseSyntax(child, role)
		default:
			c = child
		}
		switch f := c.Features(); {
		case isHead && isPronoun(c):
			if list.features.Discourse != DiscourseNone {
				f.Discourse = list.features.Discourse
			}
		case f.Discourse == DiscourseNone:
			f.Discourse = role
		}
		list.Append(c)
		if isHead {
			list.head = c.base().id
		}
	}

	if p.category == CategoryNounPhrase {
		add(p.Specifier, DiscourseSpecifier, false)
	}
	for _, m := range p.PreModifiers {
		add(m, DiscoursePreModifier, false)
	}
	add(p.Head, DiscourseHead, true)
	for _, c := range p.Complements {
		add(c, DiscourseComplement, false)
	}
	for _, m := range p.PostModifiers {
		add(m, DiscoursePostModifier, false)
	}
	return list
}

// RealiseMorphology replaces every Word leaf under e with its inflected
// String, in place. A Phrase is realised syntactically first. Calling it
// twice on the same tree is not supported.
func (r *Realiser) RealiseMorphology(e Element) Element {
	switch e := e.(type) {
	case *Word:
		s := r.rules.Realise(e)
		if e.tree != nil {
			e.tree.replace(e, s)
		}
		return s
	case *List:
		for i, c := range e.Components {
			e.Components[i] = r.RealiseMorphology(c)
		}
		return e
	case *Phrase:
		return r.RealiseMorphology(r.RealiseSyntax(e))
	}
	return e
}

// Realise runs both passes on p and returns its surface tokens.
func (r *Realiser) Realise(p *Phrase) []string {
	return Tokens(r.RealiseMorphology(r.RealiseSyntax(p)))
}

// Tokens returns the surface tokens of e in order. Words that have not been
// realised contribute their base form.
func Tokens(e Element) []string {
	var out []string
	var walk func(Element)
	walk = func(e Element) {
		switch e := e.(type) {
		case *String:
			if e != nil && e.Text != "" {
				out = append(out, e.Text)
			}
		case *Word:
			if e != nil && baseForm(e) != "" {
				out = append(out, baseForm(e))
			}
		case *List:
			if e != nil {
				for _, c := range e.Components {
					walk(c)
				}
			}
		case *Phrase:
			if e != nil {
				for _, c := range e.Children() {
					walk(c)
				}
			}
		}
	}
	walk(e)
	return out
}

// Join renders tokens as a single space-separated string.
func Join(tokens []string) string { return joinTokens(tokens) }
