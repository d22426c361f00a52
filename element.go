package nlg

// Element is a node of a realisation tree. The set of implementations is
// closed: *Word, *Phrase, *String and *List.
type Element interface {
	Category() Category
	// Features returns the node's own feature record for in-place edits.
	Features() *Features
	// Parent returns the syntactic parent, or nil for a root or detached node.
	Parent() Element
	// Tree returns the arena owning the node, nil while detached.
	Tree() *Tree
	base() *node
}

// NodeID identifies a node inside its Tree.
type NodeID int32

const noNode NodeID = -1

// node holds the attributes shared by every element. Parent links are ids
// into the owning tree, never pointers to other nodes.
type node struct {
	tree     *Tree
	id       NodeID
	parent   NodeID
	category Category
	features Features
}

func newNode(cat Category) node {
	return node{id: noNode, parent: noNode, category: cat}
}

func (n *node) base() *node { return n }

func (n *node) Category() Category { return n.category }

func (n *node) Features() *Features { return &n.features }

func (n *node) Tree() *Tree { return n.tree }

// Handle returns the node's id in its tree, or -1 while detached.
func (n *node) Handle() NodeID { return n.id }

func (n *node) Parent() Element {
	if n.tree == nil || n.parent == noNode {
		return nil
	}
	return n.tree.nodes[n.parent]
}

// Tree is the arena owning every node built for one realisation request.
// It is not safe for concurrent use.
type Tree struct {
	lex    *Lexicon
	helper PhraseHelper
	nodes  []Element
}

// NewTree returns an empty tree bound to lex. Modifier placement follows
// the phrase helper of the lexicon's language.
func NewTree(lex *Lexicon) *Tree {
	return &Tree{lex: lex, helper: helperFor(lex.Language())}
}

// Lexicon returns the lexicon the tree resolves words against.
func (t *Tree) Lexicon() *Lexicon { return t.lex }

// Node returns the element with the given id, or nil.
func (t *Tree) Node(id NodeID) Element {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Len returns the number of nodes ever adopted by the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// adopt makes e a node of t attached under parent. Nodes coming from
// another tree are taken over with a fresh id.
func (t *Tree) adopt(e Element, parent NodeID) {
	n := e.base()
	if n.tree != t {
		n.tree = t
		n.id = NodeID(len(t.nodes))
		t.nodes = append(t.nodes, e)
	}
	n.parent = parent
}

// replace puts e in the slot of old: same id, same parent.
func (t *Tree) replace(old, e Element) {
	o, n := old.base(), e.base()
	if o.tree != t {
		t.adopt(e, noNode)
		return
	}
	n.tree = t
	n.id = o.id
	n.parent = o.parent
	t.nodes[o.id] = e
}

// NewPhrase creates an empty phrase of category cat owned by t.
func (t *Tree) NewPhrase(cat Category) *Phrase {
	p := &Phrase{node: newNode(cat)}
	t.adopt(p, noNode)
	return p
}

// NewString creates a detached literal token owned by t.
func (t *Tree) NewString(text string) *String {
	s := &String{node: newNode(CategoryCannedText), Text: text}
	t.adopt(s, noNode)
	return s
}

// NewList creates an empty list owned by t.
func (t *Tree) NewList() *List {
	l := &List{node: newNode(CategoryAny), head: noNode}
	t.adopt(l, noNode)
	return l
}

// Word is a lexical item: a lexicon entry plus instance features.
type Word struct {
	node

	Base string
	ID   string

	Inflections       []Inflection
	DefaultInflection Inflection

	lexicon *Lexicon
	// baseWord is the immutable lexicon entry this word was copied from.
	baseWord *Word
}

// NewWord creates an ad-hoc word that is not backed by any lexicon entry.
func NewWord(base string, cat Category) *Word {
	return &Word{
		node:              newNode(cat),
		Base:              base,
		Inflections:       []Inflection{InflRegular},
		DefaultInflection: InflRegular,
	}
}

// Lexicon returns the lexicon the word was read from, or nil.
func (w *Word) Lexicon() *Lexicon { return w.lexicon }

// BaseWord returns a copy of the lexicon entry backing w, or nil.
func (w *Word) BaseWord() *Word {
	if w.baseWord == nil {
		return nil
	}
	return w.baseWord.Clone()
}

// Clone returns a detached deep copy of w that shares its base word.
func (w *Word) Clone() *Word {
	c := &Word{
		node:              newNode(w.category),
		Base:              w.Base,
		ID:                w.ID,
		Inflections:       append([]Inflection(nil), w.Inflections...),
		DefaultInflection: w.DefaultInflection,
		lexicon:           w.lexicon,
		baseWord:          w.baseWord,
	}
	c.features = w.features.Clone()
	return c
}

// Phrase is a constituent with a specifier, a head, modifiers and
// complements.
type Phrase struct {
	node

	Specifier     Element
	Head          Element
	PreModifiers  []Element
	PostModifiers []Element
	Complements   []Element
}

// SetHead attaches e as the phrase head. A pronoun head keeps its
// discourse function; it takes the phrase's at realisation.
func (p *Phrase) SetHead(e Element) {
	if isNil(e) {
		return
	}
	p.tree.adopt(e, p.id)
	if f := e.Features(); f.Discourse == DiscourseNone && !isPronoun(e) {
		f.Discourse = DiscourseHead
	}
	p.Head = e
}

// SetSpecifier attaches e as the specifier. A pronoun head is swapped for
// the noun of the same base form, and the specifier's number becomes the
// phrase number.
func (p *Phrase) SetSpecifier(e Element) {
	if isNil(e) {
		return
	}
	p.tree.adopt(e, p.id)
	e.Features().Discourse = DiscourseSpecifier
	if head, ok := p.Head.(*Word); ok && head.Category() == CategoryPronoun && p.tree.lex != nil {
		if noun := p.tree.lex.First(head.Base, CategoryNoun); noun != nil {
			p.Head = nil
			p.SetHead(noun)
		}
	}
	if n := e.Features().Number; n != NumberUnset {
		p.features.Number = n
	}
	p.Specifier = e
}

// AddPreModifier appends e to the pre-modifiers.
func (p *Phrase) AddPreModifier(e Element) {
	if isNil(e) {
		return
	}
	p.tree.adopt(e, p.id)
	p.PreModifiers = append(p.PreModifiers, e)
}

// AddPostModifier appends e to the post-modifiers.
func (p *Phrase) AddPostModifier(e Element) {
	if isNil(e) {
		return
	}
	p.tree.adopt(e, p.id)
	p.PostModifiers = append(p.PostModifiers, e)
}

// AddComplement appends e to the complements. A clause complement without
// a discourse function becomes the object.
func (p *Phrase) AddComplement(e Element) {
	if isNil(e) {
		return
	}
	p.tree.adopt(e, p.id)
	if f := e.Features(); e.Category() == CategoryClause && f.Discourse == DiscourseNone {
		f.Discourse = DiscourseObject
	}
	p.Complements = append(p.Complements, e)
}

// AddModifier places an already built element with the language's phrase
// helper.
func (p *Phrase) AddModifier(e Element) {
	p.tree.helper.AddModifier(p, e)
}

// AddModifierText resolves text against the lexicon and places the result
// with the language's phrase helper.
func (p *Phrase) AddModifierText(text string) {
	p.tree.helper.AddModifierText(p, text)
}

// Children returns the constituents in surface order.
func (p *Phrase) Children() []Element {
	var out []Element
	add := func(es ...Element) {
		for _, e := range es {
			if !isNil(e) {
				out = append(out, e)
			}
		}
	}
	if p.category == CategoryNounPhrase {
		add(p.Specifier)
	}
	add(p.PreModifiers...)
	add(p.Head)
	add(p.Complements...)
	add(p.PostModifiers...)
	return out
}

// String is a realised surface token, optionally tied to its source word.
type String struct {
	node

	Text string
	Word *Word
}

// newString builds the realisation of w; the token keeps w's features.
func newString(text string, w *Word) *String {
	s := &String{node: newNode(w.category), Text: text, Word: w}
	s.features = w.features.Clone()
	return s
}

// List is an ordered sequence of realised components.
type List struct {
	node

	Components []Element
	head       NodeID
}

// Append attaches e as the last component.
func (l *List) Append(e Element) {
	l.tree.adopt(e, l.id)
	l.Components = append(l.Components, e)
}

// Head returns the component standing for the head of the phrase the list
// was realised from, or nil.
func (l *List) Head() Element {
	if l.tree == nil {
		return nil
	}
	return l.tree.Node(l.head)
}

// genderOf returns e's own gender, falling back to its head for phrases
// and lists and to the source word for strings.
func genderOf(e Element) Gender {
	if isNil(e) {
		return GenderUnset
	}
	if g := e.Features().Gender; g != GenderUnset {
		return g
	}
	if h := headOf(e); !isNil(h) {
		return h.Features().Gender
	}
	return GenderUnset
}

// numberOf mirrors genderOf for grammatical number.
func numberOf(e Element) Number {
	if isNil(e) {
		return NumberUnset
	}
	if n := e.Features().Number; n != NumberUnset {
		return n
	}
	if h := headOf(e); !isNil(h) {
		return h.Features().Number
	}
	return NumberUnset
}

func headOf(e Element) Element {
	switch e := e.(type) {
	case *Phrase:
		return e.Head
	case *List:
		return e.Head()
	case *String:
		if e.Word != nil {
			return e.Word
		}
	}
	return nil
}

func isPlural(e Element) bool { return numberOf(e) == Plural }

// isPronoun reports whether e is a pronoun word.
func isPronoun(e Element) bool {
	w, ok := e.(*Word)
	return ok && w != nil && w.Category() == CategoryPronoun
}

// isNil reports whether e is nil or a typed nil pointer.
func isNil(e Element) bool {
	switch v := e.(type) {
	case nil:
		return true
	case *Word:
		return v == nil
	case *Phrase:
		return v == nil
	case *String:
		return v == nil
	case *List:
		return v == nil
	}
	return false
}
