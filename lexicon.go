// Package nlg realises abstract phrase descriptions as inflected surface
// tokens for English and French. It holds the word lexicon, the element
// tree, the phrase helpers that place modifiers, and the per-language
// morphology rules.
package nlg

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
)

//go:embed data/*.xml
var dataFS embed.FS

var (
	// ErrUnsupportedLanguage is returned by Load when no lexicon source
	// exists for the requested language.
	ErrUnsupportedLanguage = errors.New("language not supported")
	// ErrDuplicateID is returned by Load when two entries share an <id>.
	ErrDuplicateID = errors.New("duplicate word id")
)

// Language identifies a lexicon source, e.g. "english".
type Language string

const (
	English Language = "english"
	French  Language = "french"
)

var languageAliases = map[string]Language{
	"en": English, "eng": English, "english": English,
	"fr": French, "fra": French, "fre": French, "french": French, "français": French,
}

// ParseLanguage maps ISO codes and names to a Language. Unknown names are
// returned lower-cased; Load reports them as unsupported.
func ParseLanguage(s string) Language {
	s = strings.ToLower(strings.TrimSpace(s))
	if l, ok := languageAliases[s]; ok {
		return l
	}
	return Language(s)
}

// sourceName is the lexicon file name for l.
func (l Language) sourceName() string {
	return fmt.Sprintf("%s-lexicon.xml", l)
}

// Lexicon is an indexed, read-mostly store of word metadata for one
// language. Entries are owned by the lexicon; every lookup hands out a
// fresh copy, so callers may edit features freely.
//
// Lookups are safe for concurrent use. Register is serialised against them.
type Lexicon struct {
	lang Language

	mu sync.RWMutex

	// entries owns every word; indexes hold positions into it.
	entries []*Word

	// idIndex maps <id> → entry position.
	idIndex map[string]int

	// baseIndex maps base form → entry positions.
	baseIndex map[string][]int

	// variantIndex maps base form and every stored inflected form → entry positions.
	variantIndex map[string][]int

	// categoryIndex maps category → entry positions.
	categoryIndex map[Category][]int

	onRegister []func(*Word)
	logger     *slog.Logger
}

// Option configures Load.
type Option func(*options)

type options struct {
	fsys       fs.FS
	rng        *rand.Rand
	logger     *slog.Logger
	onRegister []func(*Word)
}

// WithSource reads lexicon files from fsys instead of the embedded data.
func WithSource(fsys fs.FS) Option {
	return func(o *options) { o.fsys = fsys }
}

// WithRandomDefaultInflection picks the default inflection pattern at random
// among the declared ones when "reg" is absent, instead of the first one in
// priority order. Two loads of the same source may then disagree.
func WithRandomDefaultInflection(on bool) Option {
	return func(o *options) {
		if on {
			o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		} else {
			o.rng = nil
		}
	}
}

// WithLogger sets the logger used to report load statistics and failed
// ad-hoc registrations.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegisterHook registers fn to be called with a copy of every word added
// through Register.
func WithRegisterHook(fn func(*Word)) Option {
	return func(o *options) { o.onRegister = append(o.onRegister, fn) }
}

// Load parses the lexicon source of lang once and builds the id, base,
// variant and category indexes.
func Load(lang Language, opts ...Option) (*Lexicon, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fsys == nil {
		sub, err := fs.Sub(dataFS, "data")
		if err != nil {
			return nil, fmt.Errorf("embedded lexicons: %w", err)
		}
		o.fsys = sub
	}

	name := lang.sourceName()
	f, err := o.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (%s not found)", ErrUnsupportedLanguage, lang, name)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	l := &Lexicon{
		lang:          lang,
		idIndex:       make(map[string]int),
		baseIndex:     make(map[string][]int),
		variantIndex:  make(map[string][]int),
		categoryIndex: make(map[Category][]int),
		onRegister:    o.onRegister,
		logger:        o.logger,
	}
	if err := l.loadWords(f, o.rng); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	o.logger.Debug("lexicon loaded",
		slog.String("language", string(lang)),
		slog.Int("words", len(l.entries)),
		slog.Int("ids", len(l.idIndex)),
		slog.Int("bases", len(l.baseIndex)),
		slog.Int("variants", len(l.variantIndex)),
		slog.Int("categories", len(l.categoryIndex)))
	return l, nil
}

// Language returns the language of the lexicon.
func (l *Lexicon) Language() Language { return l.lang }

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Get returns copies of every entry matching key, trying the base-form
// index, then the id index, then the variant index. An id match yields
// exactly one entry; base and variant matches are filtered by cat unless
// cat is CategoryAny. A miss returns nil.
func (l *Lexicon) Get(key string, cat Category) []*Word {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.get(key, cat)
}

// get is Get without locking. Callers hold mu.
func (l *Lexicon) get(key string, cat Category) []*Word {
	if pos := l.baseIndex[key]; len(pos) > 0 {
		return l.copies(pos, cat)
	}
	if pos, ok := l.idIndex[key]; ok {
		return []*Word{l.copyOf(pos)}
	}
	if pos := l.variantIndex[key]; len(pos) > 0 {
		return l.copies(pos, cat)
	}
	return nil
}

// First returns the first match of Get, or nil.
func (l *Lexicon) First(key string, cat Category) *Word {
	if ws := l.Get(key, cat); len(ws) > 0 {
		return ws[0]
	}
	return nil
}

// Contains reports whether key matches any entry.
func (l *Lexicon) Contains(key string) bool {
	return len(l.Get(key, CategoryAny)) > 0
}

// HasVariant reports whether form is the base form or a stored inflected
// form of some entry.
func (l *Lexicon) HasVariant(form string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.variantIndex[form]) > 0
}

// Category returns copies of every entry of category cat.
func (l *Lexicon) Category(cat Category) []*Word {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.copies(l.categoryIndex[cat], CategoryAny)
}

// Register adds a copy of w to the lexicon and its indexes. It is the only
// mutation allowed after Load.
func (l *Lexicon) Register(w *Word) error {
	entry := w.Clone()
	entry.lexicon = l
	entry.baseWord = nil

	l.mu.Lock()
	pos, err := l.index(entry)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	added := l.copyOf(pos)
	hooks := l.onRegister
	l.mu.Unlock()

	for _, fn := range hooks {
		fn(added)
	}
	return nil
}

// FirstOrRegister returns the first entry matching w's base form in any
// category, or registers a copy of w and returns it when there is none.
// The lookup and the insertion happen under one write lock, so concurrent
// callers with the same new word agree on a single entry. The boolean
// reports whether w was added.
func (l *Lexicon) FirstOrRegister(w *Word) (*Word, bool, error) {
	l.mu.Lock()
	if found := l.get(w.Base, CategoryAny); len(found) > 0 {
		l.mu.Unlock()
		return found[0], false, nil
	}
	entry := w.Clone()
	entry.lexicon = l
	entry.baseWord = nil
	pos, err := l.index(entry)
	if err != nil {
		l.mu.Unlock()
		return nil, false, err
	}
	added := l.copyOf(pos)
	hooks := l.onRegister
	l.mu.Unlock()

	for _, fn := range hooks {
		fn(added.Clone())
	}
	return added, true, nil
}

// index appends entry to the arena and every index. Callers hold mu.
func (l *Lexicon) index(entry *Word) (int, error) {
	if entry.ID != "" {
		if _, dup := l.idIndex[entry.ID]; dup {
			return 0, fmt.Errorf("%w: %q", ErrDuplicateID, entry.ID)
		}
	}
	pos := len(l.entries)
	l.entries = append(l.entries, entry)

	if entry.ID != "" {
		l.idIndex[entry.ID] = pos
	}
	if entry.Base != "" {
		l.baseIndex[entry.Base] = append(l.baseIndex[entry.Base], pos)
		l.variantIndex[entry.Base] = append(l.variantIndex[entry.Base], pos)
	}
	for _, v := range entry.features.variants() {
		if v != entry.Base {
			l.variantIndex[v] = append(l.variantIndex[v], pos)
		}
	}
	if entry.category != "" {
		l.categoryIndex[entry.category] = append(l.categoryIndex[entry.category], pos)
	}
	return pos, nil
}

// copies returns fresh copies of the entries at pos, filtered by cat.
func (l *Lexicon) copies(pos []int, cat Category) []*Word {
	var out []*Word
	for _, p := range pos {
		if cat != CategoryAny && l.entries[p].category != cat {
			continue
		}
		out = append(out, l.copyOf(p))
	}
	return out
}

func (l *Lexicon) copyOf(pos int) *Word {
	entry := l.entries[pos]
	w := entry.Clone()
	w.baseWord = entry
	return w
}
