package nlg

import (
	"errors"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadLexicon(t *testing.T, lang Language) *Lexicon {
	t.Helper()
	lex, err := Load(lang)
	require.NoError(t, err)
	return lex
}

func TestLoad_Embedded(t *testing.T) {
	t.Parallel()

	for _, lang := range []Language{English, French} {
		t.Run(string(lang), func(t *testing.T) {
			t.Parallel()
			lex := loadLexicon(t, lang)
			assert.Equal(t, lang, lex.Language())
			assert.Positive(t, lex.Len())
			t.Logf("%s: %d words", lang, lex.Len())
		})
	}
}

func TestLoad_UnsupportedLanguage(t *testing.T) {
	t.Parallel()

	_, err := Load(Language("klingon"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
}

func TestLoad_DuplicateID(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"english-lexicon.xml": {Data: []byte(`<lexicon>
  <word><base>cat</base><category>noun</category><id>X1</id></word>
  <word><base>dog</base><category>noun</category><id>X1</id></word>
</lexicon>`)},
	}
	_, err := Load(English, WithSource(fsys))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestLoad_MalformedSource(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"french-lexicon.xml": {Data: []byte(`<lexicon><word>`)}}
	_, err := Load(French, WithSource(fsys))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestLoad_WordParsing(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"english-lexicon.xml": {Data: []byte(`<lexicon>
  <word>
    <base> ox </base>
    <category>Noun</category>
    <id>X1</id>
    <plural>oxen</plural>
    <irreg/>
    <proper/>
    <register>archaic</register>
    <countable/>
  </word>
  <word><base>plain</base><category>adjective</category></word>
</lexicon>`)},
	}
	lex, err := Load(English, WithSource(fsys))
	require.NoError(t, err)

	ox := lex.First("ox", CategoryNoun)
	require.NotNil(t, ox)
	assert.Equal(t, "X1", ox.ID)
	assert.Equal(t, CategoryNoun, ox.Category())
	assert.Equal(t, []Inflection{InflIrregular}, ox.Inflections)
	assert.Equal(t, InflIrregular, ox.DefaultInflection)
	assert.Equal(t, "oxen", ox.Features().Plural)
	assert.True(t, ox.Features().Proper)
	assert.Equal(t, "archaic", ox.Features().Extra["register"])
	assert.True(t, ox.Features().Flag("countable"))

	plain := lex.First("plain", CategoryAny)
	require.NotNil(t, plain)
	assert.Equal(t, []Inflection{InflRegular}, plain.Inflections)
	assert.Equal(t, InflRegular, plain.DefaultInflection)
}

func TestLexicon_GetPriority(t *testing.T) {
	t.Parallel()
	lex := loadLexicon(t, English)

	tests := []struct {
		name string
		key  string
		cat  Category
		want []string
	}{
		{name: "base form", key: "analysis", cat: CategoryAny, want: []string{"analysis"}},
		{name: "base form filtered", key: "book", cat: CategoryNoun, want: []string{"book"}},
		{name: "base form wrong category", key: "book", cat: CategoryVerb, want: nil},
		{name: "identifier", key: "E0005", cat: CategoryAny, want: []string{"book"}},
		{name: "identifier ignores category", key: "E0005", cat: CategoryVerb, want: []string{"book"}},
		{name: "variant", key: "analyses", cat: CategoryAny, want: []string{"analysis"}},
		{name: "variant shared", key: "better", cat: CategoryAny, want: []string{"good", "well"}},
		{name: "variant filtered", key: "better", cat: CategoryAdverb, want: []string{"well"}},
		{name: "miss", key: "zyzzyva", cat: CategoryAny, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got []string
			for _, w := range lex.Get(tt.key, tt.cat) {
				got = append(got, w.Base)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLexicon_CopyOnRead(t *testing.T) {
	t.Parallel()
	lex := loadLexicon(t, English)

	w := lex.First("book", CategoryNoun)
	require.NotNil(t, w)
	w.Features().Number = Plural
	w.Features().Plural = "bookz"
	w.Base = "tome"

	again := lex.First("book", CategoryNoun)
	require.NotNil(t, again)
	assert.Equal(t, "book", again.Base)
	assert.Equal(t, NumberUnset, again.Features().Number)
	assert.Empty(t, again.Features().Plural)

	entry := again.BaseWord()
	require.NotNil(t, entry)
	assert.Equal(t, "book", entry.Base)
}

func TestLexicon_CategoryAndContains(t *testing.T) {
	t.Parallel()
	lex := loadLexicon(t, French)

	dets := lex.Category(CategoryDeterminer)
	var bases []string
	for _, d := range dets {
		bases = append(bases, d.Base)
	}
	assert.Contains(t, bases, "un")
	assert.Contains(t, bases, "le")

	assert.True(t, lex.Contains("maison"))
	assert.True(t, lex.Contains("chevaux"))
	assert.False(t, lex.Contains("ordinateur"))
	assert.True(t, lex.HasVariant("chantant"))
}

func TestLexicon_Register(t *testing.T) {
	t.Parallel()

	var hooked []*Word
	lex, err := Load(English, WithRegisterHook(func(w *Word) { hooked = append(hooked, w) }))
	require.NoError(t, err)
	before := lex.Len()

	w := NewWord("frobby", CategoryAdjective)
	w.ID = "adhoc-1"
	require.NoError(t, lex.Register(w))

	assert.Equal(t, before+1, lex.Len())
	got := lex.First("frobby", CategoryAdjective)
	require.NotNil(t, got)
	assert.Equal(t, "adhoc-1", got.ID)
	assert.Same(t, lex, got.Lexicon())
	require.NotNil(t, lex.First("adhoc-1", CategoryAny))

	require.Len(t, hooked, 1)
	assert.Equal(t, "frobby", hooked[0].Base)

	err = lex.Register(w)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, before+1, lex.Len())
}

func TestParseLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Language
	}{
		{"en", English},
		{"English", English},
		{" fr ", French},
		{"fra", French},
		{"français", French},
		{"de", Language("de")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLanguage(tt.in), tt.in)
	}
}

func TestDefaultInflection(t *testing.T) {
	t.Parallel()

	assert.Equal(t, InflRegular, defaultInflection([]Inflection{InflIrregular, InflRegular}, nil))
	assert.Equal(t, InflRegularDouble, defaultInflection([]Inflection{InflUncount, InflRegularDouble}, nil))
	assert.Equal(t, InflIrregular, defaultInflection([]Inflection{InflInvariant, InflIrregular}, nil))
}

func TestLoad_RandomDefaultInflection(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"english-lexicon.xml": {Data: []byte(`<lexicon>
  <word><base>fish</base><category>noun</category><uncount/><irreg/></word>
</lexicon>`)},
	}
	lex, err := Load(English, WithSource(fsys), WithRandomDefaultInflection(true))
	require.NoError(t, err)

	fish := lex.First("fish", CategoryNoun)
	require.NotNil(t, fish)
	assert.Contains(t, []Inflection{InflUncount, InflIrregular}, fish.DefaultInflection)
}

func TestLexicon_FirstOrRegister(t *testing.T) {
	t.Parallel()

	var hooked []*Word
	lex, err := Load(English, WithRegisterHook(func(w *Word) { hooked = append(hooked, w) }))
	require.NoError(t, err)
	before := lex.Len()

	w := NewWord("frobby", CategoryAdjective)
	w.ID = "adhoc-1"
	got, added, err := lex.FirstOrRegister(w)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "adhoc-1", got.ID)
	assert.Same(t, lex, got.Lexicon())

	other := NewWord("frobby", CategoryAdjective)
	other.ID = "adhoc-2"
	got, added, err = lex.FirstOrRegister(other)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, "adhoc-1", got.ID)

	// A stored inflected form counts as a match.
	got, added, err = lex.FirstOrRegister(NewWord("children", CategoryAdjective))
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, "child", got.Base)

	assert.Equal(t, before+1, lex.Len())
	assert.Len(t, hooked, 1)
}

func TestLexicon_ConcurrentAdHocRegistration(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		hooked int
	)
	lex, err := Load(French, WithRegisterHook(func(*Word) {
		mu.Lock()
		hooked++
		mu.Unlock()
	}))
	require.NoError(t, err)
	before := lex.Len()

	ids := make([]string, 16)
	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			np := NewTree(lex).NounPhraseText("une", "maison", "rouge")
			ids[i] = np.PostModifiers[0].(*Word).ID
		}()
	}
	wg.Wait()

	assert.Equal(t, before+1, lex.Len())
	assert.Len(t, lex.Get("rouge", CategoryAny), 1)
	assert.Equal(t, 1, hooked)
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}
