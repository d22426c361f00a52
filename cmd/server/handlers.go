package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/cours-de-latin/nlg"
)

// ---- JSON types ---------------------------------------------------------

type featuresJSON struct {
	Gender      string `json:"gender,omitempty"`
	Number      string `json:"number,omitempty"`
	Person      string `json:"person,omitempty"`
	Comparative bool   `json:"comparative,omitempty"`
	Superlative bool   `json:"superlative,omitempty"`
	Reflexive   bool   `json:"reflexive,omitempty"`
	Possessive  bool   `json:"possessive,omitempty"`
}

type realiseRequest struct {
	Language     string       `json:"language"`
	Specifier    string       `json:"specifier"`
	Head         string       `json:"head"`
	Modifiers    []string     `json:"modifiers"`
	Features     featuresJSON `json:"features"`
	HeadFeatures featuresJSON `json:"head_features"`
}

type realiseResponse struct {
	Tokens []string `json:"tokens"`
	Text   string   `json:"text"`
}

type wordJSON struct {
	ID                string   `json:"id,omitempty"`
	Base              string   `json:"base"`
	Category          string   `json:"category"`
	Inflections       []string `json:"inflections,omitempty"`
	DefaultInflection string   `json:"default_inflection,omitempty"`
	Gender            string   `json:"gender,omitempty"`
	Number            string   `json:"number,omitempty"`
	Person            string   `json:"person,omitempty"`
	Plural            string   `json:"plural,omitempty"`
	Comparative       string   `json:"comparative,omitempty"`
	Superlative       string   `json:"superlative,omitempty"`
	FeminineSingular  string   `json:"feminine_singular,omitempty"`
	FemininePlural    string   `json:"feminine_plural,omitempty"`
	OppositeGender    string   `json:"opposite_gender,omitempty"`
	Proper            bool     `json:"proper,omitempty"`
	Preposed          bool     `json:"preposed,omitempty"`
}

type lexiconResponse struct {
	Language string     `json:"language"`
	Key      string     `json:"key"`
	Words    []wordJSON `json:"words"`
}

type inflectResponse struct {
	Word wordJSON `json:"word"`
	Form string   `json:"form"`
}

type languagesResponse struct {
	Languages []string `json:"languages"`
	Version   string   `json:"version"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

// realisers holds one realiser per loaded language. Realisers are safe for
// concurrent use; every request builds its own tree.
type realisers map[nlg.Language]*nlg.Realiser

func (rs realisers) lookup(name string) (*nlg.Realiser, error) {
	if name == "" {
		return nil, fmt.Errorf("missing 'language'")
	}
	lang := nlg.ParseLanguage(name)
	r, ok := rs[lang]
	if !ok {
		return nil, fmt.Errorf("language %q not loaded", lang)
	}
	return r, nil
}

func (rs realisers) names() []string {
	out := make([]string, 0, len(rs))
	for lang := range rs {
		out = append(out, string(lang))
	}
	slices.Sort(out)
	return out
}

// apply copies the set fields of fj onto f. Unknown enum values are
// rejected rather than silently ignored.
func (fj featuresJSON) apply(f *nlg.Features) error {
	if fj.Gender != "" {
		g := nlg.ParseGender(fj.Gender)
		if g == nlg.GenderUnset {
			return fmt.Errorf("unknown gender %q", fj.Gender)
		}
		f.Gender = g
	}
	if fj.Number != "" {
		n := nlg.ParseNumber(fj.Number)
		if n == nlg.NumberUnset {
			return fmt.Errorf("unknown number %q", fj.Number)
		}
		f.Number = n
	}
	if fj.Person != "" {
		p := nlg.ParsePerson(fj.Person)
		if p == nlg.PersonUnset {
			return fmt.Errorf("unknown person %q", fj.Person)
		}
		f.Person = p
	}
	f.Comparative = f.Comparative || fj.Comparative
	f.Superlative = f.Superlative || fj.Superlative
	f.Reflexive = f.Reflexive || fj.Reflexive
	f.Possessive = f.Possessive || fj.Possessive
	return nil
}

func toWordJSON(w *nlg.Word) wordJSON {
	f := w.Features()
	infl := make([]string, 0, len(w.Inflections))
	for _, i := range w.Inflections {
		infl = append(infl, string(i))
	}
	return wordJSON{
		ID:                w.ID,
		Base:              w.Base,
		Category:          string(w.Category()),
		Inflections:       infl,
		DefaultInflection: string(w.DefaultInflection),
		Gender:            f.Gender.String(),
		Number:            f.Number.String(),
		Person:            f.Person.String(),
		Plural:            f.Plural,
		Comparative:       f.ComparativeForm,
		Superlative:       f.SuperlativeForm,
		FeminineSingular:  f.FeminineSingular,
		FemininePlural:    f.FemininePlural,
		OppositeGender:    f.OppositeGender,
		Proper:            f.Proper,
		Preposed:          f.Preposed,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// ---- handlers -----------------------------------------------------------

func handleRealise(rs realisers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var req realiseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "body must be JSON")
			return
		}
		if req.Head == "" {
			writeError(w, http.StatusBadRequest, "missing 'head'")
			return
		}
		realiser, err := rs.lookup(req.Language)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}

		np := realiser.NewTree().NounPhraseText(req.Specifier, req.Head, req.Modifiers...)
		if err := req.HeadFeatures.apply(np.Head.Features()); err != nil {
			writeError(w, http.StatusBadRequest, "head_features: "+err.Error())
			return
		}
		list := realiser.RealiseSyntax(np)
		if err := req.Features.apply(list.Features()); err != nil {
			writeError(w, http.StatusBadRequest, "features: "+err.Error())
			return
		}

		tokens := nlg.Tokens(realiser.RealiseMorphology(list))
		if tokens == nil {
			tokens = []string{}
		}
		writeJSON(w, http.StatusOK, realiseResponse{Tokens: tokens, Text: nlg.Join(tokens)})
	}
}

func handleLexicon(rs realisers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		q := r.URL.Query()
		key := q.Get("key")
		if key == "" {
			writeError(w, http.StatusBadRequest, "missing 'key' query parameter")
			return
		}
		realiser, err := rs.lookup(q.Get("language"))
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		lex := realiser.Lexicon()

		words := lex.Get(key, nlg.ParseCategory(q.Get("category")))
		if len(words) == 0 {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no entry for %q", key))
			return
		}
		out := make([]wordJSON, 0, len(words))
		for _, word := range words {
			out = append(out, toWordJSON(word))
		}
		writeJSON(w, http.StatusOK, lexiconResponse{Language: string(lex.Language()), Key: key, Words: out})
	}
}

func handleInflect(rs realisers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		q := r.URL.Query()
		key := q.Get("word")
		if key == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		realiser, err := rs.lookup(q.Get("language"))
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}

		word := realiser.Lexicon().First(key, nlg.ParseCategory(q.Get("category")))
		if word == nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no entry for %q", key))
			return
		}

		fj := featuresJSON{Gender: q.Get("gender"), Number: q.Get("number"), Person: q.Get("person")}
		for name, dst := range map[string]*bool{
			"comparative": &fj.Comparative,
			"superlative": &fj.Superlative,
			"reflexive":   &fj.Reflexive,
			"possessive":  &fj.Possessive,
		} {
			if v := q.Get(name); v != "" {
				b, err := strconv.ParseBool(v)
				if err != nil {
					writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %q: %s", name, v))
					return
				}
				*dst = b
			}
		}
		if err := fj.apply(word.Features()); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if d := q.Get("discourse"); d != "" {
			word.Features().Discourse = nlg.ParseDiscourseFunction(d)
		}

		entry := toWordJSON(word)
		writeJSON(w, http.StatusOK, inflectResponse{
			Word: entry,
			Form: nlg.Join(nlg.Tokens(realiser.RealiseMorphology(word))),
		})
	}
}

func handleLanguages(rs realisers, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		writeJSON(w, http.StatusOK, languagesResponse{Languages: rs.names(), Version: version})
	}
}

func newMux(rs realisers, version string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/realise", handleRealise(rs))
	mux.HandleFunc("/api/lexicon", handleLexicon(rs))
	mux.HandleFunc("/api/inflect", handleInflect(rs))
	mux.HandleFunc("/api/languages", handleLanguages(rs, version))
	return mux
}
