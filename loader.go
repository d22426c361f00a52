package nlg

import (
	"encoding/xml"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
)

// Node names with a fixed meaning in lexicon sources.
const (
	nodeBase     = "base"
	nodeID       = "id"
	nodeCategory = "category"
)

// xmlLexicon is the root of a lexicon source; only <word> children count.
type xmlLexicon struct {
	Words []xmlWord `xml:"word"`
}

// xmlWord keeps every child of a <word> node in document order.
type xmlWord struct {
	Nodes []xmlFeature `xml:",any"`
}

type xmlFeature struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

// loadWords decodes a lexicon source and indexes every word.
// Format:
//
//	<lexicon>
//	  <word>
//	    <base>analysis</base>
//	    <category>noun</category>
//	    <id>E0001</id>
//	    <plural>analyses</plural>
//	    <proper/>            flag: empty body means true
//	    <regd/>              inflection tag
//	  </word>
//	</lexicon>
func (l *Lexicon) loadWords(r io.Reader, rng *rand.Rand) error {
	var doc xmlLexicon
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decode xml: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i, wn := range doc.Words {
		w, err := l.wordFromNode(wn, rng)
		if err != nil {
			return fmt.Errorf("word %d: %w", i+1, err)
		}
		if _, err := l.index(w); err != nil {
			return err
		}
	}
	return nil
}

// wordFromNode converts a <word> node to a lexicon entry.
func (l *Lexicon) wordFromNode(n xmlWord, rng *rand.Rand) (*Word, error) {
	w := &Word{node: newNode(""), lexicon: l}

	var inflections []Inflection
	for _, f := range n.Nodes {
		name := strings.TrimSpace(f.XMLName.Local)
		if name == "" {
			return nil, fmt.Errorf("empty feature name (value %q)", f.Text)
		}
		value := strings.TrimSpace(f.Text)

		switch {
		case name == nodeBase:
			w.Base = value
		case name == nodeID:
			w.ID = value
		case name == nodeCategory:
			w.category = Category(strings.ToUpper(value))
		case value == "":
			if infl, ok := parseInflection(name); ok {
				inflections = append(inflections, infl)
			} else {
				w.features.SetFlag(name)
			}
		default:
			w.features.Set(name, value)
		}
	}

	// No declared pattern means the word is regular.
	if len(inflections) == 0 {
		inflections = []Inflection{InflRegular}
	}
	w.Inflections = inflections
	w.DefaultInflection = defaultInflection(inflections, rng)
	return w, nil
}
