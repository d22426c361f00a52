package nlg

import (
	"strings"
	"unicode"
)

// baseForm returns the base form morphology starts from: w's own, else
// the lexicon entry's.
func baseForm(w *Word) string {
	if w.Base == "" && w.baseWord != nil {
		return w.baseWord.Base
	}
	return w.Base
}

// storedForm reads an irregular form from w's features, falling back to
// the lexicon entry.
func storedForm(w *Word, get func(*Features) string) string {
	if v := get(&w.features); v != "" {
		return v
	}
	if w.baseWord != nil {
		return get(&w.baseWord.features)
	}
	return ""
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiouy", unicode.ToLower(r))
}

// syllables estimates the syllable count of s: runs of vowels count once,
// a final vowel is treated as silent, and every word has at least one.
func syllables(s string) int {
	n := 0
	inRun := false
	for _, r := range s {
		v := isVowel(r)
		if v && !inRun {
			n++
		}
		inRun = v
	}
	if s != "" && isVowel(lastRune(s)) {
		n--
	}
	return max(n, 1)
}

// endsWithConsonantY reports whether s ends in a consonant followed by y.
func endsWithConsonantY(s string) bool {
	rs := []rune(s)
	if len(rs) < 2 || rs[len(rs)-1] != 'y' {
		return false
	}
	return !isVowel(rs[len(rs)-2])
}

// doubleFinal repeats the final letter of s: "sad" → "sadd".
func doubleFinal(s string) string {
	if s == "" {
		return s
	}
	return s + string(lastRune(s))
}

func lastRune(s string) rune {
	rs := []rune(s)
	return rs[len(rs)-1]
}

// Tokens concatenated by Join are separated by a single space; tokens are
// never split.
func joinTokens(tokens []string) string {
	var b strings.Builder
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t)
	}
	return b.String()
}
