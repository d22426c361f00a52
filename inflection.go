package nlg

import "math/rand/v2"

// Inflection is a named inflection pattern declared by a lexicon entry.
type Inflection string

// Recognised inflection tags. Their declaration order is also the priority
// used to pick a default pattern when "reg" is absent.
const (
	InflRegular       Inflection = "reg"
	InflRegularDouble Inflection = "regd"
	InflIrregular     Inflection = "irreg"
	InflUncount       Inflection = "uncount"
	InflInvariant     Inflection = "inv"
	InflMetaRegular   Inflection = "metareg"
	InflGreekLatinReg Inflection = "glreg"
	InflNonCount      Inflection = "nonCount"
	InflSingular      Inflection = "sing"
	InflGroupUncount  Inflection = "groupuncount"
)

var inflectionOrder = []Inflection{
	InflRegular, InflRegularDouble, InflIrregular, InflUncount, InflInvariant,
	InflMetaRegular, InflGreekLatinReg, InflNonCount, InflSingular, InflGroupUncount,
}

// parseInflection reports whether tag is a recognised inflection tag.
func parseInflection(tag string) (Inflection, bool) {
	for _, infl := range inflectionOrder {
		if string(infl) == tag {
			return infl, true
		}
	}
	return "", false
}

func inflectionRank(infl Inflection) int {
	for i, v := range inflectionOrder {
		if v == infl {
			return i
		}
	}
	return len(inflectionOrder)
}

// defaultInflection picks the default pattern among declared ones: "reg"
// when present, otherwise the highest priority tag, or a random one when
// rng is non-nil.
func defaultInflection(declared []Inflection, rng *rand.Rand) Inflection {
	if len(declared) == 0 {
		return InflRegular
	}
	best := declared[0]
	for _, infl := range declared {
		if infl == InflRegular {
			return InflRegular
		}
		if inflectionRank(infl) < inflectionRank(best) {
			best = infl
		}
	}
	if rng != nil {
		return declared[rng.IntN(len(declared))]
	}
	return best
}
