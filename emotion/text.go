package emotion

import (
	"math"
	"regexp"
	"strings"
)

type wordVAD struct {
	word    string
	v, a, d float64
}

// wordTable maps sentiment keywords to VAD offsets. Kept as an ordered
// slice so accumulation order, and with it float rounding, is stable.
var wordTable = []wordVAD{
	// Positive, high arousal.
	{"surge", +0.6, +0.7, +0.3}, {"rally", +0.6, +0.6, +0.3},
	{"soar", +0.7, +0.8, +0.4}, {"boom", +0.5, +0.8, +0.3},
	{"rocket", +0.7, +0.9, +0.4}, {"moon", +0.6, +0.7, +0.3},
	{"bull", +0.5, +0.4, +0.3}, {"bullish", +0.5, +0.4, +0.3},
	{"gain", +0.4, +0.3, +0.2}, {"rise", +0.3, +0.3, +0.1},
	{"up", +0.3, +0.2, +0.1}, {"high", +0.3, +0.3, +0.2},
	{"record", +0.5, +0.5, +0.3}, {"breakthrough", +0.6, +0.6, +0.4},
	{"positive", +0.4, +0.1, +0.2},

	// Positive, low arousal.
	{"stable", +0.3, -0.3, +0.3}, {"steady", +0.3, -0.3, +0.3},
	{"calm", +0.3, -0.6, +0.2}, {"safe", +0.4, -0.3, +0.3},
	{"recover", +0.3, -0.1, +0.2},

	// Negative, high arousal.
	{"crash", -0.8, +0.9, -0.5}, {"panic", -0.7, +0.9, -0.6},
	{"plunge", -0.7, +0.8, -0.4}, {"collapse", -0.8, +0.7, -0.5},
	{"crisis", -0.6, +0.7, -0.4}, {"fear", -0.6, +0.6, -0.4},
	{"volatile", -0.1, +0.8, -0.2}, {"chaos", -0.5, +0.9, -0.3},
	{"shock", -0.5, +0.8, -0.3}, {"turmoil", -0.5, +0.7, -0.3},
	{"sell", -0.3, +0.4, -0.1}, {"dump", -0.5, +0.6, -0.2},
	{"bear", -0.5, +0.3, -0.2}, {"bearish", -0.5, +0.3, -0.2},

	// Negative, low arousal.
	{"decline", -0.4, -0.1, -0.2}, {"fall", -0.3, +0.1, -0.1},
	{"drop", -0.3, +0.2, -0.1}, {"loss", -0.4, -0.1, -0.2},
	{"down", -0.3, +0.1, -0.1}, {"low", -0.2, -0.2, -0.1},
	{"weak", -0.3, -0.3, -0.3}, {"stagnant", -0.2, -0.5, -0.2},
	{"negative", -0.4, +0.1, -0.2}, {"sad", -0.6, -0.3, -0.3},
}

var wordIndex = func() map[string]wordVAD {
	idx := make(map[string]wordVAD, len(wordTable))
	for _, w := range wordTable {
		idx[w.word] = w
	}
	return idx
}()

var wordRe = regexp.MustCompile(`[a-z]+`)

// FromText infers a mood vector from free text by keyword matching.
//
// Matched keyword offsets are summed, scaled by 1/sqrt(hits) so long
// texts do not saturate, and squashed per axis through tanh. When base
// carries signal it is blended in at 30 percent.
func FromText(text string, base Vector) Vector {
	words := wordRe.FindAllString(strings.ToLower(text), -1)

	var totalV, totalA, totalD, hits float64
	for _, word := range words {
		if w, ok := wordIndex[word]; ok {
			totalV += w.v
			totalA += w.a
			totalD += w.d
			hits++
		}
	}

	var detected Vector
	if hits > 0 {
		scale := 1.0 / math.Sqrt(hits)
		detected = New(
			math.Tanh(totalV*scale),
			math.Tanh(totalA*scale),
			math.Tanh(totalD*scale),
		)
	}

	if base.Magnitude() > 0.01 {
		return detected.Lerp(base, 0.3)
	}
	return detected
}
