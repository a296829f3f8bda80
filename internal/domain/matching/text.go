package matching

import (
	"math"
	"strings"
	"unicode"
)

// The text factor builds a two-document TF-IDF corpus per pair and takes
// the cosine similarity between the vectors. Everything here is
// request-scoped: no fitted state survives a call, so concurrent match
// requests never share vectorizer state.

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func termFreq(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}

// tfidfCosine vectorizes the two documents against their shared
// vocabulary and returns the cosine similarity in [0,1]. The second
// return is false when either document has no usable tokens.
func tfidfCosine(docA, docB string) (float64, bool) {
	ta := tokenize(docA)
	tb := tokenize(docB)
	if len(ta) == 0 || len(tb) == 0 {
		return 0, false
	}

	tfA := termFreq(ta)
	tfB := termFreq(tb)

	// Smoothed IDF over the two-document corpus: terms present in both
	// documents weigh less than terms unique to one side.
	idf := func(term string) float64 {
		df := 0
		if _, ok := tfA[term]; ok {
			df++
		}
		if _, ok := tfB[term]; ok {
			df++
		}
		return math.Log(3.0/float64(df+1)) + 1
	}

	vocab := make(map[string]struct{}, len(tfA)+len(tfB))
	for t := range tfA {
		vocab[t] = struct{}{}
	}
	for t := range tfB {
		vocab[t] = struct{}{}
	}

	var dot, normA, normB float64
	for t := range vocab {
		w := idf(t)
		wa := tfA[t] * w
		wb := tfB[t] * w
		dot += wa * wb
		normA += wa * wa
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if cos > 1 {
		cos = 1
	}
	if cos < 0 {
		cos = 0
	}
	return cos, true
}
