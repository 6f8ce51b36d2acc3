package translate

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vocabulary and filtering parameters for the TF-IDF vectorizer. Terms are
// case-folded unigrams and bigrams; near-universal terms carry no
// discriminative signal and are dropped.
const (
	maxFeatures = 5000
	maxDocFreq  = 0.95
)

// ErrNoVocabulary is returned when no terms survive tokenization and
// document-frequency filtering. Callers fall back to singleton grouping.
var ErrNoVocabulary = errors.New("translate: no terms survive vocabulary filtering")

// ---------------------------------------------------------------------------
// Tokenization
// ---------------------------------------------------------------------------

// tokenize splits a text into lowercase word tokens of at least two
// letters or digits.
func tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() >= 2 {
			tokens = append(tokens, strings.ToLower(b.String()))
		}
		b.Reset()
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// terms returns the unigrams and bigrams of a text. Bigrams are adjacent
// token pairs joined by a single space.
func terms(text string) []string {
	tokens := tokenize(text)
	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// ---------------------------------------------------------------------------
// Vectorize
// ---------------------------------------------------------------------------

// Vectorize converts N unique strings into N feature vectors over a shared
// vocabulary, weighted by TF-IDF and L2-normalized so that cosine
// similarity reduces to a dot product.
//
// Vocabulary rules: terms present in more than 95% of the inputs are
// excluded; when more than maxFeatures distinct terms remain, the
// highest-weight terms by total frequency are kept, ties broken by
// first-seen order so results are deterministic for a given input order.
func Vectorize(texts []string) ([][]float64, error) {
	n := len(texts)
	if n == 0 {
		return nil, ErrNoVocabulary
	}

	// Per-document term counts plus corpus-wide stats.
	docTerms := make([]map[string]int, n)
	docFreq := make(map[string]int)
	totalFreq := make(map[string]int)
	firstSeen := make(map[string]int)

	for i, text := range texts {
		counts := make(map[string]int)
		for _, term := range terms(text) {
			if _, ok := firstSeen[term]; !ok {
				firstSeen[term] = len(firstSeen)
			}
			counts[term]++
			totalFreq[term]++
		}
		for term := range counts {
			docFreq[term]++
		}
		docTerms[i] = counts
	}

	// Drop near-universal terms.
	cutoff := maxDocFreq * float64(n)
	var vocab []string
	for term, df := range docFreq {
		if float64(df) > cutoff {
			continue
		}
		vocab = append(vocab, term)
	}
	if len(vocab) == 0 {
		return nil, ErrNoVocabulary
	}

	// Cap the vocabulary at maxFeatures, keeping the terms with the
	// highest total frequency.
	if len(vocab) > maxFeatures {
		sort.Slice(vocab, func(a, b int) bool {
			ta, tb := vocab[a], vocab[b]
			if totalFreq[ta] != totalFreq[tb] {
				return totalFreq[ta] > totalFreq[tb]
			}
			return firstSeen[ta] < firstSeen[tb]
		})
		vocab = vocab[:maxFeatures]
	}
	// Stable component order regardless of map iteration.
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	// Smooth IDF: ln((1+N)/(1+df)) + 1.
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		idf[i] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}

	vectors := make([][]float64, n)
	for d, counts := range docTerms {
		v := make([]float64, len(vocab))
		for term, tf := range counts {
			if i, ok := index[term]; ok {
				v[i] = float64(tf) * idf[i]
			}
		}
		normalize(v)
		vectors[d] = v
	}
	return vectors, nil
}

// normalize scales v to unit L2 norm in place. Zero vectors are left
// unchanged.
func normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] *= inv
	}
}

// dot returns the dot product of two equal-length vectors. For
// L2-normalized vectors this is their cosine similarity.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
