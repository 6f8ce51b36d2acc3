package translate

// SimilarityThreshold is the minimum cosine similarity to the group seed
// for a text to join that group.
const SimilarityThreshold = 0.85

// Group is an ordered set of unique texts judged interchangeable for
// translation. Every member has similarity >= SimilarityThreshold to the
// group's first ("seed") member; membership is anchored to the seed only,
// not mutually pairwise, which keeps grouping a cheap single pass. Two
// later members of the same group may not be similar to each other.
type Group []string

// Representative returns the member chosen for the external translation
// call: the shortest text, ties resolving to the earliest member.
func (g Group) Representative() string {
	rep := g[0]
	for _, text := range g[1:] {
		if len(text) < len(rep) {
			rep = text
		}
	}
	return rep
}

// GroupSimilar partitions texts into seed-anchored similarity groups.
// vectors[i] is the L2-normalized feature vector of texts[i]. The pass is
// greedy over first-seen order: each not-yet-grouped text becomes a seed
// and absorbs every remaining text whose cosine similarity to it meets
// the threshold. Every text lands in exactly one group.
func GroupSimilar(texts []string, vectors [][]float64, threshold float64) []Group {
	used := make([]bool, len(texts))
	var groups []Group
	for i := range texts {
		if used[i] {
			continue
		}
		group := Group{texts[i]}
		used[i] = true
		for j := i + 1; j < len(texts); j++ {
			if used[j] {
				continue
			}
			if dot(vectors[i], vectors[j]) >= threshold {
				group = append(group, texts[j])
				used[j] = true
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// SingletonGroups puts every text in its own group. Used as the fallback
// when vectorization fails.
func SingletonGroups(texts []string) []Group {
	groups := make([]Group, len(texts))
	for i, text := range texts {
		groups[i] = Group{text}
	}
	return groups
}
