package merge

import (
	"github.com/antzucaro/matchr"
	"github.com/samber/lo"

	"github.com/IshaanNene/pbg/internal/types"
)

// SimilarPair is two distinct entity names that may denote the same entity.
type SimilarPair struct {
	A, B       string
	Similarity float64
}

// SimilarNames returns the name pairs whose Jaro-Winkler similarity reaches
// threshold. Names are compared as given, in input order.
func SimilarNames(names []string, threshold float64) []SimilarPair {
	if threshold <= 0 {
		return nil
	}

	var pairs []SimilarPair
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if names[i] == names[j] {
				continue
			}
			sim := matchr.JaroWinkler(names[i], names[j], false)
			if sim >= threshold {
				pairs = append(pairs, SimilarPair{A: names[i], B: names[j], Similarity: sim})
			}
		}
	}
	return pairs
}

// reportSimilar logs possible near-duplicates. The merge result is not changed.
func (m *Merger) reportSimilar(merged []*types.Entry) {
	names := lo.Map(merged, func(e *types.Entry, _ int) string { return e.Name() })
	for _, p := range SimilarNames(names, m.similarThreshold) {
		m.logger.Warn("possible duplicate entities", "a", p.A, "b", p.B, "similarity", p.Similarity)
		if m.metrics != nil {
			m.metrics.SimilarNames.Add(1)
		}
	}
}
