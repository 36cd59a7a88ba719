package engine

import "sort"

// RankElectives orders eligible electives by their mean textual similarity to
// the courses the student has already completed. When similarity is undefined
// (no completed courses, no usable descriptions, degenerate vocabulary) the
// electives come back in input order; an undefined similarity is not zero.
func RankElectives(electives, completed []int64, descriptions map[int64]string) []int64 {
	out := make([]int64, len(electives))
	copy(out, electives)
	if len(electives) == 0 || len(completed) == 0 {
		return out
	}

	studiedDescs := make([]string, len(completed))
	for i, id := range completed {
		studiedDescs[i] = descriptions[id]
	}
	electiveDescs := make([]string, len(electives))
	for i, id := range electives {
		electiveDescs[i] = descriptions[id]
	}
	if !anyNonEmpty(studiedDescs) || !anyNonEmpty(electiveDescs) {
		return out
	}

	vectors, err := tfidfVectors(append(append([]string{}, studiedDescs...), electiveDescs...))
	if err != nil {
		return out
	}
	studied := vectors[:len(studiedDescs)]
	electiveVecs := vectors[len(studiedDescs):]

	scores := make(map[int64]float64, len(electives))
	for i, id := range electives {
		scores[id] = meanSimilarity(electiveVecs[i], studied)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return scores[out[i]] > scores[out[j]]
	})
	return out
}

// SimilarityScore computes the reproducible per-course similarity between one
// elective and the student's completed descriptions. It degrades to 0.0 on any
// vectorization failure instead of propagating an error.
func SimilarityScore(courseDesc string, completedDescs []string) float64 {
	if len(completedDescs) == 0 {
		return 0.0
	}
	if courseDesc == "" || !anyNonEmpty(completedDescs) {
		return 0.0
	}
	docs := append([]string{courseDesc}, completedDescs...)
	vectors, err := tfidfVectors(docs)
	if err != nil {
		return 0.0
	}
	return meanSimilarity(vectors[0], vectors[1:])
}

func meanSimilarity(vec []float64, against [][]float64) float64 {
	if len(against) == 0 {
		return 0
	}
	var total float64
	for _, other := range against {
		total += cosine(vec, other)
	}
	return total / float64(len(against))
}

func anyNonEmpty(descs []string) bool {
	for _, d := range descs {
		if d != "" {
			return true
		}
	}
	return false
}
