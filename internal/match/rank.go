package match

import "sort"

// Candidate is a source name scored against a wanted name.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is sorted by score descending, then by name.
type CandidateList []Candidate

// SuggestThreshold is the minimal similarity of a useful suggestion.
const SuggestThreshold = 0.5

// Rank scores every name against want.
func Rank(want string, names []string) CandidateList {
	out := make(CandidateList, 0, len(names))
	for _, name := range names {
		out = append(out, Candidate{Name: name, Score: NameSimilarity(want, name)})
	}

	sort.Sort(out)

	return out
}

// Suggest returns at most n names similar enough to want, best first.
func Suggest(want string, names []string, n int) []string {
	var out []string

	for _, c := range Rank(want, names).AboveThreshold(SuggestThreshold).Top(n) {
		out = append(out, c.Name)
	}

	return out
}

func (c CandidateList) Len() int      { return len(c) }
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the first n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// AboveThreshold keeps candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var out CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			out = append(out, cand)
		}
	}

	return out
}
