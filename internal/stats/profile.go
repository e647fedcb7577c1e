package stats

import (
	"regexp"
	"sort"
	"strings"

	"briefdesk/internal/model"
)

// Profiler computes descriptive statistics over a normalized corpus for
// dashboard display. Produces nothing the pipeline depends on.
type Profiler struct {
	topN int
}

// NewProfiler creates a profiler that reports the top N frequent words
func NewProfiler(topN int) *Profiler {
	if topN <= 0 {
		topN = 10
	}
	return &Profiler{topN: topN}
}

// wordPattern matches word tokens (letters, digits, inner apostrophes)
var wordPattern = regexp.MustCompile(`[a-zA-Z0-9]+(?:'[a-zA-Z]+)?`)

// stopwords excluded from the frequency table; counting them tells the
// reader nothing about the corpus
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "but": true, "by": true, "for": true,
	"from": true, "has": true, "have": true, "in": true, "is": true,
	"it": true, "its": true, "of": true, "on": true, "or": true,
	"that": true, "the": true, "this": true, "to": true, "was": true,
	"were": true, "will": true, "with": true,
}

// Profile computes character and word counts plus the top-frequency words
func (p *Profiler) Profile(corpus model.NormalizedCorpus) model.CorpusStats {
	tokens := wordPattern.FindAllString(corpus.Text, -1)

	counts := make(map[string]int)
	for _, tok := range tokens {
		word := strings.ToLower(tok)
		if stopwords[word] || len(word) < 2 {
			continue
		}
		counts[word]++
	}

	top := make([]model.WordFreq, 0, len(counts))
	for word, count := range counts {
		top = append(top, model.WordFreq{Word: word, Count: count})
	}
	// Highest count first; ties broken alphabetically for stable output
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Word < top[j].Word
	})
	if len(top) > p.topN {
		top = top[:p.topN]
	}

	return model.CorpusStats{
		Chars:     corpus.Len(),
		Words:     len(tokens),
		TopWords:  top,
		Documents: len(corpus.Blocks),
	}
}
