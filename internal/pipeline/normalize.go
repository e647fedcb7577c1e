package pipeline

import (
	"strings"

	"briefdesk/internal/model"
)

// Normalizer assembles per-source text into one labeled corpus
type Normalizer struct{}

// NewNormalizer creates a new normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize concatenates each document's text under a provenance header,
// in ingestion order. Zero documents produce an empty corpus, not an
// error; the failure decision belongs to the validator.
func (n *Normalizer) Normalize(docs []model.SourceDocument) model.NormalizedCorpus {
	blocks := make([]model.CorpusBlock, 0, len(docs))
	var sb strings.Builder

	for i, doc := range docs {
		block := model.CorpusBlock{
			Kind:       doc.Kind,
			Identifier: doc.Identifier,
			Text:       doc.Text,
		}
		blocks = append(blocks, block)

		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(block.Header())
		sb.WriteString("\n")
		sb.WriteString(doc.Text)
	}

	return model.NormalizedCorpus{
		Blocks: blocks,
		Text:   sb.String(),
	}
}
