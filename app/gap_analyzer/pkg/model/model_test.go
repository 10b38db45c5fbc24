package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceLabel(t *testing.T) {
	tests := []struct {
		ref  Reference
		want string
	}{
		{Reference{Kind: ReferenceWeb, Title: "GNN survey"}, "Web: GNN survey"},
		{Reference{Kind: ReferencePaper, Title: "Graph Attention Networks"}, "Paper: Graph Attention Networks"},
		{Reference{Title: "plain"}, "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ref.Label())
	}
}

func TestReferencesKeepOrder(t *testing.T) {
	web := WebReferences([]SearchResult{
		{Title: "A", URL: "https://a"},
		{Title: "B", URL: "https://b"},
	})
	papers := PaperReferences([]ArxivLink{
		{Title: "X", Link: "http://arxiv.org/abs/1"},
	})

	assert.Equal(t, []string{"A", "B"}, []string{web[0].Title, web[1].Title})
	assert.Equal(t, ReferenceWeb, web[0].Kind)
	assert.Equal(t, ReferencePaper, papers[0].Kind)
	assert.Equal(t, "http://arxiv.org/abs/1", papers[0].URL)

	assert.Empty(t, WebReferences(nil))
	assert.NotNil(t, PaperReferences(nil))
}
