// Package search provides full-text search over a set of skills using an
// in-memory Bleve index. The index is built per invocation; skill corpora are
// small enough that persisting the index buys nothing.
package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/highlight/highlighter/ansi"
	"github.com/pkg/errors"

	"github.com/agentskills/skillsref/pkg/skills"
)

// skillDocument is the shape indexed for each skill
type skillDocument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// Result is a single search hit
type Result struct {
	Name        string
	Description string
	Score       float64
	Fragments   []string
}

// Index is an in-memory full-text index over skills
type Index struct {
	index bleve.Index
}

// NewIndex builds an in-memory index over the given skills
func NewIndex(skillSet map[string]*skills.Skill) (*Index, error) {
	mapping := bleve.NewIndexMapping()

	index, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create search index")
	}

	batch := index.NewBatch()
	for name, skill := range skillSet {
		doc := skillDocument{
			Name:        skill.Name,
			Description: skill.Description,
			Content:     skill.Content,
		}
		if err := batch.Index(name, doc); err != nil {
			index.Close()
			return nil, errors.Wrapf(err, "failed to index skill '%s'", name)
		}
	}

	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, errors.Wrap(err, "failed to commit index batch")
	}

	return &Index{index: index}, nil
}

// Search runs a query string query and returns up to limit ranked results
// with highlighted fragments.
func (i *Index) Search(query string, limit int) ([]Result, error) {
	if query == "" {
		return nil, errors.New("search query cannot be empty")
	}
	if limit <= 0 {
		limit = 10
	}

	q := bleve.NewQueryStringQuery(query)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{"name", "description"}
	req.Highlight = bleve.NewHighlightWithStyle(ansi.Name)

	res, err := i.index.Search(req)
	if err != nil {
		return nil, errors.Wrap(err, "search failed")
	}

	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		result := Result{
			Name:  hit.ID,
			Score: hit.Score,
		}
		if desc, ok := hit.Fields["description"].(string); ok {
			result.Description = desc
		}
		for _, fragments := range hit.Fragments {
			result.Fragments = append(result.Fragments, fragments...)
		}
		results = append(results, result)
	}

	return results, nil
}

// Count returns the number of indexed skills
func (i *Index) Count() (uint64, error) {
	return i.index.DocCount()
}

// Close releases the index
func (i *Index) Close() error {
	return i.index.Close()
}
