package graph

import "github.com/vvakame/bookshelf/internal/catalog"

// Resolver serves the catalog dataset. The dataset is injected and never modified.
type Resolver struct {
	dataset *catalog.Dataset
}

func NewResolver(dataset *catalog.Dataset) *Resolver {
	return &Resolver{
		dataset: dataset,
	}
}
