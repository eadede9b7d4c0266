package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

type datasetFile struct {
	Authors []Author `yaml:"authors"`
	Books   []Book   `yaml:"books"`
}

// LoadYAML reads a dataset document of the form
//
//	authors:
//	  - id: "1"
//	    name: ...
//	books:
//	  - id: "1"
//	    title: ...
//	    authorId: "1"
//
// Books may reference authors that do not exist.
func LoadYAML(r io.Reader) (*Dataset, error) {
	var doc datasetFile
	err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&doc)
	if errors.Is(err, io.EOF) {
		return New(nil, nil), nil
	} else if err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Authors))
	for i, author := range doc.Authors {
		if author.ID == "" {
			return nil, fmt.Errorf("authors[%d]: id is required", i)
		}
		if _, ok := seen[author.ID]; ok {
			return nil, fmt.Errorf("authors[%d]: duplicate author id %q", i, author.ID)
		}
		seen[author.ID] = struct{}{}
	}
	for i, book := range doc.Books {
		if book.ID == "" {
			return nil, fmt.Errorf("books[%d]: id is required", i)
		}
	}

	return New(doc.Authors, doc.Books), nil
}

// LoadFile loads the dataset at path, or the sample dataset when path is empty.
func LoadFile(path string) (*Dataset, error) {
	if path == "" {
		return Sample(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	ds, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}
