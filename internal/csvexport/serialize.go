package csvexport

import (
	"strings"

	"github.com/vvakame/bookshelf/internal/catalog"
)

const (
	columnSeparator = ","
	rowSeparator    = "\n"
	bookSeparator   = ";"
)

type columnFunc func(ds *catalog.Dataset, author catalog.Author) string

var columns = map[Field]columnFunc{
	FieldID: func(ds *catalog.Dataset, author catalog.Author) string {
		return author.ID
	},
	FieldName: func(ds *catalog.Dataset, author catalog.Author) string {
		return author.Name
	},
	FieldBooks: func(ds *catalog.Dataset, author catalog.Author) string {
		books := ds.BooksOfAuthor(author.ID)
		titles := make([]string, 0, len(books))
		for _, book := range books {
			titles = append(titles, book.Title)
		}
		return strings.Join(titles, bookSeparator)
	},
}

// Serialize renders one header line and one row per author.
// Values are written verbatim, without any quoting, and the output has no
// trailing newline. An empty dataset always yields "".
func Serialize(ds *catalog.Dataset, fields []Field) string {
	authors := ds.Authors()
	if len(authors) == 0 {
		return ""
	}

	header := make([]string, 0, len(fields))
	for _, f := range fields {
		header = append(header, f.String())
	}

	lines := make([]string, 0, len(authors)+1)
	lines = append(lines, strings.Join(header, columnSeparator))
	for _, author := range authors {
		values := make([]string, 0, len(fields))
		for _, f := range fields {
			column, ok := columns[f]
			if !ok {
				values = append(values, "")
				continue
			}
			values = append(values, column(ds, author))
		}
		lines = append(lines, strings.Join(values, columnSeparator))
	}

	return strings.Join(lines, rowSeparator)
}

// Export validates the requested column names and serializes the dataset.
// An empty dataset yields "" before the selection is looked at.
func Export(ds *catalog.Dataset, requested []string) (string, error) {
	if len(ds.Authors()) == 0 {
		return "", nil
	}

	fields, err := Project(requested)
	if err != nil {
		return "", err
	}

	return Serialize(ds, fields), nil
}
