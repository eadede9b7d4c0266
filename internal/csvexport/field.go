// Package csvexport projects catalog authors into comma separated text.
package csvexport

import "fmt"

// Field is a column that can be selected for the author CSV export.
type Field int

const (
	FieldID Field = iota + 1
	FieldName
	FieldBooks
)

// AllFields is the export vocabulary, in the order it is documented to clients.
var AllFields = []Field{FieldID, FieldName, FieldBooks}

func (f Field) String() string {
	switch f {
	case FieldID:
		return "id"
	case FieldName:
		return "name"
	case FieldBooks:
		return "books"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// ParseField maps a raw column name to its Field. Names are case sensitive.
func ParseField(name string) (Field, bool) {
	for _, f := range AllFields {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}
