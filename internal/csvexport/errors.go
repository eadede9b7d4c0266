package csvexport

import (
	"errors"
	"strings"
)

var ErrInvalidFieldSelection = errors.New("invalid field selection")

// InvalidFieldSelectionError is returned when none of the requested columns
// belong to the export vocabulary.
type InvalidFieldSelectionError struct {
	Requested []string
	Available []Field
}

func (err *InvalidFieldSelectionError) Error() string {
	names := make([]string, 0, len(err.Available))
	for _, f := range err.Available {
		names = append(names, f.String())
	}
	return "Invalid fields selected. Available fields are: " + strings.Join(names, ", ")
}

func (err *InvalidFieldSelectionError) Is(target error) bool {
	return target == ErrInvalidFieldSelection
}
