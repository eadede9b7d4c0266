package csvexport

import "slices"

// Project keeps the requested names that are known columns.
// Caller order and duplicates are preserved; unknown names are dropped silently.
// When nothing is left an *InvalidFieldSelectionError is returned.
func Project(requested []string) ([]Field, error) {
	fields := make([]Field, 0, len(requested))
	for _, name := range requested {
		f, ok := ParseField(name)
		if !ok {
			continue
		}
		fields = append(fields, f)
	}

	if len(fields) == 0 {
		return nil, &InvalidFieldSelectionError{
			Requested: slices.Clone(requested),
			Available: slices.Clone(AllFields),
		}
	}

	return fields, nil
}
