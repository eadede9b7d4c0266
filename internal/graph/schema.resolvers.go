package graph

import (
	"context"
	"errors"

	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vvakame/bookshelf/internal/catalog"
	"github.com/vvakame/bookshelf/internal/csvexport"
	"github.com/vvakame/bookshelf/internal/log"
)

// Authors is the resolver for the authors field.
func (r *queryResolver) Authors(ctx context.Context) ([]*catalog.Author, error) {
	authors := r.dataset.Authors()
	ret := make([]*catalog.Author, 0, len(authors))
	for i := range authors {
		ret = append(ret, &authors[i])
	}
	return ret, nil
}

// Author is the resolver for the author field.
func (r *queryResolver) Author(ctx context.Context, id string) (*catalog.Author, error) {
	author, ok := r.dataset.Author(id)
	if !ok {
		return nil, nil
	}
	return &author, nil
}

// Books is the resolver for the books field.
func (r *queryResolver) Books(ctx context.Context) ([]*catalog.Book, error) {
	return bookPointers(r.dataset.Books()), nil
}

// Book is the resolver for the book field.
func (r *queryResolver) Book(ctx context.Context, id string) (*catalog.Book, error) {
	book, ok := r.dataset.Book(id)
	if !ok {
		return nil, nil
	}
	return &book, nil
}

// AuthorsCsv is the resolver for the authorsCSV field.
func (r *queryResolver) AuthorsCsv(ctx context.Context, fields []string) (string, error) {
	logger := log.FromContext(ctx)

	out, err := csvexport.Export(r.dataset, fields)
	if errors.Is(err, csvexport.ErrInvalidFieldSelection) {
		logger.V(1).Info("rejected csv field selection", "fields", fields)
		return "", &gqlerror.Error{
			Err:     err,
			Message: err.Error(),
			Extensions: map[string]interface{}{
				"code": "INVALID_FIELD_SELECTION",
			},
		}
	} else if err != nil {
		return "", err
	}

	logger.V(1).Info("exported authors csv", "fields", fields, "bytes", len(out))
	return out, nil
}

// Books is the resolver for the books field.
func (r *authorResolver) Books(ctx context.Context, obj *catalog.Author) ([]*catalog.Book, error) {
	return bookPointers(r.dataset.BooksOfAuthor(obj.ID)), nil
}

// Author is the resolver for the author field.
func (r *bookResolver) Author(ctx context.Context, obj *catalog.Book) (*catalog.Author, error) {
	author, ok := r.dataset.AuthorOfBook(*obj)
	if !ok {
		return nil, nil
	}
	return &author, nil
}

// Query returns the resolvers of the Query type.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

// Author returns the resolvers of the Author type.
func (r *Resolver) Author() AuthorResolver { return &authorResolver{r} }

// Book returns the resolvers of the Book type.
func (r *Resolver) Book() BookResolver { return &bookResolver{r} }

type queryResolver struct{ *Resolver }
type authorResolver struct{ *Resolver }
type bookResolver struct{ *Resolver }

func bookPointers(books []catalog.Book) []*catalog.Book {
	ret := make([]*catalog.Book, 0, len(books))
	for i := range books {
		ret = append(ret, &books[i])
	}
	return ret
}
