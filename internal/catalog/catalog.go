// Package catalog holds the immutable author and book data served by the API.
package catalog

import "slices"

type Author struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Book.ID is not unique across books; the sample data reuses ids.
type Book struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	AuthorID string `yaml:"authorId"`
}

// Dataset is built once and never mutated afterwards.
// It is safe for concurrent use by any number of requests.
type Dataset struct {
	authors []Author
	books   []Book
}

func New(authors []Author, books []Book) *Dataset {
	return &Dataset{
		authors: slices.Clone(authors),
		books:   slices.Clone(books),
	}
}

// Authors returns all authors in insertion order. The result is never nil.
func (ds *Dataset) Authors() []Author {
	return append(make([]Author, 0, len(ds.authors)), ds.authors...)
}

// Books returns all books in insertion order.
func (ds *Dataset) Books() []Book {
	return append(make([]Book, 0, len(ds.books)), ds.books...)
}

func (ds *Dataset) Author(id string) (Author, bool) {
	for _, author := range ds.authors {
		if author.ID == id {
			return author, true
		}
	}
	return Author{}, false
}

// Book returns the first book with the given id.
func (ds *Dataset) Book(id string) (Book, bool) {
	for _, book := range ds.books {
		if book.ID == id {
			return book, true
		}
	}
	return Book{}, false
}

// BooksOfAuthor returns the books written by authorID in dataset order.
// The result is never nil.
func (ds *Dataset) BooksOfAuthor(authorID string) []Book {
	books := make([]Book, 0)
	for _, book := range ds.books {
		if book.AuthorID == authorID {
			books = append(books, book)
		}
	}
	return books
}

func (ds *Dataset) AuthorOfBook(book Book) (Author, bool) {
	return ds.Author(book.AuthorID)
}
