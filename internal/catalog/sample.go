package catalog

// Sample returns the dataset the server ships with.
func Sample() *Dataset {
	authors := []Author{
		{ID: "1", Name: "Belegere Krishnashaastri"},
		{ID: "2", Name: "KP Thejasvi"},
		{ID: "3", Name: "S Karantha"},
	}

	books := []Book{
		{ID: "1", Title: "Mareyalaadithe", AuthorID: "1"},
		{ID: "1", Title: "Yegadalli ellaythe", AuthorID: "1"},
		{ID: "2", Title: "Chidambara rahasya", AuthorID: "2"},
		{ID: "3", Title: "Marali mannige", AuthorID: "3"},
		{ID: "2", Title: "Parisarada kathegalu", AuthorID: "2"},
		{ID: "3", Title: "Mukajjiya kanasugalu", AuthorID: "3"},
	}

	return New(authors, books)
}
