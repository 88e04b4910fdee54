package entities

// CatalogStats summarizes the stored catalog.
type CatalogStats struct {
	Books      int64
	Audiobooks int64
	Ratings    int64
}

// Items is the total number of catalog items.
func (s CatalogStats) Items() int64 {
	return s.Books + s.Audiobooks
}
