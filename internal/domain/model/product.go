package model

import "time"

// Product is a downloadable digital good.
type Product struct {
	ID            int64
	Title         string
	Description   string
	Price         float64
	SalePrice     *float64
	Version       string
	FileType      string
	FontsIncluded bool
	Thumbnail     StoredFile
	SourceFile    StoredFile
	Rating        float64
	NumReviews    int
	CreatedAt     time.Time
}

// StoredFile references an object in external blob storage.
type StoredFile struct {
	OriginalName string
	MimeType     string
	Size         int64
	Ref          string
	ViewLink     string
	DownloadLink string
}

// Review is a buyer's rating of a product. One per user per product, and only
// after an approved purchase.
type Review struct {
	ID        int64
	ProductID int64
	UserID    int64
	Name      string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
