package dto

import (
	"time"

	"github.com/vdeep/craftmart/internal/domain/model"
)

// ProductResponse is the wire shape of one catalog product. The source file
// link is deliberately absent; downloads go through the order access check.
type ProductResponse struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	SalePrice     *float64 `json:"sale_price,omitempty"`
	Version       string   `json:"version,omitempty"`
	FileType      string   `json:"file_type,omitempty"`
	FontsIncluded bool     `json:"fonts_included"`
	Thumbnail     string   `json:"thumbnail"`
	Rating        float64  `json:"rating"`
	NumReviews    int      `json:"num_reviews"`
}

// NewProductResponse maps a domain product to its wire shape.
func NewProductResponse(product model.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID,
		Title:         product.Title,
		Description:   product.Description,
		Price:         product.Price,
		SalePrice:     product.SalePrice,
		Version:       product.Version,
		FileType:      product.FileType,
		FontsIncluded: product.FontsIncluded,
		Thumbnail:     product.Thumbnail.ViewLink,
		Rating:        product.Rating,
		NumReviews:    product.NumReviews,
	}
}

// ProductPageResponse is a paginated catalog listing.
type ProductPageResponse struct {
	Products    []ProductResponse `json:"products"`
	Total       int64             `json:"total"`
	TotalPages  int64             `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

// NewProductPageResponse assembles a page of products.
func NewProductPageResponse(products []model.Product, total int64, page model.PageRequest) ProductPageResponse {
	resp := ProductPageResponse{
		Products:    make([]ProductResponse, 0, len(products)),
		Total:       total,
		TotalPages:  page.TotalPages(total),
		CurrentPage: page.Page,
	}
	for _, product := range products {
		resp.Products = append(resp.Products, NewProductResponse(product))
	}
	return resp
}

// ReviewRequest carries a buyer's rating for a product.
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CartItemResponse is one cart line with its resolved product.
type CartItemResponse struct {
	Product ProductResponse `json:"product"`
	AddedAt time.Time       `json:"added_at"`
}

// CartRequest names a product to add to the cart.
type CartRequest struct {
	ProductID int64 `json:"product_id"`
}

// CartPageResponse is a paginated cart listing.
type CartPageResponse struct {
	Items       []CartItemResponse `json:"items"`
	Total       int64              `json:"total"`
	TotalPages  int64              `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
}
