package usecase

import (
	"context"

	domainErrors "github.com/vdeep/craftmart/internal/domain/errors"
	"github.com/vdeep/craftmart/internal/domain/model"
	"github.com/vdeep/craftmart/internal/domain/repository"
)

// ProductDraft carries the admin-entered fields of a new product.
type ProductDraft struct {
	Title         string
	Description   string
	Price         float64
	SalePrice     *float64
	Version       string
	FileType      string
	FontsIncluded bool
}

// CatalogUseCase owns the product catalog and its reviews.
type CatalogUseCase struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
	uploader BlobUploader
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, orders repository.OrderRepository, users repository.UserRepository, uploader BlobUploader) *CatalogUseCase {
	return &CatalogUseCase{products: products, orders: orders, users: users, uploader: uploader}
}

// List returns a searchable, sortable catalog page.
func (u *CatalogUseCase) List(ctx context.Context, filter repository.ProductFilter, page model.PageRequest) ([]model.Product, int64, error) {
	return u.products.List(ctx, filter, page.Normalize(12))
}

// Get loads one product.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// Create uploads both product files to blob storage and stores the product.
func (u *CatalogUseCase) Create(ctx context.Context, draft ProductDraft, thumbnail, source FileUpload) (*model.Product, error) {
	if draft.Title == "" || len(thumbnail.Data) == 0 || len(source.Data) == 0 {
		return nil, domainErrors.ErrValidation
	}

	storedThumb, err := u.uploader.Upload(ctx, thumbnail)
	if err != nil {
		return nil, err
	}

	storedSource, err := u.uploader.Upload(ctx, source)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Title:         draft.Title,
		Description:   draft.Description,
		Price:         draft.Price,
		SalePrice:     draft.SalePrice,
		Version:       draft.Version,
		FileType:      draft.FileType,
		FontsIncluded: draft.FontsIncluded,
		Thumbnail:     storedThumb,
		SourceFile:    storedSource,
	}

	return u.products.Create(ctx, product)
}

// Delete removes a product from the catalog. Orders referencing it survive as
// audit records.
func (u *CatalogUseCase) Delete(ctx context.Context, id int64) error {
	return u.products.Delete(ctx, id)
}

// AddReview records a rating by a user who holds an approved order for the
// product. The repurchase and download windows do not apply here; any
// approval ever is enough.
func (u *CatalogUseCase) AddReview(ctx context.Context, userID, productID int64, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return domainErrors.ErrValidation
	}

	purchased, err := u.orders.HasApproved(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !purchased {
		return domainErrors.ErrNotPurchased
	}

	reviewed, err := u.products.HasReview(ctx, productID, userID)
	if err != nil {
		return err
	}
	if reviewed {
		return domainErrors.ErrAlreadyReviewed
	}

	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	return u.products.AddReview(ctx, &model.Review{
		ProductID: productID,
		UserID:    userID,
		Name:      user.Name,
		Rating:    rating,
		Comment:   comment,
	})
}
