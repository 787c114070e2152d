package product

import "context"

// Repository is the catalog lookup consumed by the schedule service.
// FindByKey returns apperrors.ErrProductNotFound when no product has the key;
// it does not filter inactive products.
type Repository interface {
	FindByKey(ctx context.Context, key string) (*LoanProduct, error)

	ListActive(ctx context.Context) ([]LoanProduct, error)

	ListAll(ctx context.Context) ([]LoanProduct, error)
}
