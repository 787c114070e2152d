package product

import (
	"context"
	"errors"
	"fmt"
	"loan-schedule/internal/pkg/apperrors"
	"log/slog"
	"sort"
	"strings"
)

type ProductService interface {
	ListActiveProducts(ctx context.Context) ([]LoanProduct, error)

	// GetActiveProduct returns apperrors.ErrProductNotFound for unknown and
	// inactive keys alike.
	GetActiveProduct(ctx context.Context, key string) (*LoanProduct, error)
}

type productServiceImpl struct {
	repo   Repository
	logger *slog.Logger
}

func NewProductService(r Repository, logger *slog.Logger) ProductService {
	return &productServiceImpl{repo: r, logger: logger.With("component", "ProductService")}
}

func (s *productServiceImpl) ListActiveProducts(ctx context.Context) ([]LoanProduct, error) {
	s.logger.DebugContext(ctx, "Listing active loan products")
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list active loan products", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to list loan products: %w", apperrors.ErrInternalServer, err)
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}

func (s *productServiceImpl) GetActiveProduct(ctx context.Context, key string) (*LoanProduct, error) {
	return ResolveActive(ctx, s.repo, key, s.logger)
}

// ResolveActive looks key up and rejects inactive products.
func ResolveActive(ctx context.Context, repo Repository, key string, logger *slog.Logger) (*LoanProduct, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: product key is required", apperrors.ErrProductNotFound)
	}

	p, err := repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrProductNotFound) {
			logger.WarnContext(ctx, "Loan product not found", "productKey", key)
			return nil, err
		}
		logger.ErrorContext(ctx, "Failed to look up loan product", "productKey", key, slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to look up product %s: %w", apperrors.ErrInternalServer, key, err)
	}
	if !p.Active {
		logger.WarnContext(ctx, "Loan product is inactive", "productKey", key)
		return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrProductNotFound, key)
	}
	return p, nil
}
