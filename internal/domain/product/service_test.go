package product

import (
	"context"
	"errors"
	"io"
	"loan-schedule/internal/pkg/apperrors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByKey(ctx context.Context, key string) (*LoanProduct, error) {
	args := m.Called(ctx, key)
	if p, ok := args.Get(0).(*LoanProduct); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListActive(ctx context.Context) ([]LoanProduct, error) {
	args := m.Called(ctx)
	if ps, ok := args.Get(0).([]LoanProduct); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListAll(ctx context.Context) ([]LoanProduct, error) {
	args := m.Called(ctx)
	if ps, ok := args.Get(0).([]LoanProduct); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestListActiveProducts(t *testing.T) {
	t.Run("sorts by name", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewProductService(repo, testLogger)

		a, b := validProduct(), validProduct()
		a.Key, a.Name = "school", "School Fees Loan"
		b.Key, b.Name = "asset", "Asset Finance"
		repo.On("ListActive", mock.Anything).Return([]LoanProduct{a, b}, nil)

		products, err := svc.ListActiveProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "asset", products[0].Key)
		assert.Equal(t, "school", products[1].Key)
		repo.AssertExpectations(t)
	})

	t.Run("wraps repository failure", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewProductService(repo, testLogger)
		repo.On("ListActive", mock.Anything).Return(nil, errors.New("connection refused"))

		_, err := svc.ListActiveProducts(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrInternalServer)
	})
}

func TestGetActiveProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("returns active product", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewProductService(repo, testLogger)
		p := validProduct()
		repo.On("FindByKey", mock.Anything, "development").Return(&p, nil)

		got, err := svc.GetActiveProduct(ctx, " development ")
		require.NoError(t, err)
		assert.Equal(t, "Development Loan", got.Name)
		repo.AssertExpectations(t)
	})

	t.Run("inactive product is not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewProductService(repo, testLogger)
		p := validProduct()
		p.Active = false
		repo.On("FindByKey", mock.Anything, "development").Return(&p, nil)

		_, err := svc.GetActiveProduct(ctx, "development")
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})

	t.Run("missing product is not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewProductService(repo, testLogger)
		repo.On("FindByKey", mock.Anything, "nope").Return(nil, apperrors.ErrProductNotFound)

		_, err := svc.GetActiveProduct(ctx, "nope")
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})

	t.Run("empty key is not found without a lookup", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewProductService(repo, testLogger)

		_, err := svc.GetActiveProduct(ctx, "")
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
		repo.AssertNotCalled(t, "FindByKey", mock.Anything, mock.Anything)
	})

	t.Run("repository failure is internal", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewProductService(repo, testLogger)
		repo.On("FindByKey", mock.Anything, "development").Return(nil, apperrors.ErrDatabase)

		_, err := svc.GetActiveProduct(ctx, "development")
		assert.ErrorIs(t, err, apperrors.ErrInternalServer)
		assert.NotErrorIs(t, err, apperrors.ErrProductNotFound)
	})
}
