package service

import (
	"context"
	"strings"
	"testing"

	"makonmed/catalog-service/internal/app/catalog/entity"
	"makonmed/catalog-service/internal/app/catalog/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// buildPriceList собирает CSV с шапкой из 8 строк и переданными строками данных
func buildPriceList(rows ...string) string {
	var b strings.Builder
	for i := 0; i < priceListHeaderRows; i++ {
		b.WriteString("header\n")
	}
	for _, row := range rows {
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func TestImportPriceList_CreatesProducts(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, productRepo, _, _ := newTestService()

	category := newTestCategory()
	categoryRepo.On("GetByID", ctx, category.ID).Return(category, nil)
	productRepo.On("ExistsByNameAndCategory", ctx, "Paracetamol 500mg", category.ID).Return(false, nil)

	var created *entity.Product
	productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.Product)
		}).
		Return(nil)

	// Цена "100,0": запятая как десятичный разделитель, наценка 10%
	data := buildPriceList(`1,Paracetamol 500mg,P-500,2 years,box 10,"100,0",20`)

	result, err := svc.ImportPriceList(ctx, &entity.ImportPriceListRequest{
		CategoryID: category.ID,
		Data:       data,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Skipped)

	require.NotNil(t, created)
	assert.Equal(t, "Paracetamol 500mg", created.Name)
	assert.Equal(t, 110.0, created.Price)
	assert.Equal(t, priceListDefaultAmount, created.Amount)
	assert.Equal(t, category.ID, created.CategoryID)
	assert.Contains(t, created.Description, "Модель: P-500")
	assert.Contains(t, created.Description, "Упаковка: box 10")
}

func TestImportPriceList_SkipsEmptyNamesAndBadPrices(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, productRepo, _, _ := newTestService()

	category := newTestCategory()
	categoryRepo.On("GetByID", ctx, category.ID).Return(category, nil)

	data := buildPriceList(
		`1,,X,1 year,box,100,20`,         // Пустое имя
		`2,Broken price,X,1 year,box,,20`, // Нет цены
	)

	result, err := svc.ImportPriceList(ctx, &entity.ImportPriceListRequest{
		CategoryID: category.ID,
		Data:       data,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 2, result.Skipped)
	productRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
}

func TestImportPriceList_SkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, productRepo, _, _ := newTestService()

	category := newTestCategory()
	categoryRepo.On("GetByID", ctx, category.ID).Return(category, nil)
	productRepo.On("ExistsByNameAndCategory", ctx, "Paracetamol 500mg", category.ID).Return(true, nil)

	data := buildPriceList(`1,Paracetamol 500mg,P-500,2 years,box 10,100,20`)

	result, err := svc.ImportPriceList(ctx, &entity.ImportPriceListRequest{
		CategoryID: category.ID,
		Data:       data,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Skipped)
	productRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
}

func TestImportPriceList_HeaderOnly(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, _, _, _ := newTestService()

	category := newTestCategory()
	categoryRepo.On("GetByID", ctx, category.ID).Return(category, nil)

	result, err := svc.ImportPriceList(ctx, &entity.ImportPriceListRequest{
		CategoryID: category.ID,
		Data:       buildPriceList(),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
}

func TestImportPriceList_CategoryNotFound(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, _, _, _ := newTestService()

	categoryID := uuid.New()
	categoryRepo.On("GetByID", ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	result, err := svc.ImportPriceList(ctx, &entity.ImportPriceListRequest{
		CategoryID: categoryID,
		Data:       buildPriceList(`1,Something,X,1 year,box,100,20`),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestParsePriceListPrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"comma decimal", "100,0", 110},
		{"dot decimal", "99.5", 109},
		{"with spaces", " 50 ", 55},
		{"garbage", "n/a", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePriceListPrice(tt.raw))
		})
	}
}
