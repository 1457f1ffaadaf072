package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"makonmed/catalog-service/internal/app/catalog/entity"
	"makonmed/catalog-service/internal/app/catalog/repository"
	"makonmed/pkg/logger"
	"makonmed/pkg/metrics"

	"github.com/google/uuid"
)

const (
	// Прайс-лист поставщика начинается с 9-й строки, выше шапка и реквизиты
	priceListHeaderRows = 8
	// Наценка магазина поверх закупочной цены
	priceListMarkup = 1.1
	// Остаток по умолчанию для позиций из прайс-листа
	priceListDefaultAmount = 1000
)

// Колонки листа "Прайс": №, наименование, модель, срок годности, упаковка, цена, код НДС
const (
	colRowNum = iota
	colName
	colModel
	colShelfLife
	colPackage
	colPrice
	colVatCode
	priceListColumns
)

// ImportPriceList загружает товары из прайс-листа поставщика
// Строки с пустым наименованием отбрасываются, дубликаты (name, category)
// пропускаются, закупочная цена получает наценку и округляется до целого
func (s *CatalogService) ImportPriceList(ctx context.Context, req *entity.ImportPriceListRequest) (*entity.ImportResult, error) {
	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if err == repository.ErrCategoryNotFound {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(req.Data))
	reader.FieldsPerRecord = -1 // Строки прайса рваные, выравниваем сами

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse price list: %w", err)
	}

	if len(rows) <= priceListHeaderRows {
		return &entity.ImportResult{}, nil
	}

	result := &entity.ImportResult{}

	for i, row := range rows[priceListHeaderRows:] {
		name := priceListField(row, colName)
		if name == "" {
			result.Skipped++
			continue
		}

		price := parsePriceListPrice(priceListField(row, colPrice))
		if price <= 0 {
			result.Skipped++
			metrics.ProductsImported.WithLabelValues("skipped").Inc()
			continue
		}

		exists, err := s.productRepo.ExistsByNameAndCategory(ctx, name, req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to check product duplicate: %w", err)
		}
		if exists {
			result.Skipped++
			metrics.ProductsImported.WithLabelValues("skipped").Inc()
			continue
		}

		product := &entity.Product{
			ID:          uuid.New(),
			Name:        name,
			Description: formatImportDescription(row),
			Price:       price,
			Amount:      priceListDefaultAmount,
			CategoryID:  req.CategoryID,
			CreatedAt:   time.Now(),
		}

		if err := s.productRepo.Create(ctx, product); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d (%s): %v", priceListHeaderRows+i+1, name, err))
			metrics.ProductsImported.WithLabelValues("failed").Inc()
			continue
		}

		result.Created++
		metrics.ProductsImported.WithLabelValues("created").Inc()
	}

	logger.Info().
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Msg("Price list import finished")

	return result, nil
}

// parsePriceListPrice нормализует цену из прайса
// Запятая как десятичный разделитель, наценка 10%, округление до целого
func parsePriceListPrice(raw string) float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	raw = strings.ReplaceAll(raw, " ", "")

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}

	return math.Round(price * priceListMarkup)
}

// formatImportDescription собирает описание товара из остальных колонок прайса
func formatImportDescription(row []string) string {
	parts := []string{}

	if v := priceListField(row, colModel); v != "" {
		parts = append(parts, "Модель: "+v)
	}
	if v := priceListField(row, colShelfLife); v != "" {
		parts = append(parts, "Срок годности: "+v)
	}
	if v := priceListField(row, colPackage); v != "" {
		parts = append(parts, "Упаковка: "+v)
	}
	if v := priceListField(row, colVatCode); v != "" {
		parts = append(parts, "Код НДС: "+v)
	}

	return strings.Join(parts, "\n")
}

func priceListField(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
