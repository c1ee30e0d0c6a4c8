package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/inventory/domain"
	"github.com/stockfy/platform/pkg/database"
)

const sheetName = "Estoque"

var headers = []string{"SKU", "Produto", "Variante", "Estoque", "Estoque Minimo", "Preco Unitario", "Valor Total"}

// stockRow is one variant joined with its product
type stockRow struct {
	SKU         string
	ProductName string
	Stock       int
	MinStock    int
	UnitPrice   float64
	Attributes  string
}

// StockReportService renders the tenant's stock position as an XLSX
// workbook
type StockReportService struct {
	db *gorm.DB
}

// NewStockReportService creates a new report service
func NewStockReportService(db *gorm.DB) *StockReportService {
	return &StockReportService{db: db}
}

// Generate builds the workbook and returns its bytes plus a suggested
// file name
func (s *StockReportService) Generate(ctx context.Context, tenantID string) ([]byte, string, error) {
	var rows []stockRow
	err := database.WithTenant(ctx, s.db, tenantID, func(tx *gorm.DB) error {
		var variants []domain.ProductVariant
		if err := tx.Where("tenant_id = ?", tenantID).Order("sku ASC").Find(&variants).Error; err != nil {
			return err
		}

		products := map[string]struct {
			Name      string
			UnitPrice float64
		}{}
		productRows := []struct {
			ID        string
			Name      string
			UnitPrice float64
		}{}
		if err := tx.Table("products").
			Select("id", "name", "unit_price").
			Where("tenant_id = ?", tenantID).
			Scan(&productRows).Error; err != nil {
			return err
		}
		for _, p := range productRows {
			products[p.ID] = struct {
				Name      string
				UnitPrice float64
			}{p.Name, p.UnitPrice}
		}

		rows = make([]stockRow, 0, len(variants))
		for _, v := range variants {
			product := products[v.ProductID]
			rows = append(rows, stockRow{
				SKU:         v.SKU,
				ProductName: product.Name,
				Stock:       v.Stock,
				MinStock:    v.MinStock,
				UnitPrice:   product.UnitPrice,
				Attributes:  strings.Join(v.AttributeValues(), " / "),
			})
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, "", err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.SKU,
			row.ProductName,
			row.Attributes,
			row.Stock,
			row.MinStock,
			row.UnitPrice,
			float64(row.Stock) * row.UnitPrice,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("estoque-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
