package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// GormVariantRepositoryWithTracing wraps GormVariantRepository with tracing
type GormVariantRepositoryWithTracing struct {
	*GormVariantRepository
}

// NewGormVariantRepositoryWithTracing creates a new repository with tracing
func NewGormVariantRepositoryWithTracing(db *gorm.DB) *GormVariantRepositoryWithTracing {
	return &GormVariantRepositoryWithTracing{
		GormVariantRepository: NewGormVariantRepository(db),
	}
}

// FindByIDWithContext traces a variant load
func (r *GormVariantRepositoryWithTracing) FindByIDWithContext(ctx context.Context, tenantID, id string) (*domain.ProductVariant, error) {
	_, span := tracer.Start(ctx, "repository.FindVariant",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("variant.id", id),
		),
	)
	defer span.End()

	variant, err := r.GormVariantRepository.FindByID(tenantID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Bool("variant.found", variant != nil))
	return variant, nil
}

// FindBySKUWithContext traces a SKU lookup
func (r *GormVariantRepositoryWithTracing) FindBySKUWithContext(ctx context.Context, tenantID, skuCode string) (*domain.ProductVariant, error) {
	_, span := tracer.Start(ctx, "repository.FindBySKU",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("variant.sku", skuCode),
		),
	)
	defer span.End()

	variant, err := r.GormVariantRepository.FindBySKU(tenantID, skuCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Bool("variant.found", variant != nil))
	return variant, nil
}

// UpdateStockWithContext traces a stock write
func (r *GormVariantRepositoryWithTracing) UpdateStockWithContext(ctx context.Context, tenantID, id string, stock int) error {
	_, span := tracer.Start(ctx, "repository.UpdateStock",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("variant.id", id),
			attribute.Int("stock.new_value", stock),
		),
	)
	defer span.End()

	err := r.GormVariantRepository.UpdateStock(tenantID, id, stock)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// GormMovementRepositoryWithTracing wraps GormMovementRepository with tracing
type GormMovementRepositoryWithTracing struct {
	*GormMovementRepository
}

// NewGormMovementRepositoryWithTracing creates a new repository with tracing
func NewGormMovementRepositoryWithTracing(db *gorm.DB) *GormMovementRepositoryWithTracing {
	return &GormMovementRepositoryWithTracing{
		GormMovementRepository: NewGormMovementRepository(db),
	}
}

// CreateWithContext traces a ledger insert
func (r *GormMovementRepositoryWithTracing) CreateWithContext(ctx context.Context, movement *domain.StockMovement) error {
	_, span := tracer.Start(ctx, "repository.CreateMovement",
		trace.WithAttributes(
			attribute.String("tenant.id", movement.TenantID),
			attribute.String("variant.id", movement.VariantID),
			attribute.String("movement.type", movement.Type),
			attribute.Int("movement.quantity", movement.Quantity),
		),
	)
	defer span.End()

	err := r.GormMovementRepository.Create(movement)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("movement.id", movement.ID))
	return nil
}
