package command

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	auditdomain "github.com/stockfy/platform/internal/audit/domain"
	"github.com/stockfy/platform/internal/inventory/domain"
	"github.com/stockfy/platform/internal/inventory/repository"
	"github.com/stockfy/platform/pkg/database"
)

// CreateMovementCommand represents the command to record a stock movement
type CreateMovementCommand struct {
	TenantID  string
	UserID    string
	VariantID string
	Type      string
	Quantity  int
	Note      string
}

// CreateMovementHandler appends to the stock ledger
type CreateMovementHandler struct {
	db *gorm.DB
}

// NewCreateMovementHandler creates a new create movement handler
func NewCreateMovementHandler(db *gorm.DB) *CreateMovementHandler {
	return &CreateMovementHandler{db: db}
}

// Handle records an IN/OUT movement and applies it to the variant's stock
// inside one tenant transaction. A variant that does not exist under the
// tenant yields a nil movement, not an error. A movement that would drive
// stock below zero fails with domain.ErrStockNegative and changes nothing;
// there is no retry, the caller must resubmit with a corrected quantity.
func (h *CreateMovementHandler) Handle(ctx context.Context, cmd CreateMovementCommand) (*domain.StockMovement, []auditdomain.Entry, error) {
	if cmd.VariantID == "" {
		return nil, nil, fmt.Errorf("variant id is required")
	}
	if cmd.Type != domain.MovementIn && cmd.Type != domain.MovementOut {
		return nil, nil, fmt.Errorf("movement type must be IN or OUT")
	}
	if cmd.Quantity <= 0 {
		return nil, nil, fmt.Errorf("quantity must be a positive integer")
	}

	var movement *domain.StockMovement

	err := database.WithTenant(ctx, h.db, cmd.TenantID, func(tx *gorm.DB) error {
		variants := repository.NewGormVariantRepositoryWithTracing(tx)
		movements := repository.NewGormMovementRepositoryWithTracing(tx)

		variant, err := variants.FindByIDWithContext(ctx, cmd.TenantID, cmd.VariantID)
		if err != nil {
			return fmt.Errorf("failed to load variant: %w", err)
		}
		if variant == nil {
			return nil
		}

		nextStock := variant.Stock + cmd.Quantity
		if cmd.Type == domain.MovementOut {
			nextStock = variant.Stock - cmd.Quantity
		}
		if nextStock < 0 {
			return domain.ErrStockNegative
		}

		if err := variants.UpdateStockWithContext(ctx, cmd.TenantID, variant.ID, nextStock); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}

		m := &domain.StockMovement{
			TenantID:  cmd.TenantID,
			VariantID: variant.ID,
			Type:      cmd.Type,
			Quantity:  cmd.Quantity,
			Note:      cmd.Note,
		}
		if err := movements.CreateWithContext(ctx, m); err != nil {
			return fmt.Errorf("failed to record movement: %w", err)
		}

		variant.Stock = nextStock
		m.Variant = variant
		movement = m
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if movement == nil {
		return nil, nil, nil
	}

	entries := []auditdomain.Entry{{
		TenantID: cmd.TenantID,
		UserID:   cmd.UserID,
		Action:   "stock_movement.created",
		Entity:   "stock_movement",
		EntityID: movement.ID,
		Metadata: map[string]interface{}{
			"variant_id": movement.VariantID,
			"type":       movement.Type,
			"quantity":   movement.Quantity,
		},
	}}

	return movement, entries, nil
}
