package query

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/stockfy/platform/internal/inventory/domain"
	"github.com/stockfy/platform/internal/inventory/repository"
	"github.com/stockfy/platform/pkg/database"
	"github.com/stockfy/platform/pkg/logger"
)

var monthLabels = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

const summaryCacheTTL = time.Minute

// Summary aggregates the headline dashboard numbers
type Summary struct {
	TotalStock     int64 `json:"total_stock"`
	LowStock       int64 `json:"low_stock"`
	InboundLast30  int   `json:"inbound_last_30"`
	OutboundLast30 int   `json:"outbound_last_30"`
	InboundChange  int   `json:"inbound_change"`
	OutboundChange int   `json:"outbound_change"`
}

// LiveMetrics carries the realtime tiles
type LiveMetrics struct {
	TotalValue     float64 `json:"total_value"`
	MovementsToday int64   `json:"movements_today"`
	Rotation       int     `json:"rotation"`
}

// MonthPoint is one month on the movements chart
type MonthPoint struct {
	Name     string `json:"name"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// Charts bundles the chart series
type Charts struct {
	LineData []MonthPoint           `json:"line_data"`
	BarData  []domain.CategoryStock `json:"bar_data"`
}

// ActivityItem is one row of the recent activity feed
type ActivityItem struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Product   string    `json:"product"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardHandler computes the dashboard aggregates. The summary is
// cached in Redis per tenant with a short TTL; a nil client disables
// caching.
type DashboardHandler struct {
	db    *gorm.DB
	cache *redis.Client
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *gorm.DB, cache *redis.Client) *DashboardHandler {
	return &DashboardHandler{db: db, cache: cache}
}

// Summary returns total stock, low-stock count and the last-30-day
// movement counts with percent change against the previous 30 days
func (h *DashboardHandler) Summary(ctx context.Context, tenantID string) (*Summary, error) {
	cacheKey := "dashboard:summary:" + tenantID
	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var s Summary
			if err := json.Unmarshal(cached, &s); err == nil {
				return &s, nil
			}
		}
	}

	var summary Summary
	err := database.WithTenant(ctx, h.db, tenantID, func(tx *gorm.DB) error {
		variants := repository.NewGormVariantRepository(tx)
		movements := repository.NewGormMovementRepository(tx)

		totalStock, err := variants.SumStock(tenantID)
		if err != nil {
			return err
		}
		lowStock, err := variants.CountLowStock(tenantID)
		if err != nil {
			return err
		}

		now := time.Now()
		currentStart := now.AddDate(0, 0, -30)
		previousStart := now.AddDate(0, 0, -60)

		current, err := movements.FindSince(tenantID, currentStart)
		if err != nil {
			return err
		}
		previous, err := movements.FindBetween(tenantID, previousStart, currentStart)
		if err != nil {
			return err
		}

		inbound, outbound := countByType(current)
		inboundPrev, outboundPrev := countByType(previous)

		summary = Summary{
			TotalStock:     totalStock,
			LowStock:       lowStock,
			InboundLast30:  inbound,
			OutboundLast30: outbound,
			InboundChange:  percentChange(inbound, inboundPrev),
			OutboundChange: percentChange(outbound, outboundPrev),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if payload, err := json.Marshal(summary); err == nil {
			if err := h.cache.Set(ctx, cacheKey, payload, summaryCacheTTL).Err(); err != nil {
				logger.Warn(ctx).Err(err).Str("tenant_id", tenantID).Msg("Failed to cache dashboard summary")
			}
		}
	}

	return &summary, nil
}

// LiveMetrics returns the inventory value, today's movement count and the
// 30-day rotation percentage
func (h *DashboardHandler) LiveMetrics(ctx context.Context, tenantID string) (*LiveMetrics, error) {
	var metrics LiveMetrics
	err := database.WithTenant(ctx, h.db, tenantID, func(tx *gorm.DB) error {
		variants := repository.NewGormVariantRepository(tx)
		movements := repository.NewGormMovementRepository(tx)

		totalValue, err := variants.InventoryValue(tenantID)
		if err != nil {
			return err
		}

		now := time.Now()
		todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		movementsToday, err := movements.CountSince(tenantID, todayStart)
		if err != nil {
			return err
		}

		movementsLast30, err := movements.CountSince(tenantID, now.AddDate(0, 0, -30))
		if err != nil {
			return err
		}
		totalStock, err := variants.SumStock(tenantID)
		if err != nil {
			return err
		}

		rotation := 0
		if totalStock > 0 {
			rotation = int(math.Round(float64(movementsLast30) / float64(totalStock) * 100))
		}

		metrics = LiveMetrics{
			TotalValue:     totalValue,
			MovementsToday: movementsToday,
			Rotation:       rotation,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &metrics, nil
}

// Charts returns the six-month movement series and stock per category
func (h *DashboardHandler) Charts(ctx context.Context, tenantID string) (*Charts, error) {
	var charts Charts
	err := database.WithTenant(ctx, h.db, tenantID, func(tx *gorm.DB) error {
		variants := repository.NewGormVariantRepository(tx)
		movements := repository.NewGormMovementRepository(tx)

		now := time.Now()
		windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)

		recent, err := movements.FindSince(tenantID, windowStart)
		if err != nil {
			return err
		}

		type bucket struct{ inbound, outbound int }
		byMonth := map[string]*bucket{}
		months := make([]time.Time, 0, 6)
		for i := 0; i < 6; i++ {
			month := windowStart.AddDate(0, i, 0)
			months = append(months, month)
			byMonth[monthKey(month)] = &bucket{}
		}

		for _, m := range recent {
			b, ok := byMonth[monthKey(m.CreatedAt)]
			if !ok {
				continue
			}
			if m.Type == domain.MovementIn {
				b.inbound += m.Quantity
			} else {
				b.outbound += m.Quantity
			}
		}

		line := make([]MonthPoint, 0, len(months))
		for _, month := range months {
			b := byMonth[monthKey(month)]
			line = append(line, MonthPoint{
				Name:     monthLabels[int(month.Month())-1],
				Inbound:  b.inbound,
				Outbound: b.outbound,
			})
		}

		bar, err := variants.StockByCategory(tenantID)
		if err != nil {
			return err
		}

		charts = Charts{LineData: line, BarData: bar}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &charts, nil
}

// RecentActivity returns the five latest ledger entries with their product
func (h *DashboardHandler) RecentActivity(ctx context.Context, tenantID string) ([]ActivityItem, error) {
	var items []ActivityItem
	err := database.WithTenant(ctx, h.db, tenantID, func(tx *gorm.DB) error {
		recent, err := repository.NewGormMovementRepository(tx).Recent(tenantID, 5)
		if err != nil {
			return err
		}

		products := map[string]string{}
		catalog := tx.Table("products").Select("id", "name")
		rows := []struct{ ID, Name string }{}
		if err := catalog.Where("tenant_id = ?", tenantID).Scan(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			products[row.ID] = row.Name
		}

		items = make([]ActivityItem, 0, len(recent))
		for _, m := range recent {
			kind := "entrada"
			if m.Type == domain.MovementOut {
				kind = "saida"
			}
			productName := ""
			if m.Variant != nil {
				productName = products[m.Variant.ProductID]
			}
			items = append(items, ActivityItem{
				ID:        m.ID,
				Type:      kind,
				Product:   productName,
				Quantity:  m.Quantity,
				CreatedAt: m.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func countByType(movements []domain.StockMovement) (inbound, outbound int) {
	for _, m := range movements {
		if m.Type == domain.MovementIn {
			inbound++
		} else {
			outbound++
		}
	}
	return inbound, outbound
}

func percentChange(current, previous int) int {
	if previous == 0 {
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}
