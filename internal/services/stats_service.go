package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/juliomeza/sales-orders-system-sub001/internal/auth"
	"github.com/juliomeza/sales-orders-system-sub001/internal/cache"
	"github.com/juliomeza/sales-orders-system-sub001/internal/logger"
	"github.com/juliomeza/sales-orders-system-sub001/internal/repository"
)

type StatusBreakdown struct {
	Status     int     `json:"status"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type MonthBreakdown struct {
	Month      string  `json:"month"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type LabelBreakdown struct {
	ID         uint    `json:"id"`
	Label      string  `json:"label"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type WarehouseUtilization struct {
	WarehouseID uint     `json:"warehouse_id"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	OrderCount  int64    `json:"order_count"`
	Utilization float64  `json:"utilization"`
	Customers   []string `json:"customers,omitempty"`
}

type OrderStats struct {
	TotalOrders int64                  `json:"total_orders"`
	ByStatus    []StatusBreakdown      `json:"by_status"`
	ByMonth     []MonthBreakdown       `json:"by_month"`
	ByCarrier   []LabelBreakdown       `json:"by_carrier"`
	ByMaterial  []LabelBreakdown       `json:"by_material"`
	Warehouses  []WarehouseUtilization `json:"warehouses"`
}

// StatsService computes the read-only rollups. Results reflect committed
// data at query time; no transaction is needed since nothing is written.
type StatsService interface {
	GetOrderStats(ctx context.Context, identity *auth.Identity) (*OrderStats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
	cache     *cache.Client
	cacheTTL  time.Duration
	log       *logger.Logger
}

func NewStatsService(statsRepo repository.StatsRepository, cacheClient *cache.Client, cacheTTL time.Duration, log *logger.Logger) StatsService {
	return &statsService{
		statsRepo: statsRepo,
		cache:     cacheClient,
		cacheTTL:  cacheTTL,
		log:       log.With("service", "StatsService"),
	}
}

func (s *statsService) GetOrderStats(ctx context.Context, identity *auth.Identity) (*OrderStats, error) {
	// Admins see the global rollup, clients only their own tenant's.
	var scope *uint
	if !identity.IsAdmin() {
		scope = identity.CustomerID
	}

	if s.cache != nil {
		var cached OrderStats
		hit, err := s.cache.GetOrderStats(ctx, scope, &cached)
		if err != nil {
			s.log.Warn("stats cache read failed", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	total, err := s.statsRepo.CountOrders(ctx, scope)
	if err != nil {
		return nil, err
	}

	statusRows, err := s.statsRepo.OrdersByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	creationTimes, err := s.statsRepo.OrderCreationTimes(ctx, scope)
	if err != nil {
		return nil, err
	}
	carrierRows, err := s.statsRepo.OrdersByCarrier(ctx, scope)
	if err != nil {
		return nil, err
	}
	materialRows, err := s.statsRepo.ItemsByMaterial(ctx, scope)
	if err != nil {
		return nil, err
	}
	warehouseRows, err := s.statsRepo.WarehouseLoads(ctx, scope)
	if err != nil {
		return nil, err
	}

	stats := &OrderStats{
		TotalOrders: total,
		ByStatus:    statusBreakdown(statusRows, total),
		ByMonth:     monthBreakdown(creationTimes),
		ByCarrier:   labelBreakdown(carrierRows, total),
		ByMaterial:  materialBreakdown(materialRows),
		Warehouses:  warehouseUtilization(warehouseRows),
	}

	if identity.IsAdmin() {
		customers, err := s.statsRepo.WarehouseCustomers(ctx)
		if err != nil {
			return nil, err
		}
		attachWarehouseCustomers(stats.Warehouses, customers)
	}

	if s.cache != nil {
		if err := s.cache.SetOrderStats(ctx, scope, stats, s.cacheTTL); err != nil {
			s.log.Warn("stats cache write failed", "error", err)
		}
	}
	return stats, nil
}

func percentage(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*10000) / 100
}

func statusBreakdown(rows []repository.StatusCount, total int64) []StatusBreakdown {
	out := make([]StatusBreakdown, 0, len(rows))
	for _, row := range rows {
		out = append(out, StatusBreakdown{
			Status:     row.Status,
			Count:      row.Count,
			Percentage: percentage(row.Count, total),
		})
	}
	return out
}

// monthBreakdown buckets creation timestamps by calendar month in Go so
// the underlying query stays portable.
func monthBreakdown(times []time.Time) []MonthBreakdown {
	counts := make(map[string]int64)
	for _, t := range times {
		counts[fmt.Sprintf("%04d-%02d", t.Year(), t.Month())]++
	}
	months := make([]string, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Strings(months)

	total := int64(len(times))
	out := make([]MonthBreakdown, 0, len(months))
	for _, month := range months {
		out = append(out, MonthBreakdown{
			Month:      month,
			Count:      counts[month],
			Percentage: percentage(counts[month], total),
		})
	}
	return out
}

func labelBreakdown(rows []repository.LabelCount, total int64) []LabelBreakdown {
	out := make([]LabelBreakdown, 0, len(rows))
	for _, row := range rows {
		out = append(out, LabelBreakdown{
			ID:         row.ID,
			Label:      row.Label,
			Count:      row.Count,
			Percentage: percentage(row.Count, total),
		})
	}
	return out
}

// materialBreakdown weighs each material by ordered quantity, so the
// percentage base is the summed quantity rather than the order count.
func materialBreakdown(rows []repository.LabelCount) []LabelBreakdown {
	var totalQty int64
	for _, row := range rows {
		totalQty += row.Count
	}
	out := make([]LabelBreakdown, 0, len(rows))
	for _, row := range rows {
		out = append(out, LabelBreakdown{
			ID:         row.ID,
			Label:      row.Label,
			Count:      row.Count,
			Percentage: percentage(row.Count, totalQty),
		})
	}
	return out
}

func warehouseUtilization(rows []repository.WarehouseLoad) []WarehouseUtilization {
	out := make([]WarehouseUtilization, 0, len(rows))
	for _, row := range rows {
		utilization := 0.0
		if row.Capacity > 0 {
			utilization = math.Round(float64(row.OrderCount)/float64(row.Capacity)*10000) / 100
		}
		out = append(out, WarehouseUtilization{
			WarehouseID: row.WarehouseID,
			Name:        row.Name,
			Capacity:    row.Capacity,
			OrderCount:  row.OrderCount,
			Utilization: utilization,
		})
	}
	return out
}

func attachWarehouseCustomers(warehouses []WarehouseUtilization, rows []repository.WarehouseCustomer) {
	byWarehouse := make(map[uint][]string)
	for _, row := range rows {
		byWarehouse[row.WarehouseID] = append(byWarehouse[row.WarehouseID], row.CustomerName)
	}
	for i := range warehouses {
		warehouses[i].Customers = byWarehouse[warehouses[i].WarehouseID]
	}
}
