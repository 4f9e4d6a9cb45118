package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ultracare-admin/internal/dashboard/domain"
	"ultracare-admin/internal/dashboard/normalize"
	"ultracare-admin/internal/dashboard/views"
)

// OverviewData is the derived state of the overview page.
type OverviewData struct {
	Metrics      []views.Metric
	RecentAlerts []views.AlertRow
	Falls        []domain.MonthlyFallsPoint
	FallsLoaded  bool
	FallsMax     float64
}

// Overview loads platform counters and the monthly falls chart. A falls failure
// other than 401 only hides the chart.
func (p *Pages) Overview() *Controller[OverviewData] {
	return NewController(PageOverview, "Failed to load platform stats", func(ctx context.Context) (OverviewData, error) {
		var (
			stats domain.Stats
			falls []domain.MonthlyFallsPoint
		)
		group, gctx := errgroup.WithContext(ctx)
		group.Go(func() error {
			raw, err := p.api.AdminStats(gctx)
			if err != nil {
				return err
			}
			stats = normalize.Stats(raw)
			return nil
		})
		group.Go(func() error {
			raw, err := p.optional(gctx, "monthly falls", p.api.MonthlyFalls)
			if raw != nil {
				falls = normalize.MonthlyFalls(raw)
			}
			return err
		})
		if err := group.Wait(); err != nil {
			return OverviewData{}, err
		}

		data := OverviewData{
			Metrics:      views.OverviewMetrics(stats),
			RecentAlerts: views.RecentAlertRows(stats.RecentAlerts),
			Falls:        falls,
			FallsLoaded:  falls != nil,
		}
		for _, point := range falls {
			if point.Falls != nil && *point.Falls > data.FallsMax {
				data.FallsMax = *point.Falls
			}
		}
		return data, nil
	}, p.logger)
}
