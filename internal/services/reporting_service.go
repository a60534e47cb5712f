package services

import (
	"context"

	"work-timer/internal/domain"
	"work-timer/internal/repository/sqlite"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo       sqlite.Repository
	calculator TimeCalculator
	mapper     *domain.WorkDayMapper
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(repo sqlite.Repository, calculator TimeCalculator) ReportingService {
	return &reportingServiceImpl{
		repo:       repo,
		calculator: calculator,
		mapper:     domain.NewWorkDayMapper(),
	}
}

// SummarizePeriod loads every stored day in period and totals their metrics.
// Days without a stored row are skipped.
func (r *reportingServiceImpl) SummarizePeriod(ctx context.Context, period Period) (*PeriodSummary, error) {
	rows, err := r.repo.ListWorkDays(ctx, sqlite.DateRange{
		From: period.From.ToISOString(),
		To:   period.To.ToISOString(),
	})
	if err != nil {
		return nil, err
	}

	summary := &PeriodSummary{
		Period: period,
		Days:   make([]DayReport, 0, len(rows)),
	}
	for _, row := range rows {
		sessions, err := r.repo.ListWorkSessionsByDate(ctx, row.Date)
		if err != nil {
			return nil, err
		}
		day, err := r.mapper.FromDatabase(row, sessions)
		if err != nil {
			return nil, err
		}

		metrics := r.calculator.CalculateWorkDayMetrics(day)
		summary.Days = append(summary.Days, DayReport{Day: day, Metrics: metrics})
		summary.TotalWorkTime = summary.TotalWorkTime.Add(metrics.TotalWorkTime)
		summary.TotalEffective = summary.TotalEffective.Add(metrics.EffectiveWorkTime)
		summary.TotalOvertime = summary.TotalOvertime.Add(metrics.Overtime)
		if metrics.IsComplete {
			summary.CompleteDays++
		}
	}

	if n := int64(len(summary.Days)); n > 0 {
		summary.AverageEffective = domain.MustFromMilliseconds(summary.TotalEffective.Milliseconds() / n)
	}
	return summary, nil
}
