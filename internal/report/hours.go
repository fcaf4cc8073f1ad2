package report

import (
	"context"
	"time"

	"worktrack/internal/repository"
)

// ActualHoursForTask sums hours over every worklog of taskID.
func ActualHoursForTask(ctx context.Context, logs repository.WorklogRepository, taskID int) (float64, error) {
	return logs.SumHoursByTask(ctx, taskID)
}

// ActualHoursForUserDay sums the hours userID logged on day.
func ActualHoursForUserDay(ctx context.Context, logs repository.WorklogRepository, userID int, day time.Time) (float64, error) {
	return logs.SumHoursByUserDay(ctx, userID, day)
}
