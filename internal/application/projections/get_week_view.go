package projections

import (
	"context"

	catalogDomain "habitloop/internal/domain/catalog"
)

// WeekCatalogStore defines the catalog store interface needed by the week view projection.
type WeekCatalogStore interface {
	Load(ctx context.Context) (catalogDomain.Catalog, error)
}

// WeekProgressStore defines the progress store interface needed by the week view projection.
type WeekProgressStore interface {
	CountCompleted(ctx context.Context, user string, week int) (int, error)
}

// GetWeekViewQuery carries input for the week view projection.
type GetWeekViewQuery struct {
	User string
	Week int
}

// GetWeekViewDeps holds dependencies for the week view projection.
type GetWeekViewDeps struct {
	CatalogStore  WeekCatalogStore
	ProgressStore WeekProgressStore
}

// WeekViewResult is the view model for the home and week pages.
type WeekViewResult struct {
	Week        int
	Day         int      // current day: one past the last completed, clamped
	Tasks       []string // tasks for the current day; empty when the week has none
	Completed   int
	TotalDays   int
	ProgressPct int
	HasTasks    bool
}

// QueryGetWeekView derives the user's current day within a week from the
// completion count.
//
// Week 1 clamps the day to 7 regardless of catalog length; later weeks clamp
// to min(len, 7). A week with no catalog data renders day 1 with no tasks and
// zero progress; this degraded state must never crash. Completion counting
// does not check contiguity; a gap still moves the current day forward.
func QueryGetWeekView(ctx context.Context, query GetWeekViewQuery, deps GetWeekViewDeps) (WeekViewResult, error) {
	cat, err := deps.CatalogStore.Load(ctx)
	if err != nil {
		return WeekViewResult{}, err
	}
	completed, err := deps.ProgressStore.CountCompleted(ctx, query.User, query.Week)
	if err != nil {
		return WeekViewResult{}, err
	}

	weekTasks := cat.WeekTasks(query.Week)
	result := WeekViewResult{
		Week:      query.Week,
		Day:       1,
		Completed: completed,
		TotalDays: 7,
	}
	if len(weekTasks) == 0 {
		return result, nil
	}
	result.HasTasks = true

	if query.Week == 1 {
		// Week 1 ignores catalog length for the day clamp and always
		// computes percentage out of 7.
		result.Day = minInt(completed+1, 7)
		result.ProgressPct = completed * 100 / 7
	} else {
		result.Day = minInt(completed+1, minInt(len(weekTasks), 7))
		result.TotalDays = len(weekTasks)
		result.ProgressPct = completed * 100 / maxInt(result.TotalDays, 1)
	}

	// A short week 1 can clamp Day past the catalog data; show no tasks
	// rather than fail the request.
	if result.Day-1 < len(weekTasks) {
		result.Tasks = weekTasks[result.Day-1]
	}
	return result, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
