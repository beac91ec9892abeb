package projections

import "context"

// trackedWeeks is the fixed range shown on the progress summary page.
const trackedWeeks = 4

// GetProgressSummaryQuery carries input for the progress summary projection.
type GetProgressSummaryQuery struct {
	User string
}

// GetProgressSummaryDeps holds dependencies for the progress summary projection.
type GetProgressSummaryDeps struct {
	ProgressStore WeekProgressStore
}

// WeekCount pairs a week number with its completed-day count.
type WeekCount struct {
	Week      int
	Completed int
}

// ProgressSummaryResult carries completed-day counts for weeks 1 through 4.
type ProgressSummaryResult struct {
	Weeks []WeekCount
}

// QueryGetProgressSummary counts completed days for each tracked week.
func QueryGetProgressSummary(ctx context.Context, query GetProgressSummaryQuery, deps GetProgressSummaryDeps) (ProgressSummaryResult, error) {
	result := ProgressSummaryResult{Weeks: make([]WeekCount, 0, trackedWeeks)}
	for week := 1; week <= trackedWeeks; week++ {
		n, err := deps.ProgressStore.CountCompleted(ctx, query.User, week)
		if err != nil {
			return ProgressSummaryResult{}, err
		}
		result.Weeks = append(result.Weeks, WeekCount{Week: week, Completed: n})
	}
	return result, nil
}
