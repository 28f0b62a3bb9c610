package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ListFilters are the optional admin list filters: a free-text search and a
// creation date range. EndDate is inclusive of the whole day.
type ListFilters struct {
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
}

// applyListFilters narrows q by the given filters. searchColumns are matched
// with case-insensitive substring OR; timeColumn bounds the date range.
func applyListFilters(q *gorm.DB, f ListFilters, timeColumn string, searchColumns ...string) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		var cond *gorm.DB
		for i, col := range searchColumns {
			clause := fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", col)
			if i == 0 {
				cond = q.Session(&gorm.Session{NewDB: true}).Where(clause, pattern)
			} else {
				cond = cond.Or(clause, pattern)
			}
		}
		if cond != nil {
			q = q.Where(cond)
		}
	}
	if f.StartDate != nil {
		q = q.Where(timeColumn+" >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where(timeColumn+" < ?", f.EndDate.AddDate(0, 0, 1))
	}
	return q
}

// SubmitResult is the uniform success payload for public submissions
type SubmitResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      uint   `json:"id,omitempty"`
}

// Dedup lookback windows
const (
	recentWindow       = 24 * time.Hour
	samePositionWindow = 30 * 24 * time.Hour
	sameLocationWindow = 30 * 24 * time.Hour
)
