package repository

import (
	"fmt"
	"strings"

	"github.com/segyhp/growvest-engine/internal/domain"
)

// reviewListQuery appends the filter conditions to a SELECT over a reviewable table
func reviewListQuery(base string, filter domain.ReviewFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}

	query := base
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	return query, args
}
