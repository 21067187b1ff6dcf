package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/segyhp/growvest-engine/internal/domain"
)

type adminLogRepository struct {
	db *sqlx.DB
}

func NewAdminLogRepository(db *sqlx.DB) AdminLogRepository {
	return &adminLogRepository{db: db}
}

func (r *adminLogRepository) Create(ctx context.Context, log *domain.AdminLog) error {
	query := `
		INSERT INTO admin_logs (id, admin_id, action, meta, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.AdminID,
		log.Action,
		log.Meta,
		log.CreatedAt,
	)

	return err
}

func (r *adminLogRepository) List(ctx context.Context, limit int) ([]*domain.AdminLog, error) {
	query := `
		SELECT id, admin_id, action, COALESCE(meta, '') AS meta, created_at
		FROM admin_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	var logs []*domain.AdminLog
	err := r.db.SelectContext(ctx, &logs, query, limit)
	if err != nil {
		return nil, err
	}

	return logs, nil
}
