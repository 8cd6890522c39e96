package postgres

import (
	"context"
	"database/sql"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/repository"
)

type dashboardRepository struct {
	db *sql.DB
}

func NewDashboardRepository(db *sql.DB) repository.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetStats(ctx context.Context, userID int32) (*domain.DashboardStats, error) {
	query := `SELECT
	            (SELECT COUNT(*) FROM group_members WHERE user_id = $1),
	            (SELECT COUNT(*) FROM files f JOIN group_members m ON m.group_id = f.group_id WHERE m.user_id = $1),
	            (SELECT COUNT(*) FROM study_sessions s JOIN group_members m ON m.group_id = s.group_id WHERE m.user_id = $1),
	            (SELECT COUNT(*) FROM group_join_requests r JOIN study_groups g ON g.id = r.group_id
	              WHERE g.owner_id = $1 AND r.status = 'PENDING')`
	stats := &domain.DashboardStats{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&stats.Groups, &stats.Files, &stats.Sessions, &stats.PendingRequests)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
