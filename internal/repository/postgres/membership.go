package postgres

import (
	"context"
	"database/sql"
	"time"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/repository"
)

type membershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Exists(ctx context.Context, groupID, userID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`
	err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(&exists)
	return exists, err
}

func (r *membershipRepository) Add(ctx context.Context, m *domain.Membership) error {
	m.JoinedAt = time.Now().UTC()
	query := `INSERT INTO group_members (group_id, user_id, joined_at) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, m.GroupID, m.UserID, m.JoinedAt)
	return translate(err, "group not found", "user is already a member of this group")
}

func (r *membershipRepository) Remove(ctx context.Context, groupID, userID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NewNotFoundError("user is not a member of this group")
	}

	// The accepted request would otherwise block the former member from
	// ever requesting again.
	_, err = tx.ExecContext(ctx, `DELETE FROM group_join_requests WHERE group_id = $1 AND user_id = $2 AND status = 'ACCEPTED'`, groupID, userID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *membershipRepository) ListByGroup(ctx context.Context, groupID int32) ([]domain.Member, error) {
	query := `SELECT m.group_id, m.user_id, m.joined_at, u.name, u.email
	          FROM group_members m
	          JOIN users u ON u.id = m.user_id
	          WHERE m.group_id = $1
	          ORDER BY m.joined_at ASC`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.JoinedAt, &m.User.Name, &m.User.Email); err != nil {
			return nil, err
		}
		m.User.ID = m.UserID
		members = append(members, m)
	}
	return members, rows.Err()
}
