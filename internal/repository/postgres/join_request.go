package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/logger"
	"studybuddy-backend/internal/repository"
)

const joinRequestColumns = `id, group_id, user_id, status, created_at, updated_at`

type joinRequestRepository struct {
	db *sql.DB
}

func NewJoinRequestRepository(db *sql.DB) repository.JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

func (r *joinRequestRepository) Create(ctx context.Context, req *domain.JoinRequest) error {
	now := time.Now().UTC()
	req.Status = domain.JoinRequestStatusPending
	req.CreatedAt = now
	req.UpdatedAt = now
	query := `INSERT INTO group_join_requests (group_id, user_id, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, req.GroupID, req.UserID, req.Status, req.CreatedAt, req.UpdatedAt).Scan(&req.ID)
	return translate(err, "group not found", "you already have a pending request for this group")
}

func (r *joinRequestRepository) GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM group_join_requests WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *joinRequestRepository) GetLive(ctx context.Context, groupID, userID int32) (*domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM group_join_requests
	          WHERE group_id = $1 AND user_id = $2 AND status IN ('PENDING', 'ACCEPTED')
	          ORDER BY created_at DESC, id DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, groupID, userID))
}

func (r *joinRequestRepository) GetLatest(ctx context.Context, groupID, userID int32) (*domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM group_join_requests
	          WHERE group_id = $1 AND user_id = $2
	          ORDER BY created_at DESC, id DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, groupID, userID))
}

func (r *joinRequestRepository) scanOne(row *sql.Row) (*domain.JoinRequest, error) {
	req := &domain.JoinRequest{}
	err := row.Scan(&req.ID, &req.GroupID, &req.UserID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, translate(err, "request not found", "")
	}
	return req, nil
}

func (r *joinRequestRepository) Accept(ctx context.Context, req *domain.JoinRequest) error {
	logger.DatabaseCall("accept_join_request", "group_join_requests + group_members", "request_id", req.ID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if err := transition(ctx, tx, req.ID, domain.JoinRequestStatusAccepted, now); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO group_members (group_id, user_id, joined_at) VALUES ($1, $2, $3)`, req.GroupID, req.UserID, now)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return domain.NewConflictError("user is already a member of this group")
		}
		return fmt.Errorf("failed to insert membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		logger.DatabaseResult("accept_join_request", 0, err, "request_id", req.ID)
		return err
	}
	req.Status = domain.JoinRequestStatusAccepted
	req.UpdatedAt = now
	logger.DatabaseResult("accept_join_request", 1, nil, "request_id", req.ID)
	return nil
}

func (r *joinRequestRepository) Reject(ctx context.Context, req *domain.JoinRequest) error {
	now := time.Now().UTC()
	if err := transition(ctx, r.db, req.ID, domain.JoinRequestStatusRejected, now); err != nil {
		return err
	}
	req.Status = domain.JoinRequestStatusRejected
	req.UpdatedAt = now
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// transition moves a request out of PENDING. The status guard in the WHERE
// clause makes a concurrent second decision affect zero rows.
func transition(ctx context.Context, db execer, id int32, to domain.JoinRequestStatus, now time.Time) error {
	query := `UPDATE group_join_requests SET status = $1, updated_at = $2 WHERE id = $3 AND status = 'PENDING'`
	result, err := db.ExecContext(ctx, query, to, now, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NewConflictError("request has already been processed")
	}
	return nil
}

func (r *joinRequestRepository) DeletePending(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM group_join_requests WHERE id = $1 AND status = 'PENDING'`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NewConflictError("cannot cancel a processed request")
	}
	return nil
}

func (r *joinRequestRepository) ListPending(ctx context.Context, groupID int32) ([]domain.JoinRequest, error) {
	query := `SELECT r.id, r.group_id, r.user_id, r.status, r.created_at, r.updated_at, u.name, u.email
	          FROM group_join_requests r
	          JOIN users u ON u.id = r.user_id
	          WHERE r.group_id = $1 AND r.status = 'PENDING'
	          ORDER BY r.created_at ASC, r.id ASC`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reqs := []domain.JoinRequest{}
	for rows.Next() {
		var req domain.JoinRequest
		user := &domain.UserSummary{}
		if err := rows.Scan(&req.ID, &req.GroupID, &req.UserID, &req.Status, &req.CreatedAt, &req.UpdatedAt, &user.Name, &user.Email); err != nil {
			return nil, err
		}
		user.ID = req.UserID
		req.User = user
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *joinRequestRepository) CountPending(ctx context.Context, groupID int32) (int32, error) {
	var count int32
	query := `SELECT COUNT(*) FROM group_join_requests WHERE group_id = $1 AND status = 'PENDING'`
	err := r.db.QueryRowContext(ctx, query, groupID).Scan(&count)
	return count, err
}

func (r *joinRequestRepository) CountPendingForOwner(ctx context.Context, ownerID int32) (int32, error) {
	var count int32
	query := `SELECT COUNT(*) FROM group_join_requests r
	          JOIN study_groups g ON g.id = r.group_id
	          WHERE g.owner_id = $1 AND r.status = 'PENDING'`
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&count)
	return count, err
}

func (r *joinRequestRepository) ListPendingDigests(ctx context.Context) ([]domain.PendingDigest, error) {
	query := `SELECT g.owner_id, u.name, u.email, g.id, g.name, COUNT(*)
	          FROM group_join_requests r
	          JOIN study_groups g ON g.id = r.group_id
	          JOIN users u ON u.id = g.owner_id
	          WHERE r.status = 'PENDING'
	          GROUP BY g.owner_id, u.name, u.email, g.id, g.name
	          ORDER BY g.owner_id, g.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var digests []domain.PendingDigest
	for rows.Next() {
		var d domain.PendingDigest
		if err := rows.Scan(&d.OwnerID, &d.OwnerName, &d.OwnerEmail, &d.GroupID, &d.GroupName, &d.Pending); err != nil {
			return nil, err
		}
		digests = append(digests, d)
	}
	return digests, rows.Err()
}
