package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/logger"
	"studybuddy-backend/internal/repository"
)

const inviteCodeConstraint = "study_groups_invite_code_key"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) CreateWithOwner(ctx context.Context, g *domain.StudyGroup) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now

	query := `INSERT INTO study_groups (name, description, invite_code, owner_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err = tx.QueryRowContext(ctx, query, g.Name, nullString(g.Description), g.InviteCode, g.OwnerID, g.CreatedAt, g.UpdatedAt).Scan(&g.ID)
	if err != nil {
		if constraint, ok := uniqueConstraint(err); ok && constraint == inviteCodeConstraint {
			return repository.ErrInviteCodeTaken
		}
		return fmt.Errorf("failed to insert group: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO group_members (group_id, user_id, joined_at) VALUES ($1, $2, $3)`, g.ID, g.OwnerID, now)
	if err != nil {
		return fmt.Errorf("failed to insert owner membership: %w", err)
	}

	return tx.Commit()
}

func (r *groupRepository) GetByID(ctx context.Context, id int32) (*domain.StudyGroup, error) {
	query := `SELECT id, name, description, invite_code, owner_id, created_at, updated_at FROM study_groups WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *groupRepository) GetByInviteCode(ctx context.Context, code string) (*domain.StudyGroup, error) {
	query := `SELECT id, name, description, invite_code, owner_id, created_at, updated_at FROM study_groups WHERE invite_code = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

func (r *groupRepository) scanOne(row *sql.Row) (*domain.StudyGroup, error) {
	g := &domain.StudyGroup{}
	var description sql.NullString
	err := row.Scan(&g.ID, &g.Name, &description, &g.InviteCode, &g.OwnerID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, translate(err, "group not found", "")
	}
	g.Description = stringPtr(description)
	return g, nil
}

func (r *groupRepository) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM study_groups WHERE invite_code = $1)`, code).Scan(&exists)
	return exists, err
}

func (r *groupRepository) Update(ctx context.Context, g *domain.StudyGroup) error {
	g.UpdatedAt = time.Now().UTC()
	query := `UPDATE study_groups SET name = $1, description = $2, updated_at = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, g.Name, nullString(g.Description), g.UpdatedAt, g.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NewNotFoundError("group not found")
	}
	return nil
}

func (r *groupRepository) Delete(ctx context.Context, id int32) ([]string, error) {
	logger.DatabaseCall("delete_group", "study_groups cascade", "group_id", id)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT storage_key FROM files WHERE group_id = $1`, id)
	if err != nil {
		return nil, err
	}
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return nil, err
		}
		keys = append(keys, key)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, stmt := range []string{
		`DELETE FROM study_sessions WHERE group_id = $1`,
		`DELETE FROM files WHERE group_id = $1`,
		`DELETE FROM group_join_requests WHERE group_id = $1`,
		`DELETE FROM group_members WHERE group_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return nil, fmt.Errorf("failed to delete group children: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM study_groups WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.NewNotFoundError("group not found")
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("delete_group", affected, nil, "group_id", id, "files", len(keys))
	return keys, nil
}

func (r *groupRepository) Search(ctx context.Context, q string, limit int) ([]domain.GroupSummary, error) {
	query := `SELECT g.id, g.name, g.description, u.name,
	                 (SELECT COUNT(*) FROM group_members m WHERE m.group_id = g.id)
	          FROM study_groups g
	          JOIN users u ON u.id = g.owner_id
	          WHERE g.name ILIKE $1
	          ORDER BY g.name
	          LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, "%"+likeEscaper.Replace(q)+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []domain.GroupSummary{}
	for rows.Next() {
		var s domain.GroupSummary
		var description sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &description, &s.OwnerName, &s.MemberCount); err != nil {
			return nil, err
		}
		s.Description = stringPtr(description)
		groups = append(groups, s)
	}
	return groups, rows.Err()
}

func (r *groupRepository) ListByMember(ctx context.Context, userID int32) ([]domain.MyGroup, error) {
	query := `SELECT g.id, g.name, g.description, g.invite_code, g.owner_id, g.created_at, g.updated_at,
	                 u.name,
	                 (SELECT COUNT(*) FROM group_members c WHERE c.group_id = g.id),
	                 m.joined_at
	          FROM group_members m
	          JOIN study_groups g ON g.id = m.group_id
	          JOIN users u ON u.id = g.owner_id
	          WHERE m.user_id = $1
	          ORDER BY m.joined_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []domain.MyGroup{}
	for rows.Next() {
		var g domain.MyGroup
		var description sql.NullString
		if err := rows.Scan(&g.ID, &g.Name, &description, &g.InviteCode, &g.OwnerID, &g.CreatedAt, &g.UpdatedAt,
			&g.OwnerName, &g.MemberCount, &g.JoinedAt); err != nil {
			return nil, err
		}
		g.Description = stringPtr(description)
		g.IsOwner = g.OwnerID == userID
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *groupRepository) GetCounts(ctx context.Context, groupID int32) (*domain.GroupCounts, error) {
	query := `SELECT
	            (SELECT COUNT(*) FROM group_members WHERE group_id = $1),
	            (SELECT COUNT(*) FROM group_join_requests WHERE group_id = $1 AND status = 'PENDING'),
	            (SELECT COUNT(*) FROM files WHERE group_id = $1),
	            (SELECT COUNT(*) FROM study_sessions WHERE group_id = $1)`
	c := &domain.GroupCounts{}
	if err := r.db.QueryRowContext(ctx, query, groupID).Scan(&c.Members, &c.PendingRequests, &c.Files, &c.Sessions); err != nil {
		return nil, err
	}
	return c, nil
}
