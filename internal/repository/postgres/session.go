package postgres

import (
	"context"
	"database/sql"
	"time"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/repository"
)

const sessionSelect = `SELECT s.id, s.group_id, s.created_by, s.title, s.description, s.date, s.link, s.location,
	                          s.created_at, s.updated_at, u.name, u.email
	                   FROM study_sessions s JOIN users u ON u.id = s.created_by`

type sessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*domain.StudySession, error) {
	s := &domain.StudySession{}
	creator := &domain.UserSummary{}
	var description, link, location sql.NullString
	err := row.Scan(&s.ID, &s.GroupID, &s.CreatedBy, &s.Title, &description, &s.Date, &link, &location,
		&s.CreatedAt, &s.UpdatedAt, &creator.Name, &creator.Email)
	if err != nil {
		return nil, err
	}
	s.Description = stringPtr(description)
	s.Link = stringPtr(link)
	s.Location = stringPtr(location)
	creator.ID = s.CreatedBy
	s.Creator = creator
	return s, nil
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.StudySession) error {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	query := `INSERT INTO study_sessions (group_id, created_by, title, description, date, link, location, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, s.GroupID, s.CreatedBy, s.Title, nullString(s.Description), s.Date,
		nullString(s.Link), nullString(s.Location), s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
	return translate(err, "group not found", "session already exists")
}

func (r *sessionRepository) GetByID(ctx context.Context, id int32) (*domain.StudySession, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx, sessionSelect+` WHERE s.id = $1`, id))
	if err != nil {
		return nil, translate(err, "session not found", "")
	}
	return s, nil
}

func (r *sessionRepository) ListByGroup(ctx context.Context, groupID int32, filter domain.SessionFilter, now time.Time) ([]domain.StudySession, error) {
	var rows *sql.Rows
	var err error
	switch filter {
	case domain.SessionFilterUpcoming:
		rows, err = r.db.QueryContext(ctx, sessionSelect+` WHERE s.group_id = $1 AND s.date >= $2 ORDER BY s.date ASC`, groupID, now)
	case domain.SessionFilterPast:
		rows, err = r.db.QueryContext(ctx, sessionSelect+` WHERE s.group_id = $1 AND s.date < $2 ORDER BY s.date DESC`, groupID, now)
	default:
		rows, err = r.db.QueryContext(ctx, sessionSelect+` WHERE s.group_id = $1 ORDER BY s.date ASC`, groupID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []domain.StudySession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) Update(ctx context.Context, s *domain.StudySession) error {
	s.UpdatedAt = time.Now().UTC()
	query := `UPDATE study_sessions SET title = $1, description = $2, date = $3, link = $4, location = $5, updated_at = $6
	          WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query, s.Title, nullString(s.Description), s.Date, nullString(s.Link), nullString(s.Location), s.UpdatedAt, s.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NewNotFoundError("session not found")
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM study_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NewNotFoundError("session not found")
	}
	return nil
}
