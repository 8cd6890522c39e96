package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/logger"
	"studybuddy-backend/internal/repository"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

const uniqueViolation = pq.ErrorCode("23505")

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.GroupRepository
	repository.MembershipRepository
	repository.JoinRequestRepository
	repository.FileRepository
	repository.SessionRepository
	repository.DashboardRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		UserRepository:        NewUserRepository(db),
		GroupRepository:       NewGroupRepository(db),
		MembershipRepository:  NewMembershipRepository(db),
		JoinRequestRepository: NewJoinRequestRepository(db),
		FileRepository:        NewFileRepository(db),
		SessionRepository:     NewSessionRepository(db),
		DashboardRepository:   NewDashboardRepository(db),
	}
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	logger.DatabaseCall("migrate", "schema.sql")
	_, err := db.ExecContext(ctx, schema)
	logger.DatabaseResult("migrate", 0, err)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// uniqueConstraint returns the violated constraint name when err is a
// unique violation.
func uniqueConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

// translate maps driver errors onto the domain taxonomy.
func translate(err error, notFoundMsg, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError(notFoundMsg)
	}
	if _, ok := uniqueConstraint(err); ok {
		return domain.NewConflictError(conflictMsg)
	}
	return err
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
