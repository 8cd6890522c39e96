package postgres

import (
	"context"
	"database/sql"
	"time"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/repository"
)

type fileRepository struct {
	db *sql.DB
}

func NewFileRepository(db *sql.DB) repository.FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, f *domain.File) error {
	f.CreatedAt = time.Now().UTC()
	query := `INSERT INTO files (group_id, uploader_id, filename, mime_type, size, storage_key, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, f.GroupID, f.UploaderID, f.Filename, f.MimeType, f.Size, f.StorageKey, f.CreatedAt).Scan(&f.ID)
	return translate(err, "group not found", "file already exists")
}

func (r *fileRepository) GetByID(ctx context.Context, id int32) (*domain.File, error) {
	f := &domain.File{}
	query := `SELECT f.id, f.group_id, f.uploader_id, u.name, f.filename, f.mime_type, f.size, f.storage_key, f.created_at
	          FROM files f JOIN users u ON u.id = f.uploader_id
	          WHERE f.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.GroupID, &f.UploaderID, &f.UploaderName, &f.Filename, &f.MimeType, &f.Size, &f.StorageKey, &f.CreatedAt)
	if err != nil {
		return nil, translate(err, "file not found", "")
	}
	return f, nil
}

func (r *fileRepository) ListByGroup(ctx context.Context, groupID int32) ([]domain.File, error) {
	query := `SELECT f.id, f.group_id, f.uploader_id, u.name, f.filename, f.mime_type, f.size, f.storage_key, f.created_at
	          FROM files f JOIN users u ON u.id = f.uploader_id
	          WHERE f.group_id = $1
	          ORDER BY f.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []domain.File{}
	for rows.Next() {
		var f domain.File
		if err := rows.Scan(&f.ID, &f.GroupID, &f.UploaderID, &f.UploaderName, &f.Filename, &f.MimeType, &f.Size, &f.StorageKey, &f.CreatedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *fileRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NewNotFoundError("file not found")
	}
	return nil
}

func (r *fileRepository) StorageKeyExists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM files WHERE storage_key = $1)`, key).Scan(&exists)
	return exists, err
}
