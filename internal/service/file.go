package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/logger"
	"studybuddy-backend/internal/repository"
	"studybuddy-backend/internal/storage"
	"studybuddy-backend/internal/utils"
)

type fileService struct {
	fileRepo  repository.FileRepository
	groupRepo repository.GroupRepository
	members   MembershipService
	store     storage.Storage
	maxSize   int64
}

func NewFileService(fileRepo repository.FileRepository, groupRepo repository.GroupRepository, members MembershipService, store storage.Storage, maxSize int64) FileService {
	if maxSize <= 0 {
		maxSize = domain.MaxFileSizeBytes
	}
	return &fileService{
		fileRepo:  fileRepo,
		groupRepo: groupRepo,
		members:   members,
		store:     store,
		maxSize:   maxSize,
	}
}

func (s *fileService) tooLarge() error {
	return domain.NewValidationError(fmt.Sprintf("file size exceeds %dMB limit", s.maxSize/(1024*1024)))
}

func (s *fileService) Upload(ctx context.Context, groupID, userID int32, filename, mimeType string, size int64, content io.Reader) (*domain.File, error) {
	if _, err := s.members.RequireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	filename = utils.CleanText(filepath.Base(strings.ReplaceAll(filename, "\\", "/")))
	if filename == "" || filename == "." || filename == "/" {
		return nil, domain.NewValidationError("file name is required")
	}
	if utils.Length(filename) > uploadFilenameMax {
		return nil, domain.NewValidationError(fmt.Sprintf("file name must be at most %d characters", uploadFilenameMax))
	}
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if !domain.AllowedFileTypes[mimeType] {
		return nil, domain.NewValidationError("file type not allowed")
	}
	if size > s.maxSize {
		return nil, s.tooLarge()
	}

	key := storage.NewKey(groupID)
	written, err := s.store.Save(ctx, key, content, s.maxSize)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, s.tooLarge()
		}
		return nil, err
	}

	file := &domain.File{
		GroupID:    groupID,
		UploaderID: userID,
		Filename:   filename,
		MimeType:   mimeType,
		Size:       written,
		StorageKey: key,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			logger.Warn("Failed to remove stored file after insert failure", "key", key, "error", delErr)
		}
		return nil, err
	}

	logger.Info("File uploaded", "fileID", file.ID, "groupID", groupID, "size", written)
	return file, nil
}

func (s *fileService) List(ctx context.Context, groupID, userID int32) ([]domain.File, error) {
	if _, err := s.members.RequireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.fileRepo.ListByGroup(ctx, groupID)
}

func (s *fileService) Download(ctx context.Context, fileID, userID int32) (*domain.File, io.ReadCloser, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.members.RequireMember(ctx, file.GroupID, userID); err != nil {
		return nil, nil, err
	}

	rc, err := s.store.Open(ctx, file.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, domain.NewNotFoundError("file content not found")
		}
		return nil, nil, err
	}
	return file, rc, nil
}

func (s *fileService) Delete(ctx context.Context, fileID, userID int32) error {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	group, err := s.groupRepo.GetByID(ctx, file.GroupID)
	if err != nil {
		return err
	}
	if file.UploaderID != userID && group.OwnerID != userID {
		return domain.NewForbiddenError("only the uploader or the group owner can delete this file")
	}

	if err := s.fileRepo.Delete(ctx, fileID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, file.StorageKey); err != nil {
		logger.Warn("Failed to delete stored file", "fileID", fileID, "key", file.StorageKey, "error", err)
	}
	return nil
}
