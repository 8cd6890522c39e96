package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/logger"
	"studybuddy-backend/internal/service"
)

// multipartOverhead is the allowance for boundaries and part headers on top
// of the file size limit.
const multipartOverhead = 64 << 10

type FileHandler struct {
	fileSvc service.FileService
	maxSize int64
}

func NewFileHandler(fileSvc service.FileService, maxSize int64) *FileHandler {
	if maxSize <= 0 {
		maxSize = domain.MaxFileSizeBytes
	}
	return &FileHandler{fileSvc: fileSvc, maxSize: maxSize}
}

func partMimeType(header, filename string) string {
	if header != "" && header != "application/octet-stream" {
		if mediaType, _, err := mime.ParseMediaType(header); err == nil {
			return mediaType
		}
	}
	if guessed := mime.TypeByExtension(filepath.Ext(filename)); guessed != "" {
		if mediaType, _, err := mime.ParseMediaType(guessed); err == nil {
			return mediaType
		}
	}
	return header
}

// Upload streams the "file" part of a multipart body straight into storage.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverhead)
	reader, err := r.MultipartReader()
	if err != nil {
		writeError(w, r, domain.NewValidationError("multipart form data is required"))
		return
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			writeError(w, r, domain.NewValidationError("no file uploaded"))
			return
		}
		if err != nil {
			writeError(w, r, domain.NewValidationError("malformed multipart body"))
			return
		}
		if part.FormName() != "file" || part.FileName() == "" {
			part.Close()
			continue
		}

		mimeType := partMimeType(part.Header.Get("Content-Type"), part.FileName())
		file, err := h.fileSvc.Upload(r.Context(), groupID, userID, part.FileName(), mimeType, 0, part)
		part.Close()
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				err = domain.NewValidationError("file size exceeds limit")
			}
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"file": file})
		return
	}
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	files, err := h.fileSvc.List(r.Context(), groupID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	fileID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	file, content, err := h.fileSvc.Download(r.Context(), fileID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename}))
	if _, err := io.Copy(w, content); err != nil {
		logger.Warn("File download interrupted", "fileID", fileID, "error", err)
	}
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	fileID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.fileSvc.Delete(r.Context(), fileID, userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
