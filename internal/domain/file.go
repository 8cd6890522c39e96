package domain

import "time"

const MaxFileSizeBytes = 5 * 1024 * 1024

var AllowedFileTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"text/plain": true,
}

type File struct {
	ID           int32     `json:"id"`
	GroupID      int32     `json:"group_id"`
	UploaderID   int32     `json:"uploader_id"`
	UploaderName string    `json:"uploader_name,omitempty"`
	Filename     string    `json:"filename"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	StorageKey   string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
