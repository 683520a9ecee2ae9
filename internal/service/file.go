package service

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/careconnect/careconnect/internal/model"
	"github.com/careconnect/careconnect/internal/repository"
	"github.com/careconnect/careconnect/internal/storage"
)

type FileService struct {
	fileRepo repository.FileRepository
	storage  storage.Storage
}

func NewFileService(fileRepo repository.FileRepository, storage storage.Storage) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
	}
}

// Upload stores a file and records it. Validation (type, size, content)
// is the caller's job before getting here.
func (s *FileService) Upload(userID, ownerType, ownerID, fileType string, file multipart.File, header *multipart.FileHeader, isPublic bool) (*model.File, error) {
	ext := filepath.Ext(header.Filename)
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	prefix := "private"
	if isPublic {
		prefix = "public"
	}
	folderName := fileType + "s" // avatar -> avatars
	storagePath := filepath.Join(prefix, folderName, filename)

	err := s.storage.Save(storagePath, file)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	fileModel := &model.File{
		ID:           uuid.New().String(),
		UserID:       userID,
		OwnerType:    ownerType,
		OwnerID:      ownerID,
		Type:         fileType,
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		StoragePath:  storagePath,
		Public:       isPublic,
		CreatedAt:    time.Now(),
	}

	err = s.fileRepo.Create(fileModel)
	if err != nil {
		// If DB insert fails, try to cleanup the uploaded file
		delErr := s.storage.Delete(storagePath)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return fileModel, nil
}

// URL returns the appropriate URL for a file (public or presigned)
func (s *FileService) URL(file *model.File) string {
	if file == nil {
		return ""
	}

	s3Storage, ok := s.storage.(*storage.S3Storage)
	if ok {
		if file.Public {
			return s3Storage.PublicURL(file.StoragePath)
		}
		url, err := s3Storage.PresignedURL(file.StoragePath, s3Storage.PrivateExpiry())
		if err != nil {
			return s3Storage.PublicURL(file.StoragePath)
		}
		return url
	}

	return s.storage.URL(file.StoragePath)
}

// FileByType retrieves the latest file of a type for an owner, e.g. the
// current avatar of a user or the proof attached to a task.
func (s *FileService) FileByType(ownerType, ownerID, fileType string) (*model.File, error) {
	return s.fileRepo.FileByType(ownerType, ownerID, fileType)
}

// Delete removes a file from storage and database
func (s *FileService) Delete(fileID string) error {
	file, err := s.fileRepo.ByID(fileID)
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}

	// Delete from storage (best effort)
	delErr := s.storage.Delete(file.StoragePath)
	if delErr != nil {
		slog.Error("failed to delete file from storage", "error", delErr, "path", file.StoragePath)
	}

	err = s.fileRepo.Delete(fileID)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	return nil
}
