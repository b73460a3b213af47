package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/storage"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeXLS  = "application/vnd.ms-excel"
	contentTypeCSV  = "text/csv"
)

type FileService interface {
	// UploadAttendanceImport keeps the original upload next to its import id.
	UploadAttendanceImport(ctx context.Context, importID string, file io.Reader, filename string) (string, error)

	// UploadBankFile stores a rendered bank transfer file for a batch.
	UploadBankFile(ctx context.Context, month time.Time, batchID string, content []byte) (string, error)

	OpenFile(ctx context.Context, path string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadAttendanceImport stores the raw upload under imports/{yyyy-mm-dd}/{importID}{ext}
func (s *fileServiceImpl) UploadAttendanceImport(ctx context.Context, importID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	contentType := "application/octet-stream"
	switch ext {
	case ".xlsx":
		contentType = contentTypeXLSX
	case ".xls":
		contentType = contentTypeXLS
	case ".csv":
		contentType = contentTypeCSV
	}

	path := filepath.Join("imports", time.Now().UTC().Format("2006-01-02"), importID+ext)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload attendance import: %w", err)
	}

	return uploadedPath, nil
}

// UploadBankFile stores the file as bank/{yyyymm}/BankTransfer_{yyyymm}_{batchID}.csv
func (s *fileServiceImpl) UploadBankFile(ctx context.Context, month time.Time, batchID string, content []byte) (string, error) {
	period := month.Format("200601")
	name := fmt.Sprintf("BankTransfer_%s_%s.csv", period, batchID)
	path := filepath.Join("bank", period, name)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(content), path, contentTypeCSV)
	if err != nil {
		return "", fmt.Errorf("failed to upload bank file: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) OpenFile(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, path)
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}
