package ingestion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"go.uber.org/zap"
)

// MaxUploadBytes caps the size of an uploaded résumé.
const MaxUploadBytes = 10 << 20

var documentExts = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".rtf":  true,
	".odt":  true,
}

var plainExts = map[string]bool{
	".txt": true,
	".md":  true,
}

// Supported reports whether the file name has an extension we can read.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return documentExts[ext] || plainExts[ext]
}

// ReadDocument returns the cleaned text of the file at path.
func ReadDocument(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case documentExts[ext]:
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", fmt.Errorf("failed to parse document: %w", err)
		}
		return CleanText(res.Body), nil
	case plainExts[ext]:
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return CleanText(string(content)), nil
	default:
		return "", fmt.Errorf("unsupported file type: %q", ext)
	}
}

// ExtractText is the fail-soft form of ReadDocument: any error is logged and
// yields "".
func ExtractText(path string, logger *zap.Logger) string {
	text, err := ReadDocument(path)
	if err != nil {
		if logger != nil {
			logger.Warn("document text extraction failed", zap.String("path", path), zap.Error(err))
		}
		return ""
	}
	return text
}

// ExtractUpload spools an uploaded file to a temp file, keeping its extension,
// and extracts its text. Fail-soft like ExtractText.
func ExtractUpload(name string, r io.Reader, logger *zap.Logger) string {
	if logger == nil {
		logger = zap.NewNop()
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !Supported(name) {
		logger.Warn("unsupported upload type", zap.String("file", name), zap.String("ext", ext))
		return ""
	}

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		logger.Warn("failed to create temp file", zap.Error(err))
		return ""
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	n, err := io.Copy(tmp, io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		logger.Warn("failed to save upload", zap.String("file", name), zap.Error(err))
		return ""
	}
	if n > MaxUploadBytes {
		logger.Warn("upload too large", zap.String("file", name), zap.Int64("limit", MaxUploadBytes))
		return ""
	}
	if err := tmp.Close(); err != nil {
		logger.Warn("failed to flush upload", zap.String("file", name), zap.Error(err))
		return ""
	}

	return ExtractText(tmp.Name(), logger)
}
