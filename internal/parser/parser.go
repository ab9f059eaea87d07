package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileType represents the type of a word-list document
type FileType int

const (
	TypeUnknown FileType = iota
	TypeText
	TypePDF
	TypeDOCX
)

// MaxFileSize is the maximum allowed file size (10MB)
const MaxFileSize = 10 * 1024 * 1024

// DetectFileType determines the file type based on extension
func DetectFileType(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text":
		return TypeText
	case ".pdf":
		return TypePDF
	case ".docx":
		return TypeDOCX
	default:
		return TypeUnknown
	}
}

// ValidateFileSize checks if a file is within the size limit
func ValidateFileSize(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	if info.Size() > MaxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), MaxFileSize)
	}

	return nil
}

// ExtractText detects the file type and returns the plain text of the document
func ExtractText(filePath string) (string, error) {
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file not found: %w", err)
	}

	if err := ValidateFileSize(filePath); err != nil {
		return "", err
	}

	switch DetectFileType(filePath) {
	case TypeText:
		return ParseText(filePath)
	case TypePDF:
		return ParsePDF(filePath)
	case TypeDOCX:
		return ParseDOCX(filePath)
	default:
		return "", fmt.Errorf("unsupported file type: %s (only .txt, .pdf and .docx are supported)", filepath.Ext(filePath))
	}
}

// ParseText reads a plain text file
func ParseText(filePath string) (string, error) {
	if err := ValidateFileSize(filePath); err != nil {
		return "", err
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}

	text := strings.TrimSpace(string(content))
	if text == "" {
		return "", fmt.Errorf("no text content found in file")
	}

	return text, nil
}
