// Package ingest turns an uploaded file into the session's active attachment:
// extracted text for documents, a base64 data URL for images. Extraction of
// PDF and DOCX content is delegated to external parsing libraries.
package ingest

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/gen2brain/go-fitz"

	app_errors "linguachat/backend/internal/errors"
	"linguachat/backend/internal/model"
)

// MaxFileSize bounds uploads; larger files are rejected at the boundary.
const MaxFileSize = 10 * 1024 * 1024

var imageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Ingest converts the raw upload into an UploadedFile. Unsupported extensions
// return ErrUnsupportedFileType; extraction failures wrap it so callers can
// surface a single error category at upload time.
func Ingest(name string, data []byte) (*model.UploadedFile, error) {
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", app_errors.ErrValidation, MaxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(name))

	if mimeType, ok := imageMIMETypes[ext]; ok {
		return &model.UploadedFile{
			Name:    name,
			Content: fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
			IsImage: true,
		}, nil
	}

	var text string
	var err error
	switch ext {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data)
	case ".txt", ".md", ".csv", ".json", ".xml", ".html":
		text = string(data)
	default:
		return nil, fmt.Errorf("%w: %q", app_errors.ErrUnsupportedFileType, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not extract %q: %s", app_errors.ErrUnsupportedFileType, name, err.Error())
	}

	return &model.UploadedFile{Name: name, Content: text}, nil
}

func extractPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			return "", err
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\n"), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch block := item.(type) {
		case *docx.Paragraph:
			b.WriteString(block.String())
			b.WriteString("\n")
		case *docx.Table:
			b.WriteString(block.String())
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
