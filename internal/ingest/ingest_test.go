package ingest_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "linguachat/backend/internal/errors"
	"linguachat/backend/internal/ingest"
)

func TestIngest_PlainText(t *testing.T) {
	file, err := ingest.Ingest("notes.txt", []byte("the sky is blue"))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", file.Name)
	assert.Equal(t, "the sky is blue", file.Content)
	assert.False(t, file.IsImage)
}

func TestIngest_ImageBecomesDataURL(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4E, 0x47}
	file, err := ingest.Ingest("photo.PNG", raw)
	require.NoError(t, err)

	assert.True(t, file.IsImage)
	require.True(t, strings.HasPrefix(file.Content, "data:image/png;base64,"))
	payload := strings.TrimPrefix(file.Content, "data:image/png;base64,")
	decoded, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestIngest_JPEGMimeType(t *testing.T) {
	file, err := ingest.Ingest("pic.jpg", []byte{0xFF, 0xD8})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(file.Content, "data:image/jpeg;base64,"))
}

func TestIngest_UnsupportedExtension(t *testing.T) {
	_, err := ingest.Ingest("archive.zip", []byte("PK"))
	assert.ErrorIs(t, err, app_errors.ErrUnsupportedFileType)
}

func TestIngest_CorruptPDFIsRejected(t *testing.T) {
	_, err := ingest.Ingest("broken.pdf", []byte("not a pdf"))
	assert.ErrorIs(t, err, app_errors.ErrUnsupportedFileType)
}

func TestIngest_TooLarge(t *testing.T) {
	_, err := ingest.Ingest("big.txt", make([]byte, ingest.MaxFileSize+1))
	assert.ErrorIs(t, err, app_errors.ErrValidation)
}
