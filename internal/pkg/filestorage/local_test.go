package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("PUT", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := req.FormFile("photo")
	require.NoError(t, err)
	return header
}

func TestSaveFileGeneratesUniqueName(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	header := uploadFileHeader(t, "me.png", "image-bytes")
	filename, err := storage.SaveFile(header)
	require.NoError(t, err)

	assert.NotEqual(t, "me.png", filename)
	assert.True(t, strings.HasSuffix(filename, ".png"))

	content, err := os.ReadFile(storage.FullPath(filename))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(content))
}

func TestSaveFileNilHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	filename, err := storage.SaveFile(nil)
	require.NoError(t, err)
	assert.Empty(t, filename)
}

func TestDeleteFileIdempotent(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	header := uploadFileHeader(t, "me.jpg", "x")
	filename, err := storage.SaveFile(header)
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(filename))
	_, statErr := os.Stat(storage.FullPath(filename))
	assert.True(t, os.IsNotExist(statErr))

	// Deleting again or deleting nothing is not an error.
	assert.NoError(t, storage.DeleteFile(filename))
	assert.NoError(t, storage.DeleteFile(""))
}

func TestDeleteFileStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	outside := filepath.Join(dir, "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o600))

	// A traversal-looking filename must not escape the storage root.
	require.NoError(t, storage.DeleteFile("../outside.txt"))
	_, statErr := os.Stat(outside)
	assert.NoError(t, statErr)
}
