package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// mp4Header 最小的 ISO BMFF ftyp box，足以被判定為 video/mp4
func mp4Header() []byte {
	b := []byte{0x00, 0x00, 0x00, 0x18}
	b = append(b, []byte("ftypisom")...)
	b = append(b, 0x00, 0x00, 0x02, 0x00)
	b = append(b, []byte("isomiso2mp41")...)
	return append(b, bytes.Repeat([]byte{0}, 64)...)
}

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("videoFile", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["videoFile"][0]
}

func TestSaveVideo(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, 1<<20)
	require.NoError(t, err)
	newName = func() string { return "fixed" }
	t.Cleanup(func() { newName = defaultName })

	content := mp4Header()
	path, err := s.Save(fileHeader(t, "Clip.MP4", content))
	require.NoError(t, err)
	require.Equal(t, "/uploads/video_fixed.mp4", path)

	stored, err := os.ReadFile(filepath.Join(dir, "video_fixed.mp4"))
	require.NoError(t, err)
	require.Equal(t, content, stored)

	require.NoError(t, s.Remove(path))
	_, err = os.Stat(filepath.Join(dir, "video_fixed.mp4"))
	require.True(t, os.IsNotExist(err))
	require.NoError(t, s.Remove(path), "removing twice is fine")
}

func TestSaveRejectsNonVideo(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, 1<<20)
	require.NoError(t, err)

	_, err = s.Save(fileHeader(t, "notes.mp4", []byte("hello world, definitely not a video")))
	require.ErrorIs(t, err, ErrNotVideo)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSaveRejectsTooLarge(t *testing.T) {
	s, err := NewStore(t.TempDir(), 16)
	require.NoError(t, err)
	_, err = s.Save(fileHeader(t, "clip.mp4", mp4Header()))
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestRemoveRefusesForeignPaths(t *testing.T) {
	s, err := NewStore(t.TempDir(), 1<<20)
	require.NoError(t, err)
	for _, p := range []string{"/etc/passwd", "/uploads/../secret", "/uploads/other.mp4", "video_x.mp4"} {
		require.Error(t, s.Remove(p), p)
	}
}
