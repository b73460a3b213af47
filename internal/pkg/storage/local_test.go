package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/files/")
	require.NoError(t, err)

	path, err := s.Upload(ctx, strings.NewReader("Employee Name,Net Salary\n"), "bank/202501/file.csv", "text/csv")
	require.NoError(t, err)
	assert.Equal(t, "bank/202501/file.csv", path)

	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Download(ctx, path)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "Employee Name,Net Salary\n", string(content))

	url, err := s.GetURL(ctx, path, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/bank/202501/file.csv", url)

	require.NoError(t, s.Delete(ctx, path))
	require.NoError(t, s.Delete(ctx, path), "deleting twice is not an error")

	_, err = s.Download(ctx, path)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), strings.NewReader("x"), "../../etc/passwd", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
