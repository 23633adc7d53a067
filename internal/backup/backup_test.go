package backup_test

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/backup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// createTestDB creates a settings table with two rows.
func createTestDB(t *testing.T, dir string) string {
	t.Helper()
	dbPath := filepath.Join(dir, "shop.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT NOT NULL);
		INSERT INTO settings (key, value) VALUES ('theme_accent_color', '#111111'), ('theme_store_name', 'Forza');
	`)
	require.NoError(t, err)
	return dbPath
}

func createUploads(t *testing.T, dir string) string {
	t.Helper()
	uploads := filepath.Join(dir, "uploads")
	require.NoError(t, os.MkdirAll(uploads, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "logo.png"), []byte("\x89PNG"), 0o644))
	return uploads
}

func verifyDB(t *testing.T, dbPath string) {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var value string
	require.NoError(t, db.QueryRow("SELECT value FROM settings WHERE key = 'theme_accent_color'").Scan(&value))
	assert.Equal(t, "#111111", value)
}

func TestBackupRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	cfgPath := filepath.Join(src, "forzashop.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server:\n  port: 8080\n"), 0o644))

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	sum, err := backup.Backup(ctx, backup.Source{
		DBPath:     createTestDB(t, src),
		UploadsDir: createUploads(t, src),
		ConfigPath: cfgPath,
	}, archive)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Files)

	restoreDir := t.TempDir()
	rsum, err := backup.Restore(ctx, archive, restoreDir, false)
	require.NoError(t, err)
	assert.Equal(t, sum, rsum)

	verifyDB(t, filepath.Join(restoreDir, backup.DatabaseEntry))
	logo, err := os.ReadFile(filepath.Join(restoreDir, "uploads", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), logo)
	_, err = os.Stat(filepath.Join(restoreDir, backup.ConfigEntry))
	assert.NoError(t, err)
}

func TestBackup_OptionalPartsMissing(t *testing.T) {
	src := t.TempDir()
	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	sum, err := backup.Backup(context.Background(), backup.Source{
		DBPath:     createTestDB(t, src),
		UploadsDir: filepath.Join(src, "no-uploads-yet"),
	}, archive)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Files)
}

func TestBackup_MissingDatabase(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	_, err := backup.Backup(context.Background(), backup.Source{DBPath: filepath.Join(t.TempDir(), "nope.db")}, archive)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database file not found")
	_, statErr := os.Stat(archive)
	assert.True(t, os.IsNotExist(statErr), "no archive left behind")
}

func TestRestore_Force(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	_, err := backup.Backup(ctx, backup.Source{DBPath: createTestDB(t, src)}, archive)
	require.NoError(t, err)

	restoreDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(restoreDir, backup.DatabaseEntry), []byte("old"), 0o644))

	_, err = backup.Restore(ctx, archive, restoreDir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file already exists")

	_, err = backup.Restore(ctx, archive, restoreDir, true)
	require.NoError(t, err)
	verifyDB(t, filepath.Join(restoreDir, backup.DatabaseEntry))
}

func TestRestore_CorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.tar.gz")
	require.NoError(t, os.WriteFile(path, []byte("not a valid gzip"), 0o644))

	_, err := backup.Restore(context.Background(), path, t.TempDir(), false)
	assert.Error(t, err)
}

// writeArchive builds a tar.gz with the given entries.
func writeArchive(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.tar.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	for name, body := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Size: int64(len(body)), Mode: 0o644, Typeflag: tar.TypeReg}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestRestore_RejectsBadArchives(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]string
		wantErr string
	}{
		{"path traversal", map[string]string{"../../../etc/evil.db": "evil"}, "path traversal"},
		{"absolute path", map[string]string{"/etc/evil.db": "evil"}, "path traversal"},
		{"no database", map[string]string{"forzashop.yaml": "hello"}, "does not contain forzashop.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := backup.Restore(context.Background(), writeArchive(t, tt.entries), t.TempDir(), false)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
