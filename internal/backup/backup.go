// Package backup archives the shop database and uploaded media into a
// single tar.gz and restores it.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver used for snapshots
)

// Archive entry names.
const (
	DatabaseEntry = "forzashop.db"
	ConfigEntry   = "forzashop.yaml"
	UploadsPrefix = "uploads/"
)

// Source names what goes into a backup. UploadsDir and ConfigPath are
// optional.
type Source struct {
	DBPath     string
	UploadsDir string
	ConfigPath string
}

// Summary reports what an archive operation touched.
type Summary struct {
	Files int
	Bytes int64
}

// Backup writes a consistent snapshot of the database plus the uploads
// directory and config file to archivePath.
func Backup(ctx context.Context, src Source, archivePath string) (Summary, error) {
	if _, err := os.Stat(src.DBPath); err != nil {
		return Summary{}, fmt.Errorf("database file not found: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "forzashop-backup-")
	if err != nil {
		return Summary{}, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	snapshot := filepath.Join(tmpDir, DatabaseEntry)
	if err := snapshotDB(ctx, src.DBPath, snapshot); err != nil {
		return Summary{}, err
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return Summary{}, fmt.Errorf("creating archive: %w", err)
	}
	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)

	var sum Summary
	err = addFile(tw, snapshot, DatabaseEntry, &sum)
	if err == nil && src.ConfigPath != "" {
		err = addFile(tw, src.ConfigPath, ConfigEntry, &sum)
	}
	if err == nil && src.UploadsDir != "" {
		err = addUploads(ctx, tw, src.UploadsDir, &sum)
	}

	// Close in order; the first error wins.
	for _, c := range []io.Closer{tw, gw, f} {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		_ = os.Remove(archivePath)
		return Summary{}, err
	}
	return sum, nil
}

// snapshotDB copies a live database with VACUUM INTO so concurrent writers
// do not tear the copy.
func snapshotDB(ctx context.Context, dbPath, dest string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		return fmt.Errorf("snapshotting database: %w", err)
	}
	return nil
}

func addUploads(ctx context.Context, tw *tar.Writer, dir string, sum *Summary) error {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		return addFile(tw, path, UploadsPrefix+filepath.ToSlash(rel), sum)
	})
}

func addFile(tw *tar.Writer, path, name string, sum *Summary) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("header for %s: %w", path, err)
	}
	hdr.Name = name
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("writing header %s: %w", name, err)
	}
	n, err := io.Copy(tw, f)
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	sum.Files++
	sum.Bytes += n
	return nil
}
