package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxEntrySize caps a single extracted file against decompression bombs.
const maxEntrySize = 10 << 30

// Restore extracts a backup archive into targetDir. Existing files are
// only overwritten when force is true. The archive must contain the
// database entry.
func Restore(ctx context.Context, archivePath, targetDir string, force bool) (Summary, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return Summary{}, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return Summary{}, fmt.Errorf("decompressing archive: %w", err)
	}
	defer gr.Close()

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating target directory: %w", err)
	}

	tr := tar.NewReader(gr)
	var (
		sum     Summary
		foundDB bool
	)
	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("reading archive entry: %w", err)
		}

		dest, err := safeJoin(targetDir, hdr.Name)
		if err != nil {
			return sum, err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if hdr.Name == DatabaseEntry {
			foundDB = true
		}
		if !force {
			if _, err := os.Stat(dest); err == nil {
				return sum, fmt.Errorf("file already exists (use -force to overwrite): %s", dest)
			}
		}

		n, err := extract(tr, dest)
		if err != nil {
			return sum, fmt.Errorf("extracting %s: %w", hdr.Name, err)
		}
		sum.Files++
		sum.Bytes += n
	}

	if !foundDB {
		return sum, fmt.Errorf("invalid backup: archive does not contain %s", DatabaseEntry)
	}
	return sum, nil
}

// safeJoin resolves an entry name under targetDir, rejecting names that
// would land outside it.
func safeJoin(targetDir, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("path traversal detected: absolute path %q", name)
	}
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal detected: %q", name)
	}

	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return "", fmt.Errorf("resolving target directory: %w", err)
	}
	dest := filepath.Join(absTarget, cleaned)
	if dest != absTarget && !strings.HasPrefix(dest, absTarget+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal detected: %q resolves outside target", name)
	}
	return dest, nil
}

func extract(r io.Reader, dest string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, io.LimitReader(r, maxEntrySize))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
