package loader

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cognicore/corpora/pkg/corpora/corpus"
	"github.com/cognicore/corpora/pkg/corpora/internalerr"
)

// scratchMu serializes archive expansion process-wide: one scratch
// directory exists at a time and is removed before the next is created.
var scratchMu sync.Mutex

// scratchPrefix names the temporary extraction directories.
const scratchPrefix = "corpora-scratch-"

// ExpandAndLoad extracts an archive into a private scratch directory, loads
// every regular member at any depth (.jsonl as records, anything else as
// text) and removes the scratch directory on every exit path. Member
// identifiers are the archive path joined with the member's path inside the
// archive. Records loaded before a failure are returned with the error.
func (l *Loader) ExpandAndLoad(path string) ([]corpus.Record, error) {
	var records []corpus.Record
	err := withScratch(func(dir string) error {
		if err := extract(path, dir); err != nil {
			return fmt.Errorf("%w: extract %s: %v", internalerr.ErrUnreadableInput, path, err)
		}

		return filepath.WalkDir(dir, func(memberPath string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("%w: list %s: %v", internalerr.ErrUnreadableInput, path, err)
			}
			if !d.Type().IsRegular() {
				return nil
			}
			rel, err := filepath.Rel(dir, memberPath)
			if err != nil {
				return fmt.Errorf("%w: list %s: %v", internalerr.ErrUnreadableInput, path, err)
			}

			if Classify(memberPath) == FormatRecords {
				recs, err := l.LoadRecords(memberPath)
				records = append(records, recs...)
				return err
			}

			rec, err := l.LoadText(memberPath)
			if err != nil {
				return err
			}
			rec.ID = filepath.Join(path, rel)
			records = append(records, rec)
			return nil
		})
	})
	return records, err
}

// withScratch runs fn with an exclusive, freshly created scratch directory.
func withScratch(fn func(dir string) error) (err error) {
	scratchMu.Lock()
	defer scratchMu.Unlock()

	dir, err := os.MkdirTemp("", scratchPrefix)
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil && err == nil {
			err = fmt.Errorf("remove scratch dir: %w", rmErr)
		}
	}()

	return fn(dir)
}

var errUnsupportedArchive = errors.New("unsupported archive type")

func extract(path, dest string) error {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".zip"):
		return extractZip(path, dest)
	case strings.HasSuffix(name, ".tgz"), strings.HasSuffix(name, ".tar.gz"):
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		gz, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gz.Close()
		return extractTar(gz, dest)
	case strings.HasSuffix(name, ".tar"):
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return extractTar(f, dest)
	}
	return errUnsupportedArchive
}

func extractZip(path, dest string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, f := range zr.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if !f.Mode().IsRegular() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeFile(target, rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func extractTar(r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr); err != nil {
				return err
			}
		}
	}
}

func writeFile(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// safeJoin rejects member names that would escape the scratch directory.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(name) {
		return "", fmt.Errorf("illegal member path %q", name)
	}
	return target, nil
}
