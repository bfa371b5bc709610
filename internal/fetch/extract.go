package fetch

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// ExtractOption controls archive extraction.
type ExtractOption int

const (
	// StripRoot drops the single top-level directory release tarballs wrap
	// their content in.
	StripRoot ExtractOption = 1 << iota
)

// Extract unpacks a .tar.xz or .tar.gz archive into destDir.
// File modes are preserved, so scripts keep their exec bit where the archive
// carries one. Entries escaping destDir are rejected.
func Extract(archive, destDir string, opts ExtractOption) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader
	switch {
	case strings.HasSuffix(archive, ".tar.xz"):
		if r, err = xz.NewReader(f); err != nil {
			return fmt.Errorf("extract %s: %w", archive, err)
		}
	case strings.HasSuffix(archive, ".tar.gz"), strings.HasSuffix(archive, ".tgz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("extract %s: %w", archive, err)
		}
		defer gz.Close()
		r = gz
	default:
		return fmt.Errorf("extract %s: unsupported archive format", archive)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("extract %s: %w", archive, err)
		}
		name := hdr.Name
		if opts&StripRoot != 0 {
			if _, rest, ok := strings.Cut(name, "/"); ok {
				name = rest
			} else {
				continue // the root directory entry itself
			}
		}
		if name == "" {
			continue
		}
		if !filepath.IsLocal(filepath.FromSlash(name)) {
			return fmt.Errorf("extract %s: illegal entry path %q", archive, hdr.Name)
		}
		target := filepath.Join(destDir, filepath.FromSlash(name))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			// The link target must stay inside destDir too, or a later
			// entry written through the link escapes it.
			link := filepath.FromSlash(hdr.Linkname)
			dir := filepath.Dir(filepath.FromSlash(name))
			if filepath.IsAbs(link) || !filepath.IsLocal(filepath.Join(dir, link)) {
				return fmt.Errorf("extract %s: illegal link target %q for %q", archive, hdr.Linkname, hdr.Name)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		}
	}
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
