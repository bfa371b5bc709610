// Package fetch downloads and unpacks release tarballs.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/llarhub/gmp/logger"
)

// Source describes one downloadable source archive. URLs are mirrors for the
// same file and are tried in order.
type Source struct {
	URLs   []string `yaml:"url"`
	SHA256 string   `yaml:"sha256"`
}

var httpClient = &http.Client{Timeout: 15 * time.Minute}

// Get downloads the archive from the first reachable mirror, verifies its
// sha256, and extracts it into destDir with the top-level directory stripped.
func Get(ctx context.Context, src Source, destDir string) error {
	if len(src.URLs) == 0 {
		return errors.New("fetch: no source url")
	}

	log := logger.Logger()
	var errs []error
	for _, url := range src.URLs {
		archive, err := download(ctx, url, src.SHA256)
		if err != nil {
			errs = append(errs, err)
			log.Warn().Str("url", url).Err(err).Msg("mirror failed")
			continue
		}
		defer os.Remove(archive)

		return Extract(archive, destDir, StripRoot)
	}
	return fmt.Errorf("fetch: all mirrors failed: %w", errors.Join(errs...))
}

// download fetches url into a temp file, verifying the sha256 checksum while
// streaming. Returns the temp file path.
func download(ctx context.Context, url, sum string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp("", "gmpbuild-dl-*"+archiveSuffix(url))
	if err != nil {
		return "", err
	}

	hash := sha256.New()
	if _, err := io.Copy(tmp, io.TeeReader(resp.Body, hash)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	// Close before any removal: Windows refuses to delete open files.
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if got := hex.EncodeToString(hash.Sum(nil)); !strings.EqualFold(got, sum) {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("download %s: sha256 mismatch: got %s, want %s", url, got, sum)
	}
	return tmp.Name(), nil
}

// archiveSuffix returns the archive extension of url, keeping compound
// extensions like ".tar.xz" intact so Extract can dispatch on them.
func archiveSuffix(url string) string {
	base := path.Base(url)
	for _, suffix := range []string{".tar.xz", ".tar.gz", ".tgz"} {
		if strings.HasSuffix(base, suffix) {
			return suffix
		}
	}
	return path.Ext(base)
}
