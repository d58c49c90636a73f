package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// UpdateInput names the running version and, optionally, a specific
// release tag to install instead of the latest.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is one stage notification during an update.
type UpdateProgress struct {
	Stage   string
	Message string
}

// releaseAsset describes the one release artifact that matches the
// running platform. Release archives are produced per OS/arch with the
// quizforge binary at the top level, plus a checksums.txt covering all
// of them.
type releaseAsset struct {
	name   string // archive file name within the release
	binary string // binary file name inside the archive
	zipped bool   // zip for windows, tar.gz elsewhere
}

// releaseArchs maps GOARCH values to the labels used in release asset
// names.
var releaseArchs = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

func assetFor(goos, goarch string) (releaseAsset, error) {
	if goos == "darwin" {
		// Darwin ships a universal binary, one archive for both archs.
		return releaseAsset{name: "quizforge_Darwin_all.tar.gz", binary: "quizforge"}, nil
	}

	arch, ok := releaseArchs[goarch]
	if !ok {
		return releaseAsset{}, fmt.Errorf("unsupported architecture: %s", goarch)
	}

	switch goos {
	case "linux":
		return releaseAsset{name: fmt.Sprintf("quizforge_Linux_%s.tar.gz", arch), binary: "quizforge"}, nil
	case "windows":
		return releaseAsset{name: fmt.Sprintf("quizforge_Windows_%s.zip", arch), binary: "quizforge.exe", zipped: true}, nil
	default:
		return releaseAsset{}, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// Update replaces the running binary with the release build for tag
// (or the latest release when input.TargetVersion is empty). The
// progress callback sees the stages check, download, verify, extract,
// apply and done, in that order.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}

	tag := input.TargetVersion
	if tag == "" {
		progress(UpdateProgress{Stage: "check", Message: "Checking for latest version..."})
		result, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !result.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = result.LatestVersion
	}

	asset, err := assetFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "download", Message: fmt.Sprintf("Downloading %s...", tag)})
	archive, err := c.fetch(ctx, c.releaseFileURL(tag, asset.name))
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(UpdateProgress{Stage: "verify", Message: "Verifying checksum..."})
	manifest, err := c.fetch(ctx, c.releaseFileURL(tag, "checksums.txt"))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, err := checksumFor(manifest, asset.name)
	if err != nil {
		return err
	}
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "extract", Message: "Extracting binary..."})
	binary, err := asset.unpack(archive)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	progress(UpdateProgress{Stage: "apply", Message: "Applying update..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := swapBinary(target, binary); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	progress(UpdateProgress{Stage: "done", Message: fmt.Sprintf("Updated to %s", tag)})
	return nil
}

// releaseFileURL builds the download URL for one file of a tagged
// release.
func (c *Checker) releaseFileURL(tag, file string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, file)
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// checksumFor scans a sha256sum-format manifest ("<hex>  <file>" per
// line) for the named asset. Lines that do not parse are skipped rather
// than failing the update, since manifests sometimes carry comments.
func checksumFor(manifest []byte, asset string) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(manifest))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && fields[1] == asset {
			return fields[0], nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("scan checksums: %w", err)
	}
	return "", fmt.Errorf("no checksum found for %s in checksums.txt", asset)
}

func verifyChecksum(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != wantHex {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

// unpack pulls the platform binary out of the downloaded archive.
func (a releaseAsset) unpack(archive []byte) ([]byte, error) {
	if a.zipped {
		r, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
		if err != nil {
			return nil, fmt.Errorf("open zip: %w", err)
		}
		for _, f := range r.File {
			if filepath.Base(f.Name) != a.binary {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer func() { _ = rc.Close() }()
			return io.ReadAll(rc)
		}
		return nil, fmt.Errorf("binary %q not found in archive", a.binary)
	}

	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == a.binary {
			return io.ReadAll(tr)
		}
	}
	return nil, fmt.Errorf("binary %q not found in archive", a.binary)
}

// swapBinary stages the new binary next to the target and renames it
// into place. The rename keeps the replacement atomic on the same
// filesystem, so a crash mid-update leaves the old binary intact. The
// staged copy is re-read and re-hashed before the rename to catch
// partial writes.
func swapBinary(target string, binary []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}
	mode := info.Mode()

	staged, err := os.CreateTemp(filepath.Dir(target), ".quizforge-staged-*")
	if err != nil {
		return fmt.Errorf("stage binary: %w", err)
	}
	stagedPath := staged.Name()
	defer func() { _ = os.Remove(stagedPath) }()

	if _, err := staged.Write(binary); err != nil {
		_ = staged.Close()
		return fmt.Errorf("write staged binary: %w", err)
	}
	if err := staged.Close(); err != nil {
		return fmt.Errorf("close staged binary: %w", err)
	}

	written, err := os.ReadFile(stagedPath)
	if err != nil {
		return fmt.Errorf("re-read staged binary: %w", err)
	}
	wantSum := sha256.Sum256(binary)
	gotSum := sha256.Sum256(written)
	if gotSum != wantSum {
		return fmt.Errorf("%w: staged binary does not match extracted binary", ErrChecksum)
	}

	if err := os.Rename(stagedPath, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	if err := os.Chmod(target, mode); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	return nil
}
