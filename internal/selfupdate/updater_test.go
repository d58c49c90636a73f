package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetFor(t *testing.T) {
	tests := []struct {
		name       string
		goos       string
		goarch     string
		wantName   string
		wantBinary string
		wantErr    bool
	}{
		{"darwin is one universal archive", "darwin", "amd64", "quizforge_Darwin_all.tar.gz", "quizforge", false},
		{"darwin arm64 shares it", "darwin", "arm64", "quizforge_Darwin_all.tar.gz", "quizforge", false},
		{"linux amd64", "linux", "amd64", "quizforge_Linux_x86_64.tar.gz", "quizforge", false},
		{"linux arm64", "linux", "arm64", "quizforge_Linux_arm64.tar.gz", "quizforge", false},
		{"linux 386", "linux", "386", "quizforge_Linux_i386.tar.gz", "quizforge", false},
		{"windows ships a zip with .exe", "windows", "amd64", "quizforge_Windows_x86_64.zip", "quizforge.exe", false},
		{"windows arm64", "windows", "arm64", "quizforge_Windows_arm64.zip", "quizforge.exe", false},
		{"freebsd unsupported", "freebsd", "amd64", "", "", true},
		{"mips unsupported", "linux", "mips", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := assetFor(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, asset.name)
			assert.Equal(t, tt.wantBinary, asset.binary)
			assert.Equal(t, tt.goos == "windows", asset.zipped)
		})
	}
}

func TestChecksumFor(t *testing.T) {
	manifest := []byte(
		"abc123  quizforge_Darwin_all.tar.gz\n" +
			"this line is not a checksum entry\n" +
			"def456  quizforge_Linux_x86_64.tar.gz\n")

	t.Run("finds the named asset", func(t *testing.T) {
		got, err := checksumFor(manifest, "quizforge_Linux_x86_64.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, "def456", got)
	})

	t.Run("skips non-entry lines", func(t *testing.T) {
		got, err := checksumFor(manifest, "quizforge_Darwin_all.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, "abc123", got)
	})

	t.Run("missing asset", func(t *testing.T) {
		_, err := checksumFor(manifest, "quizforge_Windows_x86_64.zip")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no checksum found")
	})
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("release archive bytes")
	sum := sha256.Sum256(data)

	assert.NoError(t, verifyChecksum(data, hex.EncodeToString(sum[:])))

	err := verifyChecksum(data, "0000000000000000000000000000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestUnpack(t *testing.T) {
	binary := []byte("ELF pretend quizforge build")

	t.Run("tar.gz", func(t *testing.T) {
		asset := releaseAsset{name: "quizforge_Linux_x86_64.tar.gz", binary: "quizforge"}
		got, err := asset.unpack(tarGzWith(t, "quizforge", binary))
		require.NoError(t, err)
		assert.Equal(t, binary, got)
	})

	t.Run("zip", func(t *testing.T) {
		asset := releaseAsset{name: "quizforge_Windows_x86_64.zip", binary: "quizforge.exe", zipped: true}
		got, err := asset.unpack(zipWith(t, "quizforge.exe", binary))
		require.NoError(t, err)
		assert.Equal(t, binary, got)
	})

	t.Run("binary missing from archive", func(t *testing.T) {
		asset := releaseAsset{name: "quizforge_Linux_x86_64.tar.gz", binary: "quizforge"}
		_, err := asset.unpack(tarGzWith(t, "README.md", []byte("docs only")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestSwapBinary(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "quizforge")
	require.NoError(t, os.WriteFile(target, []byte("v1 build"), 0755))

	next := []byte("v2 build")
	require.NoError(t, swapBinary(target, next))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, next, got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	leftovers, err := filepath.Glob(filepath.Join(dir, ".quizforge-staged-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "staged file should be gone after the swap")
}

// releaseFixture serves a complete fake release: the latest-release API
// response plus the host platform's archive and its checksums.txt.
type releaseFixture struct {
	tag           string
	archive       []byte
	badChecksum   bool
	dropChecksums bool
	dropArchive   bool
}

func (f releaseFixture) serve(t *testing.T) *httptest.Server {
	t.Helper()

	asset, err := assetFor(runtime.GOOS, runtime.GOARCH)
	require.NoError(t, err)

	sum := sha256.Sum256(f.archive)
	line := hex.EncodeToString(sum[:])
	if f.badChecksum {
		line = "0000000000000000000000000000000000000000000000000000000000000000"
	}
	checksums := fmt.Sprintf("%s  %s\n", line, asset.name)

	downloadPrefix := fmt.Sprintf("/dkrish/quizforge/releases/download/%s/", f.tag)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/dkrish/quizforge/releases/latest":
			fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://example.com/%s"}`, f.tag, f.tag)
		case downloadPrefix + asset.name:
			if f.dropArchive {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write(f.archive)
		case downloadPrefix + "checksums.txt":
			if f.dropChecksums {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(checksums))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func hostArchive(t *testing.T, binary []byte) []byte {
	t.Helper()
	asset, err := assetFor(runtime.GOOS, runtime.GOARCH)
	require.NoError(t, err)
	if asset.zipped {
		return zipWith(t, asset.binary, binary)
	}
	return tarGzWith(t, asset.binary, binary)
}

func TestUpdate_ReplacesTheRunningBinary(t *testing.T) {
	binary := []byte("quizforge v2 build")
	archive := hostArchive(t, binary)

	dir := t.TempDir()
	execPath := filepath.Join(dir, "quizforge")
	require.NoError(t, os.WriteFile(execPath, []byte("quizforge v1 build"), 0755))

	server := releaseFixture{tag: "v2.0.0", archive: archive}.serve(t)
	checker := NewChecker(
		WithBaseURL(server.URL),
		WithDownloadBaseURL(server.URL),
		withExecPath(func() (string, error) { return execPath, nil }),
	)

	var stages []string
	err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
		stages = append(stages, p.Stage)
	})
	require.NoError(t, err)

	got, err := os.ReadFile(execPath)
	require.NoError(t, err)
	assert.Equal(t, binary, got)
	assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)
}

func TestUpdate_Refusals(t *testing.T) {
	archive := hostArchive(t, []byte("quizforge v2 build"))

	t.Run("dev build", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, discard)
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		server := releaseFixture{tag: "v1.0.0", archive: archive}.serve(t)
		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))

		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, discard)
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		server := releaseFixture{tag: "v2.0.0", archive: archive, badChecksum: true}.serve(t)
		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))

		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, discard)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("archive missing from release", func(t *testing.T) {
		server := releaseFixture{tag: "v2.0.0", archive: archive, dropArchive: true}.serve(t)
		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))

		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})

	t.Run("checksums missing from release", func(t *testing.T) {
		server := releaseFixture{tag: "v2.0.0", archive: archive, dropChecksums: true}.serve(t)
		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))

		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download checksums")
	})
}

func discard(UpdateProgress) {}

func tarGzWith(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Size: int64(len(content)), Mode: 0755}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func zipWith(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
