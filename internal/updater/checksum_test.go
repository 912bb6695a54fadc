package updater

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestParseChecksums(t *testing.T) {
	text := "abc123  Tool.app.tar.gz\n" +
		"def456 *Tool.dmg\n" +
		"\n" +
		"malformed line with words\n"

	sums := ParseChecksums(text)
	if len(sums) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(sums), sums)
	}
	if sums["Tool.app.tar.gz"] != "abc123" {
		t.Errorf("tar.gz = %q", sums["Tool.app.tar.gz"])
	}
	if sums["Tool.dmg"] != "def456" {
		t.Errorf("dmg = %q", sums["Tool.dmg"])
	}
}

func TestVerifyChecksum(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "Tool.app.tar.gz")
	content := []byte("bundle bytes")
	if err := os.WriteFile(archive, content, 0644); err != nil {
		t.Fatal(err)
	}
	sum := sha256.Sum256(content)
	good := hex.EncodeToString(sum[:])

	tests := []struct {
		name    string
		listing string
		status  int
		wantErr error
	}{
		{name: "match", listing: good + "  Tool.app.tar.gz\n", status: http.StatusOK},
		{name: "mismatch", listing: "deadbeef  Tool.app.tar.gz\n", status: http.StatusOK, wantErr: ErrChecksumMismatch},
		{name: "not listed", listing: good + "  Other.zip\n", status: http.StatusOK, wantErr: ErrChecksumMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.listing)
			}))
			defer server.Close()

			release := &Release{TagName: "v1.0.0", Assets: []Asset{
				{Name: ChecksumsAsset, DownloadURL: server.URL + "/checksums.txt"},
			}}
			c := New(WithHTTPClient(server.Client()))
			err := c.VerifyChecksum(context.Background(), release, "Tool.app.tar.gz", archive)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyChecksum_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	release := &Release{Assets: []Asset{{Name: ChecksumsAsset, DownloadURL: server.URL}}}
	c := New(WithHTTPClient(server.Client()))
	err := c.VerifyChecksum(context.Background(), release, "Tool.app.tar.gz", filepath.Join(t.TempDir(), "missing"))

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("err = %v, want HTTPError 500", err)
	}
}

func TestVerifyChecksum_NoListingAsset(t *testing.T) {
	c := New()
	err := c.VerifyChecksum(context.Background(), &Release{}, "Tool.app.tar.gz", "unused")
	if err == nil {
		t.Fatal("expected error when release has no checksums asset")
	}
}
