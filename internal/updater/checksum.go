package updater

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// VerifyChecksum downloads the release's checksums.txt and checks the SHA-256
// of archivePath against the line for assetName.
func (c *Client) VerifyChecksum(ctx context.Context, release *Release, assetName, archivePath string) error {
	checksumAsset, ok := release.FindAsset(ChecksumsAsset)
	if !ok {
		return fmt.Errorf("%s not found in release assets", ChecksumsAsset)
	}

	req, err := c.newRequest(ctx, checksumAsset.DownloadURL)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: "downloading checksums", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{URL: checksumAsset.DownloadURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: "reading checksums", Err: err}
	}

	expected, ok := ParseChecksums(string(body))[assetName]
	if !ok {
		return fmt.Errorf("%w: no checksum listed for %s", ErrChecksumMismatch, assetName)
	}

	actual, err := FileSHA256(archivePath)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, expected, actual)
	}
	return nil
}

// ParseChecksums parses "sha256  filename" lines into a name → hash map.
// A leading "*" on the filename (binary mode marker) is ignored.
func ParseChecksums(text string) map[string]string {
	sums := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}
		sums[strings.TrimPrefix(parts[1], "*")] = parts[0]
	}
	return sums
}

// FileSHA256 returns the hex SHA-256 of the file at path.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &IOError{Path: path, Err: err}
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", &IOError{Path: path, Err: err}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
