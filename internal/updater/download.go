package updater

import (
	"context"
	"io"
	"os"
)

// ProgressFunc receives download progress. total is the response length and
// may be -1 when the server did not announce one.
type ProgressFunc func(done, total int64)

// Download streams url to dest, overwriting it. A partial file may remain on
// failure; the caller is responsible for removing it.
func (c *Client) Download(ctx context.Context, url, dest string, progress ProgressFunc) error {
	req, err := c.newRequest(ctx, url)
	if err != nil {
		return err
	}

	c.logger.Debug("downloading", "url", url, "path", dest)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: "downloading " + url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{URL: url, StatusCode: resp.StatusCode}
	}

	f, err := os.Create(dest)
	if err != nil {
		return &IOError{Path: dest, Err: err}
	}
	defer f.Close()

	total := resp.ContentLength
	var downloaded int64
	lastPercent := -1

	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				return &IOError{Path: dest, Err: writeErr}
			}
			downloaded += int64(n)
			if progress != nil {
				if total > 0 {
					percent := int(downloaded * 100 / total)
					if percent != lastPercent {
						progress(downloaded, total)
						lastPercent = percent
					}
				} else {
					progress(downloaded, -1)
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return &NetworkError{Op: "reading download stream", Err: readErr}
		}
	}

	if err := f.Close(); err != nil {
		return &IOError{Path: dest, Err: err}
	}
	return nil
}
