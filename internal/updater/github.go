package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// LatestRelease fetches the latest release of repo ("owner/name").
func (c *Client) LatestRelease(ctx context.Context, repo string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, repo)
	return c.fetchRelease(ctx, url)
}

func (c *Client) fetchRelease(ctx context.Context, url string) (*Release, error) {
	req, err := c.newRequest(ctx, url)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	c.logger.Debug("fetching release", "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "fetching release", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNoReleases
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, &RegistryError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "reading response body", Err: err}
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, &ParseError{Err: err}
	}
	if release.TagName == "" {
		return nil, &ParseError{Err: fmt.Errorf("missing tag_name")}
	}

	c.logger.Debug("resolved release", "tag", release.TagName, "assets", len(release.Assets))
	return &release, nil
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{Op: "creating request", Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	// Optional token for higher rate limits.
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
	return req, nil
}
