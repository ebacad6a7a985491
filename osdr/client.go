package osdr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/astraldata/biograph/errors"
	"github.com/astraldata/biograph/internal/httpclient"
)

// Client fetches study and file listings from the public OSDR API. Requests
// are rate limited to stay polite toward the NASA servers.
type Client struct {
	baseURL string
	http    *httpclient.SaferClient
	limiter *rate.Limiter
	logger  *zap.SugaredLogger
}

// NewClient creates an OSDR client. requestsPerMinute <= 0 disables rate
// limiting (tests only; production configs should keep the default).
func NewClient(baseURL string, requestsPerMinute int, timeout time.Duration, logger *zap.SugaredLogger) *Client {
	var limiter *rate.Limiter
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1)
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpclient.NewSaferClient(timeout),
		limiter: limiter,
		logger:  logger.Named("osdr.client"),
	}
}

// WithHTTPClient swaps the underlying HTTP client. Tests use this to point
// at an httptest server.
func (c *Client) WithHTTPClient(client *httpclient.SaferClient) *Client {
	c.http = client
	return c
}

// StudyListing is one study entry from the /studies endpoint.
type StudyListing struct {
	StudyID string `json:"study_id"`
	Title   string `json:"title"`
}

type studiesPage struct {
	Results    []StudyListing `json:"results"`
	TotalPages int            `json:"total_pages"`
}

// FetchStudies pages through the complete study listing.
func (c *Client) FetchStudies(ctx context.Context) ([]StudyListing, error) {
	var studies []StudyListing
	page := 1
	const size = 50

	for {
		var body studiesPage
		url := fmt.Sprintf("%s/studies?page=%d&size=%d", c.baseURL, page, size)
		if err := c.getJSON(ctx, url, &body); err != nil {
			return nil, errors.Wrapf(err, "failed to fetch studies page %d", page)
		}

		studies = append(studies, body.Results...)
		if page >= body.TotalPages {
			break
		}
		page++
	}

	c.logger.Infow("Fetched study listing", "studies", len(studies))
	return studies, nil
}

// FetchStudyFiles fetches the file listing for one study.
func (c *Client) FetchStudyFiles(ctx context.Context, studyID string) ([]FileRecord, error) {
	var body struct {
		Results []FileRecord `json:"results"`
	}
	url := fmt.Sprintf("%s/files/%s?page=1&size=100&all_files=true", c.baseURL, studyID)
	if err := c.getJSON(ctx, url, &body); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch files for study %s", studyID)
	}

	// The upstream listing omits study_id on each file entry
	for i := range body.Results {
		if body.Results[i].StudyID == "" {
			body.Results[i].StudyID = studyID
		}
	}
	return body.Results, nil
}

// getJSON performs one rate-limited GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "rate limit wait cancelled")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}
