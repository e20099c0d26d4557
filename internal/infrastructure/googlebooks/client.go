package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bookmuse/bookmuse-api/internal/domain/models"
	"golang.org/x/time/rate"
)

// MaxResultsCeiling is the hard cap the volumes endpoint imposes per request.
const MaxResultsCeiling = 40

// Client queries the Google Books volumes endpoint. Remote failures are
// logged and collapsed into an empty result list so a flaky catalog degrades
// a search instead of failing it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

// NewClient creates a catalog client for the given endpoint and API key.
// rps bounds outbound request rate across all pipelines sharing the client.
func NewClient(baseURL, apiKey string, rps int) *Client {
	if rps < 1 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// volumesResponse matches the subset of the volumes list payload we consume.
// Every field is optional on the wire, so each maps to a zero value rather
// than a placeholder when absent.
type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Description   string   `json:"description"`
			Language      string   `json:"language"`
			PageCount     int      `json:"pageCount"`
			Publisher     string   `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
			Categories    []string `json:"categories"`
			AverageRating float64  `json:"averageRating"`
			RatingsCount  int      `json:"ratingsCount"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
			PreviewLink         string `json:"previewLink"`
			IndustryIdentifiers []struct {
				Type       string `json:"type"`
				Identifier string `json:"identifier"`
			} `json:"industryIdentifiers"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Search issues one relevance-ordered volume search for the filter set and
// normalizes the response into canonical books. maxResults is clamped to the
// service ceiling. No retries, no caching.
func (c *Client) Search(ctx context.Context, filter models.SearchFilter, maxResults int) ([]models.Book, error) {
	if maxResults < 1 || maxResults > MaxResultsCeiling {
		maxResults = MaxResultsCeiling
	}

	params := url.Values{}
	params.Set("q", BuildQuery(filter))
	params.Set("key", c.apiKey)
	params.Set("orderBy", "relevance")
	params.Set("maxResults", strconv.Itoa(maxResults))

	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	resp, err := c.get(ctx, requestURL)
	if err != nil {
		log.Printf("[GoogleBooks] Search failed, returning empty results: %v", err)
		return []models.Book{}, nil
	}

	books := make([]models.Book, 0, len(resp.Items))
	for _, item := range resp.Items {
		volume := item.VolumeInfo

		var isbn string
		for _, id := range volume.IndustryIdentifiers {
			if id.Type == "ISBN_13" {
				isbn = id.Identifier
				break
			}
		}

		books = append(books, models.Book{
			Title:         volume.Title,
			Author:        strings.Join(volume.Authors, ", "),
			Description:   volume.Description,
			Language:      volume.Language,
			PageCount:     volume.PageCount,
			Publisher:     volume.Publisher,
			PublishedDate: volume.PublishedDate,
			Categories:    volume.Categories,
			AverageRating: volume.AverageRating,
			RatingsCount:  volume.RatingsCount,
			Thumbnail:     volume.ImageLinks.Thumbnail,
			PreviewLink:   volume.PreviewLink,
			ISBN:          isbn,
		})
	}

	return books, nil
}

func (c *Client) get(ctx context.Context, requestURL string) (*volumesResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		return nil, fmt.Errorf("catalog returned status %d: %s", httpResp.StatusCode, string(body))
	}

	var resp volumesResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode volumes response: %w", err)
	}

	return &resp, nil
}
