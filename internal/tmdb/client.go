package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/cinematica/cinematica-api/internal/config"
)

// Client talks to the TMDb v3 API. All calls go through a retrying HTTP
// client with bounded backoff; a down upstream costs a few seconds, not a
// hung request.
type Client struct {
	apiKey   string
	baseURL  string
	imageURL string
	http     *http.Client
}

type SearchMovie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
}

type searchResponse struct {
	Results []SearchMovie `json:"results"`
}

type CreditPerson struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Job       string `json:"job"`
}

type Credits struct {
	Cast []CreditPerson `json:"cast"`
	Crew []CreditPerson `json:"crew"`
}

type genre struct {
	Name string `json:"name"`
}

type company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MovieDetails struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	ReleaseDate         string    `json:"release_date"`
	PosterPath          string    `json:"poster_path"`
	BackdropPath        string    `json:"backdrop_path"`
	OriginalLanguage    string    `json:"original_language"`
	Runtime             int       `json:"runtime"`
	Overview            string    `json:"overview"`
	Genres              []genre   `json:"genres"`
	ProductionCompanies []company `json:"production_companies"`
	Credits             Credits   `json:"credits"`
}

func (m *MovieDetails) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

func (m *MovieDetails) Studios() map[int64]string {
	studios := make(map[int64]string, len(m.ProductionCompanies))
	for _, c := range m.ProductionCompanies {
		studios[c.ID] = c.Name
	}
	return studios
}

// Director returns the first crew member credited with the Director job.
func (m *MovieDetails) Director() string {
	for _, c := range m.Credits.Crew {
		if c.Job == "Director" {
			return c.Name
		}
	}
	return ""
}

func NewClient(cfg *config.TMDBConfig) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = nil

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.themoviedb.org/3"
	}
	imageURL := cfg.ImageURL
	if imageURL == "" {
		imageURL = "https://image.tmdb.org/t/p/w500"
	}

	return &Client{
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		imageURL: imageURL,
		http:     retryClient.StandardClient(),
	}
}

func (c *Client) SearchMovies(ctx context.Context, term string) ([]SearchMovie, error) {
	endpoint := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s", c.baseURL, c.apiKey, url.QueryEscape(term))

	var resp searchResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) GetMovie(ctx context.Context, id int64) (*MovieDetails, error) {
	endpoint := fmt.Sprintf("%s/movie/%d?api_key=%s&append_to_response=credits", c.baseURL, id, c.apiKey)

	var details MovieDetails
	if err := c.getJSON(ctx, endpoint, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// ImageURL turns a TMDb image path into a fetchable URL. Empty paths stay
// empty.
func (c *Client) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageURL + path
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build tmdb request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb request failed: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode tmdb response: %w", err)
	}
	return nil
}
