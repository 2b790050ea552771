package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"parlay-api/internal/models"
)

const (
	DefaultBaseURL = "https://api.the-odds-api.com/v4"
	marketH2H      = "h2h"
)

// sportKeys maps the public sport codes onto the provider's sport keys
var sportKeys = map[string]string{
	models.SportNFL: "americanfootball_nfl",
	models.SportNBA: "basketball_nba",
	models.SportMLB: "baseball_mlb",
	models.SportNHL: "icehockey_nhl",
	models.SportCFB: "americanfootball_ncaaf",
}

// SportKey returns the provider sport key for a public sport code
func SportKey(sport string) (string, bool) {
	key, ok := sportKeys[strings.ToLower(sport)]
	return key, ok
}

type Options struct {
	APIKey     string
	BaseURL    string
	Region     string
	OddsFormat models.OddsFormat
	DateFormat string
	Timeout    time.Duration
}

type Client struct {
	opts       Options
	httpClient *http.Client
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Region == "" {
		opts.Region = "us"
	}
	if opts.OddsFormat == "" {
		opts.OddsFormat = models.OddsFormatAmerican
	}
	if opts.DateFormat == "" {
		opts.DateFormat = "iso"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	return &Client{
		opts: opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

type Outcome struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
}

type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime string      `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// OddsFormat returns the price format the client requests
func (c *Client) OddsFormat() models.OddsFormat {
	return c.opts.OddsFormat
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool {
	return c.opts.APIKey != ""
}

// GetMoneylineOdds fetches head-to-head odds for every upcoming event of a sport
func (c *Client) GetMoneylineOdds(ctx context.Context, sport string) ([]Event, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: ODDS_API_KEY is not set", models.ErrConfiguration)
	}

	sportKey, ok := SportKey(sport)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported sport %q", models.ErrValidation, sport)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"/sports/"+url.PathEscape(sportKey)+"/odds", nil)
	if err != nil {
		return nil, err
	}

	query := req.URL.Query()
	query.Add("apiKey", c.opts.APIKey)
	query.Add("regions", c.opts.Region)
	query.Add("markets", marketH2H)
	query.Add("oddsFormat", string(c.opts.OddsFormat))
	query.Add("dateFormat", c.opts.DateFormat)
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrUpstream, redact(err.Error(), c.opts.APIKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", models.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: provider returned %d: %s", models.ErrUpstream, resp.StatusCode, snippet(body))
	}

	var events []Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("%w: decoding odds: %v", models.ErrUpstream, err)
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("%w: provider returned no %s events", models.ErrNotFound, strings.ToUpper(sport))
	}

	return events, nil
}

// redact keeps the API key out of errors that echo the request URL
func redact(msg, key string) string {
	if key == "" {
		return msg
	}
	return strings.ReplaceAll(msg, key, "REDACTED")
}

func snippet(body []byte) string {
	const maxLen = 200
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
