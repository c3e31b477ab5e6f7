// Package devpost reads hackathon listings from the Devpost hackathon API.
package devpost

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/hackfinder/internal/sources"
	"github.com/agentstation/hackfinder/internal/transport"
	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/logging"
)

func init() {
	sources.Register(sources.KindDevpost, New)
}

// maxPages bounds how many result pages one fetch reads.
const maxPages = 10

// Response is one page of the Devpost hackathon API.
type Response struct {
	Hackathons []Hackathon `json:"hackathons"`
	Meta       Meta        `json:"meta"`
}

// Meta carries the paging information of a response.
type Meta struct {
	TotalCount int `json:"total_count"`
	PerPage    int `json:"per_page"`
}

// Hackathon is a Devpost listing.
type Hackathon struct {
	ID                    int               `json:"id"`
	Title                 string            `json:"title"`
	URL                   string            `json:"url"`
	DisplayedLocation     DisplayedLocation `json:"displayed_location"`
	SubmissionPeriodDates string            `json:"submission_period_dates"`
	PrizeAmount           string            `json:"prize_amount"`
	Themes                []Theme           `json:"themes"`
	OpenState             string            `json:"open_state"`
}

// DisplayedLocation is where Devpost says the event happens.
type DisplayedLocation struct {
	Icon     string `json:"icon"`
	Location string `json:"location"`
}

// Theme is a Devpost theme tag.
type Theme struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Client implements sources.Source for Devpost.
type Client struct {
	cfg       sources.Config
	transport *transport.Client
}

// New creates a Devpost source.
func New(cfg sources.Config, opts ...transport.Option) sources.Source {
	return &Client{cfg: cfg, transport: cfg.Transport(opts...)}
}

// ID returns the source id.
func (c *Client) ID() string { return c.cfg.ID }

// Name returns the source name.
func (c *Client) Name() string { return c.cfg.DisplayName() }

// Fetch reads result pages until the listing is exhausted.
func (c *Client) Fetch(ctx context.Context) ([]hackathons.Hackathon, error) {
	logger := logging.FromContext(ctx)

	var records []hackathons.Hackathon
	seen := 0
	for page := 1; page <= maxPages; page++ {
		var resp Response
		if err := c.transport.GetJSON(ctx, pageURL(c.cfg.URL, page), &resp); err != nil {
			return nil, err
		}

		for _, h := range resp.Hackathons {
			records = append(records, c.convert(ctx, h))
		}
		seen += len(resp.Hackathons)

		logger.Debug().
			Str("source", c.cfg.ID).
			Int("page", page).
			Int("count", len(resp.Hackathons)).
			Msg("Fetched listing page")

		if len(resp.Hackathons) == 0 || seen >= resp.Meta.TotalCount {
			break
		}
	}
	return records, nil
}

// convert maps a Devpost listing onto a hackathon record. Listings whose
// dates cannot be read are kept without dates.
func (c *Client) convert(ctx context.Context, h Hackathon) hackathons.Hackathon {
	record := hackathons.Hackathon{
		Name:      h.Title,
		URL:       h.URL,
		Location:  h.DisplayedLocation.Location,
		Platform:  c.cfg.Platform,
		PrizeInfo: prizeText(h.PrizeAmount),
	}
	for _, theme := range h.Themes {
		record.Tags = append(record.Tags, theme.Name)
	}

	start, end, err := ParseDateRange(h.SubmissionPeriodDates)
	if err != nil {
		logging.FromContext(ctx).Debug().
			Err(err).
			Str("source", c.cfg.ID).
			Str("hackathon", h.Title).
			Msg("Listing dates not understood")
		return record
	}
	record.StartDate = start
	record.EndDate = end
	return record
}

// pageURL sets the page query parameter on the listing URL.
func pageURL(raw string, page int) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// prizeText strips the markup Devpost wraps around prize amounts.
// Zero prizes are dropped.
func prizeText(amount string) string {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(amount))
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if strings.Trim(text, "$0,. ") == "" {
		return ""
	}
	return text
}
