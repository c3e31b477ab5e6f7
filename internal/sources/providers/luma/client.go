// Package luma reads hackathon listings from a Lu.ma calendar through the
// Lu.ma public API. The API requires a Luma Plus key.
package luma

import (
	"context"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata" // event time zones must resolve on hosts without a zoneinfo database

	"github.com/agentstation/hackfinder/internal/sources"
	"github.com/agentstation/hackfinder/internal/transport"
	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/logging"
)

func init() {
	sources.Register(sources.KindLuma, New)
}

const (
	// eventBaseURL prefixes event slugs that come back without a host.
	eventBaseURL = "https://lu.ma/"

	// maxPages bounds how many cursor pages one fetch follows.
	maxPages = 20
)

// Response is one page of the list-events endpoint.
type Response struct {
	Entries    []Entry `json:"entries"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor"`
}

// Entry wraps a calendar event.
type Entry struct {
	APIID string `json:"api_id"`
	Event Event  `json:"event"`
}

// Event is a Lu.ma event.
type Event struct {
	APIID          string      `json:"api_id"`
	Name           string      `json:"name"`
	URL            string      `json:"url"`
	StartAt        string      `json:"start_at"`
	EndAt          string      `json:"end_at"`
	Timezone       string      `json:"timezone"`
	GeoAddressJSON *GeoAddress `json:"geo_address_json"`
	MeetingURL     string      `json:"meeting_url"`
}

// GeoAddress is the venue of an in-person event.
type GeoAddress struct {
	City        string `json:"city"`
	Region      string `json:"region"`
	Country     string `json:"country"`
	FullAddress string `json:"full_address"`
}

// Client implements sources.Source for Lu.ma.
type Client struct {
	cfg       sources.Config
	transport *transport.Client
}

// New creates a Lu.ma source.
func New(cfg sources.Config, opts ...transport.Option) sources.Source {
	return &Client{cfg: cfg, transport: cfg.Transport(opts...)}
}

// ID returns the source id.
func (c *Client) ID() string { return c.cfg.ID }

// Name returns the source name.
func (c *Client) Name() string { return c.cfg.DisplayName() }

// Fetch follows the pagination cursor until the calendar is exhausted.
func (c *Client) Fetch(ctx context.Context) ([]hackathons.Hackathon, error) {
	var records []hackathons.Hackathon
	cursor := ""
	for page := 0; page < maxPages; page++ {
		var resp Response
		if err := c.transport.GetJSON(ctx, cursorURL(c.cfg.URL, cursor), &resp); err != nil {
			return nil, err
		}

		for _, entry := range resp.Entries {
			records = append(records, c.convert(entry.Event))
		}

		if !resp.HasMore || resp.NextCursor == "" || resp.NextCursor == cursor {
			break
		}
		cursor = resp.NextCursor
	}

	logging.FromContext(ctx).Debug().
		Str("source", c.cfg.ID).
		Int("count", len(records)).
		Msg("Fetched calendar events")
	return records, nil
}

func (c *Client) convert(e Event) hackathons.Hackathon {
	return hackathons.Hackathon{
		Name:      e.Name,
		URL:       eventURL(e.URL),
		StartDate: localDate(e.StartAt, e.Timezone),
		EndDate:   localDate(e.EndAt, e.Timezone),
		Location:  location(e),
		Platform:  c.cfg.Platform,
	}
}

// localDate returns the calendar date of an RFC 3339 timestamp in the
// event's own time zone. Unknown zones fall back to the timestamp's offset.
func localDate(ts, zone string) hackathons.Date {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(ts))
	if err != nil {
		return hackathons.Date{}
	}
	if zone != "" {
		if loc, err := time.LoadLocation(zone); err == nil {
			t = t.In(loc)
		}
	}
	return hackathons.DateOf(t)
}

func location(e Event) string {
	if geo := e.GeoAddressJSON; geo != nil {
		switch {
		case geo.City != "" && geo.Region != "":
			return geo.City + ", " + geo.Region
		case geo.City != "":
			return geo.City
		case geo.FullAddress != "":
			return geo.FullAddress
		}
	}
	if e.MeetingURL != "" {
		return hackathons.OnlineLocation
	}
	return ""
}

func eventURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	return eventBaseURL + strings.TrimPrefix(raw, "/")
}

// cursorURL sets the pagination cursor on the endpoint URL.
func cursorURL(raw, cursor string) string {
	if cursor == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("pagination_cursor", cursor)
	u.RawQuery = q.Encode()
	return u.String()
}
