// Package mlh reads hackathon listings from the Major League Hacking season page.
package mlh

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/hackfinder/internal/sources"
	"github.com/agentstation/hackfinder/internal/transport"
	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/logging"
)

func init() {
	sources.Register(sources.KindMLH, New)
}

// Attendance modes as written in the event cards.
const (
	digitalOnly = "digital only"
	hybrid      = "hybrid"
)

// Client implements sources.Source for MLH.
type Client struct {
	cfg       sources.Config
	transport *transport.Client
}

// New creates an MLH source.
func New(cfg sources.Config, opts ...transport.Option) sources.Source {
	return &Client{cfg: cfg, transport: cfg.Transport(opts...)}
}

// ID returns the source id.
func (c *Client) ID() string { return c.cfg.ID }

// Name returns the source name.
func (c *Client) Name() string { return c.cfg.DisplayName() }

// Fetch downloads the season page and parses its event cards.
func (c *Client) Fetch(ctx context.Context) ([]hackathons.Hackathon, error) {
	body, err := c.transport.GetBody(ctx, c.cfg.URL)
	if err != nil {
		return nil, err
	}

	records, err := Parse(body, c.cfg.Platform)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Str("source", c.cfg.ID).
		Int("count", len(records)).
		Msg("Parsed event cards")
	return records, nil
}

// Parse extracts the events of an MLH season page. Cards without a name are
// ignored. Dates that cannot be read are left unset.
func Parse(page []byte, platform string) ([]hackathons.Hackathon, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, errors.WrapParse("html", "mlh events page", err)
	}

	var records []hackathons.Hackathon
	doc.Find(".event").Each(func(_ int, s *goquery.Selection) {
		name := text(s.Find(".event-name").First())
		if name == "" {
			return
		}

		record := hackathons.Hackathon{
			Name:     name,
			URL:      eventURL(s),
			Platform: platform,
		}
		record.StartDate, _ = hackathons.ParseDate(attr(s.Find(`meta[itemprop="startDate"]`), "content"))
		record.EndDate, _ = hackathons.ParseDate(attr(s.Find(`meta[itemprop="endDate"]`), "content"))

		mode := text(s.Find(".event-hybrid-notes").First())
		folded := strings.ToLower(mode)
		switch {
		case strings.Contains(folded, digitalOnly):
			record.Location = hackathons.OnlineLocation
		default:
			record.Location = joinPlace(
				text(s.Find(`[itemprop="city"]`).First()),
				text(s.Find(`[itemprop="state"]`).First()),
			)
			if strings.Contains(folded, hybrid) {
				record.Notes = mode
			}
		}

		records = append(records, record)
	})
	return records, nil
}

// eventURL returns the card's outbound link.
func eventURL(s *goquery.Selection) string {
	if href := attr(s.Find(`a[itemprop="url"]`), "href"); href != "" {
		return href
	}
	return attr(s.Find("a.event-link"), "href")
}

func joinPlace(city, state string) string {
	switch {
	case city == "":
		return state
	case state == "":
		return city
	default:
		return city + ", " + state
	}
}

func text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

func attr(s *goquery.Selection, name string) string {
	v, _ := s.First().Attr(name)
	return strings.TrimSpace(v)
}
