// Package devevents reads hackathon listings from dev.events pages, which
// publish their events as schema.org JSON-LD.
package devevents

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/hackfinder/internal/sources"
	"github.com/agentstation/hackfinder/internal/transport"
	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/logging"
)

func init() {
	sources.Register(sources.KindDevEvents, New)
}

const onlineAttendance = "OnlineEventAttendanceMode"

// Event is the subset of a schema.org Event that listings use.
type Event struct {
	Type                string          `json:"@type"`
	Name                string          `json:"name"`
	URL                 string          `json:"url"`
	StartDate           string          `json:"startDate"`
	EndDate             string          `json:"endDate"`
	EventAttendanceMode string          `json:"eventAttendanceMode"`
	Location            json.RawMessage `json:"location"`
	Description         string          `json:"description"`
}

// Place is a schema.org Place or VirtualLocation.
type Place struct {
	Type    string          `json:"@type"`
	Name    string          `json:"name"`
	Address json.RawMessage `json:"address"`
}

// PostalAddress is a schema.org PostalAddress.
type PostalAddress struct {
	Locality string `json:"addressLocality"`
	Region   string `json:"addressRegion"`
	Country  string `json:"addressCountry"`
}

// Client implements sources.Source for dev.events.
type Client struct {
	cfg       sources.Config
	transport *transport.Client
}

// New creates a dev.events source.
func New(cfg sources.Config, opts ...transport.Option) sources.Source {
	return &Client{cfg: cfg, transport: cfg.Transport(opts...)}
}

// ID returns the source id.
func (c *Client) ID() string { return c.cfg.ID }

// Name returns the source name.
func (c *Client) Name() string { return c.cfg.DisplayName() }

// Fetch downloads the listing page and reads its JSON-LD events.
func (c *Client) Fetch(ctx context.Context) ([]hackathons.Hackathon, error) {
	body, err := c.transport.GetBody(ctx, c.cfg.URL)
	if err != nil {
		return nil, err
	}

	records, err := Parse(ctx, body, c.cfg.Platform)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Str("source", c.cfg.ID).
		Int("count", len(records)).
		Msg("Parsed JSON-LD events")
	return records, nil
}

// Parse extracts the events found in the JSON-LD scripts of a page. Scripts
// that do not decode are skipped.
func Parse(ctx context.Context, page []byte, platform string) ([]hackathons.Hackathon, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, errors.WrapParse("html", "dev.events page", err)
	}

	var records []hackathons.Hackathon
	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		events, err := decodeEvents([]byte(s.Text()))
		if err != nil {
			logging.FromContext(ctx).Debug().Err(err).Int("script", i).Msg("Skipping JSON-LD script")
			return
		}
		for _, e := range events {
			if strings.TrimSpace(e.Name) == "" {
				continue
			}
			records = append(records, convert(e, platform))
		}
	})
	return records, nil
}

// decodeEvents accepts a single node, an array of nodes or a @graph
// container, keeping nodes whose type is an Event.
func decodeEvents(data []byte) ([]Event, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var nodes []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &nodes); err != nil {
			return nil, errors.WrapParse("json-ld", "script", err)
		}
	} else {
		var graph struct {
			Graph []json.RawMessage `json:"@graph"`
		}
		if err := json.Unmarshal(data, &graph); err != nil {
			return nil, errors.WrapParse("json-ld", "script", err)
		}
		nodes = graph.Graph
		if nodes == nil {
			nodes = []json.RawMessage{data}
		}
	}

	var events []Event
	for _, node := range nodes {
		var e Event
		if err := json.Unmarshal(node, &e); err != nil {
			continue
		}
		if isEventType(e.Type) {
			events = append(events, e)
		}
	}
	return events, nil
}

// isEventType matches Event and its subtypes such as EducationEvent.
func isEventType(t string) bool {
	return strings.HasSuffix(t, "Event") || strings.EqualFold(t, "Hackathon")
}

func convert(e Event, platform string) hackathons.Hackathon {
	record := hackathons.Hackathon{
		Name:     e.Name,
		URL:      e.URL,
		Platform: platform,
	}
	// Dates are read as written so the event's local calendar date is kept.
	record.StartDate, _ = hackathons.ParseDate(datePart(e.StartDate))
	record.EndDate, _ = hackathons.ParseDate(datePart(e.EndDate))

	if strings.HasSuffix(e.EventAttendanceMode, onlineAttendance) {
		record.Location = hackathons.OnlineLocation
	} else {
		record.Location = placeName(e.Location)
	}
	return record
}

func datePart(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > len(hackathons.DateLayout) {
		return s[:len(hackathons.DateLayout)]
	}
	return s
}

// placeName renders a location node as "Locality, Region". The node may be
// a string, a Place, or a list whose first element is used.
func placeName(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		_ = json.Unmarshal(raw, &s)
		return s
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
			return ""
		}
		return placeName(list[0])
	}

	var place Place
	if err := json.Unmarshal(raw, &place); err != nil {
		return ""
	}
	if place.Type == "VirtualLocation" {
		return hackathons.OnlineLocation
	}

	address := bytes.TrimSpace(place.Address)
	if len(address) > 0 && address[0] == '"' {
		var s string
		_ = json.Unmarshal(address, &s)
		return s
	}
	var postal PostalAddress
	if len(address) > 0 && json.Unmarshal(address, &postal) == nil {
		parts := make([]string, 0, 2)
		for _, p := range []string{postal.Locality, postal.Region} {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	return place.Name
}
