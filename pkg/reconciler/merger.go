package reconciler

import (
	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/hackathons"
)

// urlNameKey matches fetched records whose dates could not be read.
type urlNameKey struct {
	url  string
	name string
}

func urlNameOf(h hackathons.Hackathon) urlNameKey {
	return urlNameKey{url: h.URL, name: hackathons.FoldName(h.Name)}
}

// candidate is a fetched record after normalisation.
type candidate struct {
	record   hackathons.Hackathon
	endGiven bool
}

// Merge folds fetched records into the prior state and returns the new state
// sorted by start date and name, plus one diagnostic per skipped record.
//
// A fetched record whose identity key is known refreshes the mutable fields of
// the stored record (url, prize_info, notes, tags, end_date, deadline); empty
// fetched values never erase stored ones. A record without a start date is
// matched by URL and name instead and never changes the stored dates. Within
// one batch the last occurrence of a key wins. Prior records sharing a key are
// folded into one; no other prior record is dropped.
func Merge(prior, fetched []hackathons.Hackathon) ([]hackathons.Hackathon, []error) {
	state := make([]hackathons.Hackathon, 0, len(prior)+len(fetched))
	byKey := make(map[hackathons.Key]int, len(prior))
	byURLName := make(map[urlNameKey]int, len(prior))

	index := func(i int) {
		h := state[i]
		if h.HasDates() {
			byKey[h.Key()] = i
		}
		k := urlNameOf(h)
		if j, ok := byURLName[k]; !ok || state[j].StartDate.Before(h.StartDate) {
			byURLName[k] = i
		}
	}

	for _, h := range collapse(prior) {
		state = append(state, h)
		index(len(state) - 1)
	}

	var diagnostics []error
	dated, dateless := dedupe(fetched, &diagnostics)

	for _, c := range dated {
		f := c.record
		if i, ok := byKey[f.Key()]; ok {
			if !c.endGiven {
				f.EndDate = hackathons.Date{}
			}
			state[i] = refresh(state[i], f)
			continue
		}
		state = append(state, f)
		index(len(state) - 1)
	}

	// Dateless records run against the refreshed state so that they match
	// the newest record sharing their url on every pass.
	clear(byURLName)
	for i := range state {
		index(i)
	}
	for _, c := range dateless {
		f := c.record
		i, ok := byURLName[urlNameOf(f)]
		if !ok {
			diagnostics = append(diagnostics, errors.NewValidationError(f.Name, "start_date", nil,
				"start date is missing or malformed and no stored record matches its url"))
			continue
		}
		f.EndDate = hackathons.Date{}
		f.Deadline = hackathons.Date{}
		state[i] = refresh(state[i], f)
	}

	hackathons.Sort(state)
	return state, diagnostics
}

// collapse normalises the prior records and folds records sharing an identity
// key into the first of them in sort order, refreshing its mutable fields
// from the others in that order. The result holds every key once, so repeated
// merges refresh the same record.
func collapse(prior []hackathons.Hackathon) []hackathons.Hackathon {
	sorted := make([]hackathons.Hackathon, 0, len(prior))
	for _, h := range prior {
		sorted = append(sorted, h.Normalize().Clone())
	}
	hackathons.Sort(sorted)

	out := make([]hackathons.Hackathon, 0, len(sorted))
	byKey := make(map[hackathons.Key]int, len(sorted))
	for _, h := range sorted {
		if h.HasDates() {
			if i, ok := byKey[h.Key()]; ok {
				out[i] = refresh(out[i], h)
				continue
			}
			byKey[h.Key()] = len(out)
		}
		out = append(out, h)
	}
	return out
}

// dedupe normalises and validates a fetched batch, collapsing records with the
// same identity so that the last occurrence wins. Records with a start date
// and records without one are returned separately, each in batch order.
func dedupe(fetched []hackathons.Hackathon, diagnostics *[]error) (dated, dateless []candidate) {
	byKey := make(map[hackathons.Key]int, len(fetched))
	byURLName := make(map[urlNameKey]int)

	for _, raw := range fetched {
		c := candidate{record: raw.Normalize().Clone(), endGiven: !raw.EndDate.IsZero()}
		if err := validateFetched(c.record); err != nil {
			*diagnostics = append(*diagnostics, err)
			continue
		}

		if c.record.HasDates() {
			if i, ok := byKey[c.record.Key()]; ok {
				dated[i] = c
				continue
			}
			byKey[c.record.Key()] = len(dated)
			dated = append(dated, c)
			continue
		}

		k := urlNameOf(c.record)
		if i, ok := byURLName[k]; ok {
			dateless[i] = c
			continue
		}
		byURLName[k] = len(dateless)
		dateless = append(dateless, c)
	}
	return dated, dateless
}

// validateFetched applies the record invariants except the date presence
// checks, which Merge resolves against stored records.
func validateFetched(h hackathons.Hackathon) error {
	err := h.Validate()
	if err == nil {
		return nil
	}
	if !h.HasDates() && h.Name != "" && h.URL != "" {
		return nil
	}
	return err
}

// refresh overwrites the mutable fields of stored with the non-empty values of
// fetched. Name, start date, location and platform are kept.
func refresh(stored, fetched hackathons.Hackathon) hackathons.Hackathon {
	out := stored.Clone()
	if fetched.URL != "" {
		out.URL = fetched.URL
	}
	if fetched.PrizeInfo != "" {
		out.PrizeInfo = fetched.PrizeInfo
	}
	if fetched.Notes != "" {
		out.Notes = fetched.Notes
	}
	if len(fetched.Tags) > 0 {
		out.Tags = hackathons.NormalizeTags(fetched.Tags)
	}
	if !fetched.EndDate.IsZero() && !fetched.EndDate.Before(out.StartDate) {
		out.EndDate = fetched.EndDate
	}
	if !fetched.Deadline.IsZero() {
		out.Deadline = fetched.Deadline
	}
	return out
}
