package offering

import "strings"

// Offering is one course offering parsed from a card-like element on the
// activities page. Heading fields are positional segments of the pipe-delimited
// heading; an empty string means the heading had fewer segments. Price,
// Location and Dates are best-effort enrichment from the surrounding card.
type Offering struct {
	Heading     string
	Activity    string
	Code        string
	Description string
	Schedule    string
	Price       string
	Location    string
	Dates       string
}

// Key is the identity of an offering. Two offerings with the same
// (activity, code, description) tuple are the same logical offering and must
// be deduplicated keeping the first occurrence in document order.
func (o Offering) Key() string {
	return o.Activity + "\x1f" + o.Code + "\x1f" + o.Description
}

// ParseHeading splits a cleaned heading on the pipe delimiter and assigns the
// segments positionally. Headings with fewer than two segments yield an
// offering with only the heading set.
func ParseHeading(heading string) Offering {
	o := Offering{Heading: heading}
	parts := strings.Split(heading, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 {
		return o
	}
	o.Activity = parts[0]
	o.Code = parts[1]
	if len(parts) >= 3 {
		o.Description = parts[2]
	}
	if len(parts) >= 4 {
		o.Schedule = parts[3]
	}
	return o
}

// Dedup keeps the first occurrence of each offering key, preserving document
// order of first occurrence.
func Dedup(offerings []Offering) []Offering {
	seen := make(map[string]struct{}, len(offerings))
	unique := make([]Offering, 0, len(offerings))
	for _, o := range offerings {
		key := o.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, o)
	}
	return unique
}
