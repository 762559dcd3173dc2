package leadgen

import "fmt"

// Category identifies one of the fixed lead-research angles. Each category
// differs only in its display name, query prompt, and fallback queries; the
// analyst implementation is shared.
type Category string

const (
	CategoryDirect      Category = "direct_leads_analyst"
	CategoryPartnership Category = "partnership_analyst"
	CategoryCommunity   Category = "community_analyst"
	CategoryEvents      Category = "events_analyst"
	CategoryInfluencer  Category = "influencer_analyst"

	// CategoryUnknown buckets documents whose producing analyst cannot be
	// determined. It is never researched directly.
	CategoryUnknown Category = "unknown"
)

// Categories returns the researched categories in their fixed order.
func Categories() []Category {
	return []Category{
		CategoryDirect,
		CategoryPartnership,
		CategoryCommunity,
		CategoryEvents,
		CategoryInfluencer,
	}
}

var displayNames = map[Category]string{
	CategoryDirect:      "Direct Leads",
	CategoryPartnership: "Potential Partners",
	CategoryCommunity:   "Communities & Platforms",
	CategoryEvents:      "Events & Conferences",
	CategoryInfluencer:  "Influencers & Media",
}

// DisplayName returns the human-readable name for the category.
func (c Category) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// queryPrompt returns the category-specific query generation prompt.
func (c Category) queryPrompt(p Params, year int) string {
	switch c {
	case CategoryDirect:
		return directQueryPrompt(p, year)
	case CategoryPartnership:
		return partnershipQueryPrompt(p, year)
	case CategoryCommunity:
		return communityQueryPrompt(p, year)
	case CategoryEvents:
		return eventsQueryPrompt(p, year)
	case CategoryInfluencer:
		return influencerQueryPrompt(p, year)
	}
	return fmt.Sprintf("Generate search queries to find leads for a %s business in %s.", p.BusinessTypeOrDefault(), p.Location)
}

// fallbackQueries returns the deterministic query set used when generation
// fails or yields nothing usable.
func (c Category) fallbackQueries(businessType, location string, year int) []string {
	return []string{
		fmt.Sprintf("%s directories in %s %d", businessType, location, year),
		fmt.Sprintf("list of %s potential clients in %s", businessType, location),
		fmt.Sprintf("%s industry partners %s", businessType, location),
		fmt.Sprintf("%s events conferences %s %d", businessType, location, year),
	}
}
