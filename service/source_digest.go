package service

import "nychousing-backend/models"

const (
	maxDigestSources = 5
	minDigestSources = 3
)

// sourceCorpus is the fixed set of local news snippets
var sourceCorpus = []models.SourceSnippet{
	{
		Source:   "NYC Open Data",
		Borough:  "Brooklyn",
		Headline: "Prospect Park greenway funding",
		Summary:  "City added $52M to expand protected bike lanes and new dog runs along Park Slope borders.",
	},
	{
		Source:   "Reddit r/nyc",
		Borough:  "Manhattan",
		Headline: "Lower Manhattan nightlife check-in",
		Summary:  "Locals note Greenwich Village and LES still offer the best live jazz + late bites mix.",
	},
	{
		Source:   "Queens Eats Newsletter",
		Borough:  "Queens",
		Headline: "Astoria-Ditmars food crawl report",
		Summary:  "New Greek bakeries and pan-Latin pop-ups are drawing crowds to 30th Avenue.",
	},
	{
		Source:   "Staten Island Advance",
		Borough:  "Staten Island",
		Headline: "North Shore ferry upgrades",
		Summary:  "Faster boats will cut the commute to downtown Manhattan by 12 minutes later this year.",
	},
	{
		Source:   "Brooklyn Paper",
		Borough:  "Brooklyn",
		Headline: "Williamsburg waterfront rezoning",
		Summary:  "Mixed-use plan reserves 600 units for middle-income renters with priority for local artists.",
	},
	{
		Source:   "Bronx Times",
		Borough:  "Bronx",
		Headline: "New community safety pilot in Fordham",
		Summary:  "Neighborhood ambassadors and NYPD coordination lowered complaints 18% month over month.",
	},
}

// AggregateSourceDigest selects up to five distinct snippets about the
// boroughs of the top matches, padded with the head of the corpus when
// fewer than three apply.
func AggregateSourceDigest(top []models.NeighborhoodMatch) []models.SourceSnippet {
	if len(top) == 0 {
		return []models.SourceSnippet{}
	}

	boroughs := make(map[string]struct{}, len(top))
	for _, m := range top {
		boroughs[m.Borough] = struct{}{}
	}

	digest := make([]models.SourceSnippet, 0, len(sourceCorpus)+minDigestSources)
	for _, s := range sourceCorpus {
		if _, ok := boroughs[s.Borough]; ok {
			digest = append(digest, s)
		}
	}
	if len(digest) < minDigestSources {
		digest = append(digest, sourceCorpus[:minDigestSources]...)
	}

	type sourceKey struct{ source, headline string }
	seen := make(map[sourceKey]struct{}, len(digest))
	unique := make([]models.SourceSnippet, 0, maxDigestSources)
	for _, s := range digest {
		k := sourceKey{s.Source, s.Headline}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, s)
		if len(unique) == maxDigestSources {
			break
		}
	}
	return unique
}
