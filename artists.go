package gallery

import "strings"

// Source platforms inferred from id prefixes, in display priority order.
const (
	PlatformPixiv   = "Pixiv"
	PlatformYande   = "Yande.re"
	PlatformMtcACG  = "MtcACG"
	PlatformTwitter = "Twitter"
	PlatformOther   = "Other"
)

var platformPriority = []string{
	PlatformPixiv, PlatformYande, PlatformMtcACG, PlatformTwitter, PlatformOther,
}

// PlatformOf classifies a record id by its prefix.
func PlatformOf(id string) string {
	switch {
	case strings.HasPrefix(id, "pixiv_"):
		return PlatformPixiv
	case strings.HasPrefix(id, "yande"):
		return PlatformYande
	case strings.HasPrefix(id, "mtcacg"):
		return PlatformMtcACG
	case strings.HasPrefix(id, "twitter"):
		return PlatformTwitter
	default:
		return PlatformOther
	}
}

// PlatformDisplay deduplicates the platforms of the given records and
// joins them in fixed priority order into a single display string.
func PlatformDisplay(images []Image) string {
	seen := make(map[string]struct{}, len(images))
	for _, img := range images {
		seen[PlatformOf(img.ID)] = struct{}{}
	}
	var parts []string
	for _, p := range platformPriority {
		if _, ok := seen[p]; ok {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " / ")
}

// ListArtists returns one page of the artist listing, optionally
// restricted to names containing the (case-sensitive) filter substring.
func (s *Store) ListArtists(name string, page int) ([]ArtistSummary, error) {
	return s.ArtistSummaries(ArtistListQuery(name, page))
}

// BuildArtistProfile aggregates an artist's summary plus one page of
// their posts. ErrNotFound when the artist has no records.
//
// The platform set is inferred from the newest PlatformSampleSize
// records only — a deliberate approximation so huge artists don't cost
// a full scan. The sample can miss a platform an old record would add.
func (s *Store) BuildArtistProfile(artist string, page int) (ArtistProfile, error) {
	count, latest, err := s.ArtistStats(artist)
	if err != nil {
		return ArtistProfile{}, err
	}
	if count == 0 {
		return ArtistProfile{}, ErrNotFound
	}

	sample, err := s.QueryImages(Query{
		SQL:  "SELECT " + imageColumns + " FROM images WHERE artist = ? ORDER BY created_at DESC LIMIT ?",
		Args: []any{artist, PlatformSampleSize},
	})
	if err != nil {
		return ArtistProfile{}, err
	}
	if len(sample) == 0 {
		// The artist's rows vanished between the two queries.
		return ArtistProfile{}, ErrNotFound
	}

	// Newest record is the primary cover, second newest the alternate;
	// a single-record artist uses the same asset for both.
	cover := sample[0].FileName
	coverAlt := cover
	if len(sample) > 1 {
		coverAlt = sample[1].FileName
	}

	images, err := s.QueryImages(ArtistImagesQuery(artist, page))
	if err != nil {
		return ArtistProfile{}, err
	}

	return ArtistProfile{
		Artist:    artist,
		Count:     count,
		LatestAt:  latest,
		Cover:     cover,
		CoverAlt:  coverAlt,
		Platforms: PlatformDisplay(sample),
		Images:    images,
		Page:      page,
	}, nil
}
