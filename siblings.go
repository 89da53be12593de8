package gallery

import (
	"regexp"
	"sort"
	"strings"
)

var pageSuffixRe = regexp.MustCompile(`^(.*)_p(\d+)$`)

// ParentID strips a trailing _p<N> page suffix from an id. Ids without
// the suffix are their own parent. The parent row is not guaranteed to
// exist; grouping is purely a naming convention from the crawlers.
func ParentID(id string) string {
	if m := pageSuffixRe.FindStringSubmatch(id); m != nil {
		return m[1]
	}
	return id
}

// SiblingSet is the ordered pages of one post plus the position of the
// record the caller asked for.
type SiblingSet struct {
	Images []Image
	Index  int
}

// ResolveSiblings loads the record for id and every page of the same
// post. Ordering is plain lexicographic by id, so "_p10" sorts before
// "_p2"; that quirk is load-bearing for existing clients and stays.
// Returns ErrNotFound when id has no record at all.
func (s *Store) ResolveSiblings(id string) (Image, SiblingSet, error) {
	img, err := s.GetImage(id)
	if err != nil {
		return Image{}, SiblingSet{}, err
	}
	siblings, err := s.QueryImages(SiblingQuery(ParentID(id)))
	if err != nil {
		return Image{}, SiblingSet{}, err
	}
	sort.Slice(siblings, func(i, j int) bool {
		return siblings[i].ID < siblings[j].ID
	})
	index := 0
	for i, sib := range siblings {
		if sib.ID == img.ID {
			index = i
			break
		}
	}
	return img, SiblingSet{Images: siblings, Index: index}, nil
}

// BuildDetail assembles the full detail payload for one record: title,
// ordered sibling pages with download links, and a handful of random
// related posts.
func (s *Store) BuildDetail(id string) (DetailPage, error) {
	img, set, err := s.ResolveSiblings(id)
	if err != nil {
		return DetailPage{}, err
	}
	related, err := s.QueryImages(RelatedQuery(id))
	if err != nil {
		return DetailPage{}, err
	}

	items := make([]DetailImage, 0, len(set.Images))
	for _, sib := range set.Images {
		handle := sib.OriginID
		if handle == "" {
			handle = sib.FileName
		}
		items = append(items, DetailImage{
			ID:       sib.ID,
			File:     sib.FileName,
			Download: "/image/" + handle + "?dl=jpg",
		})
	}

	return DetailPage{
		ID:           img.ID,
		Title:        captionTitle(img.Caption),
		Artist:       img.Artist,
		Background:   "/image/" + img.FileName,
		Images:       items,
		CurrentIndex: set.Index,
		Tags:         SplitTags(img.Tags),
		Related:      related,
	}, nil
}

// captionTitle takes the first line of a caption as the display title.
func captionTitle(caption string) string {
	title, _, _ := strings.Cut(caption, "\n")
	if strings.TrimSpace(title) == "" {
		return "Untitled"
	}
	return title
}

// SplitTags splits the space-delimited tags column, dropping empties.
func SplitTags(tags string) []string {
	return strings.Fields(tags)
}
