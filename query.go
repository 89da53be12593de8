package gallery

import (
	"strconv"
	"strings"
)

// Page sizes are fixed per surface; clients page with offset or page
// numbers, never a custom limit.
const (
	SearchPageSize     = 20
	ArtistPageSize     = 50
	ArtistPostPageSize = 15
	RelatedLimit       = 6
	PlatformSampleSize = 20
)

// Query is a parameterized SQL statement ready for the store to run.
type Query struct {
	SQL  string
	Args []any
}

const imageColumns = "id, file_name, origin_id, caption, artist, tags, created_at, width, height"

// SearchQuery builds the listing/search query. The text is stripped of
// literal '#' characters and split on whitespace; every token must match
// tags or caption (substring, per token independently). Blank text after
// stripping degrades to the plain listing.
func SearchQuery(q string, offset int) Query {
	tokens := strings.Fields(strings.ReplaceAll(q, "#", ""))
	if len(tokens) == 0 {
		return ListingQuery(offset)
	}
	conds := make([]string, 0, len(tokens))
	args := make([]any, 0, 2*len(tokens)+1)
	for _, tok := range tokens {
		conds = append(conds, "(tags LIKE ? OR caption LIKE ?)")
		pattern := "%" + tok + "%"
		args = append(args, pattern, pattern)
	}
	sql := "SELECT " + imageColumns + " FROM images WHERE " + strings.Join(conds, " AND ") +
		" ORDER BY created_at DESC LIMIT " + strconv.Itoa(SearchPageSize) + " OFFSET ?"
	args = append(args, offset)
	return Query{SQL: sql, Args: args}
}

// ListingQuery is the unfiltered reverse-chronological listing.
func ListingQuery(offset int) Query {
	return Query{
		SQL: "SELECT " + imageColumns + " FROM images ORDER BY created_at DESC LIMIT " +
			strconv.Itoa(SearchPageSize) + " OFFSET ?",
		Args: []any{offset},
	}
}

// RandomQuery selects one record uniformly at random, no filter.
func RandomQuery() Query {
	return Query{SQL: "SELECT " + imageColumns + " FROM images ORDER BY RANDOM() LIMIT 1"}
}

// SafeRandomQuery selects one random record that passes the content
// filter. A nil filter behaves like RandomQuery.
func SafeRandomQuery(f *ContentFilter) Query {
	sql := "SELECT " + imageColumns + " FROM images"
	var args []any
	if f != nil {
		if clause, clauseArgs := f.SafeClause(); clause != "" {
			sql += " WHERE " + clause
			args = clauseArgs
		}
	}
	sql += " ORDER BY RANDOM() LIMIT 1"
	return Query{SQL: sql, Args: args}
}

// SiblingQuery fetches the parent record and every page of the same
// post. Callers sort the result; see ResolveSiblings.
func SiblingQuery(parentID string) Query {
	return Query{
		SQL:  "SELECT " + imageColumns + " FROM images WHERE id = ? OR id LIKE ?",
		Args: []any{parentID, parentID + "_p%"},
	}
}

// RelatedQuery picks up to RelatedLimit random records excluding the
// given id.
func RelatedQuery(excludeID string) Query {
	return Query{
		SQL: "SELECT " + imageColumns + " FROM images WHERE id != ? ORDER BY RANDOM() LIMIT " +
			strconv.Itoa(RelatedLimit),
		Args: []any{excludeID},
	}
}

// ArtistListQuery groups records by artist, most prolific first, with a
// representative cover per artist: the row carrying the group's highest
// id. An optional name substring restricts the artists returned
// (exact-case, see the store's LIKE pragma).
func ArtistListQuery(name string, page int) Query {
	inner := "SELECT artist, COUNT(*) AS cnt, MAX(id) AS max_id FROM images WHERE artist != ''"
	var args []any
	if name != "" {
		inner += " AND artist LIKE ?"
		args = append(args, "%"+name+"%")
	}
	inner += " GROUP BY artist"
	sql := "SELECT i.artist, c.cnt, i.file_name, i.width, i.height FROM images i JOIN (" +
		inner + ") c ON i.id = c.max_id ORDER BY c.cnt DESC LIMIT " +
		strconv.Itoa(ArtistPageSize) + " OFFSET ?"
	args = append(args, (page-1)*ArtistPageSize)
	return Query{SQL: sql, Args: args}
}

// ArtistImagesQuery is one page of an artist's posts, newest first.
func ArtistImagesQuery(artist string, page int) Query {
	return Query{
		SQL: "SELECT " + imageColumns + " FROM images WHERE artist = ? ORDER BY created_at DESC LIMIT " +
			strconv.Itoa(ArtistPostPageSize) + " OFFSET ?",
		Args: []any{artist, (page - 1) * ArtistPostPageSize},
	}
}

// ParseOffset coerces a query-string offset to a usable value. Garbage
// and negatives become 0 rather than an error.
func ParseOffset(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParsePage coerces a query-string page number, defaulting to 1.
func ParsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
