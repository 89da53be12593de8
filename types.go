package gallery

// Image is the core content type stored in SQLite. JSON field names match
// the column names so API responses mirror the raw rows.
//
// IDs encode the source platform ("pixiv_123", "yande_456") and, for
// multi-page posts, a page suffix ("pixiv_123_p2"). CreatedAt is a unix
// timestamp in seconds.
type Image struct {
	ID        string `json:"id"`
	FileName  string `json:"file_name"`
	OriginID  string `json:"origin_id"`
	Caption   string `json:"caption"`
	Artist    string `json:"artist"`
	Tags      string `json:"tags"`
	CreatedAt int64  `json:"created_at"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// DetailImage is one page of a post as rendered on the detail view:
// the proxied asset path plus a forced-download link.
type DetailImage struct {
	ID       string `json:"id"`
	File     string `json:"file"`
	Download string `json:"download"`
}

// DetailPage carries everything the detail view needs for one post.
type DetailPage struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Artist       string        `json:"artist"`
	Background   string        `json:"background"`
	Images       []DetailImage `json:"images"`
	CurrentIndex int           `json:"current_index"`
	Tags         []string      `json:"tags"`
	Related      []Image       `json:"related"`
}

// ArtistSummary is one row of the artist listing: a creator with their
// post count and a representative cover.
type ArtistSummary struct {
	Artist string `json:"artist"`
	Count  int    `json:"count"`
	Cover  string `json:"cover"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ArtistProfile is the aggregated header for an artist page plus one
// page of their posts.
type ArtistProfile struct {
	Artist    string  `json:"artist"`
	Count     int     `json:"count"`
	LatestAt  int64   `json:"latest_at"`
	Cover     string  `json:"cover"`
	CoverAlt  string  `json:"cover_alt"`
	Platforms string  `json:"platforms"`
	Images    []Image `json:"images"`
	Page      int     `json:"page"`
}
