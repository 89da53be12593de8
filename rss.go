package gallery

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const feedSize = 20

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	GUID    string `xml:"guid"`
}

// handleFeed serves an RSS feed of the newest posts, one item per
// record, linking to the detail page.
func (a *App) handleFeed(c echo.Context) error {
	images, err := a.Store.RecentImages(feedSize)
	if err != nil {
		return err
	}
	items := make([]rssItem, 0, len(images))
	for _, img := range images {
		link := a.Config.URL + "/detail/" + img.ID
		items = append(items, rssItem{
			Title: captionTitle(img.Caption),
			Link:  link,
			// created_at is unix seconds
			PubDate: time.Unix(img.CreatedAt, 0).UTC().Format(time.RFC1123Z),
			GUID:    link,
		})
	}
	feed := rss{
		Version: "2.0",
		Channel: rssChannel{
			Title: a.Config.Name,
			Link:  a.Config.URL,
			Items: items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
