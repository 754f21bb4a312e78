package mdblog

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Generator     string    `xml:"generator"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate"`
	GUID        rssGUID  `xml:"guid"`
	Categories  []string `xml:"category"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// renderFeed encodes the newest posts as RSS 2.0. posts must be sorted
// newest first. lastBuildDate is the newest post's last modification, so
// rebuilding unchanged content yields an identical feed.
func (s *Site) renderFeed(posts []*Post) ([]byte, error) {
	if s.cfg.FeedLimit > 0 && len(posts) > s.cfg.FeedLimit {
		posts = posts[:s.cfg.FeedLimit]
	}

	items := make([]rssItem, 0, len(posts))
	var lastBuild time.Time
	for _, p := range posts {
		link := s.absoluteURL(postPath(p.ID))
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Description,
			PubDate:     p.PubDate.Format(time.RFC1123Z),
			GUID:        rssGUID{IsPermaLink: true, Value: link},
			Categories:  p.Tags,
		})
		if m := p.LastModified(); m.After(lastBuild) {
			lastBuild = m
		}
	}

	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       s.cfg.Title,
			Link:        s.absoluteURL(""),
			Description: s.cfg.Description,
			Language:    s.cfg.Language,
			Generator:   "go-mdblog",
			Items:       items,
		},
	}
	if !lastBuild.IsZero() {
		feed.Channel.LastBuildDate = lastBuild.Format(time.RFC1123Z)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return nil, fmt.Errorf("encoding feed: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
