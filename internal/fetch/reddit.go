// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/internal/normalize"
)

// Reddit reads a subreddit's hot listing.
type Reddit struct {
	Client  *httputil.Client
	BaseURL string
}

// NewReddit returns a Reddit fetcher for www.reddit.com.
func NewReddit(client *httputil.Client) *Reddit {
	return &Reddit{Client: client, BaseURL: "https://www.reddit.com"}
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPostData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPostData struct {
	Subreddit   string  `json:"subreddit"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	Author      string  `json:"author"`
	Ups         int     `json:"ups"`
	NumComments int     `json:"num_comments"`
	Stickied    bool    `json:"stickied"`
	CreatedUTC  float64 `json:"created_utc"`
	Thumbnail   string  `json:"thumbnail"`
	Preview     struct {
		Images []struct {
			Source struct {
				URL string `json:"url"`
			} `json:"source"`
		} `json:"images"`
	} `json:"preview"`
}

// Fetch returns up to limit hot posts of subreddit. Posts carry the
// subreddit name as configured, whatever casing the listing reports, so
// grouping and priority keys match the configuration.
func (r *Reddit) Fetch(ctx context.Context, subreddit string, limit int) ([]normalize.RedditPost, error) {
	u := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", r.BaseURL, url.PathEscape(subreddit), limit)

	var listing redditListing
	if err := r.Client.GetJSON(ctx, u, &listing); err != nil {
		return nil, err
	}

	posts := make([]normalize.RedditPost, 0, len(listing.Data.Children))
	for _, c := range listing.Data.Children {
		d := c.Data
		p := normalize.RedditPost{
			Subreddit:   subreddit,
			Title:       d.Title,
			Selftext:    d.Selftext,
			Permalink:   d.Permalink,
			Author:      d.Author,
			Ups:         d.Ups,
			NumComments: d.NumComments,
			Stickied:    d.Stickied,
			CreatedUTC:  d.CreatedUTC,
			Thumbnail:   d.Thumbnail,
		}
		if len(d.Preview.Images) > 0 {
			p.PreviewURL = d.Preview.Images[0].Source.URL
		}
		posts = append(posts, p)
	}
	return posts, nil
}
