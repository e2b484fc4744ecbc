// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

// Raw record shapes, one per upstream collaborator. The fetch layer fills
// them; the adapters in this package read only the fields listed here.

// ArxivEntry is one entry of an arXiv Atom query or category RSS feed.
type ArxivEntry struct {
	Title     string
	Summary   string
	Authors   []string
	Link      string
	PDFLink   string
	Published string

	// Category is the subject classification the entry was queried under.
	Category string
}

// TrendingRepo is one row of the code-hosting trending page.
type TrendingRepo struct {
	// Path is "owner/repo" as it appears in the row's link.
	Path        string
	Description string
	Language    string
	TodayStars  int
}

// HNStory is one Hacker News item as returned by the Firebase API.
type HNStory struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
}

// RedditPost is one listing child from a subreddit's hot feed.
type RedditPost struct {
	Subreddit   string
	Title       string
	Selftext    string
	Permalink   string
	Author      string
	Ups         int
	NumComments int
	Stickied    bool
	CreatedUTC  float64
	Thumbnail   string

	// PreviewURL is the first preview image source, still HTML-escaped the
	// way the listing API returns it.
	PreviewURL string
}

// FeedEntry is one RSS or Atom item from a blog or product feed.
type FeedEntry struct {
	Title      string
	Link       string
	Summary    string
	Content    string
	Published  string
	Author     string
	Categories []string
}

// SkillLine is one non-empty text line of the skill leaderboard page.
type SkillLine string

// HFPaper is one entry of the daily papers listing.
type HFPaper struct {
	ID          string
	Title       string
	Summary     string
	AISummary   string
	Authors     []string
	PublishedAt string
	Upvotes     int
	Thumbnail   string
}

// BlueskyPost is one post from an author feed.
type BlueskyPost struct {
	// Account is the configured handle the feed was requested for.
	Account   string
	Handle    string
	URI       string
	Text      string
	CreatedAt string
	LikeCount int
}
