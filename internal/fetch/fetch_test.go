// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/internal/normalize"
	"github.com/pdiddy/digest-engine/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func testClient() *httputil.Client {
	return httputil.NewClient(types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "digest-test", MaxRetries: 1}, zerolog.Nop())
}

func serve(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range routes {
		mux.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(body))
		})
	}
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

const atomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query</title>
  <entry>
    <id>http://arxiv.org/abs/2501.00001v1</id>
    <title>Neural Rendering at Scale</title>
    <summary>We study &lt;b&gt;things&lt;/b&gt;.</summary>
    <published>2025-01-01T00:00:00Z</published>
    <author><name>Ada</name></author>
    <author><name>Bob</name></author>
    <link href="http://arxiv.org/abs/2501.00001v1" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/2501.00001v1" rel="related" type="application/pdf"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2501.00002v1</id>
    <title>Second</title>
    <link href="http://arxiv.org/abs/2501.00002v1" rel="alternate" type="text/html"/>
  </entry>
</feed>`

const emptyAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"><title>empty</title></feed>`

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Blog</title>
    <item>
      <title>Release 5.0</title>
      <link>https://blog.example/5-0</link>
      <description>&lt;p&gt;Big release&lt;/p&gt;</description>
      <pubDate>Mon, 06 Jan 2025 10:00:00 GMT</pubDate>
      <category>Release</category>
    </item>
    <item>
      <title>Older post</title>
      <link>https://blog.example/old</link>
    </item>
  </channel>
</rss>`

// --- arXiv ---

func TestArxivFetch_AtomAndRSSFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/query", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search_query") == "cat:cs.AI" {
			w.Write([]byte(atomFeed))
			return
		}
		w.Write([]byte(emptyAtom))
	})
	mux.HandleFunc("/rss/cs.GR", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(rssFeed))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	a := NewArxiv(testClient(), zerolog.Nop())
	a.APIBase = ts.URL + "/api/query"
	a.RSSBase = ts.URL + "/rss"

	got, err := a.Fetch(context.Background(), []string{"cs.AI", "cs.GR"}, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Neural Rendering at Scale", got[0].Title)
	assert.Equal(t, []string{"Ada", "Bob"}, got[0].Authors)
	assert.Equal(t, "http://arxiv.org/pdf/2501.00001v1", got[0].PDFLink)
	assert.Equal(t, "cs.AI", got[0].Category)

	assert.Equal(t, "Release 5.0", got[1].Title)
	assert.Equal(t, "cs.GR", got[1].Category)
}

func TestArxivFetch_AllCategoriesFail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	a := NewArxiv(testClient(), zerolog.Nop())
	a.APIBase = ts.URL + "/api/query"
	a.RSSBase = ts.URL + "/rss"

	_, err := a.Fetch(context.Background(), []string{"cs.AI"}, 10)
	assert.Error(t, err)
}

// --- GitHub ---

const trendingHTML = `<html><body>
<article class="Box-row">
  <h2 class="h3 lh-condensed"><a href="/acme/gpu-tool">acme / gpu-tool</a></h2>
  <p class="col-9">  Fast GPU tool  </p>
  <span itemprop="programmingLanguage">Rust</span>
  <span class="d-inline-block float-sm-right">1,234 stars today</span>
</article>
<article class="Box-row">
  <h2><span>no link</span></h2>
</article>
<article class="Box-row">
  <h2><a href="/solo/repo/">solo / repo</a></h2>
</article>
</body></html>`

func TestGitHubFetch(t *testing.T) {
	var gotPath, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Write([]byte(trendingHTML))
	}))
	defer ts.Close()

	g := NewGitHub(testClient())
	g.BaseURL = ts.URL + "/trending"

	got, err := g.Fetch(context.Background(), "python", "daily")
	require.NoError(t, err)
	assert.Equal(t, "/trending/python", gotPath)
	assert.Equal(t, "since=daily", gotQuery)

	require.Len(t, got, 2)
	assert.Equal(t, normalize.TrendingRepo{Path: "acme/gpu-tool", Description: "Fast GPU tool", Language: "Rust", TodayStars: 1234}, got[0])
	assert.Equal(t, "solo/repo", got[1].Path)
	assert.Zero(t, got[1].TodayStars)
}

func TestParseStars(t *testing.T) {
	assert.Equal(t, 1234, parseStars("1,234 stars today"))
	assert.Equal(t, 7, parseStars(" 7 stars this week"))
	assert.Equal(t, 0, parseStars(""))
}

// --- Hacker News ---

func TestHackerNewsFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[11, 12, 13]`))
	})
	mux.HandleFunc("/item/11.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":11,"type":"story","title":"AI chips","score":120,"descendants":40,"url":"https://chips.example","by":"alice","time":1700000000}`))
	})
	mux.HandleFunc("/item/12.json", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/item/13.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":13,"type":"story","title":"never fetched"}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	h := NewHackerNews(testClient(), zerolog.Nop())
	h.BaseURL = ts.URL

	got, err := h.Fetch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, normalize.HNStory{ID: 11, Type: "story", Title: "AI chips", URL: "https://chips.example", Score: 120, Descendants: 40, By: "alice", Time: 1700000000}, got[0])
}

// --- Reddit ---

func TestRedditFetch(t *testing.T) {
	ts := serve(t, map[string]string{
		"/r/blender/hot.json": `{"data":{"children":[
			{"data":{"subreddit":"blender","title":"Donut","permalink":"/r/blender/comments/1/donut/","ups":321,"num_comments":12,"stickied":false,"created_utc":1700000000.0,"thumbnail":"https://thumbs.example/t.jpg","preview":{"images":[{"source":{"url":"https://preview.example/p.jpg?a=1&amp;b=2"}}]}}},
			{"data":{"title":"Rules","permalink":"/r/blender/comments/2/rules/","stickied":true}}
		]}}`,
	})

	r := NewReddit(testClient())
	r.BaseURL = ts.URL

	got, err := r.Fetch(context.Background(), "blender", 15)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Donut", got[0].Title)
	assert.Equal(t, 321, got[0].Ups)
	assert.Equal(t, "https://preview.example/p.jpg?a=1&amp;b=2", got[0].PreviewURL)
	assert.True(t, got[1].Stickied)
	assert.Equal(t, "blender", got[1].Subreddit)
}

func TestRedditFetch_KeepsConfiguredName(t *testing.T) {
	ts := serve(t, map[string]string{
		"/r/unrealengine/hot.json": `{"data":{"children":[
			{"data":{"subreddit":"UnrealEngine","title":"Nanite foliage","permalink":"/r/UnrealEngine/comments/9/nanite/","ups":80}}
		]}}`,
	})

	r := NewReddit(testClient())
	r.BaseURL = ts.URL

	got, err := r.Fetch(context.Background(), "unrealengine", 15)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "unrealengine", got[0].Subreddit)
}

// --- Feeds ---

func TestFeedsFetch(t *testing.T) {
	ts := serve(t, map[string]string{"/feed": rssFeed})

	got, err := NewFeeds(testClient()).Fetch(context.Background(), ts.URL+"/feed")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Release 5.0", got[0].Title)
	assert.Equal(t, "https://blog.example/5-0", got[0].Link)
	assert.Equal(t, "<p>Big release</p>", got[0].Summary)
	assert.Equal(t, []string{"Release"}, got[0].Categories)
	assert.NotEmpty(t, got[0].Published)
}

func TestFeedsFetch_NotAFeed(t *testing.T) {
	ts := serve(t, map[string]string{"/feed": "plain text, not xml"})

	_, err := NewFeeds(testClient()).Fetch(context.Background(), ts.URL+"/feed")
	assert.Error(t, err)
}

// --- Skills ---

func TestSkillsFetch(t *testing.T) {
	ts := serve(t, map[string]string{
		"/trending": `<html><head><script>var x = 1;</script></head><body>
			<h1>Skills Leaderboard</h1>
			<ol>
			  <li><span>1</span><a>pdf</a><span>anthropics/skills</span></li>
			  <li><span>2</span><a>web-search</a><span>acme/tools</span></li>
			</ol></body></html>`,
	})

	got, err := NewSkills(testClient(), ts.URL+"/trending").Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []normalize.SkillLine{
		"Skills Leaderboard",
		"1", "pdf", "anthropics/skills",
		"2", "web-search", "acme/tools",
	}, got)
}

// --- Hugging Face ---

func TestHuggingFaceFetch(t *testing.T) {
	ts := serve(t, map[string]string{
		"/api/daily_papers": `[
			{"thumbnail":"https://hf.example/t.png","paper":{"id":"2501.1","title":"Paper One","summary":"abs","ai_summary":"short","publishedAt":"2025-01-01T00:00:00Z","upvotes":42,"authors":[{"name":"A"},{"name":""}]}}
		]`,
	})

	got, err := NewHuggingFace(testClient(), ts.URL+"/api/daily_papers").Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, normalize.HFPaper{
		ID:          "2501.1",
		Title:       "Paper One",
		Summary:     "abs",
		AISummary:   "short",
		Authors:     []string{"A", "Unknown"},
		PublishedAt: "2025-01-01T00:00:00Z",
		Upvotes:     42,
		Thumbnail:   "https://hf.example/t.png",
	}, got[0])
}

// --- Bluesky ---

func TestBlueskyFetch(t *testing.T) {
	ts := serve(t, map[string]string{
		"/xrpc/com.atproto.identity.resolveHandle": `{"did":"did:plc:abc"}`,
		"/xrpc/app.bsky.feed.getAuthorFeed": `{"feed":[
			{"post":{"uri":"at://did:plc:abc/app.bsky.feed.post/3k1","author":{"handle":"simonwillison.net"},"record":{"text":"LLM notes","createdAt":"2025-01-01T00:00:00Z"},"likeCount":9}},
			{"post":{"uri":"at://did:plc:abc/app.bsky.feed.post/3k2","author":{"handle":"simonwillison.net"},"record":{"text":"second"}}}
		]}`,
	})

	b := NewBluesky(testClient())
	b.BaseURL = ts.URL + "/xrpc"

	got, err := b.Fetch(context.Background(), "simonwillison.net", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, normalize.BlueskyPost{
		Account:   "simonwillison.net",
		Handle:    "simonwillison.net",
		URI:       "at://did:plc:abc/app.bsky.feed.post/3k1",
		Text:      "LLM notes",
		CreatedAt: "2025-01-01T00:00:00Z",
		LikeCount: 9,
	}, got[0])
}

func TestBlueskyFetch_EmptyDID(t *testing.T) {
	ts := serve(t, map[string]string{
		"/xrpc/com.atproto.identity.resolveHandle": `{}`,
	})

	b := NewBluesky(testClient())
	b.BaseURL = ts.URL + "/xrpc"

	_, err := b.Fetch(context.Background(), "nobody.example", 10)
	assert.Error(t, err)
}
