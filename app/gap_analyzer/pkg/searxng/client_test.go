package searxng

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/search"
)

func TestSearch(t *testing.T) {
	var path, q, format, cats, ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		q = r.URL.Query().Get("q")
		format = r.URL.Query().Get("format")
		cats = r.URL.Query().Get("categories")
		ua = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"query":"x","results":[
			{"title":"one","url":"https://1","content":" c1 "},
			{"title":"no link","url":"","content":"dropped"},
			{"title":"one again","url":"https://1","content":"dup"},
			{"title":"two","url":"https://2","content":"c2"},
			{"title":"three","url":"https://3","content":"c3"}
		]}`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/", 5)
	resp, err := c.Search(context.Background(), &search.Request{
		Query:      "protein folding",
		Depth:      search.DepthAdvanced,
		MaxResults: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, "/search", path)
	assert.Equal(t, "protein folding", q)
	assert.Equal(t, "json", format)
	assert.Equal(t, "general,science", cats)
	assert.Equal(t, userAgent, ua)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "one", resp.Results[0].Title)
	assert.Equal(t, "c1", resp.Results[0].Content)
	assert.Equal(t, "https://2", resp.Results[1].URL)
}

func TestSearchBasicDepth(t *testing.T) {
	var cats string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cats = r.URL.Query().Get("categories")
		fmt.Fprint(w, `{"results":[{"title":"a","url":"https://a"},{"title":"b","url":"https://b"}]}`)
	}))
	defer ts.Close()

	resp, err := NewClient(ts.URL, 0).Search(context.Background(), &search.Request{Query: "q", Depth: search.DepthBasic})
	require.NoError(t, err)
	assert.Equal(t, "general", cats)
	// MaxResults 0 keeps everything
	assert.Len(t, resp.Results, 2)
}

func TestSearchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, 0).Search(context.Background(), &search.Request{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestSearchMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [`)
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, 0).Search(context.Background(), &search.Request{Query: "q"})
	assert.ErrorContains(t, err, "decode response failed")
}
