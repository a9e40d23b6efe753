package knowledge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FinCrime-Intelligence/internal/config"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

func newTestKnowledgeClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.KnowledgeConfig{
		WikipediaURL: srv.URL + "/wiki",
		WikidataURL:  srv.URL + "/wikidata",
		NewsURL:      srv.URL + "/news",
		NewsAPIKey:   "test-key",
		UserAgent:    "FinCrime-Intelligence/1.0",
		MaxArticles:  10,
	}, logging.NewNopLogger())
}

func TestWikipedia_ExistingPage(t *testing.T) {
	c := newTestKnowledgeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wiki", r.URL.Path)
		assert.Equal(t, "FinCrime-Intelligence/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "Acme Holdings", r.URL.Query().Get("titles"))
		w.Write([]byte(`{"query":{"pages":{"123":{
			"pageid":123,"title":"Acme Holdings",
			"extract":"Acme Holdings is an offshore services firm."}}}}`))
	}))

	got := c.Wikipedia(context.Background(), "Acme Holdings")
	assert.True(t, got.Exists)
	assert.Equal(t, "Acme Holdings", got.Title)
	assert.Equal(t, "https://en.wikipedia.org/?curid=123", got.URL)
	assert.False(t, got.Controversial)
}

func TestWikipedia_ControversySignals(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{
			"scandal in extract",
			`{"query":{"pages":{"1":{"pageid":1,"title":"Acme","extract":"Known for a bribery scandal."}}}}`,
			true,
		},
		{
			"controversy in title",
			`{"query":{"pages":{"1":{"pageid":1,"title":"Acme controversies","extract":""}}}}`,
			true,
		},
		{
			"disambiguation page",
			`{"query":{"pages":{"1":{"pageid":1,"title":"Acme","extract":"","pageprops":{"disambiguation":""}}}}}`,
			true,
		},
		{
			"clean page",
			`{"query":{"pages":{"1":{"pageid":1,"title":"Acme","extract":"A corporation."}}}}`,
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			c := newTestKnowledgeClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(body))
			}))
			got := c.Wikipedia(context.Background(), "Acme")
			assert.Equal(t, tt.want, got.Controversial)
		})
	}
}

func TestWikipedia_MissingPageAndErrors(t *testing.T) {
	c := newTestKnowledgeClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"query":{"pages":{"-1":{"title":"Nobody","missing":""}}}}`))
	}))
	assert.False(t, c.Wikipedia(context.Background(), "Nobody").Exists)

	down := newTestKnowledgeClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	assert.Equal(t, WikipediaData{}, down.Wikipedia(context.Background(), "Acme"))
}

func TestWikidata_ResolvesClaims(t *testing.T) {
	c := newTestKnowledgeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("action") {
		case "wbsearchentities":
			assert.Equal(t, "Acme Holdings", r.URL.Query().Get("search"))
			w.Write([]byte(`{"search":[{"id":"Q42","label":"Acme Holdings","description":"offshore firm"}]}`))
		case "wbgetentities":
			assert.Equal(t, "Q42", r.URL.Query().Get("ids"))
			w.Write([]byte(`{"entities":{"Q42":{"claims":{
				"P31":[{"mainsnak":{"datavalue":{"value":{"id":"Q201818"}}}}],
				"P17":[{"mainsnak":{"datavalue":{"value":{"id":"Q5785"}}}}],
				"P571":[{"mainsnak":{"datavalue":{"value":{"time":"+1999-01-01T00:00:00Z"}}}}],
				"P856":[{"mainsnak":{"datavalue":{"value":"https://acme.example"}}}]
			}}}}`))
		default:
			t.Errorf("unexpected action %q", r.URL.Query().Get("action"))
		}
	}))

	info := c.Wikidata(context.Background(), "Acme Holdings")
	require.NotNil(t, info)
	assert.Equal(t, "Q42", info.ID)
	assert.Equal(t, []string{"Q201818"}, info.InstanceOf)
	assert.Equal(t, []string{"Q5785"}, info.Jurisdiction)
	assert.Equal(t, []string{"+1999-01-01T00:00:00Z"}, info.Founded)
	assert.Equal(t, []string{"https://acme.example"}, info.Website)
	assert.Empty(t, info.Industry)
}

func TestWikidata_NoHitOrFailure(t *testing.T) {
	empty := newTestKnowledgeClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"search":[]}`))
	}))
	assert.Nil(t, empty.Wikidata(context.Background(), "Unheard Of Ltd"))

	down := newTestKnowledgeClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	assert.Nil(t, down.Wikidata(context.Background(), "Acme"))
}

func TestNews_QueryAndResults(t *testing.T) {
	c := newTestKnowledgeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, `"Acme Holdings" AND "Panama"`, q.Get("q"))
		assert.Equal(t, "test-key", q.Get("apiKey"))
		assert.Equal(t, "10", q.Get("pageSize"))
		w.Write([]byte(`{"status":"ok","articles":[
			{"title":"Acme charged with fraud","description":"...","publishedAt":"2026-08-30T00:00:00Z"},
			{"title":"Acme expands","description":"...","publishedAt":"2026-08-29T00:00:00Z"}
		]}`))
	}))

	articles := c.News(context.Background(), "Acme Holdings", "Panama")
	require.Len(t, articles, 2)
	assert.Equal(t, "Acme charged with fraud", articles[0].Title)
}

func TestNews_NoJurisdictionOmitsAndClause(t *testing.T) {
	c := newTestKnowledgeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `"Acme Holdings"`, r.URL.Query().Get("q"))
		w.Write([]byte(`{"status":"ok","articles":[]}`))
	}))
	assert.Empty(t, c.News(context.Background(), "Acme Holdings", ""))
}

func TestNews_APIErrorDegrades(t *testing.T) {
	c := newTestKnowledgeClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"error","message":"apiKey invalid"}`))
	}))
	assert.Nil(t, c.News(context.Background(), "Acme", ""))

	down := newTestKnowledgeClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	assert.Nil(t, down.News(context.Background(), "Acme", ""))
}
