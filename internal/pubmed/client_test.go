// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravisuresh229/evidencegap/internal/httputil"
	"github.com/ravisuresh229/evidencegap/pkg/types"
)

const esearchBody = `{
  "esearchresult": {
    "count": "3",
    "idlist": ["40000001", "40000002", "40000003"]
  }
}`

const efetchBody = `<?xml version="1.0"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>40000001</PMID>
      <Article>
        <Journal>
          <JournalIssue><PubDate><Year>2024</Year></PubDate></JournalIssue>
          <Title>Diabetes Care</Title>
        </Journal>
        <ArticleTitle>Telemedicine for <i>type 2</i> diabetes</ArticleTitle>
        <Abstract>
          <AbstractText Label="BACKGROUND">Remote care is expanding.</AbstractText>
          <AbstractText Label="RESULTS">HbA1c fell by 0.5&#37;.</AbstractText>
        </Abstract>
        <AuthorList>
          <Author><LastName>Garcia</LastName><ForeName>Ana</ForeName></Author>
          <Author ValidYN="N"><LastName>Retracted</LastName><ForeName>Bob</ForeName></Author>
          <Author><CollectiveName>TELE-DM Study Group</CollectiveName></Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>40000002</PMID>
      <Article>
        <Journal>
          <JournalIssue><PubDate><MedlineDate>2019 Jan-Feb</MedlineDate></PubDate></JournalIssue>
        </Journal>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(
		WithBaseURL(srv.URL),
		WithAPIKey("test-key"),
		WithEmail("dev@example.com"),
	)
}

func TestSearch(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(esearchBody))
	})

	ids, err := c.Search(context.Background(), `("telemedicine") AND ("diabetes")`, 10)

	require.NoError(t, err)
	assert.Equal(t, []string{"40000001", "40000002", "40000003"}, ids)
	assert.Equal(t, "/esearch.fcgi", gotPath)
	assert.Equal(t, "pubmed", gotQuery["db"])
	assert.Equal(t, `("telemedicine") AND ("diabetes")`, gotQuery["term"])
	assert.Equal(t, "10", gotQuery["retmax"])
	assert.Equal(t, "relevance", gotQuery["sort"])
	assert.Equal(t, "test-key", gotQuery["api_key"])
	assert.Equal(t, "evidencegap", gotQuery["tool"])
	assert.Equal(t, "dev@example.com", gotQuery["email"])
}

func TestSearchEmptyResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"esearchresult": {"count": "0", "idlist": []}}`))
	})

	ids, err := c.Search(context.Background(), "nothing", 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSearchServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Search(context.Background(), "q", 10)
	assert.ErrorContains(t, err, "HTTP 502")
}

func TestSearchRetriesRateLimit(t *testing.T) {
	orig := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = time.Millisecond
	t.Cleanup(func() { httputil.RetryBaseDelay = orig })

	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(esearchBody))
	})

	ids, err := c.Search(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.Len(t, ids, 3)
	assert.Equal(t, 2, calls)
}

func TestFetch(t *testing.T) {
	var gotIDs string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/efetch.fcgi", r.URL.Path)
		gotIDs = r.URL.Query().Get("id")
		w.Write([]byte(efetchBody))
	})

	recs, err := c.Fetch(context.Background(), []string{"40000001", "40000002"})

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "40000001,40000002", gotIDs)

	full := recs[0]
	assert.Equal(t, "Telemedicine for type 2 diabetes", full.Title)
	assert.Equal(t, "BACKGROUND: Remote care is expanding.\n\nRESULTS: HbA1c fell by 0.5%.", full.Abstract)
	assert.Equal(t, "Diabetes Care", full.Journal)
	assert.Equal(t, 2024, full.Year)
	assert.Equal(t, []string{"Ana Garcia", "TELE-DM Study Group"}, full.Authors)
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/40000001/", full.URL)

	bare := recs[1]
	assert.Equal(t, types.NoTitle, bare.Title)
	assert.Equal(t, types.NoAbstract, bare.Abstract)
	assert.Equal(t, types.UnknownJournal, bare.Journal)
	assert.Equal(t, 2019, bare.Year)
	assert.False(t, bare.HasAbstract())
}

func TestFetchRequiresIDs(t *testing.T) {
	c := NewClient()
	_, err := c.Fetch(context.Background(), nil)
	assert.Error(t, err)
}

func TestParseRecordsSkipsMalformedArticle(t *testing.T) {
	payload := `<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation><PMID>1</PMID><Article><ArticleTitle>Good one</ArticleTitle></Article></MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation><PMID>2</PMID><Article><ArticleTitle>Broken</Article></MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

	recs := parseRecords([]byte(payload))

	require.Len(t, recs, 1)
	assert.Equal(t, "Good one", recs[0].Title)
}

func TestParseRecordsEmptyPayload(t *testing.T) {
	assert.Empty(t, parseRecords(nil))
	assert.Empty(t, parseRecords([]byte("not xml at all")))
}
