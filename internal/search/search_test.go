package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevance(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		content string
		want    float64
	}{
		{"full overlap", "sistem informasi", "pengantar sistem informasi modern", 100},
		{"half overlap", "sistem informasi", "sistem operasi komputer", 50},
		{"no overlap", "sistem informasi", "resep masakan padang", 0},
		{"empty query", "", "apa saja", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Relevance(tt.query, tt.content); got != tt.want {
				t.Errorf("Relevance(%q, %q) = %v, want %v", tt.query, tt.content, got, tt.want)
			}
		})
	}
}

func TestSelectBest(t *testing.T) {
	original := "sistem informasi adalah kumpulan komponen yang saling terhubung"

	snippets := []Snippet{
		// Near-duplicate of the original: relevant but useless as context.
		{Text: original, Relevance: 100},
		// Different phrasing of the same topic: the useful one.
		{Text: "rangkaian komponen terpadu untuk mengolah data menjadi keluaran bermakna bagi organisasi", Relevance: 80},
		// Irrelevant.
		{Text: "daftar harga perangkat bulan ini", Relevance: 5},
	}

	best := SelectBest(original, snippets)
	require.NotNil(t, best)
	assert.Equal(t, snippets[1].Text, best.Text)
}

func TestSelectBestEmpty(t *testing.T) {
	assert.Nil(t, SelectBest("apa pun", nil))
}

const resultPage = `<html><body>
<div class="result">
  <a class="result__title" href="https://a.example">Pengertian Sistem Informasi</a>
  <a class="result__snippet" href="https://a.example">Sistem informasi merupakan rangkaian komponen yang bekerja sama mengolah data menjadi informasi yang berguna bagi penggunanya dalam organisasi.</a>
</div>
<div class="result">
  <a class="result__title" href="https://b.example">Catatan pendek</a>
  <a class="result__snippet" href="https://b.example">Terlalu singkat.</a>
</div>
</body></html>`

func TestDuckDuckGoParsesResults(t *testing.T) {
	var gotQuery, gotRegion, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotRegion = r.URL.Query().Get("kl")
		gotLang = r.URL.Query().Get("kad")
		_, _ = w.Write([]byte(resultPage))
	}))
	defer srv.Close()

	p := NewDuckDuckGo(DuckDuckGoOptions{
		Region:    "id-id",
		Language:  "id",
		MinLength: 100,
		MaxLength: 2000,
		Endpoint:  srv.URL,
	})

	snippets, err := p.Search(context.Background(), []string{"sistem", "informasi"}, 5)
	require.NoError(t, err)

	assert.Equal(t, "sistem informasi", gotQuery)
	assert.Equal(t, "id-id", gotRegion)
	assert.Equal(t, "id", gotLang)

	// The short snippet falls below MinLength.
	require.Len(t, snippets, 1)
	assert.Equal(t, "Pengertian Sistem Informasi", snippets[0].Title)
	assert.Contains(t, snippets[0].Text, "rangkaian komponen")
	assert.Equal(t, "https://a.example", snippets[0].URL)
	assert.Greater(t, snippets[0].Relevance, 0.0)
}

func TestDuckDuckGoTruncatesLongSnippets(t *testing.T) {
	long := strings.Repeat("kata panjang ", 300)
	page := `<html><body><a class="result__snippet">` + long + `</a></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	p := NewDuckDuckGo(DuckDuckGoOptions{MinLength: 10, MaxLength: 200, Endpoint: srv.URL})
	snippets, err := p.Search(context.Background(), []string{"kata"}, 5)
	require.NoError(t, err)
	require.Len(t, snippets, 1)
	assert.LessOrEqual(t, len(snippets[0].Text), 200)
}

func TestDuckDuckGoServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewDuckDuckGo(DuckDuckGoOptions{Endpoint: srv.URL})
	_, err := p.Search(context.Background(), []string{"apa"}, 5)
	require.Error(t, err)
}

func TestDuckDuckGoEmptyKeywords(t *testing.T) {
	p := NewDuckDuckGo(DuckDuckGoOptions{Endpoint: "http://unused.invalid"})
	snippets, err := p.Search(context.Background(), nil, 5)
	require.NoError(t, err)
	assert.Nil(t, snippets)
}

func TestDuckDuckGoRespectsMaxResults(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 8; i++ {
		b.WriteString(`<a class="result__snippet">Cuplikan hasil pencarian yang cukup panjang untuk lolos saringan panjang minimum snippet ini.</a>`)
	}
	b.WriteString("</body></html>")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(b.String()))
	}))
	defer srv.Close()

	p := NewDuckDuckGo(DuckDuckGoOptions{MinLength: 20, Endpoint: srv.URL})
	snippets, err := p.Search(context.Background(), []string{"cuplikan"}, 3)
	require.NoError(t, err)
	assert.Len(t, snippets, 3)
}
