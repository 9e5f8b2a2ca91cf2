package synonym

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeResource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sinonim.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeResource(t, `{
		"menggunakan": {"sinonim": ["memakai", "memanfaatkan"], "tag": "v"},
		"besar": {"sinonim": ["luas", "raya"], "tag": "a"}
	}`)

	res, err := Load(path)
	require.NoError(t, err)
	assert.Greater(t, res.Len(), 0)

	// Group membership is symmetric: every member can reach the others.
	assert.ElementsMatch(t, []string{"memakai", "memanfaatkan"}, res.Lookup("menggunakan"))
	assert.Contains(t, res.Lookup("memakai"), "menggunakan")
	assert.Contains(t, res.Lookup("memakai"), "memanfaatkan")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadMalformedJSON(t *testing.T) {
	path := writeResource(t, `{"kata": [not json`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadFiltersNoise(t *testing.T) {
	path := writeResource(t, `{
		"kata": {"sinonim": ["ab", "morfem123", "leksem (ling)", "istilah"], "tag": "n"}
	}`)
	res, err := Load(path)
	require.NoError(t, err)

	alts := res.Lookup("kata")
	assert.Equal(t, []string{"istilah"}, alts)
}

func TestLookupAcademic(t *testing.T) {
	res := NewFromGroups(map[string][]string{
		"penelitian": {"riset", "kajian", "studi"},
		"rumah":      {"hunian", "kediaman"},
	})

	assert.NotNil(t, res.LookupAcademic("penelitian"))
	assert.Nil(t, res.LookupAcademic("rumah"))
	assert.NotNil(t, res.Lookup("rumah"))
}

func TestLookupDeterministicOrder(t *testing.T) {
	res := NewFromGroups(map[string][]string{
		"cepat": {"kilat", "deras", "laju", "gesit"},
	})
	first := res.Lookup("cepat")
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, res.Lookup("cepat")); diff != "" {
			t.Fatalf("alternative order changed (-first +now):\n%s", diff)
		}
	}
	// Sorted order makes downstream substitution reproducible.
	assert.Equal(t, []string{"deras", "gesit", "kilat", "laju"}, first)
}

func TestLookupNormalizesCase(t *testing.T) {
	res := NewFromGroups(map[string][]string{"besar": {"luas"}})
	assert.Equal(t, res.Lookup("besar"), res.Lookup("Besar"))
	assert.Equal(t, res.Lookup("besar"), res.Lookup("  BESAR "))
}

func TestExtractKeywords(t *testing.T) {
	text := "Sistem informasi akuntansi membantu manajemen perusahaan. Sistem informasi juga membantu audit internal perusahaan."
	got := ExtractKeywords(text, 3)

	require.Len(t, got, 3)
	// "sistem", "informasi", "membantu" and "perusahaan" each appear twice;
	// ties resolve alphabetically, so the top three are stable.
	assert.Equal(t, []string{"informasi", "membantu", "perusahaan"}, got)
}

func TestExtractKeywordsSkipsStopWords(t *testing.T) {
	got := ExtractKeywords("yang dengan untuk pada adalah komputer", 5)
	assert.Equal(t, []string{"komputer"}, got)
}

func TestExtractKeywordsEmpty(t *testing.T) {
	assert.Nil(t, ExtractKeywords("", 5))
	assert.Nil(t, ExtractKeywords("di ke la", 5))
}
