// Package synonym loads the synonym resource: an opaque word -> alternatives
// lookup backed by a JSON dictionary. The resource is loaded once at startup
// and treated as immutable for the process lifetime; a missing resource is a
// fatal configuration error, not a per-request failure.
package synonym

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Entry mirrors one dictionary record in the JSON resource.
type entry struct {
	Sinonim []string `json:"sinonim"`
	Tag     string   `json:"tag"`
}

// Resource is an immutable synonym lookup. Safe for concurrent readers.
type Resource struct {
	groups   map[string][]string
	academic map[string][]string
}

// Academic word stems used to flag high-value substitution targets.
var academicStems = []string{
	"penelitian", "analisis", "studi", "riset", "kajian",
	"menggunakan", "menerapkan", "memanfaatkan", "mengimplementasikan",
	"menunjukkan", "mengindikasikan", "membuktikan", "menghasilkan",
	"bertujuan", "bermaksud", "dimaksudkan", "berupaya",
	"pendekatan", "metode", "teknik", "prosedur", "sistem", "struktur",
}

// Load reads the JSON dictionary at path. Entries map a headword to its
// alternatives; every member of a group becomes a key whose alternatives are
// the other members.
func Load(path string) (*Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("synonym resource unavailable at %s: %w", path, err)
	}

	var raw map[string]entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse synonym resource %s: %w", path, err)
	}

	groups := make(map[string]map[string]bool)
	for word, e := range raw {
		head := normalize(word)
		if head == "" || len(e.Sinonim) == 0 {
			continue
		}
		members := []string{head}
		for _, s := range e.Sinonim {
			if clean := normalize(s); usable(clean) {
				members = append(members, clean)
			}
		}
		if len(members) < 2 {
			continue
		}
		for _, m := range members {
			if groups[m] == nil {
				groups[m] = make(map[string]bool)
			}
			for _, other := range members {
				if other != m {
					groups[m][other] = true
				}
			}
		}
	}

	return build(groups), nil
}

// NewFromGroups builds a resource directly from word -> alternatives pairs.
// Intended for tests and embedded defaults.
func NewFromGroups(pairs map[string][]string) *Resource {
	groups := make(map[string]map[string]bool)
	for word, alts := range pairs {
		head := normalize(word)
		if groups[head] == nil {
			groups[head] = make(map[string]bool)
		}
		for _, a := range alts {
			groups[head][normalize(a)] = true
		}
	}
	return build(groups)
}

func build(groups map[string]map[string]bool) *Resource {
	r := &Resource{
		groups:   make(map[string][]string, len(groups)),
		academic: make(map[string][]string),
	}
	for word, set := range groups {
		alts := make([]string, 0, len(set))
		for a := range set {
			alts = append(alts, a)
		}
		sort.Strings(alts)
		r.groups[word] = alts
		if isAcademic(word) {
			// Keep the strongest alternatives for academic words.
			limit := len(alts)
			if limit > 5 {
				limit = 5
			}
			r.academic[word] = alts[:limit]
		}
	}
	return r
}

// Lookup returns the alternatives for word, or nil. The returned slice is
// shared and must not be mutated.
func (r *Resource) Lookup(word string) []string {
	return r.groups[normalize(word)]
}

// LookupAcademic returns the curated alternatives when word is an academic
// term, or nil.
func (r *Resource) LookupAcademic(word string) []string {
	return r.academic[normalize(word)]
}

// Len reports the number of distinct words with alternatives.
func (r *Resource) Len() int {
	return len(r.groups)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// usable filters out dictionary noise: very short entries, digits, and
// entries carrying part-of-speech or usage markers.
func usable(s string) bool {
	if len(s) < 3 {
		return false
	}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return false
		}
	}
	return !strings.ContainsAny(s, "()[]")
}

func isAcademic(word string) bool {
	for _, stem := range academicStems {
		if word == stem || strings.Contains(word, stem) {
			return true
		}
	}
	return false
}
