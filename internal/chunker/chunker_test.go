package chunker

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain sentences",
			text: "Kalimat pertama. Kalimat kedua! Kalimat ketiga?",
			want: []string{"Kalimat pertama.", "Kalimat kedua!", "Kalimat ketiga?"},
		},
		{
			name: "abbreviation does not split",
			text: "Dikemukakan oleh Smith et al. pada tahun 2020. Temuan itu dikutip dkk. lain juga.",
			want: []string{"Dikemukakan oleh Smith et al. pada tahun 2020.", "Temuan itu dikutip dkk. lain juga."},
		},
		{
			name: "decimal number is not a boundary",
			text: "Akurasi mencapai 99.5 persen pada pengujian. Hasil itu stabil.",
			want: []string{"Akurasi mencapai 99.5 persen pada pengujian.", "Hasil itu stabil."},
		},
		{
			name: "single initial does not split",
			text: "Ditulis oleh J. Sutabri dalam bukunya. Buku itu terbit lama.",
			want: []string{"Ditulis oleh J. Sutabri dalam bukunya.", "Buku itu terbit lama."},
		},
		{
			name: "no terminator",
			text: "kalimat tanpa titik",
			want: []string{"kalimat tanpa titik"},
		},
		{
			name: "empty",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitSentences mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitRespectsBudget(t *testing.T) {
	var sentences []string
	for i := 0; i < 20; i++ {
		sentences = append(sentences, "Kalimat pengisi nomor sekian untuk menguji pemecahan teks.")
	}
	text := strings.Join(sentences, " ")

	chunks := Split(text, 200)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 200 {
			t.Errorf("chunk %d is %d chars, budget 200", i, len(c))
		}
		// No chunk may start or end mid-word.
		if strings.HasPrefix(c, " ") || strings.HasSuffix(c, " ") {
			t.Errorf("chunk %d has edge whitespace: %q", i, c)
		}
	}
}

func TestSplitMergeRoundTrip(t *testing.T) {
	text := "Kalimat satu cukup panjang untuk diuji. Kalimat dua juga begitu! Kalimat tiga menutup paragraf ini?"
	for _, budget := range []int{30, 50, 80, 1000} {
		got := Merge(Split(text, budget))
		if got != text {
			t.Errorf("budget %d round-trip:\n got %q\nwant %q", budget, got, text)
		}
	}
}

func TestSplitOversizedSentence(t *testing.T) {
	long := "Kalimat tunggal yang jauh melebihi anggaran karakter apa pun " + strings.Repeat("dan terus berlanjut ", 20) + "hingga selesai."
	chunks := Split(long, 50)

	if len(chunks) != 1 {
		t.Fatalf("oversized single sentence should be one chunk, got %d", len(chunks))
	}
	if chunks[0] != strings.TrimSpace(long) {
		t.Errorf("oversized chunk altered: %q", chunks[0])
	}
}

func TestSplitOversizedSentenceAmongNormal(t *testing.T) {
	long := strings.Repeat("panjang sekali ", 10)
	text := "Pendek saja. " + strings.TrimSpace(long) + ". Penutup singkat."
	chunks := Split(text, 40)

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3: %#v", len(chunks), chunks)
	}
	if Merge(chunks) != text {
		t.Errorf("round-trip mismatch: %q", Merge(chunks))
	}
}

func TestParagraphs(t *testing.T) {
	text := "Paragraf pertama\nmasih lanjut.\n\nParagraf kedua.\r\n\r\nParagraf  ketiga\tdengan spasi ganda."
	got := Paragraphs(text)
	want := []string{
		"Paragraf pertama masih lanjut.",
		"Paragraf kedua.",
		"Paragraf ketiga dengan spasi ganda.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Paragraphs mismatch (-want +got):\n%s", diff)
	}
}
