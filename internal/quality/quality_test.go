package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessEmptyCandidate(t *testing.T) {
	assert.Zero(t, Assess("Teks asli.", "", 2))
	assert.Zero(t, Assess("Teks asli.", "   \n\t ", 2))
}

func TestAssessGoodRewrite(t *testing.T) {
	original := "Penelitian ini menggunakan metode kuantitatif untuk menganalisis data."
	candidate := "Kajian ini memakai pendekatan kuantitatif untuk menelaah data."

	score := Assess(original, candidate, 4)
	assert.InDelta(t, 100, score, 0.01)
}

func TestAssessUnchangedDespiteChanges(t *testing.T) {
	text := "Sistem informasi membantu proses bisnis perusahaan."

	// Identical output with claimed substitutions loses the degenerate
	// deduction plus the high-similarity deduction.
	score := Assess(text, text, 3)
	assert.InDelta(t, 40, score, 0.01)
}

func TestAssessNoChangesButDifferentText(t *testing.T) {
	original := "Sistem informasi membantu proses bisnis perusahaan."
	candidate := "Sistem informasi membantu proses bisnis modern."

	score := Assess(original, candidate, 0)
	assert.InDelta(t, 90, score, 0.01)
}

func TestAssessBarelyChanged(t *testing.T) {
	original := "Sistem informasi sangat membantu proses bisnis perusahaan modern saat ini."
	candidate := "Sistem informasi sangat membantu proses bisnis perusahaan modern saat ini juga."

	score := Assess(original, candidate, 1)
	assert.InDelta(t, 80, score, 0.01)
}

func TestAssessDoubledPreposition(t *testing.T) {
	original := "Mahasiswa berangkat ke kampus tiap pagi."
	candidate := "Mahasiswa pergi ke ke kampus setiap pagi."

	score := Assess(original, candidate, 1)
	assert.InDelta(t, 85, score, 0.01)
}

func TestAssessMissingTerminator(t *testing.T) {
	original := "Metode kualitatif digunakan dalam penelitian."
	candidate := "Metode kualitatif dipakai dalam kajian"

	score := Assess(original, candidate, 1)
	assert.InDelta(t, 90, score, 0.01)
}

func TestAssessLongWords(t *testing.T) {
	original := "Pengimplementasian restrukturisasi sistem berjalan."
	candidate := "Pengimplementasian restrukturisasi mengakomodasi konseptualisasi."

	score := Assess(original, candidate, 2)
	assert.InDelta(t, 80, score, 0.01)
}

func TestAssessRepetitiveDrift(t *testing.T) {
	original := "Hasil penelitian menunjukkan peningkatan."
	candidate := "Data data data data data data."

	// Repetition, collapsed variety, and total drift from the original
	// stack their deductions.
	score := Assess(original, candidate, 1)
	assert.InDelta(t, 30, score, 0.01)
}

func TestAssessWeirdCombinations(t *testing.T) {
	original := "Sistem itu adalah alat yang bagus."
	candidate := "Sistem itu adalah merupakan alat yang sangat sekali bagus bagus."

	score := Assess(original, candidate, 1)
	assert.InDelta(t, 70, score, 0.01)
}

func TestHasRepeatedWord(t *testing.T) {
	assert.True(t, hasRepeatedWord("alat yang bagus bagus"))
	assert.True(t, hasRepeatedWord("alat yang bagus bagus."))
	assert.False(t, hasRepeatedWord("baik, baik dan benar"))
	assert.False(t, hasRepeatedWord("hasil penelitian menunjukkan peningkatan"))
	assert.False(t, hasRepeatedWord(""))
}

func TestAssessNeverNegative(t *testing.T) {
	original := "Hasil penelitian menunjukkan peningkatan yang signifikan."
	candidate := "Data data data data di di data data"

	score := Assess(original, candidate, 1)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}
