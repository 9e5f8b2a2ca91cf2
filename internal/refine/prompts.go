package refine

import (
	"fmt"
	"strings"

	"parafrase/internal/types"
)

// =============================================================================
// PROMPT TEMPLATES
// =============================================================================

// The three escalation prompts are written in Indonesian because the engine
// targets Indonesian academic prose. Level 1 asks for a plain formal
// paraphrase, level 2 names the matched patterns so the model can break them,
// level 3 demands full structural rewriting of high-risk passages.

const promptLevel1 = `Kamu adalah ahli parafrase akademik bahasa Indonesia. Parafrase teks berikut dengan natural tapi tetap formal:

TEKS: %s

INSTRUKSI:
- Ganti dengan sinonim yang tepat
- Ubah struktur kalimat
- Pertahankan makna akademik
- Hasil harus natural dan mudah dibaca

PARAFRASE:`

const promptLevel2 = `Kamu adalah pakar penulisan ulang yang memahami sistem pencocokan teks akademik.

Teks ini mengandung pola berisiko tinggi yang mudah dikenali:
POLA: %s

TEKS: %s

TUGAS: Susun ulang teks ini agar pola tersebut tidak lagi muncul:
- Ubah struktur template akademik yang baku
- Variasikan definisi teknis dengan pendekatan berbeda
- Pakai terminologi alternatif untuk istilah bidang
- Pecah atau gabungkan kalimat untuk mengubah pola

PARAFRASE:`

const promptLevel3 = `Kamu adalah master parafrase untuk teks akademik berisiko sangat tinggi.

KATEGORI RISIKO: %s
POLA TERDETEKSI:
%s
TINGKAT RISIKO: %d%%

TEKS: %s

TUGAS: Restrukturisasi menyeluruh tanpa mengubah makna:
- Susun ulang kalimat secara lengkap (aktif ke pasif, urutan terbalik)
- Gunakan sinonim yang jarang dipakai untuk istilah teknis
- Pecah kalimat kompleks atau gabungkan kalimat sederhana
- Urutkan ulang alur informasi
- Hilangkan frasa template akademik yang umum
- Ubah definisi teknis menjadi uraian penjelas

HASIL:`

// BuildPrompt renders the escalation prompt for the given level.
// Levels outside 1..3 are clamped into that range.
func BuildPrompt(text string, level int, assessment types.RiskAssessment) string {
	switch {
	case level <= 1:
		return fmt.Sprintf(promptLevel1, text)
	case level == 2:
		return fmt.Sprintf(promptLevel2, patternSummary(assessment.Matches, 3, ", "), text)
	default:
		patterns := patternSummary(assessment.Matches, 5, "\n")
		return fmt.Sprintf(promptLevel3,
			assessment.Category.String(),
			patterns,
			int(assessment.Score*100),
			text)
	}
}

// patternSummary lists up to max matched pattern descriptions.
func patternSummary(matches []types.PatternMatch, max int, sep string) string {
	if len(matches) == 0 {
		return "(tidak ada pola spesifik)"
	}
	if len(matches) > max {
		matches = matches[:max]
	}
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		desc := m.Pattern
		if len(desc) > 50 {
			desc = desc[:50]
		}
		if sep == "\n" {
			desc = "- " + desc
		}
		parts = append(parts, desc)
	}
	return strings.Join(parts, sep)
}

// GenerationParams are the per-level sampling settings for a refinement call.
type GenerationParams struct {
	Temperature     float32
	TopK            float32
	TopP            float32
	MaxOutputTokens int32
}

// ParamsForLevel scales sampling settings with the escalation level.
// Higher levels get more creative latitude and a larger output budget.
func ParamsForLevel(level int) GenerationParams {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	return GenerationParams{
		Temperature:     0.3 + 0.1*float32(level),
		TopK:            float32(40 + level*20),
		TopP:            0.9,
		MaxOutputTokens: int32(2048 + level*1024),
	}
}
