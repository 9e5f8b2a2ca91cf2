package risk

import "regexp"

// Pattern tables for Indonesian academic prose. These were collected from
// passages that similarity-matching systems actually flagged, grouped by the
// shape of the match. Regexes run against lowercased text.

// Academic boilerplate templates. Heaviest weight: these phrases repeat
// nearly verbatim across theses.
var academicTemplates = compile(
	`berdasarkan latar belakang yang telah diuraikan`,
	`maka rumusan masalah dalam penelitian ini adalah`,
	`penelitian ini bertujuan untuk`,
	`menambah wawasan dan pemahaman penulis`,
	`menjadi referensi bagi peneliti`,
	`secara garis besar penulisan.*terbagi menjadi`,
	`bab ini menerangkan secara singkat dan jelas`,
	`pada bab ini membahas tentang teori-teori`,
	`membahas tentang metode penelitian dan alat`,
	`fokus penelitian adalah pada`,
	`penelitian ini dibatasi pada`,
	`tidak termasuk dalam ruang lingkup penelitian`,
)

// Technical definition shapes: "X adalah suatu Y" style sentences copied
// from textbooks, plus the domain-specific definitions that drew flags.
var technicalDefinitions = compile(
	`\badalah suatu\b`,
	`\badalah sebuah\b`,
	`\bmerupakan suatu\b`,
	`\bdidefinisikan sebagai\b`,
	`sistem informasi adalah`,
	`least significant bit.*adalah teknik steganografi`,
	`cara kerja metode lsb yaitu mengubah bit`,
	`metode ini banyak digunakan dalam invisible watermarking`,
	`fleksibilitas dan kapasitas penyimpanan qr code`,
)

// Citation shapes: attribution phrases plus raw reference markers.
var citationShapes = compile(
	`menurut.*\(\d{4}\)`,
	`berdasarkan.*\(\d{4}\)`,
	`et al\.?.*\(\d{4}\)`,
	`\(\d{4}\)`,
	`\bet al\b`,
	`\bvol\.\s*\d+`,
	`\bno\.\s*\d+`,
	`\bhal\.\s*\d+`,
	`\[\d+\]`,
)

// Standard methodology sentences.
var methodologyPhrases = compile(
	`penelitian ini menggunakan metode`,
	`pendekatan studi kasus`,
	`teknik pengumpulan data yang digunakan`,
	`populasi dalam penelitian ini adalah`,
	`sampel penelitian ini berjumlah`,
	`instrumen penelitian yang digunakan`,
)

// Fixed domain vocabulary. Multi-word terms are matched as substrings,
// single words on word boundaries. Deliberately excludes generic academic
// words (metode, sistem, analisis) which belong to the complexity scorer.
var domainTerms = []string{
	"sistem informasi",
	"steganografi",
	"watermarking",
	"least significant bit",
	"lsb",
	"cover image",
	"citra penampung",
	"invisible watermarking",
	"qr code",
	"quick response",
	"imperceptibility",
	"hardware",
	"software",
	"jaringan",
	"database",
	"algoritma",
	"enkripsi",
	"piksel",
}

// Priority patterns feed the complexity scorer only: shapes that benefit
// most from AI restructuring rather than word-level substitution.
var priorityPatterns = compile(
	`\badalah suatu\b`,
	`\bdidefinisikan sebagai\b`,
	`\bdapat didefinisikan\b`,
	`menurut para ahli`,
	`metode penelitian`,
	`hasil penelitian menunjukkan`,
	`berdasarkan hasil analisis`,
)

// Academic vocabulary for the complexity scorer's density factor.
var academicWords = map[string]bool{
	"penelitian":    true,
	"analisis":      true,
	"metode":        true,
	"metodologi":    true,
	"sistem":        true,
	"implementasi":  true,
	"evaluasi":      true,
	"teori":         true,
	"konsep":        true,
	"pendekatan":    true,
	"definisi":      true,
	"klasifikasi":   true,
	"kategori":      true,
	"karakteristik": true,
	"signifikan":    true,
	"variabel":      true,
	"hipotesis":     true,
	"kualitatif":    true,
	"kuantitatif":   true,
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}
