package substitute

// Academic phrase replacements applied before word-level substitution.
// Phrases are ordered longest-first so multi-word templates win over their
// substrings.
type phraseGroup struct {
	phrase       string
	alternatives []string
}

var phraseReplacements = []phraseGroup{
	{"berdasarkan latar belakang yang telah diuraikan", []string{
		"mengacu pada konteks yang telah dijelaskan sebelumnya",
		"merujuk pada uraian latar belakang di atas",
		"berlandaskan pemaparan konteks yang telah dikemukakan",
	}},
	{"maka rumusan masalah dalam penelitian ini adalah", []string{
		"sehingga permasalahan yang akan dikaji meliputi",
		"dengan demikian fokus permasalahan penelitian mencakup",
		"oleh karena itu pertanyaan penelitian yang diajukan yaitu",
	}},
	{"menambah wawasan dan pemahaman penulis", []string{
		"memperluas pengetahuan dan perspektif peneliti",
		"mengembangkan kompetensi dan sudut pandang penulis",
		"meningkatkan kapasitas dan pemahaman mendalam penulis",
	}},
	{"penelitian ini bertujuan untuk", []string{
		"kajian ini dimaksudkan untuk",
		"studi ini berupaya untuk",
		"riset ini dirancang untuk",
	}},
	{"hasil penelitian", []string{
		"temuan riset", "hasil studi", "temuan penelitian",
	}},
	{"penelitian ini", []string{
		"studi ini", "kajian ini", "riset ini",
	}},
	{"bertujuan untuk", []string{
		"dimaksudkan untuk", "ditujukan untuk", "berupaya untuk",
	}},
	{"menggunakan", []string{
		"memakai", "memanfaatkan", "mengaplikasikan",
	}},
	{"menunjukkan", []string{
		"memperlihatkan", "mengindikasikan", "membuktikan",
	}},
	{"meningkatkan", []string{
		"menaikkan", "memperbesar", "mengoptimalkan",
	}},
	{"mengurangi", []string{
		"menurunkan", "meminimalkan", "memperkecil",
	}},
	{"menghasilkan", []string{
		"menciptakan", "memproduksi", "melahirkan",
	}},
}
