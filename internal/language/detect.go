// Package language tells Indonesian review text apart from English.
//
// A single Indonesian indicator, pattern or word-order match is enough to
// route text to the Indonesian path.
package language

import (
	"regexp"
	"strings"
)

type Language string

const (
	Indonesian Language = "id"
	English    Language = "en"
)

func (l Language) String() string { return string(l) }

// indicators are matched as plain substrings of the lower-cased text.
var indicators = []string{
	// function words
	"yang", "dan", "atau", "dengan", "untuk", "dari", "ini", "itu", "sangat", "sekali",
	"saya", "kami", "mereka", "anda", "sudah", "belum", "akan", "tidak", "bukan",
	"jadi", "juga", "saja", "sih", "nih", "dong", "lah", "kan", "ya", "gak", "ga",
	// sentiment
	"bagus", "jelek", "buruk", "mantap", "keren", "puas", "kecewa", "mengecewakan",
	"memuaskan", "luar biasa", "sempurna", "terbaik", "paling bagus", "paling baik",
	// product, price, shipping
	"produk", "barang", "kualitas", "harga", "pelayanan", "pengiriman", "rekomendasi",
	"direkomendasikan", "worth it",
	// intensifiers and common phrases
	"banget", "amat", "terlalu", "cukup", "lumayan", "agak", "sedikit",
	"suka", "senang", "terkesan", "ada masalah", "tidak sesuai", "tidak cocok",
	"kurang baik", "kurang bagus", "rugi", "buang uang",
	// possessive forms
	"produknya", "barangnya", "kualitasnya", "harganya", "pelayanannya", "pengirimannya",
	"rasanya", "tampilannya", "kemasannya", "packagingnya",
	// food and appearance
	"enak", "lezat", "nikmat", "sedap", "gurih", "manis",
	"cantik", "menarik", "indah", "rapi", "bersih",
}

var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(sangat|amat|terlalu|banget)\s+(bagus|baik|jelek|buruk|puas|kecewa|enak|lezat|keren)`),
	regexp.MustCompile(`\b(paling|ter)\s+(bagus|baik|jelek|buruk)`),
	regexp.MustCompile(`\b(tidak|belum|bukan)\s+(bagus|baik|puas|memuaskan|direkomendasikan)`),
	regexp.MustCompile(`\b(kurang|agak|sedikit)\s+(bagus|baik|puas|memuaskan)`),
	regexp.MustCompile(`\b(suka|senang|terkesan)\s+(banget|sekali)`),
	regexp.MustCompile(`\b(enak|keren|bagus|mantap)\s+(banget|sekali|sangat|amat)`),
	regexp.MustCompile(`\b(produk|barang|kualitas|harga|rasa|tampilan|kemasan|packaging)nya\s+`),
	regexp.MustCompile(`\b(produknya|barangnya)\s+(keren|bagus|enak|mantap|jelek|buruk)`),
	regexp.MustCompile(`\b(rasanya|tampilannya)\s+(enak|lezat|keren|bagus)`),
	regexp.MustCompile(`\b(keren|bagus|mantap)\s+dan\s+(enak|lezat|bagus|keren)`),
	regexp.MustCompile(`\b(enak|lezat)\s+(dimakan|rasanya|banget)`),
	regexp.MustCompile(`\b(direkomendasikan|rekomendasi|sarankan|disarankan)\s+(untuk|bagi|kepada)`),
}

// wordOrder captures the "<noun>nya <adjective>" order English never produces.
var wordOrder = []*regexp.Regexp{
	regexp.MustCompile(`\b\w+nya\s+(keren|bagus|enak|mantap|jelek|buruk)`),
	regexp.MustCompile(`\b\w+nya\s+dan\s+\w+`),
}

// Signals holds the three independent counts the decision is made from.
type Signals struct {
	Indicators int
	Patterns   int
	WordOrder  int
}

// Indonesian reports whether any signal fired.
func (s Signals) Indonesian() bool {
	return s.Indicators >= 1 || s.Patterns >= 1 || s.WordOrder >= 1
}

// Inspect counts every signal without deciding.
func Inspect(text string) Signals {
	lower := strings.ToLower(text)

	var s Signals
	for _, word := range indicators {
		if strings.Contains(lower, word) {
			s.Indicators++
		}
	}
	for _, re := range patterns {
		if re.MatchString(lower) {
			s.Patterns++
		}
	}
	for _, re := range wordOrder {
		if re.MatchString(lower) {
			s.WordOrder++
		}
	}
	return s
}

// Detect classifies text as Indonesian or English. Empty text is English.
func Detect(text string) Language {
	if strings.TrimSpace(text) == "" {
		return English
	}
	if Inspect(text).Indonesian() {
		return Indonesian
	}
	return English
}
