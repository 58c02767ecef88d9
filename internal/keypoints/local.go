package keypoints

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spacesedan/reviewsense/internal/language"
)

const (
	// MaxLocalLineRunes caps a locally extracted line, bullet included.
	MaxLocalLineRunes = 100

	minSentenceRunes   = 10
	longSentenceRunes  = 50
	maxScoredSentences = 15
	maxLocalPoints     = 5
	fallbackPoints     = 3
)

const (
	TooShortIndonesian = Bullet + "Teks review terlalu pendek untuk mengekstrak poin penting"
	TooShortEnglish    = Bullet + "Review text is too short to extract key points"
)

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

type keywordCategory struct {
	weight   int
	keywords []string
}

var indonesianKeywords = []keywordCategory{
	{weight: 2, keywords: []string{
		"bagus", "mantap", "keren", "puas", "sangat bagus", "sangat baik", "sangat puas",
		"sempurna", "luar biasa", "memuaskan", "terbaik", "paling bagus", "paling baik",
		"recommended", "rekomendasi", "direkomendasikan", "worth it", "worth every penny",
		"suka banget", "love it", "sangat suka", "sangat senang", "terkesan", "impressed",
		"excellent", "amazing", "fantastic", "wonderful", "outstanding", "enak", "lezat",
	}},
	{weight: 2, keywords: []string{
		"jelek", "buruk", "kecewa", "tidak puas", "tidak memuaskan", "mengecewakan", "gagal",
		"rusak", "cacat", "tidak sesuai", "tidak cocok", "tidak worth it", "tidak direkomendasikan",
		"terburuk", "paling jelek", "paling buruk", "waste of money", "buang uang", "rugi",
		"terrible", "awful", "horrible", "worst", "disappointed", "masalah", "kurang baik", "kurang bagus",
	}},
	{weight: 2, keywords: []string{
		"rekomendasi", "direkomendasikan", "sarankan", "sebaiknya", "harus", "disarankan",
		"recommend", "suggest", "should", "must", "advise", "worth buying",
	}},
	{weight: 1, keywords: []string{
		"kualitas", "harga", "pengiriman", "pelayanan", "customer service", "fitur", "desain",
		"performa", "performance", "nilai", "value", "barang", "produk", "packaging", "kemasan",
		"ukuran", "size", "warna", "color", "material", "bahan", "durability", "ketahanan",
		"warranty", "garansi", "return", "pengembalian", "refund", "rasa", "tampilan",
	}},
}

var englishKeywords = []keywordCategory{
	{weight: 2, keywords: []string{"excellent", "great", "good", "amazing", "wonderful", "love", "perfect", "fantastic", "awesome", "outstanding"}},
	{weight: 2, keywords: []string{"bad", "terrible", "awful", "disappointed", "hate", "worst", "poor", "horrible", "waste", "broke"}},
	{weight: 2, keywords: []string{"recommend", "suggest", "should", "must", "advise"}},
	{weight: 1, keywords: []string{"quality", "price", "delivery", "shipping", "customer service", "feature", "design", "performance", "value", "battery", "size"}},
}

// splitSentences splits on terminal punctuation and keeps fragments longer
// than minSentenceRunes, each collapsed onto a single line.
func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceEnd.Split(text, -1) {
		s = strings.Join(strings.Fields(s), " ")
		if utf8.RuneCountInString(s) > minSentenceRunes {
			out = append(out, s)
		}
	}
	return out
}

// scoreSentence adds a category's weight once if any of its keywords appears.
func scoreSentence(sentence string, categories []keywordCategory) int {
	lower := strings.ToLower(sentence)
	score := 0
	for _, c := range categories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				score += c.weight
				break
			}
		}
	}
	if utf8.RuneCountInString(sentence) > longSentenceRunes {
		score++
	}
	return score
}

type scoredSentence struct {
	text  string
	score int
}

func selectSentences(sentences []string, categories []keywordCategory) []string {
	candidates := sentences
	if len(candidates) > maxScoredSentences {
		candidates = candidates[:maxScoredSentences]
	}

	scored := make([]scoredSentence, 0, len(candidates))
	for _, s := range candidates {
		scored = append(scored, scoredSentence{text: s, score: scoreSentence(s, categories)})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	var selected []string
	for _, s := range scored {
		if len(selected) == maxLocalPoints {
			break
		}
		if s.score > 0 {
			selected = append(selected, s.text)
		}
	}
	if len(selected) == 0 {
		n := min(fallbackPoints, len(sentences))
		selected = sentences[:n]
	}
	return selected
}

func formatLocalPoint(sentence string) string {
	point := strings.Join(strings.Fields(sentence), " ")
	point = strings.TrimSpace(listMarker.ReplaceAllString(point, ""))
	limit := MaxLocalLineRunes - utf8.RuneCountInString(Bullet)
	if runes := []rune(point); len(runes) > limit {
		point = strings.TrimRight(string(runes[:limit-3]), " ") + "..."
	}
	return Bullet + point
}

// bulletLines reformats every line of text as a capped local point and drops
// lines with no letters or digits left.
func bulletLines(text string) string {
	var points []string
	for _, line := range strings.Split(text, "\n") {
		if p := formatLocalPoint(line); strings.ContainsFunc(p, isWordRune) {
			points = append(points, p)
		}
	}
	return strings.Join(points, "\n")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Local extracts key points without any provider. It never returns an empty
// string.
func Local(text string) string {
	lang := language.Detect(text)

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return tooShort(lang)
	}

	categories := englishKeywords
	if lang == language.Indonesian {
		categories = indonesianKeywords
	}

	result := bulletLines(strings.Join(selectSentences(sentences, categories), "\n"))

	if lang == language.Indonesian {
		if normalized := bulletLines(NormalizeIndonesian(result)); normalized != "" {
			return normalized
		}
	}
	if result == "" {
		return tooShort(lang)
	}
	return result
}

func tooShort(lang language.Language) string {
	if lang == language.Indonesian {
		return TooShortIndonesian
	}
	return TooShortEnglish
}
