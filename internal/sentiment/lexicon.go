package sentiment

import (
	"regexp"
	"strings"

	"github.com/spacesedan/reviewsense/internal/models"
)

var strongPositive = []string{
	"sangat bagus", "sangat baik", "sangat puas", "sangat memuaskan", "sangat direkomendasikan",
	"luar biasa", "sempurna", "mantap banget", "keren banget", "bagus banget",
	"sangat suka", "sangat senang", "sangat terkesan", "sangat impressed",
	"worth it", "worth every penny", "sangat worth",
	"terbaik", "paling bagus", "paling baik", "paling puas",
	"excellent", "amazing", "fantastic", "wonderful", "outstanding",
	"recommended", "highly recommended",
	"love it", "suka banget", "cinta banget", "fall in love",
	"keren dan enak", "bagus dan enak", "keren dan bagus", "enak dan keren", "mantap dan enak",
	"keren enak", "bagus enak", "mantap enak", "enak mantap",
	"sangat enak", "enak banget", "sangat lezat", "lezat banget",
	"sangat menarik", "menarik banget", "cantik banget", "sangat cantik",
	"puas banget", "sangat cocok", "cocok banget", "sangat sesuai", "sesuai banget",
	"produknya keren", "produknya bagus", "produknya enak", "produknya mantap",
	"barangnya keren", "barangnya bagus", "barangnya enak", "barangnya mantap",
	"rasanya enak", "rasanya lezat", "rasanya nikmat", "rasanya sedap",
	"tampilannya keren", "tampilannya bagus", "tampilannya cantik", "tampilannya menarik",
	"kualitasnya bagus", "kualitasnya baik", "kualitasnya memuaskan",
	"harganya worth", "harganya sesuai", "harganya pas",
	"enak dimakan", "lezat dimakan", "nikmat dimakan", "sedap dimakan",
	"enak banget dimakan", "sangat enak dimakan",
	"keren dan enak dimakan", "bagus dan enak dimakan", "keren enak dimakan",
	"produknya keren dan enak", "produknya bagus dan enak", "barangnya keren dan enak",
}

var moderatePositive = []string{
	"bagus", "baik", "puas", "memuaskan", "oke", "ok", "lumayan", "cukup baik",
	"keren", "mantap", "nice", "good", "great", "fine", "decent",
	"rekomendasi", "direkomendasikan", "recommend", "suggest",
	"senang", "suka", "terkesan", "impressed", "satisfied",
	"enak", "rasa enak", "lezat", "nikmat", "sedap", "gurih", "manis",
	"cantik", "menarik", "indah", "rapi", "bersih", "bagus tampilannya",
	"cocok", "sesuai", "pas", "tepat", "benar", "tepat sasaran",
	"produknya", "barangnya", "kualitasnya", "harganya", "pelayanannya",
	"keren dan", "bagus dan", "enak dan", "mantap dan",
}

var strongNegative = []string{
	"sangat jelek", "sangat buruk", "sangat kecewa", "sangat mengecewakan",
	"sangat tidak puas", "sangat tidak memuaskan", "sangat tidak direkomendasikan",
	"sangat tidak sesuai", "sangat tidak cocok", "sangat tidak worth it",
	"terburuk", "paling jelek", "paling buruk", "paling kecewa",
	"gagal total", "sangat gagal", "sangat rusak", "sangat cacat",
	"waste of money", "buang uang", "rugi", "sangat rugi",
	"terrible", "awful", "horrible", "worst", "very disappointed",
}

var moderateNegative = []string{
	"jelek", "buruk", "kecewa", "mengecewakan", "tidak puas", "tidak memuaskan",
	"tidak sesuai", "tidak cocok", "tidak worth it", "tidak direkomendasikan",
	"gagal", "rusak", "cacat", "kurang baik", "kurang bagus", "kurang memuaskan",
	"bad", "poor", "disappointed", "unsatisfied", "not good", "not worth",
	"masalah", "banyak masalah", "sering masalah",
}

// bareWords are terse adjectives that carry sentiment on their own.
var bareWords = []string{"keren", "enak", "bagus", "mantap", "lezat", "nikmat", "sedap", "gurih"}

var positivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`produknya\s+(keren|bagus|enak|mantap)`),
	regexp.MustCompile(`barangnya\s+(keren|bagus|enak|mantap)`),
	regexp.MustCompile(`(keren|bagus|mantap)\s+dan\s+(enak|lezat)`),
	regexp.MustCompile(`(enak|lezat)\s+(dimakan|rasanya|banget)`),
	regexp.MustCompile(`(keren|bagus|mantap)\s+(enak|lezat)\s+dimakan`),
	regexp.MustCompile(`produknya\s+(keren|bagus)\s+dan\s+enak`),
	regexp.MustCompile(`produknya\s+(keren|bagus|mantap)\s+dan\s+(enak|lezat)\s+dimakan`),
	regexp.MustCompile(`barangnya\s+(keren|bagus|mantap)\s+dan\s+(enak|lezat)`),
	regexp.MustCompile(`(keren|bagus|mantap)\s+dan\s+(enak|lezat)\s+dimakan`),
}

var possessive = regexp.MustCompile(`\b(produknya|barangnya|rasanya|tampilannya)\b`)

// negation flips the polarity of the phrase it precedes. A negated positive
// feeds the negative score and the reverse.
type negation struct {
	re    *regexp.Regexp
	feeds models.SentimentLabel
}

var negations = []negation{
	{regexp.MustCompile(`tidak\s+(bagus|baik|puas|memuaskan|direkomendasikan|worth|suka|senang)`), models.SentimentNegative},
	{regexp.MustCompile(`belum\s+(bagus|baik|puas|memuaskan)`), models.SentimentNegative},
	{regexp.MustCompile(`bukan\s+(bagus|baik|puas|memuaskan)`), models.SentimentNegative},
	{regexp.MustCompile(`kurang\s+(bagus|baik|puas|memuaskan)`), models.SentimentNegative},
	{regexp.MustCompile(`(tidak|belum|bukan|kurang)\s+(enak|keren|mantap|lezat|nikmat|sedap|gurih)`), models.SentimentNegative},
	{regexp.MustCompile(`tidak\s+(jelek|buruk|kecewa|mengecewakan)`), models.SentimentPositive},
}

// phraseSet matches multi-word phrases by substring and single words on word
// boundaries so "ok" never fires inside "produk" or "toko".
type phraseSet struct {
	substrings []string
	words      []*regexp.Regexp
}

func newPhraseSet(list []string) phraseSet {
	var ps phraseSet
	seen := make(map[string]struct{}, len(list))
	for _, p := range list {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if strings.Contains(p, " ") {
			ps.substrings = append(ps.substrings, p)
			continue
		}
		ps.words = append(ps.words, wordPattern(p))
	}
	return ps
}

func (ps phraseSet) count(lower string) int {
	n := 0
	for _, s := range ps.substrings {
		if strings.Contains(lower, s) {
			n++
		}
	}
	for _, re := range ps.words {
		if re.MatchString(lower) {
			n++
		}
	}
	return n
}

// masked blanks every span negated toward the opposite of side, so a phrase
// like "tidak enak" no longer counts for the positive lexicon.
func masked(lower string, side models.SentimentLabel) string {
	for _, n := range negations {
		if n.feeds != side {
			lower = n.re.ReplaceAllString(lower, " ")
		}
	}
	return lower
}

func wordPattern(word string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
}

var (
	strongPositiveSet   = newPhraseSet(strongPositive)
	moderatePositiveSet = newPhraseSet(moderatePositive)
	strongNegativeSet   = newPhraseSet(strongNegative)
	moderateNegativeSet = newPhraseSet(moderateNegative)
	bareWordSet         = newPhraseSet(bareWords)
)
