package keypoints

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Bullet prefixes every key-point line.
	Bullet = "• "

	// MaxLineRunes caps a normalized line, bullet included.
	MaxLineRunes = 120

	shortLineRunes  = 30
	bareHeaderRunes = 15
	minPartRunes    = 10

	// maxPasses bounds the fixpoint loop. Real output settles in two.
	maxPasses = 8
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t\f\v\p{Zs}]+`)
	listMarker      = regexp.MustCompile(`^(?:\d+[.)]\s+|[-•*·–]+\s*)+`)
	doubledBullet   = regexp.MustCompile(`•\s*•`)
	boldHeader      = regexp.MustCompile(`\*\*[^*]+\*\*\s*:\s*`)
	boldSpan        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	leadingPunct    = regexp.MustCompile(`^[\s,;:.)\]]+`)
)

// lineRules is the language-specific catalogue a normalizer applies.
type lineRules struct {
	// boilerplate is removed wherever it appears.
	boilerplate []*regexp.Regexp

	// missing marks lines that only say information is absent; they are dropped.
	missing []*regexp.Regexp

	// headers are template section names removed from a line.
	headers []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+e))
	}
	return out
}

var indonesianRules = lineRules{
	boilerplate: compileAll(
		`\bberikut adalah\s*:?\s*`,
		`\bini adalah\s*:?\s*`,
		`\bpoin-poin penting\s*:?\s*`,
		`\bringkasan\s*:?\s*`,
		`\bkesimpulan\s*:?\s*`,
		`\bsecara umum\s*,?\s*`,
		`\bpada dasarnya\s*,?\s*`,
		`\bsecara keseluruhan\s*,?\s*`,
		`\bproduk\s+(ini\s+)?(memiliki|mempunyai)\s+`,
		`\bpengguna\s+(mengatakan|menyebutkan|mengungkapkan|mengungkap|menulis|menyatakan)\s+(bahwa\s+)?`,
		`\breview\s+(ini\s+)?(menunjukkan|mengindikasikan)\s+(bahwa\s+)?`,
		`\bberdasarkan review( ini)?\s*,?\s*`,
		`\bdari review( ini)?\s*,?\s*`,
		`\bdapat disimpulkan\s+(bahwa\s+)?`,
		`\bdapat dilihat\s+(bahwa\s+)?`,
		`\bdari analisis\s+`,
		`\b(pada|dalam) review\s+`,
	),
	missing: compileAll(
		`\btidak\s+(disebutkan|disebut|diketahui|tersedia|spesifik|rinci|detail)\b`,
		`\bbelum\s+(disebutkan|disebut|diketahui)\b`,
		`\bkurang\s+(informasi|data|detail|spesifik)\b`,
		`\bperlu\s+(lebih|informasi|data|detail)\b`,
		`\btidak\s+(ada|tersedia)\s+informasi\b`,
	),
	headers: compileAll(
		`\bkekurangan\s+(atau|dan)\s+kelebihan\s+utama(\s+produk)?\s*:\s*`,
		`\bkelebihan\s+(atau|dan)\s+kekurangan\s+utama(\s+produk)?\s*:\s*`,
		`\bfitur\s+dan\s+kualitas\s*:\s*`,
		`\bkesan\s+keseluruhan(\s+(pengguna|user))?\s*:\s*`,
		`\brekomendasi\s+atau\s+peringatan\s*:\s*`,
		`\bkey\s+points?\s*:\s*`,
		`\bmain\s+concerns?(\s+or\s+praises)?\s*:\s*`,
		`\bspecific\s+features?(\s+mentioned)?\s*:\s*`,
		`\boverall\s+impression\s*:\s*`,
	),
}

var englishRules = lineRules{
	boilerplate: compileAll(
		`\bhere (are|is) (the )?(key points|a summary|the summary)[^:\n]*:\s*`,
		`\bin summary\s*,?\s*`,
		`\bto summarize\s*,?\s*`,
		`\boverall\s*,\s*`,
		`\b(this|the) product (has|features)\s+`,
		`\bthe (user|reviewer|customer) (says|said|mentions|mentioned|states|stated|notes|noted)\s+(that\s+)?`,
		`\b(this|the) review (shows|indicates|suggests)\s+(that\s+)?`,
		`\bbased on (this|the) review\s*,?\s*`,
		`\bsummary\s*:\s*`,
	),
	missing: compileAll(
		`\bnot (mentioned|specified|provided|stated|discussed)\b`,
		`\bno (information|details?|mention)\b`,
		`\bunspecified\b`,
	),
	headers: compileAll(
		`\bkey\s+points?\s*:\s*`,
		`\bmain\s+concerns?(\s+or\s+praises)?\s*:\s*`,
		`\bpraises?\s*:\s*`,
		`\bspecific\s+features?(\s+mentioned)?\s*:\s*`,
		`\boverall\s+impression\s*:\s*`,
		`\brecommendations?(\s+or\s+warnings?)?\s*:\s*`,
		`\bwarnings?\s*:\s*`,
	),
}

var relativeFiller = regexp.MustCompile(`(?i)\s+yang\s+(memiliki|mempunyai|adalah)\s+`)

// NormalizeIndonesian turns generated Indonesian text into bullet lines of at
// most MaxLineRunes. It repeats its pass until the text stops changing, so the
// result is stable under a second call.
func NormalizeIndonesian(text string) string {
	return fixpoint(text, func(s string) string { return indonesianRules.pass(s, true) })
}

// NormalizeEnglish is NormalizeIndonesian with the English catalogue.
func NormalizeEnglish(text string) string {
	return fixpoint(text, func(s string) string { return englishRules.pass(s, false) })
}

func fixpoint(text string, pass func(string) string) string {
	current := pass(text)
	for i := 1; i < maxPasses; i++ {
		next := pass(current)
		if next == current {
			break
		}
		current = next
	}
	return current
}

// lineStage is one transform in the pipeline. Returning false drops the line.
type lineStage func(line string) (string, bool)

func (r lineRules) stages(indonesian bool) []lineStage {
	stages := []lineStage{
		collapseSpace,
		stripBold,
		stripListMarker,
		r.dropMissing,
		r.stripBoilerplate,
	}
	if indonesian {
		stages = append(stages, stripRelativeFiller)
	}
	return append(stages,
		r.stripHeaders,
		trimLeadingPunct,
		stripListMarker,
		dropBareHeader,
		trimShortPeriod,
		capitalize,
	)
}

func (r lineRules) pass(text string, indonesian bool) string {
	stages := r.stages(indonesian)

	var out []string
	for _, raw := range strings.Split(text, "\n") {
		line, keep := raw, true
		for _, stage := range stages {
			if line, keep = stage(line); !keep {
				break
			}
		}
		if !keep {
			continue
		}
		for _, part := range wrap(line, MaxLineRunes-utf8.RuneCountInString(Bullet)) {
			out = append(out, Bullet+part)
		}
	}
	return strings.Join(out, "\n")
}

func collapseSpace(line string) (string, bool) {
	line = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
	line = doubledBullet.ReplaceAllString(line, "•")
	return line, line != ""
}

func stripListMarker(line string) (string, bool) {
	line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
	return line, line != ""
}

func (r lineRules) dropMissing(line string) (string, bool) {
	for _, re := range r.missing {
		if re.MatchString(line) {
			return "", false
		}
	}
	return line, true
}

func (r lineRules) stripBoilerplate(line string) (string, bool) {
	for _, re := range r.boilerplate {
		line = re.ReplaceAllString(line, "")
	}
	line = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
	return line, line != ""
}

func stripRelativeFiller(line string) (string, bool) {
	return relativeFiller.ReplaceAllString(line, " "), true
}

func stripBold(line string) (string, bool) {
	line = boldHeader.ReplaceAllString(line, "")
	line = boldSpan.ReplaceAllString(line, "$1")
	line = strings.TrimSpace(line)
	return line, line != ""
}

func (r lineRules) stripHeaders(line string) (string, bool) {
	for _, re := range r.headers {
		line = re.ReplaceAllString(line, "")
	}
	line = strings.TrimSpace(line)
	return line, line != ""
}

func trimLeadingPunct(line string) (string, bool) {
	line = leadingPunct.ReplaceAllString(line, "")
	return line, line != ""
}

func dropBareHeader(line string) (string, bool) {
	if utf8.RuneCountInString(line) < bareHeaderRunes && strings.Contains(line, ":") {
		return "", false
	}
	return line, true
}

func trimShortPeriod(line string) (string, bool) {
	if utf8.RuneCountInString(line) < shortLineRunes &&
		strings.HasSuffix(line, ".") && !strings.HasSuffix(line, "..") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "."))
	}
	return line, line != ""
}

func capitalize(line string) (string, bool) {
	r, size := utf8.DecodeRuneInString(line)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return line, line != ""
	}
	return string(unicode.ToUpper(r)) + line[size:], true
}

// wrap splits a line longer than limit runes at sentence boundaries, then at
// commas, and hard-cuts with an ellipsis as a last resort.
func wrap(line string, limit int) []string {
	if utf8.RuneCountInString(line) <= limit {
		return []string{line}
	}

	if strings.Contains(line, ". ") {
		var out []string
		for _, part := range strings.Split(line, ". ") {
			part = strings.TrimSpace(part)
			if utf8.RuneCountInString(part) <= minPartRunes {
				continue
			}
			if !strings.HasSuffix(part, ".") {
				part += "."
			}
			out = append(out, splitCommas(part, limit)...)
		}
		if len(out) > 0 {
			return out
		}
	}
	return splitCommas(line, limit)
}

func splitCommas(line string, limit int) []string {
	if utf8.RuneCountInString(line) <= limit {
		return []string{line}
	}
	if !strings.Contains(line, ", ") {
		return []string{hardCut(line, limit)}
	}

	var out []string
	var current string
	flush := func() {
		if current != "" {
			out = append(out, hardCut(current, limit))
		}
	}
	for _, part := range strings.Split(line, ", ") {
		switch {
		case current == "":
			current = part
		case utf8.RuneCountInString(current)+2+utf8.RuneCountInString(part) <= limit:
			current += ", " + part
		default:
			flush()
			current = part
		}
	}
	flush()
	return out
}

func hardCut(line string, limit int) string {
	runes := []rune(line)
	if len(runes) <= limit {
		return line
	}
	return strings.TrimRightFunc(string(runes[:limit-3]), unicode.IsSpace) + "..."
}
