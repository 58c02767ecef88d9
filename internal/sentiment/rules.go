// Package sentiment scores Indonesian review text with a hand-built lexicon and
// arbitrates between that score and a statistical classifier.
package sentiment

import (
	"strings"

	"github.com/spacesedan/reviewsense/internal/models"
)

const (
	strongWeight  = 3
	patternWeight = 3
	negationBonus = 2
	wordsBonus    = 2

	// shortReviewWords is the word count at or under which a review counts as short.
	shortReviewWords = 15
)

// ScoreTally is the evidence gathered from one text. It is computed once per
// call and only lives long enough for the rules to read it.
type ScoreTally struct {
	StrongPositive   int
	ModeratePositive int
	PatternPositive  int
	StrongNegative   int
	ModerateNegative int

	PositiveWords int
	HasPossessive bool
	WordCount     int

	PositiveScore int
	NegativeScore int
}

// Short reports whether the text is at most shortReviewWords long.
func (t ScoreTally) Short() bool { return t.WordCount <= shortReviewWords }

func (t ScoreTally) positiveSignal() bool {
	return t.StrongPositive+t.ModeratePositive+t.PatternPositive > 0
}

func (t ScoreTally) negativeSignal() bool {
	return t.StrongNegative+t.ModerateNegative > 0
}

// Tally lower-cases text and counts every lexical signal the rules use.
// Negated phrases count only toward the side their negation feeds.
func Tally(text string) ScoreTally {
	lower := strings.ToLower(text)
	pos := masked(lower, models.SentimentPositive)
	neg := masked(lower, models.SentimentNegative)

	t := ScoreTally{
		StrongPositive:   strongPositiveSet.count(pos),
		ModeratePositive: moderatePositiveSet.count(pos),
		StrongNegative:   strongNegativeSet.count(neg),
		ModerateNegative: moderateNegativeSet.count(neg),
		PositiveWords:    bareWordSet.count(pos),
		HasPossessive:    possessive.MatchString(lower),
		WordCount:        len(strings.Fields(lower)),
	}

	for _, re := range positivePatterns {
		if re.MatchString(pos) {
			t.PatternPositive++
		}
	}

	switch {
	case t.HasPossessive && t.PositiveWords >= 1:
		t.PatternPositive += wordsBonus
		if t.PositiveWords >= 2 {
			t.PatternPositive += wordsBonus
		}
	case t.PositiveWords >= 2:
		t.PatternPositive += wordsBonus
	case t.PositiveWords == 1 && t.Short() && t.PatternPositive > 0:
		t.PatternPositive++
	}

	t.PositiveScore = strongWeight*t.StrongPositive + t.ModeratePositive + patternWeight*t.PatternPositive
	t.NegativeScore = strongWeight*t.StrongNegative + t.ModerateNegative

	for _, n := range negations {
		if !n.re.MatchString(lower) {
			continue
		}
		if n.feeds == models.SentimentNegative {
			t.NegativeScore += negationBonus
		} else {
			t.PositiveScore += negationBonus
		}
	}
	return t
}

// Rule is one priority tier. Decide returns ok=false when the rule has no opinion.
type Rule struct {
	Name   string
	Decide func(t ScoreTally) (label models.SentimentLabel, ok bool)
}

// Rules are evaluated in order and the first rule with an opinion wins.
var Rules = []Rule{
	{Name: "pattern", Decide: patternRule},
	{Name: "bare-words", Decide: bareWordsRule},
	{Name: "possessive", Decide: possessiveRule},
	{Name: "score", Decide: scoreRule},
	{Name: "short-tie", Decide: shortTieRule},
	{Name: "fallback", Decide: fallbackRule},
}

func patternRule(t ScoreTally) (models.SentimentLabel, bool) {
	if t.PatternPositive >= 2 {
		return models.SentimentPositive, true
	}
	if t.PatternPositive > 0 && (t.NegativeScore == 0 || t.PositiveScore >= t.NegativeScore) {
		return models.SentimentPositive, true
	}
	return "", false
}

func bareWordsRule(t ScoreTally) (models.SentimentLabel, bool) {
	if t.PositiveWords < 2 {
		return "", false
	}
	if t.NegativeScore == 0 || (t.PositiveScore >= t.NegativeScore && t.StrongNegative == 0) {
		return models.SentimentPositive, true
	}
	return "", false
}

func possessiveRule(t ScoreTally) (models.SentimentLabel, bool) {
	if t.HasPossessive && t.PositiveWords >= 1 && t.NegativeScore == 0 {
		return models.SentimentPositive, true
	}
	return "", false
}

func scoreRule(t ScoreTally) (models.SentimentLabel, bool) {
	switch {
	case t.PositiveScore > t.NegativeScore:
		return models.SentimentPositive, true
	case t.NegativeScore > t.PositiveScore:
		return models.SentimentNegative, true
	}
	return "", false
}

func shortTieRule(t ScoreTally) (models.SentimentLabel, bool) {
	if !t.Short() || t.PositiveScore != t.NegativeScore {
		return "", false
	}
	pos, neg := t.positiveSignal(), t.negativeSignal()
	switch {
	case pos && !neg:
		return models.SentimentPositive, true
	case neg && !pos:
		return models.SentimentNegative, true
	}
	return "", false
}

func fallbackRule(t ScoreTally) (models.SentimentLabel, bool) {
	switch {
	case t.StrongPositive > 0 || t.PatternPositive > 0 || t.ModeratePositive >= 2:
		return models.SentimentPositive, true
	case t.ModeratePositive >= 1 && t.NegativeScore == 0 && t.Short():
		return models.SentimentPositive, true
	case t.StrongNegative > 0 || t.ModerateNegative >= 2:
		return models.SentimentNegative, true
	}
	return models.SentimentNeutral, true
}

// Decide runs the rules over t and returns the label with the name of the rule
// that produced it.
func Decide(t ScoreTally) (models.SentimentLabel, string) {
	for _, r := range Rules {
		if label, ok := r.Decide(t); ok {
			return label, r.Name
		}
	}
	return models.SentimentNeutral, "none"
}

// ScoreIndonesian labels text using the lexicon alone.
func ScoreIndonesian(text string) models.SentimentLabel {
	label, _ := Decide(Tally(text))
	return label
}
