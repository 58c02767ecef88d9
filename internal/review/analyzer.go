// Package review runs sentiment arbitration and key-point extraction over one
// review text.
package review

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/reviewsense/internal/keypoints"
	"github.com/spacesedan/reviewsense/internal/language"
	"github.com/spacesedan/reviewsense/internal/models"
	"github.com/spacesedan/reviewsense/internal/sentiment"
)

var ErrEmptyReview = errors.New("review: text is empty")

const (
	CacheKeyPrefix = "reviewsense:keypoints:"
	CacheTTL       = 24 * time.Hour
)

// Cache stores extracted key points by key. A miss returns ok=false and no error.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type Result struct {
	Sentiment models.SentimentLabel `json:"sentiment"`
	KeyPoints string                `json:"key_points"`
	Language  language.Language     `json:"language"`
}

type Analyzer struct {
	Arbiter   *sentiment.Arbiter
	Extractor *keypoints.Extractor

	// Cache is optional.
	Cache Cache
}

func NewAnalyzer(arbiter *sentiment.Arbiter, extractor *keypoints.Extractor, cache Cache) *Analyzer {
	return &Analyzer{Arbiter: arbiter, Extractor: extractor, Cache: cache}
}

// CacheKey is the cache key for text's key points.
func CacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return CacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Analyze returns the sentiment and key points for text. Blank text is rejected
// with ErrEmptyReview; nothing else fails.
func (a *Analyzer) Analyze(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyReview
	}

	start := time.Now()
	label, lang := a.arbiter().AnalyzeWithLanguage(ctx, text)
	points := a.keyPoints(ctx, text)

	slog.Debug("[Analyzer] Review analyzed",
		slog.String("language", lang.String()),
		slog.String("sentiment", label.String()),
		slog.Duration("took", time.Since(start)))

	return Result{Sentiment: label, KeyPoints: points, Language: lang}, nil
}

func (a *Analyzer) arbiter() *sentiment.Arbiter {
	if a.Arbiter == nil {
		return &sentiment.Arbiter{}
	}
	return a.Arbiter
}

func (a *Analyzer) keyPoints(ctx context.Context, text string) string {
	extractor := a.Extractor
	if extractor == nil {
		extractor = keypoints.NewExtractor()
	}
	if a.Cache == nil {
		return extractor.Extract(ctx, text)
	}

	key := CacheKey(text)
	if cached, ok, err := a.Cache.Get(ctx, key); err != nil {
		slog.Warn("[Analyzer] Cache read failed", slog.String("error", err.Error()))
	} else if ok && cached != "" {
		return cached
	}

	points, attempts := extractor.ExtractWithTrace(ctx, text)
	if !providerAnswered(attempts) {
		// Local output is not cached so a recovered provider is used next time.
		return points
	}
	if err := a.Cache.Set(ctx, key, points, CacheTTL); err != nil {
		slog.Warn("[Analyzer] Cache write failed", slog.String("error", err.Error()))
	}
	return points
}

func providerAnswered(attempts []keypoints.Attempt) bool {
	for _, at := range attempts {
		if at.Outcome == keypoints.OutcomeSuccess {
			return true
		}
	}
	return false
}
