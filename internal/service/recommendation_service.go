package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"harumnesia/internal/logger"
	"harumnesia/internal/metrics"
	"harumnesia/internal/model"
	"harumnesia/internal/recommend"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	flowSimilarity = "similarity"
	flowPreference = "preference"
)

type RecommendationService struct {
	perfumes          PerfumeStore
	ml                Recommender
	similarityTimeout time.Duration
	preferenceTimeout time.Duration
}

var RecommendationServiceTracer = otel.Tracer("RecommendationService")

func NewRecommendationService(perfumes PerfumeStore, ml Recommender, similarityTimeout, preferenceTimeout time.Duration) *RecommendationService {
	if similarityTimeout <= 0 {
		similarityTimeout = 10 * time.Second
	}
	if preferenceTimeout <= 0 {
		preferenceTimeout = 15 * time.Second
	}
	return &RecommendationService{
		perfumes:          perfumes,
		ml:                ml,
		similarityTimeout: similarityTimeout,
		preferenceTimeout: preferenceTimeout,
	}
}

// similarityPayload is what the ML service expects on /recommend.
type similarityPayload struct {
	PerfumeName string `json:"perfume_name"`
	TopN        int    `json:"top_n"`
}

type preferencePayload struct {
	Gender        string  `json:"gender,omitempty"`
	Situation     string  `json:"situation,omitempty"`
	Concentration string  `json:"concentration,omitempty"`
	Size          string  `json:"size,omitempty"`
	PriceMin      float64 `json:"price_min,omitempty"`
	PriceMax      float64 `json:"price_max,omitempty"`
	Description   string  `json:"description,omitempty"`
	TopN          int     `json:"top_n"`
}

func topN(n int) int {
	if n <= 0 {
		return model.DefaultTopN
	}
	return n
}

// Similar recommends perfumes close to the named one.
func (s *RecommendationService) Similar(ctx context.Context, req model.SimilarityRequest) (*model.RecommendationResult, error) {
	ctx, span := RecommendationServiceTracer.Start(ctx, "RecommendationService.Similar")
	defer span.End()

	name := strings.TrimSpace(req.PerfumeName)
	if name == "" {
		name = strings.TrimSpace(req.Name)
	}
	if name == "" {
		return nil, fmt.Errorf("perfume name is required: %w", model.ErrValidation)
	}
	span.SetAttributes(attribute.String("perfume.name", name))

	payload := similarityPayload{PerfumeName: name, TopN: topN(req.TopN)}
	result, err := s.recommend(ctx, flowSimilarity, payload, s.similarityTimeout)
	if err != nil {
		return nil, err
	}
	result.Query = name
	return result, nil
}

// ByPreference recommends perfumes for a questionnaire answer set.
func (s *RecommendationService) ByPreference(ctx context.Context, req model.PreferenceRequest) (*model.RecommendationResult, error) {
	ctx, span := RecommendationServiceTracer.Start(ctx, "RecommendationService.ByPreference")
	defer span.End()

	payload := preferencePayload{
		Gender:        strings.TrimSpace(req.Gender),
		Situation:     strings.TrimSpace(req.Situation),
		Concentration: strings.TrimSpace(req.Concentration),
		Size:          strings.TrimSpace(req.Size),
		PriceMin:      req.PriceRange.Min,
		PriceMax:      req.PriceRange.Max,
		Description:   strings.TrimSpace(req.Description),
		TopN:          topN(req.TopN),
	}

	if payload.Gender == "" && payload.Situation == "" && payload.Concentration == "" &&
		payload.Size == "" && payload.Description == "" && payload.PriceMin == 0 && payload.PriceMax == 0 {
		return nil, fmt.Errorf("at least one preference is required: %w", model.ErrValidation)
	}
	if payload.PriceMax > 0 && payload.PriceMax < payload.PriceMin {
		return nil, fmt.Errorf("priceRange.max must not be lower than priceRange.min: %w", model.ErrValidation)
	}

	return s.recommend(ctx, flowPreference, payload, s.preferenceTimeout)
}

func (s *RecommendationService) recommend(ctx context.Context, flow string, payload interface{}, timeout time.Duration) (*model.RecommendationResult, error) {
	items, err := s.ml.Recommend(ctx, payload, timeout)
	if err != nil {
		if recommend.IsUnavailable(err) {
			logger.Warn(ctx, "ML service unavailable, serving random sample",
				slog.String("flow", flow),
				logger.Err(err),
			)
			return s.fallback(ctx, flow)
		}
		metrics.RecommendationsTotal.WithLabelValues(flow, "error").Inc()
		return nil, err
	}

	perfumes, err := s.Reconcile(ctx, items)
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues(flow, "error").Inc()
		return nil, err
	}

	metrics.RecommendationsTotal.WithLabelValues(flow, model.SourceML).Inc()
	return &model.RecommendationResult{
		Success:         true,
		Source:          model.SourceML,
		Count:           len(perfumes),
		Recommendations: perfumes,
	}, nil
}

func (s *RecommendationService) fallback(ctx context.Context, flow string) (*model.RecommendationResult, error) {
	// A cancelled request context would fail the sample query too.
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		ctx = context.WithoutCancel(ctx)
	}

	sample, err := s.perfumes.Sample(ctx, model.FallbackSampleSize)
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues(flow, "error").Inc()
		return nil, err
	}
	sample = normalizeAll(sample, "")

	metrics.RecommendationsTotal.WithLabelValues(flow, model.SourceFallback).Inc()
	return &model.RecommendationResult{
		Success:         true,
		Source:          model.SourceFallback,
		Fallback:        true,
		Count:           len(sample),
		Message:         "Recommendation service is unavailable, showing random perfumes instead",
		Recommendations: sample,
	}, nil
}

// Reconcile fetches the documents behind the ML ids in one query and
// returns them in ML order, each document at most once.
func (s *RecommendationService) Reconcile(ctx context.Context, items []recommend.Item) ([]model.Perfume, error) {
	if len(items) == 0 {
		return []model.Perfume{}, nil
	}

	docs, err := s.perfumes.FindByIdentifiers(ctx, recommend.IDs(items))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(docs)*2)
	for i := range docs {
		for _, id := range docs[i].Identifiers() {
			if _, taken := byID[id]; !taken {
				byID[id] = i
			}
		}
	}

	used := make(map[int]bool, len(docs))
	out := make([]model.Perfume, 0, len(items))
	for _, item := range items {
		idx, ok := byID[item.ID]
		if !ok || used[idx] {
			continue
		}
		used[idx] = true

		p := docs[idx]
		if item.Score != nil {
			score := *item.Score
			p.SimilarityScore = &score
		}
		normalizePerfume(&p, "")
		out = append(out, p)
	}
	return out, nil
}
