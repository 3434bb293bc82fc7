// Package client holds the outbound HTTP adapters. The only upstream of
// this BFF is the Python scoring service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/DharmikCH/altscore-bfa-go/internal/domain"
	"github.com/DharmikCH/altscore-bfa-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("client")

// ScoringClient calls the scoring service. Every call makes exactly one
// request/response exchange: the submission contract forbids automatic
// retries, so failures surface immediately and the user resubmits.
type ScoringClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
}

// NewScoringClient creates a new ScoringClient.
func NewScoringClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, maxConcurrency int) *ScoringClient {
	return &ScoringClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(maxConcurrency),
	}
}

// Score posts the canonical request and decodes the score result. Any
// transport failure, non-200 status or malformed body comes back as the
// uniform ErrScoringUnavailable; an open breaker comes back as
// ErrCircuitOpen.
func (c *ScoringClient) Score(ctx context.Context, req *domain.ScoreRequest) (*domain.ScoreResult, error) {
	ctx, span := tracer.Start(ctx, "ScoringClient.Score")
	defer span.End()
	span.SetAttributes(attribute.String("profile.type", string(req.ProfileType)))

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return nil, &domain.ErrScoringUnavailable{Err: err}
	}
	defer c.bulkhead.Release()

	var scoreResult domain.ScoreResult

	result, err := c.cb.Execute(func() (any, error) {
		body, err := json.Marshal(req)
		if err != nil {
			return nil, err
		}

		url := fmt.Sprintf("%s/score", c.baseURL)
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("scoring service returned status %d", resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(&scoreResult); err != nil {
			return nil, fmt.Errorf("decode scoring response: %w", err)
		}
		// A structurally valid success carries a score and a risk band;
		// a decodable but empty body is still an upstream failure.
		if scoreResult.RiskBand == "" || scoreResult.AlternativeCreditScore == 0 {
			return nil, fmt.Errorf("scoring response missing score fields")
		}
		return &scoreResult, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &domain.ErrCircuitOpen{Service: "scoring"}
		}
		return nil, &domain.ErrScoringUnavailable{Err: err}
	}

	return result.(*domain.ScoreResult), nil
}

// Ping checks the scoring service health endpoint. Used by the startup
// warmup probe; never by the submission path.
func (c *ScoringClient) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("scoring service health returned status %d", resp.StatusCode)
	}
	return nil
}
