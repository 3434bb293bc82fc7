package service

import (
	"context"
	"errors"
	"time"

	"github.com/DharmikCH/altscore-bfa-go/internal/domain"
	"github.com/DharmikCH/altscore-bfa-go/internal/infra/observability"
	"github.com/DharmikCH/altscore-bfa-go/internal/normalize"
	"github.com/DharmikCH/altscore-bfa-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var scoringTracer = otel.Tracer("service/scoring")

// ScoringService runs the submission flow: normalize the session's form into
// the canonical request, make the single scoring exchange, and commit the
// outcome to session state.
type ScoringService struct {
	scorer  port.Scorer
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewScoringService creates a new scoring service.
func NewScoringService(scorer port.Scorer, metrics *observability.Metrics, logger *zap.Logger) *ScoringService {
	return &ScoringService{
		scorer:  scorer,
		metrics: metrics,
		logger:  logger,
	}
}

// Submit scores the session's current form. On success the latest score,
// risk band, factors and a new newest-first history entry are committed
// together and the session advances to the dashboard. On any failure the
// session keeps its step, score and history exactly as they were and the
// user may resubmit.
func (s *ScoringService) Submit(ctx context.Context, sess *domain.Session) (*domain.ScoreResult, error) {
	ctx, span := scoringTracer.Start(ctx, "ScoringService.Submit")
	defer span.End()

	start := time.Now()

	form, profile, err := sess.BeginSubmission()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("profile.type", string(profile)))

	req := normalize.Normalize(form, profile, 0)

	result, err := s.scorer.Score(ctx, &req)
	if err != nil {
		sess.EndSubmission()
		s.metrics.IncrSubmission("error")
		s.metrics.IncrScoringError(errorKind(err))
		s.logger.Error("scoring failed",
			zap.String("session_id", sess.ID),
			zap.String("profile", string(profile)),
			zap.Error(err),
		)
		return nil, err
	}

	if !sess.ApplyScore(result, time.Now().Format("2006-01-02")) {
		s.metrics.IncrSubmission("discarded")
		s.logger.Warn("score discarded, user logged out during scoring",
			zap.String("session_id", sess.ID),
		)
		return nil, &domain.ErrUnauthorized{Message: "login required"}
	}

	s.metrics.IncrSubmission("success")
	s.metrics.ObserveScore(result.AlternativeCreditScore)
	s.metrics.RecordRequestDuration("submit_profile", time.Since(start))

	s.logger.Info("profile scored",
		zap.String("session_id", sess.ID),
		zap.String("profile", string(profile)),
		zap.Float64("score", result.AlternativeCreditScore),
		zap.String("risk_band", result.RiskBand),
	)

	return result, nil
}

func errorKind(err error) string {
	var circuitOpen *domain.ErrCircuitOpen
	if errors.As(err, &circuitOpen) {
		return "circuit_open"
	}
	return "unavailable"
}
