package service

import (
	"fmt"
	"log"

	"peerscore/config"
	"peerscore/metrics"
	"peerscore/repository"
	"peerscore/scoring"

	"github.com/gin-contrib/cache/persistence"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type ReportService struct {
	evaluation_repository *repository.EvaluationRepository
	criterion_repository  *repository.CriterionRepository
	event_repository      *repository.EventRepository
	cache                 persistence.CacheStore
}

func NewReportService(db *gorm.DB, cache persistence.CacheStore) *ReportService {
	return &ReportService{
		evaluation_repository: repository.NewEvaluationRepository(db),
		criterion_repository:  repository.NewCriterionRepository(db),
		event_repository:      repository.NewEventRepository(db),
		cache:                 cache,
	}
}

func anomalyConfig() scoring.AnomalyConfig {
	env := config.Env()
	return scoring.AnomalyConfig{
		ZThreshold:  env.AnomalyZScore,
		AbsFraction: env.AnomalyAbsFraction,
	}
}

// DetailReport returns every evaluation of the event as submitted, annotated
// against peer consensus and narrowed by the display filter. It is always
// computed from the stored rows, never memoized.
func (s *ReportService) DetailReport(eventId int, filter scoring.EvaluationFilter) ([]*scoring.DetailRow, error) {
	if _, err := s.event_repository.GetEventById(eventId); err != nil {
		return nil, err
	}
	evaluations, err := s.evaluation_repository.GetEvaluationsForEvent(eventId)
	if err != nil {
		return nil, err
	}
	criteria, err := s.criterion_repository.GetCriteriaForEvent(eventId, false)
	if err != nil {
		return nil, err
	}
	aggregation := scoring.NewAggregation(evaluations, criteria, anomalyConfig())
	return scoring.BuildDetailRows(evaluations, aggregation, filter), nil
}

// AggregateReport returns the ranked per-target view. The built aggregation
// is memoized under the current write sequence, so a cache hit can never
// predate an acknowledged evaluation mutation; display filters are applied
// per request on top of the memoized structure.
func (s *ReportService) AggregateReport(eventId int, filter scoring.EvaluationFilter) ([]*scoring.TargetRow, error) {
	if _, err := s.event_repository.GetEventById(eventId); err != nil {
		return nil, err
	}
	aggregation, err := s.aggregationForEvent(eventId)
	if err != nil {
		return nil, err
	}
	return aggregation.ReportRows(filter), nil
}

func (s *ReportService) aggregationForEvent(eventId int) (*scoring.Aggregation, error) {
	key := fmt.Sprintf("report:%d:%d", eventId, repository.WriteSeq())
	if s.cache != nil {
		var cached *scoring.Aggregation
		if err := s.cache.Get(key, &cached); err == nil {
			metrics.ReportCacheHitsCounter.Inc()
			return cached, nil
		}
	}
	timer := prometheus.NewTimer(metrics.ReportBuildDuration)
	defer timer.ObserveDuration()
	evaluations, err := s.evaluation_repository.GetEvaluationsForEvent(eventId)
	if err != nil {
		return nil, err
	}
	criteria, err := s.criterion_repository.GetCriteriaForEvent(eventId, false)
	if err != nil {
		return nil, err
	}
	aggregation := scoring.NewAggregation(evaluations, criteria, anomalyConfig())
	metrics.ReportBuildsCounter.Inc()
	if s.cache != nil {
		if err := s.cache.Set(key, aggregation, persistence.DEFAULT); err != nil {
			log.Printf("Failed to memoize report for event %d: %v", eventId, err)
		}
	}
	return aggregation, nil
}
