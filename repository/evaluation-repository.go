package repository

import (
	"errors"
	"peerscore/app_error"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Evaluation struct {
	Id      int `gorm:"primaryKey"`
	EventId int `gorm:"not null;index;uniqueIndex:idx_rater_target_event"`
	RaterId int `gorm:"not null;index;uniqueIndex:idx_rater_target_event"`
	// TargetUserId is set for registered targets, TargetName for external ones.
	// TargetKey is the canonical key both variants resolve to.
	TargetUserId *int      `gorm:"null"`
	TargetName   string    `gorm:"not null"`
	TargetKey    string    `gorm:"not null;index;uniqueIndex:idx_rater_target_event"`
	Comment      string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	Event      *Event   `gorm:"foreignKey:EventId;constraint:OnDelete:CASCADE"`
	Rater      *User    `gorm:"foreignKey:RaterId;constraint:OnDelete:CASCADE"`
	TargetUser *User    `gorm:"foreignKey:TargetUserId;constraint:OnDelete:CASCADE"`
	Scores     []*Score `gorm:"foreignKey:EvaluationId;constraint:OnDelete:CASCADE"`
}

type Score struct {
	Id           int     `gorm:"primaryKey"`
	EvaluationId int     `gorm:"not null;index;uniqueIndex:idx_evaluation_criterion"`
	CriterionId  int     `gorm:"not null;uniqueIndex:idx_evaluation_criterion"`
	Value        float64 `gorm:"not null"`

	Evaluation *Evaluation `gorm:"foreignKey:EvaluationId;constraint:OnDelete:CASCADE"`
	Criterion  *Criterion  `gorm:"foreignKey:CriterionId;constraint:OnDelete:CASCADE"`
}

// writeSeq increments on every evaluation or score mutation. Report memo keys
// embed it, so a memoized report can never outlive a later write.
var writeSeq atomic.Uint64

func bumpWriteSeq() {
	writeSeq.Add(1)
}

func WriteSeq() uint64 {
	return writeSeq.Load()
}

type EvaluationRepository struct {
	DB *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{DB: db}
}

// GetEvaluationsForEvent loads the full evaluation set of an event with score
// lines and user references. Display filters are applied downstream so that
// peer statistics always see every rater's scores.
func (r *EvaluationRepository) GetEvaluationsForEvent(eventId int) ([]*Evaluation, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetEvaluationsForEvent"))
	defer timer.ObserveDuration()

	var evaluations []*Evaluation
	result := r.DB.
		Preload("Scores").
		Preload("Rater").
		Preload("TargetUser").
		Order("id").
		Find(&evaluations, "event_id = ?", eventId)
	if result.Error != nil {
		return nil, result.Error
	}
	return evaluations, nil
}

func (r *EvaluationRepository) GetEvaluationById(evaluationId int) (*Evaluation, error) {
	var evaluation Evaluation
	result := r.DB.Preload("Scores").First(&evaluation, evaluationId)
	if result.Error != nil {
		return nil, app_error.NewNotFound("evaluation with id %d not found", evaluationId)
	}
	return &evaluation, nil
}

func (r *EvaluationRepository) GetEvaluationByKey(raterId int, targetKey string, eventId int) (*Evaluation, error) {
	var evaluation Evaluation
	result := r.DB.Preload("Scores").
		First(&evaluation, "rater_id = ? AND target_key = ? AND event_id = ?", raterId, targetKey, eventId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &evaluation, nil
}

// Upsert stores the evaluation and its score lines in one transaction. An
// existing evaluation for the same (rater, target key, event) is fully
// replaced: comment and every score row, including rows for criteria the new
// submission omits. A lost race on the upsert key surfaces as Conflict.
func (r *EvaluationRepository) Upsert(evaluation *Evaluation, scores []*Score) (*Evaluation, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("UpsertEvaluation"))
	defer timer.ObserveDuration()

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var existing Evaluation
		err := tx.Where("rater_id = ? AND target_key = ? AND event_id = ?",
			evaluation.RaterId, evaluation.TargetKey, evaluation.EventId).First(&existing).Error
		switch {
		case err == nil:
			evaluation.Id = existing.Id
			evaluation.CreatedAt = existing.CreatedAt
			if err := tx.Delete(&Score{}, "evaluation_id = ?", existing.Id).Error; err != nil {
				return err
			}
			if err := tx.Save(evaluation).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(evaluation).Error; err != nil {
				return err
			}
		default:
			return err
		}
		for _, score := range scores {
			score.EvaluationId = evaluation.Id
		}
		return tx.Create(scores).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, app_error.NewConflict("evaluation for this target was submitted concurrently, retry")
		}
		return nil, err
	}
	bumpWriteSeq()
	evaluation.Scores = scores
	return evaluation, nil
}

func (r *EvaluationRepository) Delete(evaluationId int) error {
	result := r.DB.Delete(&Evaluation{}, evaluationId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return app_error.NewNotFound("evaluation with id %d not found", evaluationId)
	}
	bumpWriteSeq()
	return nil
}

func (r *EvaluationRepository) GetScoreById(scoreId int) (*Score, error) {
	var score Score
	result := r.DB.Preload("Evaluation").Preload("Criterion").First(&score, scoreId)
	if result.Error != nil {
		return nil, app_error.NewNotFound("score with id %d not found", scoreId)
	}
	return &score, nil
}

// DeleteScore removes a single score line, leaving the parent evaluation and
// its remaining scores in place.
func (r *EvaluationRepository) DeleteScore(scoreId int) error {
	result := r.DB.Delete(&Score{}, scoreId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return app_error.NewNotFound("score with id %d not found", scoreId)
	}
	bumpWriteSeq()
	return nil
}

type PurgeResult struct {
	Evaluations int64
	Scores      int64
}

// Purge deletes every evaluation in scope, one event or all of them, and
// reports exact row counts.
func (r *EvaluationRepository) Purge(eventId *int) (*PurgeResult, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("PurgeEvaluations"))
	defer timer.ObserveDuration()

	purged := &PurgeResult{}
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		evalQuery := tx.Model(&Evaluation{}).Select("id")
		if eventId != nil {
			evalQuery = evalQuery.Where("event_id = ?", *eventId)
		}
		result := tx.Where("evaluation_id IN (?)", evalQuery).Delete(&Score{})
		if result.Error != nil {
			return result.Error
		}
		purged.Scores = result.RowsAffected

		if eventId != nil {
			result = tx.Where("event_id = ?", *eventId).Delete(&Evaluation{})
		} else {
			result = tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Evaluation{})
		}
		if result.Error != nil {
			return result.Error
		}
		purged.Evaluations = result.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}
	bumpWriteSeq()
	return purged, nil
}
