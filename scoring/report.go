package scoring

import (
	"peerscore/repository"
	"peerscore/utils"
	"strings"
	"time"
)

// EvaluationFilter narrows which rows a report displays. Peer statistics are
// unaffected: they always see the event's full score set.
type EvaluationFilter struct {
	TargetUserId *int
	TargetName   string
	RaterId      *int
	CriterionId  *int
	AnomalyOnly  bool
}

// TargetKey returns the canonical key the filter selects, or "" when the
// filter does not constrain the target.
func (f EvaluationFilter) TargetKey() string {
	if f.TargetUserId != nil {
		return UserKey(*f.TargetUserId)
	}
	if strings.TrimSpace(f.TargetName) != "" {
		return ExternalKey(f.TargetName)
	}
	return ""
}

// ScoreLine is one raw criterion score within a detail row, annotated with
// its consensus signals.
type ScoreLine struct {
	ScoreId       int
	CriterionId   int
	CriterionName string
	MaxScore      float64
	Value         float64
	Annotation
}

// DetailRow is one evaluation as submitted: who rated whom, the raw score
// lines and the comment.
type DetailRow struct {
	EvaluationId int
	RaterId      int
	RaterName    string
	TargetKey    string
	TargetName   string
	TargetUserId *int
	Comment      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Scores       []*ScoreLine
}

// BuildDetailRows shapes the flat detail view. A criterion filter keeps only
// matching score lines and drops rows left without any; the anomaly filter
// keeps rows with at least one flagged line.
func BuildDetailRows(evaluations []*repository.Evaluation, aggregation *Aggregation, filter EvaluationFilter) []*DetailRow {
	targetKey := filter.TargetKey()
	rows := make([]*DetailRow, 0, len(evaluations))
	for _, evaluation := range evaluations {
		if filter.RaterId != nil && evaluation.RaterId != *filter.RaterId {
			continue
		}
		if targetKey != "" && evaluation.TargetKey != targetKey {
			continue
		}
		row := &DetailRow{
			EvaluationId: evaluation.Id,
			RaterId:      evaluation.RaterId,
			TargetKey:    evaluation.TargetKey,
			TargetName:   evaluation.TargetName,
			TargetUserId: evaluation.TargetUserId,
			Comment:      evaluation.Comment,
			CreatedAt:    evaluation.CreatedAt,
			UpdatedAt:    evaluation.UpdatedAt,
			Scores:       make([]*ScoreLine, 0, len(evaluation.Scores)),
		}
		if evaluation.Rater != nil {
			row.RaterName = evaluation.Rater.FullName
		}
		if evaluation.TargetUser != nil {
			row.TargetName = evaluation.TargetUser.FullName
		}
		anomalous := false
		for _, score := range evaluation.Scores {
			criterion := aggregation.Criterion(score.CriterionId)
			if criterion == nil {
				continue
			}
			if filter.CriterionId != nil && score.CriterionId != *filter.CriterionId {
				continue
			}
			annotation := aggregation.AnnotateScore(evaluation.TargetKey, score)
			if annotation.IsAnomaly {
				anomalous = true
			}
			row.Scores = append(row.Scores, &ScoreLine{
				ScoreId:       score.Id,
				CriterionId:   score.CriterionId,
				CriterionName: criterion.Name,
				MaxScore:      criterion.MaxScore,
				Value:         score.Value,
				Annotation:    annotation,
			})
		}
		if filter.CriterionId != nil && len(row.Scores) == 0 {
			continue
		}
		if filter.AnomalyOnly && !anomalous {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// ReportRows applies display filters to the ranked aggregate view. Ranks keep
// their positions from the full ranking, so a filtered report still shows
// where each target placed overall.
func (a *Aggregation) ReportRows(filter EvaluationFilter) []*TargetRow {
	rows := a.TargetRows()
	targetKey := filter.TargetKey()
	return utils.Filter(rows, func(row *TargetRow) bool {
		if targetKey != "" && row.Key != targetKey {
			return false
		}
		if filter.RaterId != nil && !a.ratedBy(row.Key, *filter.RaterId) {
			return false
		}
		if filter.CriterionId != nil {
			if _, ok := row.Criteria[*filter.CriterionId]; !ok {
				return false
			}
		}
		if filter.AnomalyOnly && row.AnomalyCount == 0 {
			return false
		}
		return true
	})
}
