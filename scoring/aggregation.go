package scoring

import (
	"peerscore/repository"
	"peerscore/utils"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var aggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "evaluation_aggregation_duration_s",
	Help: "Duration of building the per-target aggregation for an event",
	Buckets: []float64{
		0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10,
	},
})

type scoreEntry struct {
	scoreId      int
	evaluationId int
	raterId      int
	value        float64
}

type targetGroup struct {
	identity Identity
	group    string
	raters   map[int]bool
	// score entries by criterion id
	entries map[int][]*scoreEntry
}

// Aggregation indexes one event's full evaluation set by canonical target key
// and criterion. It is built fresh from stored rows on every read, so it is
// always consistent with the latest edits.
type Aggregation struct {
	criteria map[int]*repository.Criterion
	targets  map[string]*targetGroup
	config   AnomalyConfig
}

func NewAggregation(evaluations []*repository.Evaluation, criteria []*repository.Criterion, config AnomalyConfig) *Aggregation {
	timer := prometheus.NewTimer(aggregationDuration)
	defer timer.ObserveDuration()

	aggregation := &Aggregation{
		criteria: make(map[int]*repository.Criterion),
		targets:  make(map[string]*targetGroup),
		config:   config,
	}
	for _, criterion := range criteria {
		aggregation.criteria[criterion.Id] = criterion
	}
	for _, evaluation := range evaluations {
		target := aggregation.targets[evaluation.TargetKey]
		if target == nil {
			target = &targetGroup{
				identity: evaluationIdentity(evaluation),
				raters:   make(map[int]bool),
				entries:  make(map[int][]*scoreEntry),
			}
			if evaluation.TargetUser != nil {
				target.group = evaluation.TargetUser.GroupName
			}
			aggregation.targets[evaluation.TargetKey] = target
		}
		target.raters[evaluation.RaterId] = true
		for _, score := range evaluation.Scores {
			if _, ok := aggregation.criteria[score.CriterionId]; !ok {
				continue
			}
			target.entries[score.CriterionId] = append(target.entries[score.CriterionId], &scoreEntry{
				scoreId:      score.Id,
				evaluationId: evaluation.Id,
				raterId:      evaluation.RaterId,
				value:        score.Value,
			})
		}
	}
	return aggregation
}

// evaluationIdentity prefers the live user record so registered targets always
// display their current full name. External targets display the trimmed name
// of the first submission that introduced the key.
func evaluationIdentity(evaluation *repository.Evaluation) Identity {
	if evaluation.TargetUserId != nil && evaluation.TargetUser != nil {
		return UserIdentity(evaluation.TargetUser)
	}
	return Identity{Key: evaluation.TargetKey, DisplayName: evaluation.TargetName}
}

func (a *Aggregation) Criterion(criterionId int) *repository.Criterion {
	return a.criteria[criterionId]
}

// AnnotateScore classifies one stored score against every other rater's score
// for the same target and criterion.
func (a *Aggregation) AnnotateScore(targetKey string, score *repository.Score) Annotation {
	target := a.targets[targetKey]
	criterion := a.criteria[score.CriterionId]
	if target == nil || criterion == nil {
		return Annotation{}
	}
	return Annotate(score.Value, peersExcluding(target.entries[score.CriterionId], score.Id), criterion.MaxScore, a.config)
}

func peersExcluding(entries []*scoreEntry, scoreId int) []float64 {
	peers := make([]float64, 0, len(entries))
	for _, entry := range entries {
		if entry.scoreId != scoreId {
			peers = append(peers, entry.value)
		}
	}
	return peers
}

type CriterionAggregate struct {
	CriterionId int
	Count       int
	Mean        float64
}

// TargetRow is one ranked line of the aggregate report.
type TargetRow struct {
	Rank         int
	Key          string
	DisplayName  string
	UserId       *int
	GroupName    string
	RaterCount   int
	Criteria     map[int]*CriterionAggregate
	Overall      float64
	AnomalyCount int
}

// TargetRows computes the ranked aggregate view. The overall percentage
// relates the sum of per-criterion means to the sum of max scores over the
// criteria the target actually received scores for; criteria nobody scored
// stay out of both sides. Targets without a single score line are omitted.
func (a *Aggregation) TargetRows() []*TargetRow {
	rows := make([]*TargetRow, 0, len(a.targets))
	for key, target := range a.targets {
		row := &TargetRow{
			Key:         key,
			DisplayName: target.identity.DisplayName,
			UserId:      target.identity.UserId,
			GroupName:   target.group,
			RaterCount:  len(target.raters),
			Criteria:    make(map[int]*CriterionAggregate),
		}
		meanSum := 0.0
		maxSum := 0.0
		for criterionId, entries := range target.entries {
			if len(entries) == 0 {
				continue
			}
			values := utils.Map(entries, func(entry *scoreEntry) float64 { return entry.value })
			mean := utils.Sum(values) / float64(len(values))
			row.Criteria[criterionId] = &CriterionAggregate{
				CriterionId: criterionId,
				Count:       len(entries),
				Mean:        mean,
			}
			meanSum += mean
			maxSum += a.criteria[criterionId].MaxScore

			for _, entry := range entries {
				annotation := Annotate(entry.value, peersExcluding(entries, entry.scoreId), a.criteria[criterionId].MaxScore, a.config)
				if annotation.IsAnomaly {
					row.AnomalyCount++
				}
			}
		}
		if len(row.Criteria) == 0 || maxSum <= 0 {
			continue
		}
		row.Overall = 100 * meanSum / maxSum
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Overall != rows[j].Overall {
			return rows[i].Overall > rows[j].Overall
		}
		return rows[i].DisplayName < rows[j].DisplayName
	})
	for i, row := range rows {
		row.Rank = i + 1
	}
	return rows
}

func (a *Aggregation) ratedBy(targetKey string, raterId int) bool {
	target := a.targets[targetKey]
	return target != nil && target.raters[raterId]
}
