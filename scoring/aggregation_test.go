package scoring

import (
	"testing"

	"peerscore/repository"

	"github.com/stretchr/testify/assert"
)

func TestTargetRowsComputesMeansAndOverall(t *testing.T) {
	// rater 10 scores only the first criterion, rater 11 scores both. The
	// overall percentage must relate the criterion means to the max scores of
	// the criteria that actually received scores, so the unscored third
	// criterion stays out entirely.
	annId := 1
	ann := &repository.User{Id: annId, Nickname: "ann", FullName: "Ann Lee", GroupName: "blue"}
	criteria := []*repository.Criterion{
		{Id: 1, Name: "Communication", MaxScore: 10},
		{Id: 2, Name: "Teamwork", MaxScore: 10},
		{Id: 3, Name: "Initiative", MaxScore: 5},
	}
	evaluations := []*repository.Evaluation{
		{
			Id: 1, RaterId: 10, TargetUserId: &annId, TargetUser: ann,
			TargetKey: UserKey(annId), TargetName: "Ann Lee",
			Scores: []*repository.Score{
				{Id: 101, EvaluationId: 1, CriterionId: 1, Value: 8},
			},
		},
		{
			Id: 2, RaterId: 11, TargetUserId: &annId, TargetUser: ann,
			TargetKey: UserKey(annId), TargetName: "Ann Lee",
			Scores: []*repository.Score{
				{Id: 102, EvaluationId: 2, CriterionId: 1, Value: 6},
				{Id: 103, EvaluationId: 2, CriterionId: 2, Value: 4},
			},
		},
	}

	rows := NewAggregation(evaluations, criteria, DefaultAnomalyConfig()).TargetRows()

	assert.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, 1, row.Rank)
	assert.Equal(t, "user:1", row.Key)
	assert.Equal(t, "Ann Lee", row.DisplayName)
	assert.Equal(t, "blue", row.GroupName)
	assert.Equal(t, 2, row.RaterCount)
	assert.Equal(t, 2, row.Criteria[1].Count)
	assert.Equal(t, 7.0, row.Criteria[1].Mean)
	assert.Equal(t, 1, row.Criteria[2].Count)
	assert.Equal(t, 4.0, row.Criteria[2].Mean)
	assert.NotContains(t, row.Criteria, 3)
	assert.Equal(t, 55.0, row.Overall)
}

func TestTargetRowsMergeExternalNameSpellings(t *testing.T) {
	// three raters spell the same external person differently, all spellings
	// canonicalize to one key. The display name comes from the submission
	// that introduced the key.
	criteria := []*repository.Criterion{{Id: 1, Name: "Communication", MaxScore: 10}}
	evaluations := []*repository.Evaluation{
		{
			Id: 1, RaterId: 10, TargetKey: ExternalKey("Ann Lee"), TargetName: "Ann Lee",
			Scores: []*repository.Score{{Id: 101, EvaluationId: 1, CriterionId: 1, Value: 4}},
		},
		{
			Id: 2, RaterId: 11, TargetKey: ExternalKey(" ann  lee "), TargetName: "ann  lee",
			Scores: []*repository.Score{{Id: 102, EvaluationId: 2, CriterionId: 1, Value: 6}},
		},
		{
			Id: 3, RaterId: 12, TargetKey: ExternalKey("ANN LEE"), TargetName: "ANN LEE",
			Scores: []*repository.Score{{Id: 103, EvaluationId: 3, CriterionId: 1, Value: 8}},
		},
	}

	rows := NewAggregation(evaluations, criteria, DefaultAnomalyConfig()).TargetRows()

	assert.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "name:ann lee", row.Key)
	assert.Equal(t, "Ann Lee", row.DisplayName)
	assert.Nil(t, row.UserId)
	assert.Equal(t, 3, row.RaterCount)
	assert.Equal(t, 3, row.Criteria[1].Count)
	assert.Equal(t, 6.0, row.Criteria[1].Mean)
	assert.Equal(t, 60.0, row.Overall)
}

func TestTargetRowsRankByOverallThenName(t *testing.T) {
	criteria := []*repository.Criterion{{Id: 1, Name: "Communication", MaxScore: 10}}
	evaluations := []*repository.Evaluation{
		{
			Id: 1, RaterId: 10, TargetKey: ExternalKey("Cara North"), TargetName: "Cara North",
			Scores: []*repository.Score{{Id: 101, EvaluationId: 1, CriterionId: 1, Value: 6}},
		},
		{
			Id: 2, RaterId: 10, TargetKey: ExternalKey("Ann Lee"), TargetName: "Ann Lee",
			Scores: []*repository.Score{{Id: 102, EvaluationId: 2, CriterionId: 1, Value: 6}},
		},
		{
			Id: 3, RaterId: 10, TargetKey: ExternalKey("Bob Mason"), TargetName: "Bob Mason",
			Scores: []*repository.Score{{Id: 103, EvaluationId: 3, CriterionId: 1, Value: 8}},
		},
	}

	rows := NewAggregation(evaluations, criteria, DefaultAnomalyConfig()).TargetRows()

	assert.Len(t, rows, 3)
	assert.Equal(t, []string{"Bob Mason", "Ann Lee", "Cara North"}, []string{rows[0].DisplayName, rows[1].DisplayName, rows[2].DisplayName})
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, 3, rows[2].Rank)
}

func TestTargetRowsOmitTargetsWithoutScores(t *testing.T) {
	criteria := []*repository.Criterion{{Id: 1, Name: "Communication", MaxScore: 10}}
	evaluations := []*repository.Evaluation{
		{
			Id: 1, RaterId: 10, TargetKey: ExternalKey("Ann Lee"), TargetName: "Ann Lee",
			Comment: "only a comment, no scores",
		},
		{
			// the only score refers to a criterion of another event
			Id: 2, RaterId: 10, TargetKey: ExternalKey("Bob Mason"), TargetName: "Bob Mason",
			Scores: []*repository.Score{{Id: 101, EvaluationId: 2, CriterionId: 99, Value: 5}},
		},
	}

	rows := NewAggregation(evaluations, criteria, DefaultAnomalyConfig()).TargetRows()

	assert.Empty(t, rows)
}

func TestAnnotateScoreExcludesTheAnnotatedScoreFromItsPeers(t *testing.T) {
	// four raters score the same target 8, 8, 8 and 2. For the outlier the
	// peers agree exactly, so the absolute threshold fires. Each 8 is checked
	// against peers that include the 2, which spreads the stdev enough to
	// keep the z small.
	criteria := []*repository.Criterion{{Id: 1, Name: "Communication", MaxScore: 10}}
	evaluations := make([]*repository.Evaluation, 0, 4)
	for i, value := range []float64{8, 8, 8, 2} {
		evaluations = append(evaluations, &repository.Evaluation{
			Id: i + 1, RaterId: 10 + i, TargetKey: ExternalKey("Ann Lee"), TargetName: "Ann Lee",
			Scores: []*repository.Score{{Id: 101 + i, EvaluationId: i + 1, CriterionId: 1, Value: value}},
		})
	}
	aggregation := NewAggregation(evaluations, criteria, DefaultAnomalyConfig())

	outlier := aggregation.AnnotateScore("name:ann lee", evaluations[3].Scores[0])
	assert.Equal(t, 3, outlier.PeerCount)
	assert.Equal(t, 8.0, *outlier.PeerMean)
	assert.Equal(t, -6.0, *outlier.Delta)
	assert.Nil(t, outlier.Z)
	assert.True(t, outlier.IsAnomaly)

	conforming := aggregation.AnnotateScore("name:ann lee", evaluations[0].Scores[0])
	assert.Equal(t, 3, conforming.PeerCount)
	assert.Equal(t, 6.0, *conforming.PeerMean)
	assert.InDelta(t, 0.5774, *conforming.Z, 0.0001)
	assert.False(t, conforming.IsAnomaly)

	rows := aggregation.TargetRows()
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].AnomalyCount)
	assert.Equal(t, 6.5, rows[0].Criteria[1].Mean)
}

func TestAnnotateScoreWithUnknownTargetOrCriterion(t *testing.T) {
	aggregation := NewAggregation(nil, []*repository.Criterion{{Id: 1, MaxScore: 10}}, DefaultAnomalyConfig())

	annotation := aggregation.AnnotateScore("name:nobody", &repository.Score{Id: 1, CriterionId: 1, Value: 5})

	assert.False(t, annotation.IsAnomaly)
	assert.Equal(t, 0, annotation.PeerCount)
}
