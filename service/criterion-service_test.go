package service

import (
	"testing"

	"peerscore/app_error"
	"peerscore/repository"
	"peerscore/scoring"

	"github.com/stretchr/testify/assert"
)

func TestCreateCriterionValidation(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, _, _, _ := participants(event)

	criterionService := NewCriterionService(db)
	_, err := criterionService.CreateCriterion(event.Id+1000, "focus", "", 10, alice, "")
	assert.True(t, app_error.IsKind(err, app_error.NotFound), "Unknown events should not be found")
	_, err = criterionService.CreateCriterion(event.Id, "   ", "", 10, alice, "")
	assert.True(t, app_error.IsKind(err, app_error.Validation), "A blank name should be rejected")
	_, err = criterionService.CreateCriterion(event.Id, "focus", "", 0, alice, "")
	assert.True(t, app_error.IsKind(err, app_error.Validation), "A zero max score should be rejected")
	_, err = criterionService.CreateCriterion(event.Id, "focus", "", -2, alice, "")
	assert.True(t, app_error.IsKind(err, app_error.Validation), "A negative max score should be rejected")

	criterion, err := criterionService.CreateCriterion(event.Id, "  focus ", " staying on task ", 10, alice, "")
	assert.Nil(t, err, "Creating a valid criterion should succeed")
	assert.Equal(t, "focus", criterion.Name, "The name should be trimmed")
	assert.Equal(t, "staying on task", criterion.Description, "The description should be trimmed")
	assert.True(t, criterion.Active, "New criteria start active")
}

func TestUpdateCriterion(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, _, _, _ := participants(event)
	technical := event.Criteria[0]

	criterionService := NewCriterionService(db)
	name := "technical depth"
	maxScore := 20.0
	updated, err := criterionService.UpdateCriterion(technical.Id, CriterionUpdate{Name: &name, MaxScore: &maxScore}, alice, "")
	assert.Nil(t, err, "Updating should succeed")
	assert.Equal(t, "technical depth", updated.Name, "The name should be updated")
	assert.Equal(t, 20.0, updated.MaxScore, "The max score should be updated")

	bad := 0.0
	_, err = criterionService.UpdateCriterion(technical.Id, CriterionUpdate{MaxScore: &bad}, alice, "")
	assert.True(t, app_error.IsKind(err, app_error.Validation), "A zero max score should be rejected")

	_, err = criterionService.UpdateCriterion(technical.Id+1000, CriterionUpdate{Name: &name}, alice, "")
	assert.True(t, app_error.IsKind(err, app_error.NotFound), "Unknown criteria should not be found")
}

func TestDeleteCriterionCountsRemovedScores(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, bob, carol, _ := participants(event)
	technical := event.Criteria[0]
	teamwork := event.Criteria[1]

	evaluationService := NewEvaluationService(db)
	for _, rater := range []*repository.User{alice, carol} {
		_, err := evaluationService.Submit(event.Id, rater, SubmitRequest{
			TargetUserId: &bob.Id,
			Scores: []ScoreInput{
				{CriterionId: technical.Id, Value: 8},
				{CriterionId: teamwork.Id, Value: 4},
			},
		}, "")
		assert.Nil(t, err, "Submitting should succeed")
	}

	criterionService := NewCriterionService(db)
	deleted, err := criterionService.DeleteCriterion(technical.Id, alice, "")
	assert.Nil(t, err, "Deleting the criterion should succeed")
	assert.Equal(t, int64(2), deleted, "Both technical scores should be counted")

	_, err = criterionService.GetCriterionById(technical.Id)
	assert.True(t, app_error.IsKind(err, app_error.NotFound), "The criterion should be gone")

	var evaluations, scores int64
	db.Model(&repository.Evaluation{}).Count(&evaluations)
	db.Model(&repository.Score{}).Count(&scores)
	assert.Equal(t, int64(2), evaluations, "The evaluations themselves should survive")
	assert.Equal(t, int64(2), scores, "Scores of other criteria should survive")

	rows, err := newReportService().AggregateReport(event.Id, scoring.EvaluationFilter{})
	assert.Nil(t, err, "The report should rebuild without the criterion")
	assert.Len(t, rows, 1, "Bob should still be rated")
	assert.InDelta(t, 80.0, rows[0].Overall, 1e-9, "The overall should now rest on teamwork alone")

	_, err = criterionService.DeleteCriterion(technical.Id, alice, "")
	assert.True(t, app_error.IsKind(err, app_error.NotFound), "Deleting twice should not be found")
}

func TestRetiredCriterionKeepsItsHistory(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, bob, _, _ := participants(event)
	technical := event.Criteria[0]
	teamwork := event.Criteria[1]

	evaluationService := NewEvaluationService(db)
	_, err := evaluationService.Submit(event.Id, alice, SubmitRequest{
		TargetUserId: &bob.Id,
		Scores: []ScoreInput{
			{CriterionId: technical.Id, Value: 8},
			{CriterionId: teamwork.Id, Value: 4},
		},
	}, "")
	assert.Nil(t, err, "Submitting should succeed")

	criterionService := NewCriterionService(db)
	inactive := false
	_, err = criterionService.UpdateCriterion(teamwork.Id, CriterionUpdate{Active: &inactive}, alice, "")
	assert.Nil(t, err, "Retiring the criterion should succeed")

	active, err := criterionService.GetCriteriaForEvent(event.Id, true)
	assert.Nil(t, err, "Listing active criteria should succeed")
	assert.Len(t, active, 1, "The retired criterion should be hidden from the active list")
	assert.Equal(t, technical.Id, active[0].Id, "Only the technical criterion is still active")

	all, err := criterionService.GetCriteriaForEvent(event.Id, false)
	assert.Nil(t, err, "Listing all criteria should succeed")
	assert.Len(t, all, 2, "The retired criterion should still exist")

	rows, err := newReportService().AggregateReport(event.Id, scoring.EvaluationFilter{})
	assert.Nil(t, err, "The report should still build")
	assert.InDelta(t, 4.0, rows[0].Criteria[teamwork.Id].Mean, 1e-9, "Existing scores of a retired criterion still aggregate")
	assert.InDelta(t, 80.0, rows[0].Overall, 1e-9, "The retired criterion still weighs into the overall")
}
