package service

import (
	"fmt"
	"log"
	"testing"
	"time"

	"peerscore/app_error"
	"peerscore/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
)

var db *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}

	// uses pool to try to connect to Docker
	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	// pulls an image, creates a container based on it and runs it
	resource, err := pool.Run("postgres", "17.2-alpine", []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "DATABASE_NAME=postgres"})
	if err != nil {
		log.Fatalf("Could not start resource: %s", err)
	}
	resource.Expire(600) // Tell docker to hard kill the container in 10 minutes
	sqlInfo := fmt.Sprintf(
		"host=localhost port=%s user=postgres password=postgres dbname=postgres sslmode=disable search_path=peerscore",
		resource.GetPort("5432/tcp"))

	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
	if err := pool.Retry(func() error {
		var err error
		db, err = gorm.Open(postgres.Open(sqlInfo), &gorm.Config{
			NamingStrategy: schema.NamingStrategy{
				TablePrefix:   "peerscore.",
				SingularTable: false,
			},
			Logger: logger.Default.LogMode(logger.Silent),
			// the repositories map duplicate key violations to conflicts
			TranslateError: true,
		})

		if err != nil {
			return err
		}
		db.Exec(`CREATE SCHEMA IF NOT EXISTS peerscore`)
		return db.AutoMigrate(
			&repository.User{},
			&repository.Event{},
			&repository.EventParticipant{},
			&repository.Criterion{},
			&repository.Evaluation{},
			&repository.Score{},
			&repository.AuditLog{},
		)

	}); err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	// as of go1.15 testing.M returns the exit code of m.Run(), so it is safe to use defer here
	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge resource: %s", err)
		}

	}()
	m.Run()
}

func TearDown() {
	db.Exec("DELETE FROM peerscore.audit_logs")
	db.Exec("DELETE FROM peerscore.scores")
	db.Exec("DELETE FROM peerscore.evaluations")
	db.Exec("DELETE FROM peerscore.event_participants")
	db.Exec("DELETE FROM peerscore.criteria")
	db.Exec("DELETE FROM peerscore.events")
	db.Exec("DELETE FROM peerscore.users")
}

// SetUp seeds one active event with a technical (max 10) and a teamwork
// (max 5) criterion and four participants.
func SetUp() *repository.Event {
	event := &repository.Event{
		Name:   "retro-2025",
		Active: true,
		Criteria: []*repository.Criterion{
			{Name: "technical", MaxScore: 10, Active: true},
			{Name: "teamwork", MaxScore: 5, Active: true},
		},
		Participants: []*repository.EventParticipant{
			{JoinedAt: time.Now(), User: &repository.User{Nickname: "alice", FullName: "Alice Schmidt", GroupName: "group-a", PasswordHash: "x", Active: true}},
			{JoinedAt: time.Now(), User: &repository.User{Nickname: "bob", FullName: "Bob Meier", GroupName: "group-a", PasswordHash: "x", Active: true}},
			{JoinedAt: time.Now(), User: &repository.User{Nickname: "carol", FullName: "Carol Weber", GroupName: "group-b", PasswordHash: "x", Active: true}},
			{JoinedAt: time.Now(), User: &repository.User{Nickname: "dave", FullName: "Dave Keller", GroupName: "group-b", PasswordHash: "x", Active: true}},
		},
	}
	err := db.Create(event).Error
	if err != nil {
		log.Fatalf("Error creating event: %v", err)
	}
	return event
}

func participants(event *repository.Event) (*repository.User, *repository.User, *repository.User, *repository.User) {
	return event.Participants[0].User, event.Participants[1].User, event.Participants[2].User, event.Participants[3].User
}

func TestSubmitCreatesEvaluationWithScores(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, bob, _, _ := participants(event)

	evaluationService := NewEvaluationService(db)
	evaluation, err := evaluationService.Submit(event.Id, alice, SubmitRequest{
		TargetUserId: &bob.Id,
		Comment:      "solid sprint",
		Scores: []ScoreInput{
			{CriterionId: event.Criteria[0].Id, Value: 8},
			{CriterionId: event.Criteria[1].Id, Value: 4},
		},
	}, "127.0.0.1")
	assert.Nil(t, err, "Submitting a valid evaluation should succeed")
	assert.Equal(t, fmt.Sprintf("user:%d", bob.Id), evaluation.TargetKey, "Registered targets should be keyed by user id")
	assert.Equal(t, bob.FullName, evaluation.TargetName, "The target's full name should be recorded")
	assert.Len(t, evaluation.Scores, 2, "Both submitted scores should be stored")

	stored, err := evaluationService.GetEvaluationById(evaluation.Id)
	assert.Nil(t, err, "The evaluation should be readable afterwards")
	assert.Equal(t, "solid sprint", stored.Comment, "The comment should round trip")
	assert.Len(t, stored.Scores, 2, "The stored evaluation should carry its score lines")

	var auditCount int64
	db.Model(&repository.AuditLog{}).Where("action = ?", "evaluation.submit").Count(&auditCount)
	assert.Equal(t, int64(1), auditCount, "Each submission should leave an audit row")
}

func TestResubmitReplacesCommentAndScores(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, bob, _, _ := participants(event)

	evaluationService := NewEvaluationService(db)
	first, err := evaluationService.Submit(event.Id, alice, SubmitRequest{
		TargetUserId: &bob.Id,
		Comment:      "first pass",
		Scores: []ScoreInput{
			{CriterionId: event.Criteria[0].Id, Value: 8},
			{CriterionId: event.Criteria[1].Id, Value: 4},
		},
	}, "")
	assert.Nil(t, err, "The first submission should succeed")

	second, err := evaluationService.Submit(event.Id, alice, SubmitRequest{
		TargetUserId: &bob.Id,
		Comment:      "revised after the demo",
		Scores: []ScoreInput{
			{CriterionId: event.Criteria[0].Id, Value: 6},
		},
	}, "")
	assert.Nil(t, err, "Resubmitting for the same target should succeed")
	assert.Equal(t, first.Id, second.Id, "Resubmitting should update the same evaluation row")
	assert.Equal(t, "revised after the demo", second.Comment, "The comment should be replaced")
	assert.Len(t, second.Scores, 1, "The score set should be replaced as a whole")
	assert.Equal(t, 6.0, second.Scores[0].Value, "The new score value should be stored")
	assert.InDelta(t, first.CreatedAt.Unix(), second.CreatedAt.Unix(), 1, "Resubmitting should keep the original creation time")

	var evaluationCount, scoreCount int64
	db.Model(&repository.Evaluation{}).Count(&evaluationCount)
	db.Model(&repository.Score{}).Count(&scoreCount)
	assert.Equal(t, int64(1), evaluationCount, "There should still be a single evaluation")
	assert.Equal(t, int64(1), scoreCount, "Replaced scores should not linger")
}

func TestSubmitRejectsSelfRating(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, _, _, _ := participants(event)

	evaluationService := NewEvaluationService(db)
	_, err := evaluationService.Submit(event.Id, alice, SubmitRequest{
		TargetUserId: &alice.Id,
		Scores:       []ScoreInput{{CriterionId: event.Criteria[0].Id, Value: 5}},
	}, "")
	assert.True(t, app_error.IsKind(err, app_error.Conflict), "Rating yourself should be rejected as a conflict")

	var count int64
	db.Model(&repository.Evaluation{}).Count(&count)
	assert.Equal(t, int64(0), count, "A rejected submission should not write an evaluation")
}

func TestSubmitRequiresActiveEventAndMembership(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, bob, _, _ := participants(event)

	evaluationService := NewEvaluationService(db)
	scores := []ScoreInput{{CriterionId: event.Criteria[0].Id, Value: 5}}

	outsider := &repository.User{Nickname: "eve", FullName: "Eve Novak", PasswordHash: "x", Active: true}
	err := db.Create(outsider).Error
	assert.Nil(t, err, "Creating the outsider should succeed")

	_, err = evaluationService.Submit(event.Id, outsider, SubmitRequest{TargetUserId: &bob.Id, Scores: scores}, "")
	assert.True(t, app_error.IsKind(err, app_error.Forbidden), "Raters must participate in the event")

	_, err = evaluationService.Submit(event.Id+1000, alice, SubmitRequest{TargetUserId: &bob.Id, Scores: scores}, "")
	assert.True(t, app_error.IsKind(err, app_error.NotFound), "Unknown events should not be found")

	db.Model(&repository.Event{}).Where("id = ?", event.Id).Update("active", false)
	_, err = evaluationService.Submit(event.Id, alice, SubmitRequest{TargetUserId: &bob.Id, Scores: scores}, "")
	assert.True(t, app_error.IsKind(err, app_error.Validation), "Closed events should not accept evaluations")
}

func TestSubmitTargetValidation(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, bob, _, _ := participants(event)

	evaluationService := NewEvaluationService(db)
	scores := []ScoreInput{{CriterionId: event.Criteria[0].Id, Value: 5}}

	_, err := evaluationService.Submit(event.Id, alice, SubmitRequest{TargetUserId: &bob.Id, TargetName: "Someone Else", Scores: scores}, "")
	assert.True(t, app_error.IsKind(err, app_error.Validation), "Naming both target fields should be rejected")

	_, err = evaluationService.Submit(event.Id, alice, SubmitRequest{Scores: scores}, "")
	assert.True(t, app_error.IsKind(err, app_error.Validation), "Naming neither target field should be rejected")

	_, err = evaluationService.Submit(event.Id, alice, SubmitRequest{TargetName: "   ", Scores: scores}, "")
	assert.True(t, app_error.IsKind(err, app_error.Validation), "A blank external name should be rejected")

	outsider := &repository.User{Nickname: "eve", FullName: "Eve Novak", PasswordHash: "x", Active: true}
	err = db.Create(outsider).Error
	assert.Nil(t, err, "Creating the outsider should succeed")
	_, err = evaluationService.Submit(event.Id, alice, SubmitRequest{TargetUserId: &outsider.Id, Scores: scores}, "")
	assert.True(t, app_error.IsKind(err, app_error.Forbidden), "Registered targets must participate in the event")

	db.Model(&repository.User{}).Where("id = ?", bob.Id).Update("active", false)
	_, err = evaluationService.Submit(event.Id, alice, SubmitRequest{TargetUserId: &bob.Id, Scores: scores}, "")
	assert.True(t, app_error.IsKind(err, app_error.Validation), "Deactivated targets should be rejected")
}

func TestSubmitScoreValidation(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, bob, _, _ := participants(event)

	evaluationService := NewEvaluationService(db)
	technical := event.Criteria[0]
	teamwork := event.Criteria[1]

	other := &repository.Event{
		Name:     "other-event",
		Active:   true,
		Criteria: []*repository.Criterion{{Name: "style", MaxScore: 10, Active: true}},
	}
	err := db.Create(other).Error
	assert.Nil(t, err, "Creating the second event should succeed")

	cases := []struct {
		name   string
		scores []ScoreInput
	}{
		{"empty score list", nil},
		{"unknown criterion", []ScoreInput{{CriterionId: 99999, Value: 1}}},
		{"criterion of another event", []ScoreInput{{CriterionId: other.Criteria[0].Id, Value: 1}}},
		{"duplicate criterion", []ScoreInput{{CriterionId: technical.Id, Value: 1}, {CriterionId: technical.Id, Value: 2}}},
		{"negative value", []ScoreInput{{CriterionId: technical.Id, Value: -1}}},
		{"value above max", []ScoreInput{{CriterionId: teamwork.Id, Value: 5.5}}},
	}
	for _, c := range cases {
		_, err := evaluationService.Submit(event.Id, alice, SubmitRequest{TargetUserId: &bob.Id, Scores: c.scores}, "")
		assert.True(t, app_error.IsKind(err, app_error.Validation), "Case %q should be rejected", c.name)
	}

	db.Model(&repository.Criterion{}).Where("id = ?", teamwork.Id).Update("active", false)
	_, err = evaluationService.Submit(event.Id, alice, SubmitRequest{
		TargetUserId: &bob.Id,
		Scores:       []ScoreInput{{CriterionId: teamwork.Id, Value: 3}},
	}, "")
	assert.True(t, app_error.IsKind(err, app_error.Validation), "Retired criteria should not accept new scores")

	var count int64
	db.Model(&repository.Evaluation{}).Count(&count)
	assert.Equal(t, int64(0), count, "No rejected submission should leave rows behind")
}

func TestDeleteScoreKeepsEvaluation(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, bob, _, _ := participants(event)

	evaluationService := NewEvaluationService(db)
	evaluation, err := evaluationService.Submit(event.Id, alice, SubmitRequest{
		TargetUserId: &bob.Id,
		Scores: []ScoreInput{
			{CriterionId: event.Criteria[0].Id, Value: 8},
			{CriterionId: event.Criteria[1].Id, Value: 4},
		},
	}, "")
	assert.Nil(t, err, "Submitting should succeed")

	err = evaluationService.DeleteScore(evaluation.Scores[0].Id, alice, "")
	assert.Nil(t, err, "Deleting a single score should succeed")

	stored, err := evaluationService.GetEvaluationById(evaluation.Id)
	assert.Nil(t, err, "The evaluation itself should survive")
	assert.Len(t, stored.Scores, 1, "Only the deleted score line should be gone")
	assert.Equal(t, evaluation.Scores[1].Id, stored.Scores[0].Id, "The other score line should be untouched")

	err = evaluationService.DeleteScore(evaluation.Scores[0].Id, alice, "")
	assert.True(t, app_error.IsKind(err, app_error.NotFound), "Deleting the same score twice should not be found")
}

func TestDeleteEvaluationRemovesScores(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, bob, _, _ := participants(event)

	evaluationService := NewEvaluationService(db)
	evaluation, err := evaluationService.Submit(event.Id, alice, SubmitRequest{
		TargetUserId: &bob.Id,
		Scores: []ScoreInput{
			{CriterionId: event.Criteria[0].Id, Value: 8},
			{CriterionId: event.Criteria[1].Id, Value: 4},
		},
	}, "")
	assert.Nil(t, err, "Submitting should succeed")

	err = evaluationService.DeleteEvaluation(evaluation.Id, alice, "")
	assert.Nil(t, err, "Deleting the evaluation should succeed")

	_, err = evaluationService.GetEvaluationById(evaluation.Id)
	assert.True(t, app_error.IsKind(err, app_error.NotFound), "The evaluation should be gone")

	var scoreCount int64
	db.Model(&repository.Score{}).Count(&scoreCount)
	assert.Equal(t, int64(0), scoreCount, "Deleting an evaluation should remove its score lines")
}

func TestPurgeRemovesEvaluationsPerEvent(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, bob, carol, _ := participants(event)

	second := &repository.Event{
		Name:     "retro-2026",
		Active:   true,
		Criteria: []*repository.Criterion{{Name: "focus", MaxScore: 10, Active: true}},
		Participants: []*repository.EventParticipant{
			{UserId: alice.Id, JoinedAt: time.Now()},
			{UserId: bob.Id, JoinedAt: time.Now()},
		},
	}
	err := db.Create(second).Error
	assert.Nil(t, err, "Creating the second event should succeed")

	evaluationService := NewEvaluationService(db)
	_, err = evaluationService.Submit(event.Id, alice, SubmitRequest{
		TargetUserId: &bob.Id,
		Scores: []ScoreInput{
			{CriterionId: event.Criteria[0].Id, Value: 8},
			{CriterionId: event.Criteria[1].Id, Value: 4},
		},
	}, "")
	assert.Nil(t, err, "Submitting to the first event should succeed")
	_, err = evaluationService.Submit(event.Id, carol, SubmitRequest{
		TargetUserId: &bob.Id,
		Scores:       []ScoreInput{{CriterionId: event.Criteria[0].Id, Value: 6}},
	}, "")
	assert.Nil(t, err, "Submitting to the first event should succeed")
	_, err = evaluationService.Submit(second.Id, alice, SubmitRequest{
		TargetUserId: &bob.Id,
		Scores:       []ScoreInput{{CriterionId: second.Criteria[0].Id, Value: 7}},
	}, "")
	assert.Nil(t, err, "Submitting to the second event should succeed")

	result, err := evaluationService.Purge(&event.Id, alice, "")
	assert.Nil(t, err, "Purging one event should succeed")
	assert.Equal(t, int64(2), result.Evaluations, "Only the first event's evaluations should be counted")
	assert.Equal(t, int64(3), result.Scores, "Only the first event's scores should be counted")

	var remaining int64
	db.Model(&repository.Evaluation{}).Count(&remaining)
	assert.Equal(t, int64(1), remaining, "Evaluations of other events should survive a scoped purge")

	result, err = evaluationService.Purge(nil, alice, "")
	assert.Nil(t, err, "Purging all events should succeed")
	assert.Equal(t, int64(1), result.Evaluations, "The remaining evaluation should be counted")

	db.Model(&repository.Score{}).Count(&remaining)
	assert.Equal(t, int64(0), remaining, "No scores should survive a full purge")
}
