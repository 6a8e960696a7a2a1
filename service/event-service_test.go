package service

import (
	"testing"

	"peerscore/app_error"
	"peerscore/repository"

	"github.com/stretchr/testify/assert"
)

func TestCreateAndUpdateEvent(t *testing.T) {
	defer TearDown()
	eventService := NewEventService(db)

	admin := &repository.User{Nickname: "admin", FullName: "Ada Admin", PasswordHash: "x", Active: true}
	err := db.Create(admin).Error
	assert.Nil(t, err, "Creating the admin should succeed")

	_, err = eventService.CreateEvent("   ", "", admin, "")
	assert.True(t, app_error.IsKind(err, app_error.Validation), "A blank event name should be rejected")

	event, err := eventService.CreateEvent("  retro-2025 ", " quarterly retrospective ", admin, "")
	assert.Nil(t, err, "Creating the event should succeed")
	assert.Equal(t, "retro-2025", event.Name, "The name should be trimmed")
	assert.Equal(t, "quarterly retrospective", event.Description, "The description should be trimmed")
	assert.True(t, event.Active, "New events start active")

	name := "retro-2025-q3"
	inactive := false
	updated, err := eventService.UpdateEvent(event.Id, EventUpdate{Name: &name, Active: &inactive}, admin, "")
	assert.Nil(t, err, "Updating the event should succeed")
	assert.Equal(t, "retro-2025-q3", updated.Name, "The name should be updated")
	assert.False(t, updated.Active, "The event should be closed")

	_, err = eventService.UpdateEvent(event.Id+1000, EventUpdate{Name: &name}, admin, "")
	assert.True(t, app_error.IsKind(err, app_error.NotFound), "Unknown events should not be found")
}

func TestJoinAndLeaveEvent(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, _, _, _ := participants(event)

	eventService := NewEventService(db)
	newcomer := &repository.User{Nickname: "eve", FullName: "Eve Novak", PasswordHash: "x", Active: true}
	err := db.Create(newcomer).Error
	assert.Nil(t, err, "Creating the newcomer should succeed")

	err = eventService.JoinEvent(event.Id, newcomer, "")
	assert.Nil(t, err, "Joining should succeed")
	err = eventService.JoinEvent(event.Id, newcomer, "")
	assert.True(t, app_error.IsKind(err, app_error.Conflict), "Joining twice should be rejected as a conflict")

	members, err := eventService.GetParticipants(event.Id)
	assert.Nil(t, err, "Listing participants should succeed")
	assert.Len(t, members, 5, "The newcomer should be on the list")

	err = eventService.LeaveEvent(event.Id, newcomer, "")
	assert.Nil(t, err, "Leaving should succeed")
	err = eventService.LeaveEvent(event.Id, newcomer, "")
	assert.True(t, app_error.IsKind(err, app_error.NotFound), "Leaving twice should not be found")

	inactive := false
	_, err = eventService.UpdateEvent(event.Id, EventUpdate{Active: &inactive}, alice, "")
	assert.Nil(t, err, "Closing the event should succeed")
	err = eventService.JoinEvent(event.Id, newcomer, "")
	assert.True(t, app_error.IsKind(err, app_error.Validation), "Closed events should not accept new participants")
}

func TestRemoveParticipant(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, bob, _, _ := participants(event)

	eventService := NewEventService(db)
	err := eventService.RemoveParticipant(event.Id, bob.Id, alice, "")
	assert.Nil(t, err, "Removing a participant should succeed")
	err = eventService.RemoveParticipant(event.Id, bob.Id, alice, "")
	assert.True(t, app_error.IsKind(err, app_error.NotFound), "Removing twice should not be found")

	members, err := eventService.GetParticipants(event.Id)
	assert.Nil(t, err, "Listing participants should succeed")
	assert.Len(t, members, 3, "Only Bob should be gone")
}

func TestParticipantsCarryTheirAccounts(t *testing.T) {
	event := SetUp()
	defer TearDown()

	members, err := NewEventService(db).GetParticipants(event.Id)
	assert.Nil(t, err, "Listing participants should succeed")
	assert.Len(t, members, 4, "All seeded participants should be listed")
	for _, member := range members {
		assert.NotNil(t, member.User, "Each participant should carry its account")
	}
	assert.Equal(t, "alice", members[0].User.Nickname, "Participants should be ordered by join time")
}

func TestDeleteEventCascades(t *testing.T) {
	event := SetUp()
	defer TearDown()
	alice, bob, _, _ := participants(event)

	evaluationService := NewEvaluationService(db)
	_, err := evaluationService.Submit(event.Id, alice, SubmitRequest{
		TargetUserId: &bob.Id,
		Scores: []ScoreInput{
			{CriterionId: event.Criteria[0].Id, Value: 8},
			{CriterionId: event.Criteria[1].Id, Value: 4},
		},
	}, "")
	assert.Nil(t, err, "Submitting should succeed")

	err = NewEventService(db).DeleteEvent(event.Id, alice, "")
	assert.Nil(t, err, "Deleting the event should succeed")

	var criteria, members, evaluations, scores, users int64
	db.Model(&repository.Criterion{}).Count(&criteria)
	db.Model(&repository.EventParticipant{}).Count(&members)
	db.Model(&repository.Evaluation{}).Count(&evaluations)
	db.Model(&repository.Score{}).Count(&scores)
	db.Model(&repository.User{}).Count(&users)
	assert.Equal(t, int64(0), criteria, "Criteria should be deleted with their event")
	assert.Equal(t, int64(0), members, "Participants should be deleted with their event")
	assert.Equal(t, int64(0), evaluations, "Evaluations should be deleted with their event")
	assert.Equal(t, int64(0), scores, "Scores should be deleted with their evaluations")
	assert.Equal(t, int64(4), users, "Accounts must survive the event's deletion")
}
