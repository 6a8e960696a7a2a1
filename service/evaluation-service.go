package service

import (
	"strings"

	"peerscore/app_error"
	"peerscore/metrics"
	"peerscore/repository"
	"peerscore/scoring"

	"gorm.io/gorm"
)

type EvaluationService struct {
	evaluation_repository *repository.EvaluationRepository
	event_repository      *repository.EventRepository
	criterion_repository  *repository.CriterionRepository
	user_repository       *repository.UserRepository
	audit_service         *AuditService
}

func NewEvaluationService(db *gorm.DB) *EvaluationService {
	return &EvaluationService{
		evaluation_repository: repository.NewEvaluationRepository(db),
		event_repository:      repository.NewEventRepository(db),
		criterion_repository:  repository.NewCriterionRepository(db),
		user_repository:       repository.NewUserRepository(db),
		audit_service:         NewAuditService(db),
	}
}

type ScoreInput struct {
	CriterionId int
	Value       float64
}

// SubmitRequest carries one rater's evaluation of a single target. Exactly
// one of TargetUserId and TargetName must be set.
type SubmitRequest struct {
	TargetUserId *int
	TargetName   string
	Comment      string
	Scores       []ScoreInput
}

// Submit validates and upserts the rater's evaluation of the target within
// the event. A rater holds at most one evaluation per target per event;
// resubmitting replaces the comment and the complete score set.
func (e *EvaluationService) Submit(eventId int, rater *repository.User, request SubmitRequest, ip string) (*repository.Evaluation, error) {
	event, err := e.event_repository.GetEventById(eventId)
	if err != nil {
		return nil, err
	}
	if !event.Active {
		return nil, app_error.NewValidation("event_id", "event %q is not active", event.Name)
	}
	isParticipant, err := e.event_repository.IsParticipant(eventId, rater.Id)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, app_error.NewForbidden("you are not a participant of event %q", event.Name)
	}

	identity, err := e.resolveTarget(eventId, rater, request)
	if err != nil {
		return nil, err
	}

	scores, err := e.validateScores(eventId, request.Scores)
	if err != nil {
		return nil, err
	}

	existing, err := e.evaluation_repository.GetEvaluationByKey(rater.Id, identity.Key, eventId)
	if err != nil {
		return nil, err
	}

	evaluation := &repository.Evaluation{
		EventId:      eventId,
		RaterId:      rater.Id,
		TargetUserId: identity.UserId,
		TargetName:   identity.DisplayName,
		TargetKey:    identity.Key,
		Comment:      strings.TrimSpace(request.Comment),
	}
	evaluation, err = e.evaluation_repository.Upsert(evaluation, scores)
	if err != nil {
		return nil, err
	}
	metrics.EvaluationsSubmittedCounter.Inc()
	e.audit_service.Record(UserActor(rater, ip), "evaluation.submit", "evaluation", &evaluation.Id,
		evaluationSnapshot(existing), evaluationSnapshot(evaluation))
	return evaluation, nil
}

// resolveTarget turns the request's target reference into a canonical
// identity. Registered targets must exist, be active participants of the
// event and differ from the rater; external names only need to be non-blank.
func (e *EvaluationService) resolveTarget(eventId int, rater *repository.User, request SubmitRequest) (scoring.Identity, error) {
	if request.TargetUserId != nil && strings.TrimSpace(request.TargetName) != "" {
		return scoring.Identity{}, app_error.NewValidation("target", "provide either target_user_id or target_name, not both")
	}
	if request.TargetUserId == nil && strings.TrimSpace(request.TargetName) == "" {
		return scoring.Identity{}, app_error.NewValidation("target", "provide target_user_id or target_name")
	}
	if request.TargetUserId == nil {
		return scoring.ExternalIdentity(request.TargetName)
	}

	target, err := e.user_repository.GetUserById(*request.TargetUserId)
	if err != nil {
		return scoring.Identity{}, err
	}
	if target.Id == rater.Id {
		return scoring.Identity{}, app_error.NewConflict("you cannot rate yourself")
	}
	if !target.Active {
		return scoring.Identity{}, app_error.NewValidation("target_user_id", "user %q is deactivated", target.Nickname)
	}
	isParticipant, err := e.event_repository.IsParticipant(eventId, target.Id)
	if err != nil {
		return scoring.Identity{}, err
	}
	if !isParticipant {
		return scoring.Identity{}, app_error.NewForbidden("user %q is not a participant of this event", target.Nickname)
	}
	return scoring.UserIdentity(target), nil
}

func (e *EvaluationService) validateScores(eventId int, inputs []ScoreInput) ([]*repository.Score, error) {
	if len(inputs) == 0 {
		return nil, app_error.NewValidation("scores", "at least one score is required")
	}
	criteria, err := e.criterion_repository.GetCriteriaForEvent(eventId, false)
	if err != nil {
		return nil, err
	}
	criteriaById := make(map[int]*repository.Criterion, len(criteria))
	for _, criterion := range criteria {
		criteriaById[criterion.Id] = criterion
	}

	scores := make([]*repository.Score, 0, len(inputs))
	seen := make(map[int]bool, len(inputs))
	for _, input := range inputs {
		criterion, ok := criteriaById[input.CriterionId]
		if !ok {
			return nil, app_error.NewValidation("scores", "criterion %d does not belong to this event", input.CriterionId)
		}
		if !criterion.Active {
			return nil, app_error.NewValidation("scores", "criterion %q is no longer active", criterion.Name)
		}
		if seen[input.CriterionId] {
			return nil, app_error.NewValidation("scores", "criterion %q appears more than once", criterion.Name)
		}
		seen[input.CriterionId] = true
		if input.Value < 0 || input.Value > criterion.MaxScore {
			return nil, app_error.NewValidation("scores", "score for %q must be between 0 and %g", criterion.Name, criterion.MaxScore)
		}
		scores = append(scores, &repository.Score{
			CriterionId: input.CriterionId,
			Value:       input.Value,
		})
	}
	return scores, nil
}

func (e *EvaluationService) GetEvaluationById(evaluationId int) (*repository.Evaluation, error) {
	return e.evaluation_repository.GetEvaluationById(evaluationId)
}

func (e *EvaluationService) DeleteEvaluation(evaluationId int, admin *repository.User, ip string) error {
	evaluation, err := e.evaluation_repository.GetEvaluationById(evaluationId)
	if err != nil {
		return err
	}
	if err := e.evaluation_repository.Delete(evaluationId); err != nil {
		return err
	}
	e.audit_service.Record(AdminActor(admin, ip), "evaluation.delete", "evaluation", &evaluationId,
		evaluationSnapshot(evaluation), nil)
	return nil
}

// DeleteScore removes a single score line, leaving the parent evaluation and
// its other scores in place.
func (e *EvaluationService) DeleteScore(scoreId int, admin *repository.User, ip string) error {
	score, err := e.evaluation_repository.GetScoreById(scoreId)
	if err != nil {
		return err
	}
	if err := e.evaluation_repository.DeleteScore(scoreId); err != nil {
		return err
	}
	before := map[string]any{
		"evaluation_id": score.EvaluationId,
		"criterion_id":  score.CriterionId,
		"value":         score.Value,
	}
	e.audit_service.Record(AdminActor(admin, ip), "score.delete", "score", &scoreId, before, nil)
	return nil
}

// Purge drops every evaluation of one event, or of all events when eventId
// is nil, and reports the removed row counts.
func (e *EvaluationService) Purge(eventId *int, admin *repository.User, ip string) (*repository.PurgeResult, error) {
	if eventId != nil {
		if _, err := e.event_repository.GetEventById(*eventId); err != nil {
			return nil, err
		}
	}
	result, err := e.evaluation_repository.Purge(eventId)
	if err != nil {
		return nil, err
	}
	after := map[string]any{
		"evaluations_deleted": result.Evaluations,
		"scores_deleted":      result.Scores,
	}
	e.audit_service.Record(AdminActor(admin, ip), "evaluation.purge", "event", eventId, nil, after)
	return result, nil
}

func evaluationSnapshot(evaluation *repository.Evaluation) map[string]any {
	if evaluation == nil {
		return nil
	}
	scores := make(map[int]float64, len(evaluation.Scores))
	for _, score := range evaluation.Scores {
		scores[score.CriterionId] = score.Value
	}
	return map[string]any{
		"event_id":   evaluation.EventId,
		"rater_id":   evaluation.RaterId,
		"target_key": evaluation.TargetKey,
		"comment":    evaluation.Comment,
		"scores":     scores,
	}
}
