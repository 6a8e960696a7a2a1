package service

import (
	"strings"

	"peerscore/app_error"
	"peerscore/repository"

	"gorm.io/gorm"
)

type CriterionService struct {
	criterion_repository *repository.CriterionRepository
	event_repository     *repository.EventRepository
	audit_service        *AuditService
}

func NewCriterionService(db *gorm.DB) *CriterionService {
	return &CriterionService{
		criterion_repository: repository.NewCriterionRepository(db),
		event_repository:     repository.NewEventRepository(db),
		audit_service:        NewAuditService(db),
	}
}

type CriterionUpdate struct {
	Name        *string
	Description *string
	MaxScore    *float64
	Active      *bool
}

func (s *CriterionService) GetCriteriaForEvent(eventId int, activeOnly bool) ([]*repository.Criterion, error) {
	if _, err := s.event_repository.GetEventById(eventId); err != nil {
		return nil, err
	}
	return s.criterion_repository.GetCriteriaForEvent(eventId, activeOnly)
}

func (s *CriterionService) GetCriterionById(criterionId int) (*repository.Criterion, error) {
	return s.criterion_repository.GetCriterionById(criterionId)
}

func (s *CriterionService) CreateCriterion(eventId int, name string, description string, maxScore float64, admin *repository.User, ip string) (*repository.Criterion, error) {
	if _, err := s.event_repository.GetEventById(eventId); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, app_error.NewValidation("name", "criterion name must not be empty")
	}
	if maxScore <= 0 {
		return nil, app_error.NewValidation("max_score", "max score must be greater than zero")
	}
	criterion, err := s.criterion_repository.Save(&repository.Criterion{
		EventId:     eventId,
		Name:        name,
		Description: strings.TrimSpace(description),
		MaxScore:    maxScore,
		Active:      true,
	})
	if err != nil {
		return nil, err
	}
	s.audit_service.Record(AdminActor(admin, ip), "criterion.create", "criterion", &criterion.Id, nil, criterionSnapshot(criterion))
	return criterion, nil
}

func (s *CriterionService) UpdateCriterion(criterionId int, update CriterionUpdate, admin *repository.User, ip string) (*repository.Criterion, error) {
	criterion, err := s.criterion_repository.GetCriterionById(criterionId)
	if err != nil {
		return nil, err
	}
	before := criterionSnapshot(criterion)
	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, app_error.NewValidation("name", "criterion name must not be empty")
		}
		criterion.Name = strings.TrimSpace(*update.Name)
	}
	if update.Description != nil {
		criterion.Description = strings.TrimSpace(*update.Description)
	}
	if update.MaxScore != nil {
		if *update.MaxScore <= 0 {
			return nil, app_error.NewValidation("max_score", "max score must be greater than zero")
		}
		criterion.MaxScore = *update.MaxScore
	}
	if update.Active != nil {
		criterion.Active = *update.Active
	}
	criterion, err = s.criterion_repository.Save(criterion)
	if err != nil {
		return nil, err
	}
	s.audit_service.Record(AdminActor(admin, ip), "criterion.update", "criterion", &criterion.Id, before, criterionSnapshot(criterion))
	return criterion, nil
}

// DeleteCriterion removes the criterion together with every score referring
// to it and reports how many scores went with it.
func (s *CriterionService) DeleteCriterion(criterionId int, admin *repository.User, ip string) (int64, error) {
	criterion, err := s.criterion_repository.GetCriterionById(criterionId)
	if err != nil {
		return 0, err
	}
	deletedScores, err := s.criterion_repository.Delete(criterionId)
	if err != nil {
		return 0, err
	}
	s.audit_service.Record(AdminActor(admin, ip), "criterion.delete", "criterion", &criterionId,
		criterionSnapshot(criterion), map[string]any{"deleted_scores": deletedScores})
	return deletedScores, nil
}

func criterionSnapshot(criterion *repository.Criterion) map[string]any {
	return map[string]any{
		"event_id":  criterion.EventId,
		"name":      criterion.Name,
		"max_score": criterion.MaxScore,
		"active":    criterion.Active,
	}
}
