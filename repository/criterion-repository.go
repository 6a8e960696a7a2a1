package repository

import (
	"peerscore/app_error"

	"gorm.io/gorm"
)

type Criterion struct {
	Id          int     `gorm:"primaryKey"`
	EventId     int     `gorm:"not null;index"`
	Name        string  `gorm:"not null"`
	Description string  `gorm:"null"`
	MaxScore    float64 `gorm:"not null"`
	Active      bool    `gorm:"not null;default:true"`

	Event *Event `gorm:"foreignKey:EventId;constraint:OnDelete:CASCADE"`
}

// gorm would pluralize Criterion to "criterions"
func (Criterion) TableName() string {
	return "peerscore.criteria"
}

type CriterionRepository struct {
	DB *gorm.DB
}

func NewCriterionRepository(db *gorm.DB) *CriterionRepository {
	return &CriterionRepository{DB: db}
}

func (r *CriterionRepository) GetCriterionById(criterionId int) (*Criterion, error) {
	var criterion Criterion
	result := r.DB.First(&criterion, criterionId)
	if result.Error != nil {
		return nil, app_error.NewNotFound("criterion with id %d not found", criterionId)
	}
	return &criterion, nil
}

func (r *CriterionRepository) GetCriteriaForEvent(eventId int, activeOnly bool) ([]*Criterion, error) {
	var criteria []*Criterion
	query := r.DB.Where("event_id = ?", eventId)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	result := query.Order("id").Find(&criteria)
	if result.Error != nil {
		return nil, result.Error
	}
	return criteria, nil
}

func (r *CriterionRepository) Save(criterion *Criterion) (*Criterion, error) {
	result := r.DB.Save(criterion)
	if result.Error != nil {
		return nil, result.Error
	}
	return criterion, nil
}

// Delete removes the criterion and its historical scores, returning how many
// score rows went with it.
func (r *CriterionRepository) Delete(criterionId int) (int64, error) {
	var deletedScores int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&Score{}, "criterion_id = ?", criterionId)
		if result.Error != nil {
			return result.Error
		}
		deletedScores = result.RowsAffected

		result = tx.Delete(&Criterion{}, criterionId)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return app_error.NewNotFound("criterion with id %d not found", criterionId)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	bumpWriteSeq()
	return deletedScores, nil
}
