package repository

import (
	"peerscore/app_error"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Permission string

const (
	PermissionAdmin Permission = "admin"
)

type User struct {
	Id           int            `gorm:"primaryKey"`
	Nickname     string         `gorm:"not null;uniqueIndex"`
	FullName     string         `gorm:"not null"`
	GroupName    string         `gorm:"not null;index"`
	PasswordHash string         `gorm:"not null"`
	Active       bool           `gorm:"not null;default:true"`
	CreatedAt    time.Time      `gorm:"not null"`
	Permissions  pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
}

func (u *User) HasPermission(permission Permission) bool {
	for _, p := range u.Permissions {
		if p == string(permission) {
			return true
		}
	}
	return false
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetUserById(userId int) (*User, error) {
	var user User
	result := r.DB.First(&user, userId)
	if result.Error != nil {
		return nil, app_error.NewNotFound("user with id %d not found", userId)
	}
	return &user, nil
}

func (r *UserRepository) GetUserByNickname(nickname string) (*User, error) {
	var user User
	result := r.DB.First(&user, "nickname = ?", nickname)
	if result.Error != nil {
		return nil, app_error.NewNotFound("user with nickname %s not found", nickname)
	}
	return &user, nil
}

// GetUsers returns a page of users matching an optional search term
// (nickname or full name) and group filter, together with the total count.
func (r *UserRepository) GetUsers(search string, group string, limit int, offset int) ([]*User, int64, error) {
	var users []*User
	query := r.DB.Model(&User{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("nickname ILIKE ? OR full_name ILIKE ?", pattern, pattern)
	}
	if group != "" {
		query = query.Where("group_name = ?", group)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	result := query.Order("id").Limit(limit).Offset(offset).Find(&users)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return users, total, nil
}

func (r *UserRepository) SaveUser(user *User) (*User, error) {
	result := r.DB.Save(user)
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}

// DeleteUser cascades to the user's evaluations in every event, so it counts
// as an evaluation mutation.
func (r *UserRepository) DeleteUser(userId int) error {
	result := r.DB.Delete(&User{}, userId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return app_error.NewNotFound("user with id %d not found", userId)
	}
	bumpWriteSeq()
	return nil
}
