package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"peerscore/app_error"
	"peerscore/auth"
	"peerscore/repository"
	"peerscore/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	user_repository *repository.UserRepository
	audit_service   *AuditService
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		user_repository: repository.NewUserRepository(db),
		audit_service:   NewAuditService(db),
	}
}

type UserCreate struct {
	Nickname  string
	FullName  string
	GroupName string
	Password  string
}

type UserUpdate struct {
	FullName    *string
	GroupName   *string
	Active      *bool
	Permissions []repository.Permission
}

func (s *UserService) Register(create UserCreate, ip string) (*repository.User, error) {
	user, err := s.createUser(create, nil)
	if err != nil {
		return nil, err
	}
	s.audit_service.Record(UserActor(user, ip), "user.register", "user", &user.Id, nil, userSnapshot(user))
	return user, nil
}

func (s *UserService) CreateUser(create UserCreate, permissions []repository.Permission, admin *repository.User, ip string) (*repository.User, error) {
	user, err := s.createUser(create, permissions)
	if err != nil {
		return nil, err
	}
	s.audit_service.Record(AdminActor(admin, ip), "user.create", "user", &user.Id, nil, userSnapshot(user))
	return user, nil
}

func (s *UserService) createUser(create UserCreate, permissions []repository.Permission) (*repository.User, error) {
	nickname := strings.TrimSpace(create.Nickname)
	if nickname == "" {
		return nil, app_error.NewValidation("nickname", "nickname must not be empty")
	}
	if strings.TrimSpace(create.FullName) == "" {
		return nil, app_error.NewValidation("full_name", "full name must not be empty")
	}
	if len(create.Password) < 8 {
		return nil, app_error.NewValidation("password", "password must be at least 8 characters long")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(create.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &repository.User{
		Nickname:     nickname,
		FullName:     strings.TrimSpace(create.FullName),
		GroupName:    strings.TrimSpace(create.GroupName),
		PasswordHash: string(hash),
		Active:       true,
		Permissions:  utils.Map(permissions, func(p repository.Permission) string { return string(p) }),
	}
	user, err = s.user_repository.SaveUser(user)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, app_error.NewConflict("nickname %q is already taken", nickname)
		}
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns a signed token. All failure
// modes answer alike so the response does not reveal which nicknames exist.
func (s *UserService) Login(nickname string, password string) (string, *repository.User, error) {
	user, err := s.user_repository.GetUserByNickname(strings.TrimSpace(nickname))
	if err != nil {
		return "", nil, app_error.NewUnauthorized("invalid credentials")
	}
	if !user.Active {
		return "", nil, app_error.NewUnauthorized("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, app_error.NewUnauthorized("invalid credentials")
	}
	token, err := auth.CreateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) GetUserById(userId int) (*repository.User, error) {
	return s.user_repository.GetUserById(userId)
}

func (s *UserService) GetUsers(search string, group string, limit int, offset int) ([]*repository.User, int64, error) {
	return s.user_repository.GetUsers(search, group, limit, offset)
}

func (s *UserService) GetUserFromAuthHeader(c *gin.Context) (*repository.User, error) {
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, app_error.NewUnauthorized("authorization header is invalid")
	}
	return s.GetUserFromToken(authHeader[7:])
}

func (s *UserService) GetUserFromToken(tokenString string) (*repository.User, error) {
	token, err := auth.ParseToken(tokenString)
	if err != nil {
		return nil, app_error.NewUnauthorized("token is invalid")
	}
	if !token.Valid {
		return nil, app_error.NewUnauthorized("token is invalid")
	}
	claims := &auth.Claims{}
	claims.FromJWTClaims(token.Claims)
	if err := claims.Valid(); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, app_error.NewUnauthorized("token is expired")
		}
		return nil, app_error.NewUnauthorized("token is invalid")
	}
	user, err := s.GetUserById(claims.UserId)
	if err != nil {
		return nil, app_error.NewUnauthorized("token user no longer exists")
	}
	if !user.Active {
		return nil, app_error.NewUnauthorized("user is deactivated")
	}
	return user, nil
}

// UpdateSelf lets users change their own display data, never their
// permissions or active flag.
func (s *UserService) UpdateSelf(user *repository.User, fullName *string, groupName *string, ip string) (*repository.User, error) {
	before := userSnapshot(user)
	if fullName != nil {
		if strings.TrimSpace(*fullName) == "" {
			return nil, app_error.NewValidation("full_name", "full name must not be empty")
		}
		user.FullName = strings.TrimSpace(*fullName)
	}
	if groupName != nil {
		user.GroupName = strings.TrimSpace(*groupName)
	}
	user, err := s.user_repository.SaveUser(user)
	if err != nil {
		return nil, err
	}
	s.audit_service.Record(UserActor(user, ip), "user.update", "user", &user.Id, before, userSnapshot(user))
	return user, nil
}

func (s *UserService) UpdateUser(userId int, update UserUpdate, admin *repository.User, ip string) (*repository.User, error) {
	user, err := s.user_repository.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	before := userSnapshot(user)
	if update.FullName != nil {
		if strings.TrimSpace(*update.FullName) == "" {
			return nil, app_error.NewValidation("full_name", "full name must not be empty")
		}
		user.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.GroupName != nil {
		user.GroupName = strings.TrimSpace(*update.GroupName)
	}
	if update.Active != nil {
		user.Active = *update.Active
	}
	if update.Permissions != nil {
		user.Permissions = utils.Map(update.Permissions, func(p repository.Permission) string { return string(p) })
	}
	user, err = s.user_repository.SaveUser(user)
	if err != nil {
		return nil, err
	}
	s.audit_service.Record(AdminActor(admin, ip), "user.update", "user", &user.Id, before, userSnapshot(user))
	return user, nil
}

func (s *UserService) ChangePassword(user *repository.User, currentPassword string, newPassword string, ip string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return app_error.NewUnauthorized("current password is incorrect")
	}
	if len(newPassword) < 8 {
		return app_error.NewValidation("new_password", "password must be at least 8 characters long")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if _, err := s.user_repository.SaveUser(user); err != nil {
		return err
	}
	s.audit_service.Record(UserActor(user, ip), "user.change_password", "user", &user.Id, nil, nil)
	return nil
}

// ResetPassword sets a random password and returns it in plain text, to be
// shown to the operator exactly once.
func (s *UserService) ResetPassword(userId int, admin *repository.User, ip string) (string, error) {
	user, err := s.user_repository.GetUserById(userId)
	if err != nil {
		return "", err
	}
	buffer := make([]byte, 12)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	password := fmt.Sprintf("%x", buffer)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user.PasswordHash = string(hash)
	if _, err := s.user_repository.SaveUser(user); err != nil {
		return "", err
	}
	s.audit_service.Record(AdminActor(admin, ip), "user.reset_password", "user", &user.Id, nil, nil)
	return password, nil
}

func (s *UserService) DeleteUser(userId int, admin *repository.User, ip string) error {
	user, err := s.user_repository.GetUserById(userId)
	if err != nil {
		return err
	}
	if err := s.user_repository.DeleteUser(userId); err != nil {
		return err
	}
	s.audit_service.Record(AdminActor(admin, ip), "user.delete", "user", &userId, userSnapshot(user), nil)
	return nil
}

func userSnapshot(user *repository.User) map[string]any {
	return map[string]any{
		"nickname":    user.Nickname,
		"full_name":   user.FullName,
		"group_name":  user.GroupName,
		"active":      user.Active,
		"permissions": user.Permissions,
	}
}
