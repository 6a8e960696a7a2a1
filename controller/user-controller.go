package controller

import (
	"peerscore/app_error"
	"peerscore/repository"
	"peerscore/service"
	"peerscore/utils"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		userService: service.NewUserService(db),
	}
}

func setupUserController(db *gorm.DB) []RouteInfo {
	e := NewUserController(db)
	basePath := ""
	routes := []RouteInfo{
		{Method: "POST", Path: "/auth/register", HandlerFunc: e.registerHandler()},
		{Method: "POST", Path: "/auth/login", HandlerFunc: e.loginHandler()},
		{Method: "GET", Path: "/me", HandlerFunc: e.getSelfHandler(), Authenticated: true},
		{Method: "PATCH", Path: "/me", HandlerFunc: e.updateSelfHandler(), Authenticated: true},
		{Method: "POST", Path: "/me/password", HandlerFunc: e.changePasswordHandler(), Authenticated: true},
		{Method: "GET", Path: "/users", HandlerFunc: e.getUsersHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
		{Method: "POST", Path: "/users", HandlerFunc: e.createUserHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
		{Method: "PATCH", Path: "/users/:user_id", HandlerFunc: e.updateUserHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
		{Method: "DELETE", Path: "/users/:user_id", HandlerFunc: e.deleteUserHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
		{Method: "POST", Path: "/users/:user_id/reset-password", HandlerFunc: e.resetPasswordHandler(), Authenticated: true, RequiredRoles: []repository.Permission{repository.PermissionAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @id Register
// @Description Registers a new user account
// @Tags user
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "User"
// @Success 201 {object} User
// @Router /auth/register [post]
func (e *UserController) registerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request RegisterRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.Register(service.UserCreate{
			Nickname:  request.Nickname,
			FullName:  request.FullName,
			GroupName: request.GroupName,
			Password:  request.Password,
		}, c.ClientIP())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toUserResponse(user))
	}
}

// @id Login
// @Description Authenticates a user and returns a bearer token
// @Tags user
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Router /auth/login [post]
func (e *UserController) loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request LoginRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		token, user, err := e.userService.Login(request.Nickname, request.Password)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, AuthResponse{Token: token, User: toUserResponse(user)})
	}
}

// @id GetSelf
// @Description Fetches the authenticated user
// @Tags user
// @Produce json
// @Success 200 {object} User
// @Security BearerAuth
// @Router /me [get]
func (e *UserController) getSelfHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

// @id UpdateSelf
// @Description Updates the authenticated user's full name or group
// @Tags user
// @Accept json
// @Produce json
// @Param user body SelfUpdate true "User"
// @Success 200 {object} User
// @Security BearerAuth
// @Router /me [patch]
func (e *UserController) updateSelfHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		var update SelfUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err = e.userService.UpdateSelf(user, update.FullName, update.GroupName, c.ClientIP())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

// @id ChangePassword
// @Description Changes the authenticated user's password
// @Tags user
// @Accept json
// @Param passwords body PasswordChange true "Passwords"
// @Success 204
// @Security BearerAuth
// @Router /me/password [post]
func (e *UserController) changePasswordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		var change PasswordChange
		if err := c.BindJSON(&change); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.userService.ChangePassword(user, change.CurrentPassword, change.NewPassword, c.ClientIP()); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}

// @id GetUsers
// @Description Fetches users, optionally filtered by search term and group
// @Tags user
// @Produce json
// @Param search query string false "Search term matched against nickname and full name"
// @Param group query string false "Group name"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} UserList
// @Security BearerAuth
// @Router /users [get]
func (e *UserController) getUsersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		users, total, err := e.userService.GetUsers(c.Query("search"), c.Query("group"), limit, offset)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, UserList{Users: utils.Map(users, toUserResponse), Total: total})
	}
}

// @id CreateUser
// @Description Creates a user account with the given permissions
// @Tags user
// @Accept json
// @Produce json
// @Param user body AdminUserCreate true "User"
// @Success 201 {object} User
// @Security BearerAuth
// @Router /users [post]
func (e *UserController) createUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		var request AdminUserCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.CreateUser(service.UserCreate{
			Nickname:  request.Nickname,
			FullName:  request.FullName,
			GroupName: request.GroupName,
			Password:  request.Password,
		}, request.Permissions, admin, c.ClientIP())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toUserResponse(user))
	}
}

// @id UpdateUser
// @Description Updates a user's profile, active flag or permissions
// @Tags user
// @Accept json
// @Produce json
// @Param user_id path int true "User Id"
// @Param user body AdminUserUpdate true "User"
// @Success 200 {object} User
// @Security BearerAuth
// @Router /users/{user_id} [patch]
func (e *UserController) updateUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request AdminUserUpdate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.UpdateUser(userId, service.UserUpdate{
			FullName:    request.FullName,
			GroupName:   request.GroupName,
			Active:      request.Active,
			Permissions: request.Permissions,
		}, admin, c.ClientIP())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

// @id DeleteUser
// @Description Deletes a user and all their evaluations
// @Tags user
// @Param user_id path int true "User Id"
// @Success 204
// @Security BearerAuth
// @Router /users/{user_id} [delete]
func (e *UserController) deleteUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.userService.DeleteUser(userId, admin, c.ClientIP()); err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}

// @id ResetPassword
// @Description Resets a user's password and returns the new one in plain text
// @Tags user
// @Produce json
// @Param user_id path int true "User Id"
// @Success 200 {object} ResetPasswordResponse
// @Security BearerAuth
// @Router /users/{user_id}/reset-password [post]
func (e *UserController) resetPasswordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := e.userService.GetUserFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Not authenticated"})
			return
		}
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		password, err := e.userService.ResetPassword(userId, admin, c.ClientIP())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, ResetPasswordResponse{Password: password})
	}
}

type RegisterRequest struct {
	Nickname  string `json:"nickname" binding:"required"`
	FullName  string `json:"full_name" binding:"required"`
	GroupName string `json:"group_name"`
	Password  string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SelfUpdate struct {
	FullName  *string `json:"full_name"`
	GroupName *string `json:"group_name"`
}

type PasswordChange struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type AdminUserCreate struct {
	Nickname    string                  `json:"nickname" binding:"required"`
	FullName    string                  `json:"full_name" binding:"required"`
	GroupName   string                  `json:"group_name"`
	Password    string                  `json:"password" binding:"required"`
	Permissions []repository.Permission `json:"permissions"`
}

type AdminUserUpdate struct {
	FullName    *string                 `json:"full_name"`
	GroupName   *string                 `json:"group_name"`
	Active      *bool                   `json:"active"`
	Permissions []repository.Permission `json:"permissions"`
}

type User struct {
	Id          int       `json:"id" binding:"required"`
	Nickname    string    `json:"nickname" binding:"required"`
	FullName    string    `json:"full_name" binding:"required"`
	GroupName   string    `json:"group_name"`
	Active      bool      `json:"active" binding:"required"`
	Permissions []string  `json:"permissions" binding:"required"`
	CreatedAt   time.Time `json:"created_at" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token" binding:"required"`
	User  *User  `json:"user" binding:"required"`
}

type UserList struct {
	Users []*User `json:"users" binding:"required"`
	Total int64   `json:"total" binding:"required"`
}

type ResetPasswordResponse struct {
	Password string `json:"password" binding:"required"`
}

func toUserResponse(user *repository.User) *User {
	if user == nil {
		return nil
	}
	return &User{
		Id:          user.Id,
		Nickname:    user.Nickname,
		FullName:    user.FullName,
		GroupName:   user.GroupName,
		Active:      user.Active,
		Permissions: user.Permissions,
		CreatedAt:   user.CreatedAt,
	}
}
