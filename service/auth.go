package service

import (
	"errors"
	"net/http"

	"nexuscrm/logutils"
	"nexuscrm/model"
	"nexuscrm/response"
	"nexuscrm/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterReq struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenPair struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         model.UserInfo `json:"user"`
}

// RegisterPublicAuth mounts the routes reachable without a token.
func (h *Handler) RegisterPublicAuth(g *gin.RouterGroup) {
	g.POST("/register", h.RegisterUser)
	g.POST("/login", h.Login)
	g.POST("/refresh", h.Refresh)
}

func (h *Handler) RegisterAuth(g *gin.RouterGroup) {
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me)
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if _, err := h.store.GetUserByEmail(c.Request.Context(), req.Email); err == nil {
		response.HTTPError(c, http.StatusConflict, "email already registered", response.AlreadyExists)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	password := string(hash)
	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: &password,
		Role:     model.RoleUser,
	}
	if err := h.store.CreateUser(c.Request.Context(), &user); err != nil {
		logutils.Log.Error("create user: ", err)
		response.Error(c, "failed to create user", response.NotSpecified)
		return
	}
	pair, err := h.issueTokens(&user)
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, pair)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || user.Password == nil {
		response.HTTPError(c, http.StatusUnauthorized, "invalid credentials", response.UserNotFound)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)) != nil {
		response.HTTPError(c, http.StatusUnauthorized, "invalid credentials", response.UserNotFound)
		return
	}
	pair, err := h.issueTokens(user)
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, pair)
}

// Refresh trades a valid refresh token for a new token pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	msg, err := h.tokens.CheckRefreshToken(req.RefreshToken)
	if err != nil {
		response.HTTPError(c, http.StatusUnauthorized, "invalid refresh token", response.InvalidToken)
		return
	}
	user, err := h.store.GetUser(c.Request.Context(), msg.UserID)
	if err != nil {
		response.HTTPError(c, http.StatusUnauthorized, "user no longer exists", response.UserNotFound)
		return
	}
	pair, err := h.issueTokens(user)
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, pair)
}

// Logout is a no-op on the server side: tokens are stateless and the
// client discards them.
func (h *Handler) Logout(c *gin.Context) {
	response.Success(c, nil)
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.store.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFoundError(c, "user not found")
			return
		}
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, user)
}

func (h *Handler) issueTokens(user *model.User) (*TokenPair, error) {
	access, refresh, err := h.tokens.CreateTokens(&util.JWTMessage{
		UserID:   user.ID,
		Username: user.Name,
		Role:     user.Role,
	})
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user.Info(),
	}, nil
}
