package public

import (
	"time"

	handlershared "github.com/blog-console/internal/http/handlers/shared"
	"github.com/blog-console/internal/http/response"
	"github.com/blog-console/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname"`
	Email    string `json:"email" binding:"required"`
}

// SignInRequest 登录请求
type SignInRequest struct {
	Username       string                              `json:"username" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// SignInResponse 登录结果
type SignInResponse struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Role      int       `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileUpdateRequest 个人资料更新请求，password 非空时需提供 old_password
type ProfileUpdateRequest struct {
	Nickname    *string `json:"nickname"`
	Email       *string `json:"email"`
	Avatar      *string `json:"avatar"`
	Bio         *string `json:"bio"`
	Website     *string `json:"website"`
	OldPassword string  `json:"old_password"`
	Password    string  `json:"password"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.AuthService.Register(service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Nickname: req.Nickname,
		Email:    req.Email,
	})
	if err != nil {
		respondServiceError(c, err, "error.save_failed")
		return
	}
	response.Success(c, user)
}

// SignIn 用户登录
func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.AuthService.Login(c.Request.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
		Captcha:  req.CaptchaPayload.ToServicePayload(),
	})
	if err != nil {
		respondServiceError(c, err, "error.login_failed")
		return
	}
	response.Success(c, SignInResponse{
		UserID:    result.User.ID,
		Username:  result.User.Username,
		Nickname:  result.User.Nickname,
		Email:     result.User.Email,
		Avatar:    result.User.Avatar,
		Role:      result.User.Role,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// GetCaptcha 获取登录图片验证码
func (h *Handler) GetCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.Generate()
	if err != nil {
		respondServiceError(c, err, "error.internal")
		return
	}
	response.Success(c, challenge)
}

// GetProfile 获取个人资料
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserService.Profile(userID)
	if err != nil {
		respondServiceError(c, err, "error.query_failed", handlershared.NotFoundAs("error.user_not_found"))
		return
	}
	response.Success(c, user)
}

// UpdateProfile 更新个人资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req ProfileUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.UserService.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdateInput{
		Nickname:    req.Nickname,
		Email:       req.Email,
		Avatar:      req.Avatar,
		Bio:         req.Bio,
		Website:     req.Website,
		OldPassword: req.OldPassword,
		NewPassword: req.Password,
	})
	if err != nil {
		respondServiceError(c, err, "error.save_failed", handlershared.NotFoundAs("error.user_not_found"))
		return
	}
	response.Success(c, user)
}
