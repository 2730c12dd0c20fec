package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Codebuster0001/portfolio3/internal/application"
	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	"github.com/Codebuster0001/portfolio3/internal/interface/middleware"
	"github.com/Codebuster0001/portfolio3/pkg/helpers"
	"github.com/Codebuster0001/portfolio3/pkg/response"
)

type UserUsecase interface {
	Register(ctx context.Context, in application.RegisterInput) (*entity.User, application.Session, error)
	Login(ctx context.Context, email, password string) (*entity.User, application.Session, error)
	GetUser(ctx context.Context, userID string) (*entity.User, error)
	Portfolio(ctx context.Context) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, in application.UpdateProfileInput) (*entity.User, error)
	UpdatePassword(ctx context.Context, userID, current, next, confirm string) error
	ForgotPassword(ctx context.Context, email string, meta application.RequestMeta) (string, error)
	ResetPassword(ctx context.Context, raw, password, confirm string) (*entity.User, application.Session, error)
}

type UserHandler struct {
	Svc     UserUsecase
	Cookies *helpers.Manager
}

func NewUserHandler(svc UserUsecase, cookies *helpers.Manager) *UserHandler {
	return &UserHandler{Svc: svc, Cookies: cookies}
}

type registerRequest struct {
	FullName     string     `json:"fullName" form:"fullName"`
	Email        string     `json:"email" form:"email" binding:"omitempty,email"`
	Password     string     `json:"password" form:"password"`
	Phone        string     `json:"phone" form:"phone"`
	Description  string     `json:"description" form:"description"`
	Technologies stringList `json:"technologies" form:"technologies"`
	PortfolioURL string     `json:"portfolioURL" form:"portfolioURL"`
	GithubURL    string     `json:"githubURL" form:"githubURL"`
	InstagramURL string     `json:"instagramURL" form:"instagramURL"`
	LinkedInURL  string     `json:"linkedInURL" form:"linkedInURL"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type updateProfileRequest struct {
	FullName     *string    `json:"fullName" form:"fullName"`
	Email        *string    `json:"email" form:"email" binding:"omitempty,email"`
	Phone        *string    `json:"phone" form:"phone"`
	Description  *string    `json:"description" form:"description"`
	Technologies stringList `json:"technologies" form:"technologies"`
	PortfolioURL *string    `json:"portfolioURL" form:"portfolioURL"`
	GithubURL    *string    `json:"githubURL" form:"githubURL"`
	InstagramURL *string    `json:"instagramURL" form:"instagramURL"`
	LinkedInURL  *string    `json:"linkedInURL" form:"linkedInURL"`
}

type updatePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" form:"currentPassword"`
	NewPassword        string `json:"newPassword" form:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword" form:"confirmNewPassword"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

type resetPasswordRequest struct {
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

type sessionPayload struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

type userPayload struct {
	User *entity.User `json:"user"`
}

// singleUpload opens the file sent under field. A missing file is not an error.
func singleUpload(c *gin.Context, field string) (*application.Upload, func(), error) {
	if !isMultipart(c) {
		return nil, func() {}, nil
	}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}
	ups, closer, err := openUploads([]*multipart.FileHeader{fh})
	if err != nil {
		return nil, closer, err
	}
	return ups[0], closer, nil
}

func (h *UserHandler) startSession(c *gin.Context, status int, u *entity.User, s application.Session, msg string) {
	h.Cookies.SetSession(c, s.Token, s.ExpiresAt)
	response.Success(c, status, sessionPayload{User: u, Token: s.Token}, msg, gin.H{"expires_at": s.ExpiresAt})
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	resume, closeResume, err := singleUpload(c, "resume")
	defer closeResume()
	if err != nil {
		bindError(c, err)
		return
	}
	u, sess, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		Description:  req.Description,
		Technologies: nonNil(req.Technologies),
		PortfolioURL: req.PortfolioURL,
		GithubURL:    req.GithubURL,
		InstagramURL: req.InstagramURL,
		LinkedInURL:  req.LinkedInURL,
		Resume:       resume,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.startSession(c, http.StatusCreated, u, sess, "User Registered")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	u, sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.startSession(c, http.StatusOK, u, sess, "Logged In")
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Message(c, http.StatusOK, "Logged Out!")
}

func (h *UserHandler) GetUser(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		var err error
		if u, err = h.Svc.GetUser(c.Request.Context(), c.GetString(middleware.CtxUserIDKey)); err != nil {
			_ = c.Error(err)
			return
		}
	}
	response.Success(c, http.StatusOK, userPayload{User: u}, "", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	resume, closeResume, err := singleUpload(c, "resume")
	defer closeResume()
	if err != nil {
		bindError(c, err)
		return
	}
	in := application.UpdateProfileInput{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Description:  req.Description,
		PortfolioURL: req.PortfolioURL,
		GithubURL:    req.GithubURL,
		InstagramURL: req.InstagramURL,
		LinkedInURL:  req.LinkedInURL,
		Resume:       resume,
	}
	if req.Technologies != nil {
		techs := []string(req.Technologies)
		in.Technologies = &techs
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, userPayload{User: u}, "Profile Updated!", nil)
}

// UpdatePassword revokes every session, including the caller's, so the cookie goes too.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	err := h.Svc.UpdatePassword(c.Request.Context(), c.GetString(middleware.CtxUserIDKey),
		req.CurrentPassword, req.NewPassword, req.ConfirmNewPassword)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.Cookies.Clear(c)
	response.Message(c, http.StatusOK, "Password Updated!")
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	email, err := h.Svc.ForgotPassword(c.Request.Context(), req.Email, requestMeta(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, fmt.Sprintf("Email sent to %s successfully", email))
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	u, sess, err := h.Svc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password, req.ConfirmPassword)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.startSession(c, http.StatusOK, u, sess, "Password Reset Successfully")
}

// Portfolio is the public profile shown on the marketing site.
func (h *UserHandler) Portfolio(c *gin.Context) {
	u, err := h.Svc.Portfolio(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, userPayload{User: u}, "", nil)
}
