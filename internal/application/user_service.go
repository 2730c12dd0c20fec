package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Codebuster0001/portfolio3/config"
	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	repo "github.com/Codebuster0001/portfolio3/internal/domain/repository"
	"github.com/Codebuster0001/portfolio3/pkg/apperror"
	"github.com/Codebuster0001/portfolio3/pkg/helpers"
	mailtpl "github.com/Codebuster0001/portfolio3/pkg/mailer/templates"
)

// ResumeFolder is where resumes live on the asset host.
const ResumeFolder = "PORTFOLIO_RESUME"

const (
	msgInvalidCredentials = "Invalid email or password"
	msgRevoked            = "Session has been revoked. Please log in again."
	msgResetInvalid       = "Reset password token is invalid or has been expired"
)

type UserService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Assets AssetStore
	Mailer Mailer
	Geo    mailtpl.GeoResolver // nil disables location lookup
	Cfg    *config.Config
	Logger *logrus.Logger

	now func() time.Time
	loc *time.Location
}

// Session is a freshly signed token and the moment it stops being valid.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

func NewUserService(users repo.UserRepository, jwt *helpers.JWTManager, assets AssetStore, mailer Mailer, geo mailtpl.GeoResolver, cfg *config.Config, logger *logrus.Logger) *UserService {
	loc, err := time.LoadLocation(cfg.OwnerTimezone)
	if err != nil {
		if logger != nil {
			logger.WithError(err).WithField("tz", cfg.OwnerTimezone).Warn("unknown owner timezone, using UTC")
		}
		loc = time.UTC
	}
	return &UserService{
		Users:  users,
		JWT:    jwt,
		Assets: assets,
		Mailer: mailer,
		Geo:    geo,
		Cfg:    cfg,
		Logger: logger,
		now:    time.Now,
		loc:    loc,
	}
}

type RegisterInput struct {
	FullName     string
	Email        string
	Password     string
	Phone        string
	Description  string
	Technologies []string
	PortfolioURL string
	GithubURL    string
	InstagramURL string
	LinkedInURL  string
	Resume       *Upload
}

// Register creates the account and signs the first session.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, Session, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	if in.FullName == "" || in.Email == "" || in.Password == "" {
		return nil, Session{}, apperror.BadRequest("Please provide full name, email and password")
	}
	exists, err := s.Users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, Session{}, err
	}
	if exists {
		return nil, Session{}, apperror.Conflictf("User already exists with this email")
	}

	u := &entity.User{
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		Description:  in.Description,
		Technologies: in.Technologies,
		PortfolioURL: in.PortfolioURL,
		GithubURL:    in.GithubURL,
		InstagramURL: in.InstagramURL,
		LinkedInURL:  in.LinkedInURL,
	}
	if err := s.setPassword(u, in.Password); err != nil {
		return nil, Session{}, err
	}
	if in.Resume != nil {
		asset, err := uploadAsset(ctx, s.Assets, ResumeFolder, in.Resume)
		if err != nil {
			return nil, Session{}, err
		}
		u.Resume = asset
	}

	if err := s.Users.Create(ctx, u); err != nil {
		// the row never existed, so the uploaded resume is an orphan
		deleteAsset(ctx, s.Assets, s.Logger, u.Resume)
		return nil, Session{}, err
	}

	sess, err := s.issueSession(u)
	if err != nil {
		return nil, Session{}, err
	}
	return u, sess, nil
}

// Login verifies credentials. Unknown email and wrong password are indistinguishable.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, Session{}, apperror.BadRequest("Please provide email and password")
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if apperror.Is(err, apperror.NotFound) {
			return nil, Session{}, apperror.Unauthorizedf(msgInvalidCredentials)
		}
		return nil, Session{}, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, Session{}, apperror.Unauthorizedf(msgInvalidCredentials)
	}
	sess, err := s.issueSession(u)
	if err != nil {
		return nil, Session{}, err
	}
	return u, sess, nil
}

// Authenticate resolves a session token to its user. Tokens minted before the
// last password change are rejected.
func (s *UserService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if claims.Version != u.TokenVersion {
		return nil, apperror.Unauthorizedf(msgRevoked)
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	return s.Users.GetByID(ctx, userID)
}

// Portfolio returns the public profile of the site owner.
func (s *UserService) Portfolio(ctx context.Context) (*entity.User, error) {
	return s.Users.GetFirst(ctx)
}

// UpdateProfileInput holds optional fields. Nil means unchanged.
type UpdateProfileInput struct {
	FullName     *string
	Email        *string
	Phone        *string
	Description  *string
	Technologies *[]string
	PortfolioURL *string
	GithubURL    *string
	InstagramURL *string
	LinkedInURL  *string
	Resume       *Upload
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, apperror.BadRequest("Email cannot be empty")
		}
		if email != u.Email {
			exists, err := s.Users.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, apperror.Conflictf("User already exists with this email")
			}
			u.Email = email
		}
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, apperror.BadRequest("Full name cannot be empty")
		}
		u.FullName = name
	}
	setIf(&u.Phone, in.Phone)
	setIf(&u.Description, in.Description)
	setIf(&u.PortfolioURL, in.PortfolioURL)
	setIf(&u.GithubURL, in.GithubURL)
	setIf(&u.InstagramURL, in.InstagramURL)
	setIf(&u.LinkedInURL, in.LinkedInURL)
	if in.Technologies != nil {
		u.Technologies = *in.Technologies
	}

	if in.Resume != nil {
		// old asset goes first; a failed delete only leaks an object
		deleteAsset(ctx, s.Assets, s.Logger, u.Resume)
		asset, err := uploadAsset(ctx, s.Assets, ResumeFolder, in.Resume)
		if err != nil {
			return nil, err
		}
		u.Resume = asset
	}

	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdatePassword replaces the password and revokes every outstanding session.
func (s *UserService) UpdatePassword(ctx context.Context, userID, current, next, confirm string) error {
	if current == "" || next == "" || confirm == "" {
		return apperror.BadRequest("Please fill all fields")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, current) {
		return apperror.Unauthorizedf("Incorrect current password")
	}
	if next != confirm {
		return apperror.BadRequest("New password and confirm password do not match")
	}
	if err := s.setPassword(u, next); err != nil {
		return err
	}
	u.TokenVersion++
	return s.Users.Update(ctx, u)
}

// ForgotPassword stores a hashed reset nonce and mails the raw one. A failed
// send leaves no pending reset behind.
func (s *UserService) ForgotPassword(ctx context.Context, email string, meta RequestMeta) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", apperror.BadRequest("Please provide email")
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	raw, hash, err := helpers.GenResetToken()
	if err != nil {
		return "", apperror.InternalErr(err)
	}
	now := s.now()
	exp := now.Add(s.Cfg.ResetPasswordExpires)
	u.ResetPasswordToken = &hash
	u.ResetPasswordExpire = &exp
	if err := s.Users.Update(ctx, u); err != nil {
		return "", err
	}

	if err := s.sendResetMail(ctx, u, raw, now, exp, meta); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("reset mail failed")
		}
		u.ClearReset()
		if uErr := s.Users.Update(ctx, u); uErr != nil && s.Logger != nil {
			s.Logger.WithError(uErr).WithField("user_id", u.ID).Error("rollback of reset token failed")
		}
		return "", apperror.InternalErr(err)
	}
	return u.Email, nil
}

func (s *UserService) sendResetMail(ctx context.Context, u *entity.User, raw string, now, exp time.Time, meta RequestMeta) error {
	opts := []mailtpl.Option{
		mailtpl.WithResetURL(s.Cfg.ResetPasswordURL(raw)),
		mailtpl.WithExpiresAt(exp),
		mailtpl.WithTime(now),
		mailtpl.WithIP(meta.IP),
		mailtpl.WithUserAgent(meta.UserAgent),
	}
	if s.Geo != nil {
		opts = append(opts, mailtpl.WithGeoFromIP(ctx, s.Geo, meta.IP))
	}
	data := mailtpl.ToMap(mailtpl.NewForgotPasswordData(s.Cfg, u.FullName, u.Email, opts...))
	helpers.LocalizeTimes(data, s.loc)

	subject, text, html, err := mailtpl.Render(mailtpl.ForgotPassword, data)
	if err != nil {
		return fmt.Errorf("render reset mail: %w", err)
	}
	return s.Mailer.Send(ctx, u.Email, subject, text, html)
}

// ResetPassword consumes a reset nonce and signs a fresh session.
func (s *UserService) ResetPassword(ctx context.Context, raw, password, confirm string) (*entity.User, Session, error) {
	if password == "" || confirm == "" {
		return nil, Session{}, apperror.BadRequest("Please provide password and confirm password")
	}
	hash := helpers.HashResetToken(raw)
	u, err := s.Users.GetByResetToken(ctx, hash, s.now())
	if err != nil {
		if apperror.Is(err, apperror.NotFound) {
			return nil, Session{}, apperror.BadRequest(msgResetInvalid)
		}
		return nil, Session{}, err
	}
	if password != confirm {
		return nil, Session{}, apperror.BadRequest("Password & Confirm Password do not match")
	}
	if err := s.setPassword(u, password); err != nil {
		return nil, Session{}, err
	}
	if err := s.Users.CompleteReset(ctx, u, hash, s.now()); err != nil {
		if apperror.Is(err, apperror.NotFound) {
			return nil, Session{}, apperror.BadRequest(msgResetInvalid)
		}
		return nil, Session{}, err
	}
	passwordResets.Add(1)

	sess, err := s.issueSession(u)
	if err != nil {
		return nil, Session{}, err
	}
	return u, sess, nil
}

// setPassword is the only place a password hash is produced.
func (s *UserService) setPassword(u *entity.User, plain string) error {
	if len(plain) > helpers.MaxPasswordBytes {
		return apperror.BadRequest(fmt.Sprintf("Password must be at most %d bytes", helpers.MaxPasswordBytes))
	}
	h, err := helpers.HashPassword(plain)
	if err != nil {
		return apperror.InternalErr(err)
	}
	u.PasswordHash = h
	return nil
}

func (s *UserService) issueSession(u *entity.User) (Session, error) {
	tok, exp, err := s.JWT.GenerateToken(u.ID, u.TokenVersion)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("sign session token failed")
		}
		return Session{}, apperror.InternalErr(err)
	}
	return Session{Token: tok, ExpiresAt: exp}, nil
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
