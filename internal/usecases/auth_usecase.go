package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/domain/repositories"
	"github.com/LexovateAyacucho/qhoar-web/pkg/crypto"
	"github.com/LexovateAyacucho/qhoar-web/pkg/jwt"
	"github.com/LexovateAyacucho/qhoar-web/pkg/logger"
	"github.com/LexovateAyacucho/qhoar-web/pkg/redis"
	"github.com/LexovateAyacucho/qhoar-web/pkg/utils"
)

var (
	errLoginInvalid = domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials,
		"Credenciales inválidas. Inténtalo de nuevo.", domainerrors.ErrInvalidCredentials)
	errLoginNoProfile = domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeNoProfile,
		"Error crítico: Usuario sin perfil asignado.", domainerrors.ErrNoProfile)
	errLoginNotPremium = domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodePremiumRequired,
		"Acceso restringido. Esta plataforma web es exclusiva para usuarios Premium.", domainerrors.ErrPremiumRequired)
	errLoginNotVerified = domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeEmailNotVerified,
		"Confirma tu correo antes de iniciar sesión.", domainerrors.ErrEmailNotVerified)
)

var newSessionID = func() string { return uuid.NewString() }

// AuthConfig holds the links put in e-mails and confirmation responses
type AuthConfig struct {
	PublicBaseURL string
	DeepLink      string
}

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	uow          repositories.UnitOfWork
	userRepo     repositories.UserRepository
	verifRepo    repositories.EmailVerificationRepository
	profileRepo  repositories.ProfileRepository
	businessRepo repositories.BusinessRepository
	jwtService   *jwt.JWTService
	sessions     SessionStore
	mailer       Mailer
	cfg          AuthConfig
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	verifRepo repositories.EmailVerificationRepository,
	profileRepo repositories.ProfileRepository,
	businessRepo repositories.BusinessRepository,
	jwtService *jwt.JWTService,
	sessions SessionStore,
	mailer Mailer,
	cfg AuthConfig,
) *AuthUsecase {
	return &AuthUsecase{
		uow:          uow,
		userRepo:     userRepo,
		verifRepo:    verifRepo,
		profileRepo:  profileRepo,
		businessRepo: businessRepo,
		jwtService:   jwtService,
		sessions:     sessions,
		mailer:       mailer,
		cfg:          cfg,
	}
}

// Register creates a business owner account and mails the confirmation link
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	email := normalizeEmail(input.Email)

	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	token, err := crypto.GenerateVerificationToken()
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		profile := &entities.Profile{
			ID:       user.ID,
			Role:     entities.RoleBusinessOwner,
			FullName: strings.TrimSpace(input.FullName),
			Phone:    input.Phone,
		}
		if err := u.profileRepo.Create(txCtx, profile); err != nil {
			return err
		}
		return u.verifRepo.Create(txCtx, user.ID, token)
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	u.sendConfirmation(ctx, user.Email, token)
	return user, nil
}

// Login authenticates by password. Admins always pass; owners need a premium business.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, errLoginInvalid
		}
		return nil, err
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, errLoginInvalid
	}
	if !user.IsVerified() {
		return nil, errLoginNotVerified
	}

	profile, err := u.profileRepo.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			logger.Warn(ctx, "Login rejected, user has no profile", zap.String("user_id", user.ID.String()))
			return nil, errLoginNoProfile
		}
		return nil, err
	}

	redirect := AdminRedirect
	if profile.Role != entities.RoleAdmin {
		premium, err := u.businessRepo.HasPremiumByOwner(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if !premium {
			return nil, errLoginNotPremium
		}
		redirect = PortalRedirect
	}

	resp, err := u.startSession(ctx, user, profile, newSessionID())
	if err != nil {
		return nil, err
	}
	resp.Redirect = redirect
	return resp, nil
}

// Refresh rotates the token pair of a live session
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.ValidateTyped(refreshToken, jwt.TypeRefresh)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}
	session, err := u.sessions.GetSession(ctx, claims.SessionID)
	if err != nil {
		if redis.IsNil(err) {
			return nil, domainerrors.Unauthorized("session expired")
		}
		return nil, err
	}
	if session.RefreshToken != refreshToken {
		// a replayed token ends the session
		_ = u.sessions.DeleteSession(ctx, claims.SessionID)
		return nil, domainerrors.Unauthorized("refresh token already used")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	profile, err := u.profileRepo.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, errLoginNoProfile
		}
		return nil, err
	}
	return u.startSession(ctx, user, profile, claims.SessionID)
}

// Logout drops the server-side session
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return u.sessions.DeleteSession(ctx, sessionID)
}

// ConfirmEmail resolves a confirmation link. It never fails: every outcome is a state.
func (u *AuthUsecase) ConfirmEmail(ctx context.Context, code, errorDescription string) *entities.ConfirmationResult {
	result := &entities.ConfirmationResult{
		DeepLink:        u.cfg.DeepLink,
		ResendAvailable: true,
	}
	switch {
	case errorDescription != "":
		result.State = entities.ConfirmationError
		result.Message = errorDescription
		return result
	case code == "":
		result.State = entities.ConfirmationError
		result.Message = msgConfirmInvalidLink
		return result
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		user, err := u.verifRepo.GetByToken(txCtx, code)
		if err != nil {
			return err
		}
		if err := u.verifRepo.MarkVerified(txCtx, code); err != nil {
			return err
		}
		return u.userRepo.MarkEmailVerified(txCtx, user.ID)
	})
	if err != nil {
		logger.Info(ctx, "Confirmation code could not be exchanged", zap.Error(err))
		result.State = entities.ConfirmationAmbiguous
		result.Message = msgConfirmAmbiguous
		return result
	}

	result.State = entities.ConfirmationSuccess
	result.Message = msgConfirmSuccess
	result.ResendAvailable = false
	return result
}

// ResendConfirmation mails a new link to an unverified account. Unknown
// addresses are not reported so accounts cannot be probed.
func (u *AuthUsecase) ResendConfirmation(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if user.IsVerified() {
		return nil
	}

	token, err := crypto.GenerateVerificationToken()
	if err != nil {
		return err
	}
	if err := u.verifRepo.Create(ctx, user.ID, token); err != nil {
		return fmt.Errorf("resend confirmation: %w", err)
	}
	u.sendConfirmation(ctx, user.Email, token)
	return nil
}

// Me returns the profile of the session user
func (u *AuthUsecase) Me(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	return u.profileRepo.GetByID(ctx, userID)
}

func (u *AuthUsecase) startSession(ctx context.Context, user *entities.User, profile *entities.Profile, sessionID string) (*entities.AuthResponse, error) {
	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(profile.Role), sessionID)
	if err != nil {
		return nil, err
	}
	session := &redis.SessionData{
		UserID:       user.ID.String(),
		Role:         string(profile.Role),
		RefreshToken: pair.RefreshToken,
		CreatedAt:    time.Now().UTC(),
	}
	if err := u.sessions.CreateSession(ctx, sessionID, session, u.jwtService.RefreshExpiry()); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		SessionID:    sessionID,
		Profile:      profile,
	}, nil
}

func (u *AuthUsecase) confirmationLink(token string) string {
	return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/auth/confirm?code=" + url.QueryEscape(token)
}

// sendConfirmation is best effort, the user can ask for another link
func (u *AuthUsecase) sendConfirmation(ctx context.Context, email, token string) {
	if err := u.mailer.SendConfirmation(ctx, email, u.confirmationLink(token)); err != nil {
		logger.Error(ctx, "Failed to send confirmation mail", zap.String("email", email), zap.Error(err))
	}
}
