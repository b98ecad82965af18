package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sarunks7/storely-backend/internal/data/repos"
	types "github.com/sarunks7/storely-backend/internal/domain"
	"github.com/sarunks7/storely-backend/internal/pkg/apperr"
	"github.com/sarunks7/storely-backend/internal/platform/ctxutil"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
	"github.com/sarunks7/storely-backend/internal/utils"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	ActivateUser(ctx context.Context, userID uuid.UUID, token string) error
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	mailer        Mailer
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	activationTTL time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	mailer Mailer,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		mailer:        mailer,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		activationTTL: 48 * time.Hour,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	utils.NormalizeUserFields(user)
	if vErr := utils.ValidateRegistration(ctx, as.userRepo, user); vErr != nil {
		return vErr
	}
	if hErr := utils.HashPassword(user); hErr != nil {
		return hErr
	}
	var activationToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.ID = uuid.New()
		user.IsActive = false
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		activationToken = uuid.New().String()
		token := &types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			Kind:         types.TokenKindActivate,
			RefreshToken: activationToken,
			ExpiresAt:    time.Now().Add(as.activationTTL),
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{token}); err != nil {
			return fmt.Errorf("failed to create activation token: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if mErr := as.mailer.SendActivationEmail(ctx, user, activationToken); mErr != nil {
		// The account exists either way; the activation link can be re-sent.
		as.log.Warn("activation email send failed", "user_id", user.ID.String(), "error", mErr)
	}
	return nil
}

func (as *authService) ActivateUser(ctx context.Context, userID uuid.UUID, token string) error {
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{token})
		if err != nil {
			return fmt.Errorf("failed to look up activation token: %w", err)
		}
		if len(found) == 0 || found[0].Kind != types.TokenKindActivate || found[0].UserID != userID {
			return fmt.Errorf("activation token: %w", apperr.ErrNotFound)
		}
		if found[0].ExpiresAt.Before(time.Now()) {
			return fmt.Errorf("activation token expired")
		}
		if err := as.userRepo.SetActive(ctx, tx, userID, true); err != nil {
			return fmt.Errorf("failed to activate user: %w", err)
		}
		return as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{found[0].ID})
	})
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)
	if vErr := utils.ValidateLogin(email, password); vErr != nil {
		return "", "", vErr
	}

	users, usErr := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if usErr != nil {
		return "", "", fmt.Errorf("error retrieving user by email: %w", usErr)
	}
	if len(users) == 0 {
		return "", "", fmt.Errorf("invalid email or password")
	}
	user := users[0]
	if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
		return "", "", fmt.Errorf("invalid email or password")
	}
	if !user.IsActive {
		return "", "", fmt.Errorf("account is not activated")
	}

	var accessToken string
	var refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dErr := as.userTokenRepo.DeleteExpired(ctx, tx, time.Now()); dErr != nil {
			as.log.Warn("expired token sweep failed", "error", dErr)
		}
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("generate access token: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		userToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			Kind:         types.TokenKindAuth,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); ctErr != nil {
			return fmt.Errorf("create user token: %w", ctErr)
		}
		return nil
	}); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", fmt.Errorf("no refresh token in request context")
	}

	var accessToken string
	var newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, ftErr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
		if ftErr != nil {
			return fmt.Errorf("error fetching refresh token: %w", ftErr)
		}
		if len(found) == 0 || found[0].Kind != types.TokenKindAuth {
			return fmt.Errorf("refresh token: %w", apperr.ErrNotFound)
		}
		existing := found[0]
		if existing.ExpiresAt.Before(time.Now()) {
			if dErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); dErr != nil {
				return fmt.Errorf("refresh token expired, error deleting: %w", dErr)
			}
			return fmt.Errorf("refresh token expired")
		}
		users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.UserID})
		if uErr != nil {
			return fmt.Errorf("failed to load user for refresh: %w", uErr)
		}
		if len(users) == 0 {
			return fmt.Errorf("no user found for the given refresh token")
		}
		user := users[0]
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("failed to generate new access token: %w", genErr)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()
		newToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			Kind:         types.TokenKindAuth,
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newToken}); cErr != nil {
			return fmt.Errorf("failed to create new user token: %w", cErr)
		}
		return as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID})
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return fmt.Errorf("no access token in request context")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if ftErr != nil {
			return fmt.Errorf("error finding user token: %w", ftErr)
		}
		if len(found) == 0 {
			return nil
		}
		return as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{found[0].ID})
	})
}

func (as *authService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email is required")
	}
	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return fmt.Errorf("error retrieving user by email: %w", err)
	}
	if len(users) == 0 {
		// Do not reveal whether the address exists.
		as.log.Debug("password reset requested for unknown email")
		return nil
	}
	user := users[0]
	resetToken := uuid.New().String()
	token := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		Kind:         types.TokenKindPasswordReset,
		RefreshToken: resetToken,
		ExpiresAt:    time.Now().Add(as.activationTTL),
	}
	if _, cErr := as.userTokenRepo.Create(ctx, nil, []*types.UserToken{token}); cErr != nil {
		return fmt.Errorf("failed to create reset token: %w", cErr)
	}
	if mErr := as.mailer.SendPasswordResetEmail(ctx, user, resetToken); mErr != nil {
		as.log.Warn("password reset email send failed", "user_id", user.ID.String(), "error", mErr)
	}
	return nil
}

func (as *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	newPassword = strings.TrimSpace(newPassword)
	if newPassword == "" {
		return fmt.Errorf("a new password is required")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{token})
		if err != nil {
			return fmt.Errorf("failed to look up reset token: %w", err)
		}
		if len(found) == 0 || found[0].Kind != types.TokenKindPasswordReset {
			return fmt.Errorf("reset token: %w", apperr.ErrNotFound)
		}
		if found[0].ExpiresAt.Before(time.Now()) {
			return fmt.Errorf("reset token expired")
		}
		tmp := types.User{Password: newPassword}
		if hErr := utils.HashPassword(&tmp); hErr != nil {
			return hErr
		}
		if uErr := as.userRepo.UpdatePassword(ctx, tx, found[0].UserID, tmp.Password); uErr != nil {
			return fmt.Errorf("failed to update password: %w", uErr)
		}
		return as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{found[0].ID})
	})
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}

	var refreshToken string
	found, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if ftErr != nil {
		return ctx, fmt.Errorf("failed to fetch user token: %w", ftErr)
	}
	if len(found) == 0 {
		// Token verified but revoked server-side (logout).
		return ctx, fmt.Errorf("token revoked")
	}
	refreshToken = found[0].RefreshToken

	rd := &ctxutil.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshToken,
		UserID:       userID,
	}
	if prev := ctxutil.GetRequestData(ctx); prev != nil {
		// Keep the anonymous session key around; the cart it scopes may
		// still be shown until a merge policy exists.
		rd.SessionKey = prev.SessionKey
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
