package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/data/repos"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/ctxutil"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type JWTClaims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type Session struct {
	User         *types.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	Logout(ctx context.Context, accessToken string) error
	// SetContextFromToken verifies an access token and attaches the caller
	// to the returned context. A revoked token fails even when its
	// signature is valid.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	PurgeExpiredTokens(ctx context.Context) (int64, error)
	AccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	bcryptCost    int
	now           func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		bcryptCost:    bcrypt.DefaultCost,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*types.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, apierr.Validation("username, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return nil, apierr.Validation("invalid email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), as.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &types.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CurrentTheme: types.DefaultTheme,
	}
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		taken, err := as.userRepo.UsernameOrEmailTaken(dbc, uuid.Nil, username, email)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if taken {
			return apierr.Conflict("username or email already exists")
		}
		if _, err := as.userRepo.Create(dbc, []*types.User{u}); err != nil {
			return apierr.FromDB(err, "username or email already exists")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("user registered", "user_id", u.ID)
	return u, nil
}

func (as *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apierr.Validation("username and password are required")
	}

	var session *Session
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		u, err := as.userRepo.GetByUsername(dbc, username)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if u == nil {
			return apierr.Unauthenticated("invalid credentials")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
			return apierr.Unauthenticated("invalid credentials")
		}

		now := as.now()
		if err := as.userRepo.UpdateProfile(dbc, u.ID, map[string]interface{}{"last_login": now}); err != nil {
			return fmt.Errorf("update last login: %w", err)
		}
		u.LastLogin = &now

		session, err = as.issue(dbc, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("user logged in", "user_id", session.User.ID)
	return session, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, apierr.Validation("refresh_token is required")
	}

	var session *Session
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		found, err := as.userTokenRepo.GetByRefreshTokens(dbc, []string{refreshToken})
		if err != nil {
			return fmt.Errorf("load refresh token: %w", err)
		}
		if len(found) == 0 {
			return apierr.Unauthenticated("invalid refresh token")
		}
		existing := found[0]
		if existing.ExpiresAt.Before(as.now()) {
			return apierr.Unauthenticated("refresh token expired")
		}
		if err := as.userTokenRepo.FullDeleteByIDs(dbc, []uuid.UUID{existing.ID}); err != nil {
			return fmt.Errorf("revoke old token: %w", err)
		}

		users, err := as.userRepo.GetByIDs(dbc, []uuid.UUID{existing.UserID})
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if len(users) == 0 {
			return apierr.Unauthenticated("user no longer exists")
		}
		session, err = as.issue(dbc, users[0])
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (as *authService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return apierr.Unauthenticated("not logged in")
	}
	dbc := dbctx.Context{Ctx: ctx}
	found, err := as.userTokenRepo.GetByAccessTokens(dbc, []string{accessToken})
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	if len(found) == 0 {
		return nil
	}
	if err := as.userTokenRepo.FullDeleteByIDs(dbc, []uuid.UUID{found[0].ID}); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	as.log.Info("user logged out", "user_id", found[0].UserID)
	return nil
}

func (as *authService) issue(dbc dbctx.Context, u *types.User) (*Session, error) {
	access, err := as.generateAccessToken(u)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	row := &types.UserToken{
		ID:           uuid.New(),
		UserID:       u.ID,
		AccessToken:  access,
		RefreshToken: uuid.New().String(),
		ExpiresAt:    as.now().Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{row}); err != nil {
		return nil, fmt.Errorf("store user token: %w", err)
	}
	return &Session{
		User:         u,
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
		ExpiresIn:    int(as.accessTTL.Seconds()),
	}, nil
}

func (as *authService) generateAccessToken(u *types.User) (string, error) {
	now := as.now()
	claims := JWTClaims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Unauthenticated("missing token")
	}
	claims := &JWTClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ctx, apierr.Unauthenticated("token expired")
		}
		return ctx, apierr.Unauthenticated("invalid token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Unauthenticated("invalid token subject")
	}

	found, err := as.userTokenRepo.GetByAccessTokens(dbctx.Context{Ctx: ctx}, []string{tokenString})
	if err != nil {
		return ctx, fmt.Errorf("load token: %w", err)
	}
	if len(found) == 0 {
		return ctx, apierr.Unauthenticated("token revoked")
	}

	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		rd = &ctxutil.RequestData{}
	}
	next := *rd
	next.UserID = userID
	next.Username = claims.Username
	next.TokenString = tokenString
	return ctxutil.WithRequestData(ctx, &next), nil
}

func (as *authService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	n, err := as.userTokenRepo.FullDeleteExpired(dbctx.Context{Ctx: ctx}, as.now())
	if err != nil {
		return 0, fmt.Errorf("purge expired tokens: %w", err)
	}
	if n > 0 {
		as.log.Info("expired tokens purged", "count", n)
	}
	return n, nil
}

func (as *authService) AccessTTL() time.Duration {
	return as.accessTTL
}
