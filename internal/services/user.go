package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/data/repos"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/ctxutil"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type EarnedTrophy struct {
	*types.Trophy
	EarnedAt time.Time `json:"earned_at"`
}

type UserStats struct {
	StreakDays            int            `json:"streak_days"`
	TotalWordsLearned     int            `json:"total_words_learned"`
	TotalCoursesCompleted int            `json:"total_courses_completed"`
	TotalTrophies         int            `json:"total_trophies"`
	OverallProgress       int            `json:"overall_progress"`
	EarnedTrophies        []EarnedTrophy `json:"earned_trophies"`
}

// ProfileUpdate holds the user-editable fields. Nil leaves a field as is.
type ProfileUpdate struct {
	Username     *string
	Email        *string
	CurrentTheme *string
}

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, error)
	GetStats(ctx context.Context, userID uuid.UUID) (*UserStats, error)
	Update(ctx context.Context, userID uuid.UUID, in ProfileUpdate) (*types.User, error)
}

type userService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	userTokenRepo  repos.UserTokenRepo
	courseRepo     repos.CourseRepo
	trophyRepo     repos.TrophyRepo
	userTrophyRepo repos.UserTrophyRepo
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	courseRepo repos.CourseRepo,
	trophyRepo repos.TrophyRepo,
	userTrophyRepo repos.UserTrophyRepo,
) UserService {
	return &userService{
		db:             db,
		log:            log.With("service", "UserService"),
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		courseRepo:     courseRepo,
		trophyRepo:     trophyRepo,
		userTrophyRepo: userTrophyRepo,
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	return us.load(dbctx.Context{Ctx: ctx}, userID)
}

func (us *userService) load(dbc dbctx.Context, userID uuid.UUID) (*types.User, error) {
	if userID == uuid.Nil {
		return nil, apierr.Unauthenticated("login required")
	}
	users, err := us.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user not found")
	}
	return users[0], nil
}

func (us *userService) GetStats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	dbc := dbctx.Context{Ctx: ctx}
	u, err := us.load(dbc, userID)
	if err != nil {
		return nil, err
	}
	courses, err := us.courseRepo.Count(dbc)
	if err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}
	grants, err := us.userTrophyRepo.GetByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("load grants: %w", err)
	}

	earned := []EarnedTrophy{}
	if len(grants) > 0 {
		ids := make([]uuid.UUID, 0, len(grants))
		for _, g := range grants {
			ids = append(ids, g.TrophyID)
		}
		trophies, err := us.trophyRepo.GetByIDs(dbc, ids)
		if err != nil {
			return nil, fmt.Errorf("load trophies: %w", err)
		}
		byID := make(map[uuid.UUID]*types.Trophy, len(trophies))
		for _, t := range trophies {
			byID[t.ID] = t
		}
		for _, g := range grants {
			if t, ok := byID[g.TrophyID]; ok {
				earned = append(earned, EarnedTrophy{Trophy: t, EarnedAt: g.EarnedAt})
			}
		}
	}

	overall := 0
	if courses > 0 {
		overall = int(math.Round(100 * float64(u.TotalCoursesCompleted) / float64(courses)))
	}
	return &UserStats{
		StreakDays:            u.StreakDays,
		TotalWordsLearned:     u.TotalWordsLearned,
		TotalCoursesCompleted: u.TotalCoursesCompleted,
		TotalTrophies:         u.TotalTrophies,
		OverallProgress:       overall,
		EarnedTrophies:        earned,
	}, nil
}

func (us *userService) Update(ctx context.Context, userID uuid.UUID, in ProfileUpdate) (*types.User, error) {
	updates := map[string]interface{}{}
	var username, email string
	if in.Username != nil {
		username = strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, apierr.Validation("username cannot be empty")
		}
		updates["username"] = username
	}
	if in.Email != nil {
		email = strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, apierr.Validation("invalid email")
		}
		updates["email"] = email
	}
	if in.CurrentTheme != nil {
		theme := strings.ToLower(strings.TrimSpace(*in.CurrentTheme))
		if theme == "" {
			return nil, apierr.Validation("current_theme cannot be empty")
		}
		updates["current_theme"] = theme
	}

	var (
		out     *types.User
		revoked int
	)
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		current, err := us.load(dbc, userID)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			out = current
			return nil
		}
		if username != "" || email != "" {
			taken, err := us.userRepo.UsernameOrEmailTaken(dbc, userID, username, email)
			if err != nil {
				return fmt.Errorf("check username: %w", err)
			}
			if taken {
				return apierr.Conflict("username or email already exists")
			}
		}
		if err := us.userRepo.UpdateProfile(dbc, userID, updates); err != nil {
			return apierr.FromDB(err, "username or email already exists")
		}
		if (username != "" && username != current.Username) || (email != "" && email != current.Email) {
			if revoked, err = us.revokeOtherSessions(dbc, userID); err != nil {
				return err
			}
		}
		out, err = us.load(dbc, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	us.log.Info("profile updated", "user_id", userID, "fields", len(updates), "sessions_revoked", revoked)
	return out, nil
}

// revokeOtherSessions deletes every token pair of the user except the one
// the current request authenticated with. Identity changes log out other
// devices.
func (us *userService) revokeOtherSessions(dbc dbctx.Context, userID uuid.UUID) (int, error) {
	tokens, err := us.userTokenRepo.GetByUserIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return 0, fmt.Errorf("load sessions: %w", err)
	}
	keep := ""
	if rd := ctxutil.GetRequestData(dbc.Ctx); rd != nil && rd.UserID == userID {
		keep = rd.TokenString
	}
	ids := make([]uuid.UUID, 0, len(tokens))
	for _, t := range tokens {
		if keep != "" && t.AccessToken == keep {
			continue
		}
		ids = append(ids, t.ID)
	}
	if err := us.userTokenRepo.FullDeleteByIDs(dbc, ids); err != nil {
		return 0, fmt.Errorf("revoke sessions: %w", err)
	}
	return len(ids), nil
}
