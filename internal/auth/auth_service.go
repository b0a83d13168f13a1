package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	autherrors "github.com/towet/payroll-processing-sys/internal/auth/errors"
	"github.com/towet/payroll-processing-sys/internal/auth/token"
	"github.com/towet/payroll-processing-sys/internal/employee"
	"github.com/towet/payroll-processing-sys/internal/rbac"
	"github.com/towet/payroll-processing-sys/internal/shared/apperror"
	"github.com/towet/payroll-processing-sys/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EmployeeFinder links an account to the employee record with the same email.
type EmployeeFinder interface {
	FindByEmail(ctx context.Context, email string) (*employee.Employee, error)
}

type Service interface {
	SignUp(ctx context.Context, req SignUpRequest) (ProfileResponse, error)
	SignIn(ctx context.Context, req SignInRequest) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	Me(ctx context.Context, userID string) (ProfileResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeFinder
	tokens    *token.Manager
	throttle  *Throttle
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeFinder,
	tokens *token.Manager,
	throttle *Throttle,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		tokens:    tokens,
		throttle:  throttle,
		now:       time.Now,
		logger:    l,
	}
}

// checkThrottle lets the attempt through when the attempt store itself fails.
func (s *service) checkThrottle(ctx context.Context, log *zap.Logger, email string) error {
	err := s.throttle.Check(ctx, email)
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		log.Warn("auth attempt throttled", zap.String("email", email))
		return err
	}
	log.Warn("auth throttle store unavailable", zap.Error(err))
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *service) SignUp(ctx context.Context, req SignUpRequest) (ProfileResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	log.Debug("sign up requested", zap.String("email", email), zap.String("role", req.Role))

	if err := s.checkThrottle(ctx, log, email); err != nil {
		return ProfileResponse{}, err
	}
	if !rbac.IsValidRole(req.Role) {
		return ProfileResponse{}, apperror.New(apperror.CodeInvalidInput, "role must be admin or employee", http.StatusBadRequest)
	}

	_, err := s.repo.FindUserByEmail(ctx, email)
	if err == nil {
		log.Warn("sign up email taken", zap.String("email", email))
		return ProfileResponse{}, autherrors.ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("sign up lookup failed", zap.Error(err))
		return ProfileResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return ProfileResponse{}, err
	}

	now := s.now().UTC()
	id := uuid.New()
	user := &User{ID: id, Email: email, PasswordHash: string(hashed), Role: req.Role, CreatedAt: now, UpdatedAt: now}
	profile := &Profile{
		ID:          id,
		Email:       email,
		FullName:    strings.TrimSpace(req.FullName),
		PhoneNumber: req.PhoneNumber,
		Department:  req.Department,
		Role:        req.Role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("sign up begin tx failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.CreateUser(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return ProfileResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		log.Error("sign up create user failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	if err := qtx.CreateProfile(ctx, profile); err != nil {
		if isUniqueViolation(err) {
			return ProfileResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		log.Error("sign up create profile failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("sign up commit failed", zap.Error(err))
		return ProfileResponse{}, err
	}

	log.Info("sign up success", zap.String("user_id", id.String()))
	return mapProfile(*profile, s.employeeID(ctx, email)), nil
}

func (s *service) SignIn(ctx context.Context, req SignInRequest) (Session, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.checkThrottle(ctx, log, email); err != nil {
		return Session{}, err
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Session{}, autherrors.ErrInvalidCredentials
		}
		log.Error("sign in lookup failed", zap.Error(err))
		return Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("sign in wrong password", zap.String("user_id", user.ID.String()))
		return Session{}, autherrors.ErrInvalidCredentials
	}

	session, err := s.session(ctx, user.ID.String())
	if err != nil {
		return Session{}, err
	}
	log.Info("sign in success", zap.String("user_id", user.ID.String()))
	return session, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	claims, err := s.tokens.Parse(refreshToken, token.KindRefresh)
	if err != nil {
		if errors.Is(err, autherrors.ErrTokenExpired) {
			return Session{}, err
		}
		return Session{}, autherrors.ErrInvalidRefreshToken
	}

	session, err := s.session(ctx, claims.UserID)
	if errors.Is(err, autherrors.ErrUserNotFound) {
		return Session{}, autherrors.ErrInvalidRefreshToken
	}
	return session, err
}

func (s *service) Me(ctx context.Context, userID string) (ProfileResponse, error) {
	p, err := s.profile(ctx, userID)
	if err != nil {
		return ProfileResponse{}, err
	}
	return mapProfile(*p, s.employeeID(ctx, p.Email)), nil
}

func (s *service) profile(ctx context.Context, userID string) (*Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, autherrors.ErrUserNotFound
	}
	p, err := s.repo.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, err
	}
	return p, nil
}

// session issues a fresh token pair from the stored profile, so role and
// employee link changes take effect on the next refresh.
func (s *service) session(ctx context.Context, userID string) (Session, error) {
	p, err := s.profile(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	employeeID := s.employeeID(ctx, p.Email)

	access, accessExp, err := s.tokens.Issue(token.KindAccess, userID, p.Role, employeeID)
	if err != nil {
		return Session{}, err
	}
	refresh, refreshExp, err := s.tokens.Issue(token.KindRefresh, userID, p.Role, employeeID)
	if err != nil {
		return Session{}, err
	}

	return Session{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
		Profile:          mapProfile(*p, employeeID),
	}, nil
}

// employeeID returns "" when no employee record carries the email.
func (s *service) employeeID(ctx context.Context, email string) string {
	empl, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			contextutil.GetLogger(ctx, s.logger).Warn("resolve employee for account failed", zap.Error(err))
		}
		return ""
	}
	return empl.ID.String()
}

func mapProfile(p Profile, employeeID string) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID.String(),
		Email:       p.Email,
		FullName:    p.FullName,
		PhoneNumber: p.PhoneNumber,
		Department:  p.Department,
		Role:        p.Role,
		EmployeeID:  employeeID,
	}
}
