package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/server/auth"
	"github.com/dmitrijs2005/docflow/internal/server/models"
	"github.com/dmitrijs2005/docflow/internal/server/permissions"
	"github.com/dmitrijs2005/docflow/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// passwordCost is a seam so tests can hash quickly.
var passwordCost = bcrypt.DefaultCost

// UserService provides registration, login and account removal.
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger, secretKey string, accessTTL time.Duration) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		logger:                      l.With("module", "users"),
		jwtSecret:                   []byte(secretKey),
		accessTokenValidityDuration: accessTTL,
	}
}

// Register creates an active user with a bcrypt password hash.
func (s *UserService) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, invalid("name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("email %q is not valid", email)
	}
	if len(password) < minPasswordLength {
		return nil, invalid("password must be at least %d characters", minPasswordLength)
	}
	if _, ok := models.ParseRole(string(role)); !ok {
		return nil, invalid("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Name:         name,
		Email:        email,
		Role:         role,
		IsActive:     true,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login checks the credentials and returns a signed access token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil, common.ErrUnauthorized
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", nil, common.ErrUnauthorized
	}
	if !user.IsActive {
		return "", nil, fmt.Errorf("%w: %w", common.ErrUnauthorized, common.ErrInactiveUser)
	}

	token, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", nil, fmt.Errorf("error generating token: %w", err)
	}
	return token, user, nil
}

// Me returns the profile of the calling user.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	return activeUser(ctx, s.repomanager.Users(s.db), userID)
}

// DeleteUser removes a user on behalf of a manager. Users who still own
// documents are kept and common.ErrUserHasDocuments is returned.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id string) error {
	repo := s.repomanager.Users(s.db)

	actor, err := activeUser(ctx, repo, actorID)
	if err != nil {
		return err
	}
	if !permissions.Can(actor.Role, permissions.ActionManage) {
		return fmt.Errorf("%w: role %s cannot manage users", common.ErrForbidden, actor.Role)
	}

	if err := repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info(ctx, "user deleted", "user_id", id, "actor_id", actorID)
	return nil
}
