// Package services contains the server-side business logic: account
// management, token issuance/resolution, and recipe CRUD.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/a-mean-h/recepie-api-app/internal/common"
	"github.com/a-mean-h/recepie-api-app/internal/server/models"
	"github.com/a-mean-h/recepie-api-app/internal/server/repositories/repomanager"
)

// dummyHash is a bcrypt hash compared against when the looked-up user does
// not exist, so Authenticate takes roughly the same time for unknown emails
// and wrong passwords.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserUpdate describes a partial profile update. Nil fields are left as-is;
// a present Password is re-hashed, never stored verbatim.
type UserUpdate struct {
	Name     *string
	Password *string
}

// UserService manages user accounts: creation, superuser promotion, profile
// updates, and credential checks.
type UserService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewUserService constructs a UserService over the given database handle and
// repository manager.
func NewUserService(db *sql.DB, repos repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repos: repos}
}

// NormalizeEmail lower-cases the domain part of an email address while
// preserving the local part as given. Strings without an "@" are returned
// unchanged.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// Create registers a new user. The email must be non-empty; it is normalized
// before persisting and must be unique (common.ErrorAlreadyExists otherwise).
// The password is bcrypt-hashed and the plaintext never leaves this function.
func (s *UserService) Create(ctx context.Context, email, password, name string) (*models.User, error) {
	if email == "" {
		return nil, common.NewValidationError("email", "must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:          uuid.NewString(),
		Email:       NormalizeEmail(email),
		Name:        name,
		Credentials: models.Credentials{PasswordHash: string(hash)},
		Permissions: models.Permissions{IsActive: true},
	}

	repo := s.repos.Users(s.db)
	created, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// CreateSuperuser registers a new user and grants staff and superuser flags.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.Create(ctx, email, password, "")
	if err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsSuperuser = true

	repo := s.repos.Users(s.db)
	if err := repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error promoting user: %w", err)
	}
	return user, nil
}

// Update applies a partial profile update to the given user and persists it.
func (s *UserService) Update(ctx context.Context, user *models.User, upd UserUpdate) (*models.User, error) {
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	repo := s.repos.Users(s.db)
	if err := repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return user, nil
}

// Authenticate looks up a user by normalized email and verifies the password
// against the stored hash. It returns (nil, nil) for an unknown email, a
// wrong password, or an inactive account; callers must not be able to tell
// those cases apart.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Burn a comparison anyway so the miss is not observably faster.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, nil
		}
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}
	if !user.IsActive {
		return nil, nil
	}
	return user, nil
}
