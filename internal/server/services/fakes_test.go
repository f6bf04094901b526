package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/a-mean-h/recepie-api-app/internal/common"
	"github.com/a-mean-h/recepie-api-app/internal/dbx"
	"github.com/a-mean-h/recepie-api-app/internal/server/models"
	authtokensrepo "github.com/a-mean-h/recepie-api-app/internal/server/repositories/authtokens"
	recipesrepo "github.com/a-mean-h/recepie-api-app/internal/server/repositories/recipes"
	usersrepo "github.com/a-mean-h/recepie-api-app/internal/server/repositories/users"
)

// --- hand-written fakes shared by the service tests ---

type fakeUsersRepo struct {
	created *models.User
	updated *models.User

	byEmail map[string]*models.User
	byID    map[string]*models.User

	createErr error
	updateErr error

	lastLoginUser string
	lastLoginAt   time.Time
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byEmail: map[string]*models.User{},
		byID:    map[string]*models.User{},
	}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return nil, common.ErrorAlreadyExists
	}
	f.created = u
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsersRepo) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	f.lastLoginUser = userID
	f.lastLoginAt = at
	return nil
}

type fakeTokensRepo struct {
	byUser  map[string]*models.AuthToken
	byToken map[string]*models.AuthToken

	createErr error
}

func newFakeTokensRepo() *fakeTokensRepo {
	return &fakeTokensRepo{
		byUser:  map[string]*models.AuthToken{},
		byToken: map[string]*models.AuthToken{},
	}
}

func (f *fakeTokensRepo) Create(ctx context.Context, userID string, token string) error {
	if f.createErr != nil {
		return f.createErr
	}
	t := &models.AuthToken{Token: token, UserID: userID, CreatedAt: time.Now()}
	f.byUser[userID] = t
	f.byToken[token] = t
	return nil
}

func (f *fakeTokensRepo) FindByUser(ctx context.Context, userID string) (*models.AuthToken, error) {
	t, ok := f.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (f *fakeTokensRepo) FindByToken(ctx context.Context, token string) (*models.AuthToken, error) {
	t, ok := f.byToken[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

type fakeRecipesRepo struct {
	nextID  int64
	recipes map[int64]*models.Recipe

	listErr   error
	createErr error
	updateErr error
}

func newFakeRecipesRepo() *fakeRecipesRepo {
	return &fakeRecipesRepo{recipes: map[int64]*models.Recipe{}}
}

func (f *fakeRecipesRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Recipe, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*models.Recipe
	for id := f.nextID; id >= 1; id-- {
		if r, ok := f.recipes[id]; ok && r.UserID == ownerID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRecipesRepo) GetByOwner(ctx context.Context, ownerID string, id int64) (*models.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok || r.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	return r, nil
}

func (f *fakeRecipesRepo) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	recipe.ID = f.nextID
	f.recipes[recipe.ID] = recipe
	return recipe, nil
}

func (f *fakeRecipesRepo) Update(ctx context.Context, recipe *models.Recipe) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	existing, ok := f.recipes[recipe.ID]
	if !ok || existing.UserID != recipe.UserID {
		return common.ErrorNotFound
	}
	f.recipes[recipe.ID] = recipe
	return nil
}

func (f *fakeRecipesRepo) Delete(ctx context.Context, ownerID string, id int64) error {
	r, ok := f.recipes[id]
	if !ok || r.UserID != ownerID {
		return common.ErrorNotFound
	}
	delete(f.recipes, id)
	return nil
}

type fakeRepoManager struct {
	users   *fakeUsersRepo
	tokens  *fakeTokensRepo
	recipes *fakeRecipesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:   newFakeUsersRepo(),
		tokens:  newFakeTokensRepo(),
		recipes: newFakeRecipesRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.users }

func (m *fakeRepoManager) AuthTokens(db dbx.DBTX) authtokensrepo.Repository { return m.tokens }

func (m *fakeRepoManager) Recipes(db dbx.DBTX) recipesrepo.Repository { return m.recipes }
