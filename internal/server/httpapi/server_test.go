package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/a-mean-h/recepie-api-app/internal/common"
	"github.com/a-mean-h/recepie-api-app/internal/logging"
	"github.com/a-mean-h/recepie-api-app/internal/server/models"
	"github.com/a-mean-h/recepie-api-app/internal/server/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- in-memory fakes implementing the service interfaces ---

type fakeUserService struct {
	byEmail map[string]*models.User
	nextID  int
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{byEmail: map[string]*models.User{}}
}

func (f *fakeUserService) Create(ctx context.Context, email, password, name string) (*models.User, error) {
	if email == "" {
		return nil, common.NewValidationError("email", "must not be empty")
	}
	norm := services.NormalizeEmail(email)
	if _, exists := f.byEmail[norm]; exists {
		return nil, common.ErrorAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	f.nextID++
	user := &models.User{
		ID:          "u-" + strconv.Itoa(f.nextID),
		Email:       norm,
		Name:        name,
		Credentials: models.Credentials{PasswordHash: string(hash)},
		Permissions: models.Permissions{IsActive: true},
	}
	f.byEmail[norm] = user
	return user, nil
}

func (f *fakeUserService) Update(ctx context.Context, user *models.User, upd services.UserUpdate) (*models.User, error) {
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.MinCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	return user, nil
}

func (f *fakeUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, ok := f.byEmail[services.NormalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return user, nil
}

type fakeTokenService struct {
	byToken map[string]*models.User
	byUser  map[string]string
	nextTok int
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{byToken: map[string]*models.User{}, byUser: map[string]string{}}
}

func (f *fakeTokenService) Issue(ctx context.Context, user *models.User) (string, error) {
	if tok, ok := f.byUser[user.ID]; ok {
		return tok, nil
	}
	f.nextTok++
	tok := "tok-" + strconv.Itoa(f.nextTok)
	f.byUser[user.ID] = tok
	f.byToken[tok] = user
	return tok, nil
}

func (f *fakeTokenService) Resolve(ctx context.Context, token string) (*models.User, error) {
	user, ok := f.byToken[token]
	if !ok {
		return nil, common.ErrInvalidToken
	}
	return user, nil
}

type fakeRecipeService struct {
	nextID  int64
	recipes map[int64]*models.Recipe
}

func newFakeRecipeService() *fakeRecipeService {
	return &fakeRecipeService{recipes: map[int64]*models.Recipe{}}
}

func (f *fakeRecipeService) List(ctx context.Context, ownerID string) ([]*models.Recipe, error) {
	var result []*models.Recipe
	for id := f.nextID; id >= 1; id-- {
		if r, ok := f.recipes[id]; ok && r.UserID == ownerID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRecipeService) Get(ctx context.Context, ownerID string, id int64) (*models.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok || r.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	return r, nil
}

func (f *fakeRecipeService) Create(ctx context.Context, ownerID string, input services.RecipeInput) (*models.Recipe, error) {
	f.nextID++
	r := &models.Recipe{
		ID:          f.nextID,
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		TimeMinute:  input.TimeMinute,
		Link:        input.Link,
	}
	f.recipes[r.ID] = r
	return r, nil
}

func (f *fakeRecipeService) Update(ctx context.Context, ownerID string, id int64, upd services.RecipeUpdate) (*models.Recipe, error) {
	r, err := f.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		r.Title = *upd.Title
	}
	if upd.Description != nil {
		r.Description = *upd.Description
	}
	if upd.Price != nil {
		r.Price = *upd.Price
	}
	if upd.TimeMinute != nil {
		r.TimeMinute = *upd.TimeMinute
	}
	if upd.Link != nil {
		r.Link = *upd.Link
	}
	return r, nil
}

func (f *fakeRecipeService) Delete(ctx context.Context, ownerID string, id int64) error {
	if _, err := f.Get(ctx, ownerID, id); err != nil {
		return err
	}
	delete(f.recipes, id)
	return nil
}

// --- test harness ---

type testEnv struct {
	server  *Server
	users   *fakeUserService
	tokens  *fakeTokenService
	recipes *fakeRecipeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	users := newFakeUserService()
	tokens := newFakeTokenService()
	recipes := newFakeRecipeService()
	return &testEnv{
		server:  NewServer(":0", logger, users, tokens, recipes),
		users:   users,
		tokens:  tokens,
		recipes: recipes,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func (e *testEnv) registerAndLogin(t *testing.T, email, password, name string) string {
	t.Helper()
	res := e.do(t, http.MethodPost, "/api/users/", "", gin.H{"email": email, "password": password, "name": name})
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	res = e.do(t, http.MethodPost, "/api/users/token/", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func decodeJSON(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	return body
}
