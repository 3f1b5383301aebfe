package handlers_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FOODREC_BACK-END/internal/auth"
	"FOODREC_BACK-END/internal/handlers"
	"FOODREC_BACK-END/internal/models"
	"FOODREC_BACK-END/internal/routes"
	"FOODREC_BACK-END/internal/store"
)

type testEnv struct {
	mux    *http.ServeMux
	store  *store.Memory
	tokens *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mem := store.NewMemory()
	hasher := auth.NewBcryptHasher()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authHandler := handlers.NewAuthHandler(mem, hasher, tokens, logger)
	profileHandler := handlers.NewProfileHandler(mem, logger)
	healthHandler := handlers.NewHealthHandler(nil)

	return &testEnv{
		mux:    routes.SetupRoutes(authHandler, profileHandler, healthHandler, tokens),
		store:  mem,
		tokens: tokens,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	return w
}

func (e *testEnv) register(t *testing.T, username, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodPost, "/api/register", "", map[string]any{
		"username": username,
		"email":    email,
		"password": password,
	})
}

func (e *testEnv) login(t *testing.T, identifier, password string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodPost, "/api/login", "", map[string]any{
		"username": identifier,
		"password": password,
	})
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/health", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.NotEmpty(t, body["message"])
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/register", "", map[string]any{
		"username":  "alice",
		"email":     "alice@example.com",
		"password":  "password123",
		"full_name": "Alice A.",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "Alice A.", user["full_name"])
	assert.NotZero(t, user["user_id"])
	assert.NotEmpty(t, user["created_at"])
	assert.NotContains(t, user, "password_hash")
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	tests := []struct {
		name string
		body map[string]any
	}{
		{"empty body", map[string]any{}},
		{"no username", map[string]any{"email": "a@example.com", "password": "password123"}},
		{"no email", map[string]any{"username": "alice", "password": "password123"}},
		{"no password", map[string]any{"username": "alice", "email": "a@example.com"}},
		{"bad email", map[string]any{"username": "alice", "email": "not-an-email", "password": "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeBody(t, w)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "alice", "alice@example.com", "password123").Code)

	// Same username, different email: still a conflict, and no second row.
	w := env.register(t, "alice", "different@example.com", "password456")
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Conflict", body["error"])
	assert.Contains(t, body["message"], "username")

	_, err := env.store.FindByEmail(t.Context(), "different@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "alice", "alice@example.com", "password123").Code)

	w := env.register(t, "bob", "alice@example.com", "password456")
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Conflict", body["error"])
	assert.Contains(t, body["message"], "email")
}

func TestRegister_ConcurrentSameUsername(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	const workers = 4
	codes := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = env.register(t, "alice", "alice@example.com", "password123").Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusBadRequest:
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, created)
}

func TestLogin_ByUsernameAndByEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "alice", "alice@example.com", "password123").Code)

	for _, identifier := range []string{"alice", "alice@example.com"} {
		w := env.login(t, identifier, "password123")
		require.Equal(t, http.StatusOK, w.Code, "identifier %q", identifier)
		body := decodeBody(t, w)
		assert.Equal(t, "success", body["status"])
		assert.NotEmpty(t, body["access_token"])

		user := body["user"].(map[string]any)
		assert.Equal(t, "alice", user["username"])
		assert.NotContains(t, user, "password_hash")
	}
}

func TestLogin_FailuresIndistinguishable(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "alice", "alice@example.com", "password123").Code)

	wrongPassword := env.login(t, "alice", "password123x")
	noSuchUser := env.login(t, "nobody", "password123")

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, noSuchUser.Code)
	// Identical bodies, so callers cannot tell which cause occurred.
	assert.JSONEq(t, wrongPassword.Body.String(), noSuchUser.Body.String())
}

func TestLogin_MissingFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/login", "", map[string]any{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_LegacySeededAccount(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	// Insert a record the way the seeding tool does, bypassing bcrypt.
	digest := sha256.Sum256([]byte("secret"))
	_, err := env.store.Insert(t.Context(), &models.User{
		Username:     "legacy",
		Email:        "legacy@example.com",
		PasswordHash: hex.EncodeToString(digest[:]),
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, env.login(t, "legacy", "secret").Code)
	require.Equal(t, http.StatusUnauthorized, env.login(t, "legacy", "wrong").Code)
}

func TestProfile_Get(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "alice", "alice@example.com", "password123").Code)
	login := decodeBody(t, env.login(t, "alice", "password123"))
	token := login["access_token"].(string)

	w := env.do(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password_hash")
}

func TestProfile_Unauthorized(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/profile", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/profile", "garbage", nil).Code)

	expired, err := auth.NewTokenManager("test-secret", -time.Minute).Generate(1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/profile", expired, nil).Code)
}

func TestProfile_TokenForDeletedUser(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "alice", "alice@example.com", "password123").Code)
	login := decodeBody(t, env.login(t, "alice", "password123"))
	token := login["access_token"].(string)
	userID := int64(login["user"].(map[string]any)["user_id"].(float64))

	env.store.Delete(userID)

	w := env.do(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", decodeBody(t, w)["error"])
}

func TestProfile_Update(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "alice", "alice@example.com", "password123").Code)
	token := decodeBody(t, env.login(t, "alice", "password123"))["access_token"].(string)

	w := env.do(t, http.MethodPut, "/api/profile", token, map[string]any{
		"email":     "new@example.com",
		"full_name": "Alice Updated",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	user := body["user"].(map[string]any)
	assert.Equal(t, "new@example.com", user["email"])
	assert.Equal(t, "Alice Updated", user["full_name"])

	// Login with the new email now works.
	assert.Equal(t, http.StatusOK, env.login(t, "new@example.com", "password123").Code)
}

func TestProfile_UpdatePartial(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "alice", "alice@example.com", "password123").Code)
	token := decodeBody(t, env.login(t, "alice", "password123"))["access_token"].(string)

	w := env.do(t, http.MethodPut, "/api/profile", token, map[string]any{"full_name": "Just The Name"})
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]any)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "Just The Name", user["full_name"])
}

func TestProfile_UpdateEmailConflict(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "alice", "alice@example.com", "password123").Code)
	require.Equal(t, http.StatusCreated, env.register(t, "bob", "bob@example.com", "password123").Code)
	token := decodeBody(t, env.login(t, "bob", "password123"))["access_token"].(string)

	w := env.do(t, http.MethodPut, "/api/profile", token, map[string]any{"email": "alice@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Conflict", decodeBody(t, w)["error"])

	// Both records keep their emails.
	alice, err := env.store.FindByUsername(t.Context(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", alice.Email)
	bob, err := env.store.FindByUsername(t.Context(), "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", bob.Email)
}

func TestProfile_UpdateInvalidEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "alice", "alice@example.com", "password123").Code)
	token := decodeBody(t, env.login(t, "alice", "password123"))["access_token"].(string)

	w := env.do(t, http.MethodPut, "/api/profile", token, map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "alice", "alice@example.com", "password123").Code)
	token := decodeBody(t, env.login(t, "alice", "password123"))["access_token"].(string)

	w := env.do(t, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", decodeBody(t, w)["status"])

	// Logout requires a token.
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/api/logout", "", nil).Code)

	// Tokens are stateless: the token still validates after logout.
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/profile", token, nil).Code)
}

func TestNoEndpointLeaksPasswordHash(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.register(t, "alice", "alice@example.com", "password123").Code)
	token := decodeBody(t, env.login(t, "alice", "password123"))["access_token"].(string)

	responses := []*httptest.ResponseRecorder{
		env.register(t, "bob", "bob@example.com", "password123"),
		env.login(t, "alice", "password123"),
		env.do(t, http.MethodGet, "/api/profile", token, nil),
		env.do(t, http.MethodPut, "/api/profile", token, map[string]any{"full_name": "A"}),
	}
	for _, w := range responses {
		assert.NotContains(t, w.Body.String(), "password_hash")
		assert.NotContains(t, w.Body.String(), "$2a$")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	assert.Equal(t, http.StatusMethodNotAllowed, env.do(t, http.MethodGet, "/api/register", "", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, env.do(t, http.MethodGet, "/api/login", "", nil).Code)
}
