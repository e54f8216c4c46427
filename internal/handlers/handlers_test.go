package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/resource-management-api/internal/auth"
	"github.com/yukikurage/resource-management-api/internal/middleware"
	"github.com/yukikurage/resource-management-api/internal/repository"
	"github.com/yukikurage/resource-management-api/internal/services"
	"github.com/yukikurage/resource-management-api/internal/testutil"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type handlerTestEnv struct {
	store       *repository.Store
	tokens      *auth.TokenService
	authService *services.AuthService
	router      *gin.Engine
}

// setupHandlerTestEnv registers every handler behind RequireAuth on a fresh SQLite store.
func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewGormStore(testutil.NewTestDB(t))
	tokens := auth.NewTokenService("test-secret", time.Hour)
	authService := services.NewAuthService(store.Users, tokens)

	authHandler := NewAuthHandler(authService)
	engineerHandler := NewEngineerHandler(services.NewEngineerService(store.Users, store.Assignments))
	projectHandler := NewProjectHandler(services.NewProjectService(store.Projects))
	assignmentHandler := NewAssignmentHandler(services.NewAssignmentService(store.Assignments, nil, nil, nil))

	r := gin.New()
	requireAuth := middleware.RequireAuth(tokens)

	r.POST("/api/auth/signup", authHandler.Signup)
	r.POST("/api/auth/login", authHandler.Login)
	r.POST("/api/auth/logout", authHandler.Logout)
	r.GET("/api/auth/profile", requireAuth, authHandler.GetProfile)
	r.PUT("/api/auth/profile", requireAuth, authHandler.UpdateProfile)
	r.GET("/api/engineers", requireAuth, engineerHandler.ListEngineers)
	r.GET("/api/engineers/:id/capacity", requireAuth, engineerHandler.GetCapacity)
	r.GET("/api/projects", requireAuth, projectHandler.ListProjects)
	r.POST("/api/projects", requireAuth, projectHandler.CreateProject)
	r.GET("/api/projects/:id", requireAuth, projectHandler.GetProject)
	r.GET("/api/assignments", requireAuth, assignmentHandler.ListAssignments)
	r.POST("/api/assignments", requireAuth, assignmentHandler.CreateAssignment)
	r.GET("/api/assignments/:id", requireAuth, assignmentHandler.GetAssignment)
	r.PATCH("/api/assignments/:id", requireAuth, assignmentHandler.UpdateAssignment)
	r.DELETE("/api/assignments/:id", requireAuth, assignmentHandler.DeleteAssignment)

	return handlerTestEnv{
		store:       store,
		tokens:      tokens,
		authService: authService,
		router:      r,
	}
}

func (env handlerTestEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// signupAndLogin creates a user through the service and returns its id and a token.
func (env handlerTestEnv) signupAndLogin(t *testing.T, name, email, role string) (string, string) {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": name, "email": email, "password": "supersecret", "role": role,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var signup struct {
		ID string `json:"id"`
	}
	decodeEnvelope(t, w, &signup)

	token, _, err := env.tokens.Issue(signup.ID, email)
	require.NoError(t, err)
	return signup.ID, token
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}
