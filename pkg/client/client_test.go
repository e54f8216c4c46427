package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/resource-management-api/internal/auth"
	"github.com/yukikurage/resource-management-api/internal/config"
	"github.com/yukikurage/resource-management-api/internal/repository"
	"github.com/yukikurage/resource-management-api/internal/server"
	"github.com/yukikurage/resource-management-api/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClientTestSuite runs the client against a real router on SQLite.
type ClientTestSuite struct {
	suite.Suite
	ctx    context.Context
	srv    *httptest.Server
	client *Client
}

// SetupTest runs before each test
func (suite *ClientTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctx = context.Background()

	suite.srv = httptest.NewServer(server.NewHandler(server.Dependencies{
		Config: &config.Config{},
		Store:  repository.NewGormStore(testutil.NewTestDB(suite.T())),
		Tokens: auth.NewTokenService("test-secret", time.Hour),
	}))

	c, err := New(suite.srv.URL + "/api/")
	suite.Require().NoError(err)
	suite.client = c
}

// TearDownTest runs after each test
func (suite *ClientTestSuite) TearDownTest() {
	suite.srv.Close()
}

func (suite *ClientTestSuite) signupAndLogin(name, email, role string) *Session {
	_, err := suite.client.Signup(suite.ctx, SignupInput{Name: name, Email: email, Password: "supersecret", Role: role})
	suite.Require().NoError(err)

	session, err := suite.client.Login(suite.ctx, email, "supersecret")
	suite.Require().NoError(err)
	return session
}

func (suite *ClientTestSuite) TestLoginStoresSession() {
	session := suite.signupAndLogin("Mia", "mia@example.com", "manager")

	suite.NotEmpty(session.Token)
	suite.Equal("Mia", session.Name)
	suite.Equal("manager", session.Role)
	suite.WithinDuration(time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)
	suite.True(session.Valid(time.Now()))
	suite.Equal(session, suite.client.Session())

	profile, err := suite.client.Profile(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(session.UserID, profile.ID)
}

func (suite *ClientTestSuite) TestLoginFailure() {
	suite.signupAndLogin("Mia", "mia@example.com", "manager")

	_, err := suite.client.Login(suite.ctx, "mia@example.com", "wrong")
	suite.True(IsStatus(err, http.StatusUnauthorized))

	var apiErr *APIError
	suite.Require().ErrorAs(err, &apiErr)
	suite.Equal("Incorrect password", apiErr.Message)
}

func (suite *ClientTestSuite) TestLogoutClearsSession() {
	suite.signupAndLogin("Mia", "mia@example.com", "manager")

	suite.Require().NoError(suite.client.Logout(suite.ctx))
	suite.Nil(suite.client.Session())

	_, err := suite.client.Profile(suite.ctx)
	suite.ErrorIs(err, ErrSessionExpired)
}

func (suite *ClientTestSuite) TestUnauthorizedClearsSession() {
	suite.client.SetSession(Session{Token: "forged", ExpiresAt: time.Now().Add(time.Hour)})

	_, err := suite.client.Engineers(suite.ctx)
	suite.True(IsStatus(err, http.StatusUnauthorized))
	suite.Nil(suite.client.Session())
}

func (suite *ClientTestSuite) TestResourceWorkflow() {
	manager := suite.signupAndLogin("Mia", "mia@example.com", "manager")
	engineer, err := suite.client.Signup(suite.ctx, SignupInput{
		Name: "Alice", Email: "alice@example.com", Password: "supersecret", Role: "engineer",
	})
	suite.Require().NoError(err)

	_, err = suite.client.Projects(suite.ctx)
	suite.True(IsStatus(err, http.StatusNotFound))

	project, err := suite.client.CreateProject(suite.ctx, ProjectInput{
		Name: "Apollo", StartDate: date(2025, 1, 1), ManagerID: manager.UserID,
	})
	suite.Require().NoError(err)

	fetched, err := suite.client.Project(suite.ctx, project.ID)
	suite.Require().NoError(err)
	suite.Equal("Apollo", fetched.Name)

	end := date(2025, 3, 31)
	assignment, err := suite.client.CreateAssignment(suite.ctx, AssignmentInput{
		EngineerID: engineer.ID, ProjectID: project.ID, AllocationPercentage: 30,
		StartDate: date(2025, 1, 1), EndDate: &end, Role: "Developer",
	})
	suite.Require().NoError(err)
	suite.Require().NotNil(assignment.ProjectID.Expanded)
	suite.Equal("Apollo", assignment.ProjectID.Expanded.Name)

	_, err = suite.client.CreateAssignment(suite.ctx, AssignmentInput{
		EngineerID: engineer.ID, ProjectID: project.ID, AllocationPercentage: 50,
		StartDate: date(2025, 4, 1), Role: "Reviewer",
	})
	suite.Require().NoError(err)

	capacity, err := suite.client.Capacity(suite.ctx, engineer.ID, nil)
	suite.Require().NoError(err)
	suite.Equal(20, capacity.AvailableCapacity)

	asOf := date(2025, 5, 1)
	capacity, err = suite.client.Capacity(suite.ctx, engineer.ID, &asOf)
	suite.Require().NoError(err)
	suite.Equal(50, capacity.AllocatedCapacity)

	updated, err := suite.client.UpdateAssignment(suite.ctx, assignment.ID, AssignmentPatch{ClearEndDate: true})
	suite.Require().NoError(err)
	suite.Nil(updated.EndDate)
	suite.Equal(30, updated.AllocationPercentage)

	list, err := suite.client.Assignments(suite.ctx, AssignmentFilter{EngineerID: engineer.ID})
	suite.Require().NoError(err)
	suite.Len(list, 2)

	suite.Require().NoError(suite.client.DeleteAssignment(suite.ctx, assignment.ID))
	_, err = suite.client.Assignment(suite.ctx, assignment.ID)
	suite.True(IsStatus(err, http.StatusNotFound))

	engineers, err := suite.client.Engineers(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(engineers, 1)
}

func (suite *ClientTestSuite) TestUpdateProfile() {
	suite.signupAndLogin("Alice", "alice@example.com", "engineer")

	skills := []string{"go"}
	capacity := 60
	user, err := suite.client.UpdateProfile(suite.ctx, ProfileUpdate{Skills: &skills, MaxCapacity: &capacity})
	suite.Require().NoError(err)
	suite.Equal([]string{"go"}, user.Skills)
	suite.Equal(60, user.MaxCapacity)
	suite.Equal("Alice", user.Name)
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestExpiredSessionFailsFast(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithSession(Session{Token: "t", ExpiresAt: time.Now().Add(-time.Minute)}))
	require.NoError(t, err)

	_, err = c.Engineers(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Nil(t, c.Session())
	assert.Zero(t, hits.Load())
}

func TestSessionValid(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session *Session
		want    bool
	}{
		{"nil", nil, false},
		{"no token", &Session{ExpiresAt: now.Add(time.Hour)}, false},
		{"expired", &Session{Token: "t", ExpiresAt: now.Add(-time.Second)}, false},
		{"expires now", &Session{Token: "t", ExpiresAt: now}, false},
		{"active", &Session{Token: "t", ExpiresAt: now.Add(time.Hour)}, true},
		{"unknown expiry", &Session{Token: "t"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.Valid(now))
		})
	}
}

func TestAssignmentPatchClearEndDate(t *testing.T) {
	role := "Lead"
	raw, err := json.Marshal(AssignmentPatch{Role: &role, ClearEndDate: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"Lead","endDate":""}`, string(raw))

	raw, err = json.Marshal(AssignmentPatch{Role: &role})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"Lead"}`, string(raw))
}

func TestNew(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	c, err := New("http://localhost:8000/api/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api", c.baseURL)
}
