package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/resource-management-api/internal/models"
	"github.com/yukikurage/resource-management-api/internal/repository"
	"github.com/yukikurage/resource-management-api/internal/testutil"
)

func newProjectService(t *testing.T) *ProjectService {
	t.Helper()
	return NewProjectService(repository.NewGormStore(testutil.NewTestDB(t)).Projects)
}

func TestProjectService_ListEmpty(t *testing.T) {
	svc := newProjectService(t)

	_, err := svc.ListProjects(context.Background())
	assert.ErrorIs(t, err, ErrNoProjects)
}

func TestProjectService_CreateDefaults(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, CreateProjectInput{
		Name:           " Apollo ",
		StartDate:      date(2025, 1, 1),
		RequiredSkills: []string{"go", ""},
		ManagerID:      "m1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Apollo", project.Name)
	assert.Equal(t, 1, project.TeamSize)
	assert.Equal(t, models.ProjectStatusPlanning, project.Status)
	assert.Equal(t, []string{"go"}, project.RequiredSkills)

	got, err := svc.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.Name, got.Name)

	list, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.GetProject(ctx, "missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_CreateValidation(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()
	before := date(2024, 12, 31)
	zero := 0
	archived := models.ProjectStatus("archived")

	tests := []struct {
		name  string
		input CreateProjectInput
		want  error
	}{
		{"missing name", CreateProjectInput{StartDate: date(2025, 1, 1), ManagerID: "m"}, ErrProjectFieldsMissing},
		{"missing manager", CreateProjectInput{Name: "P", StartDate: date(2025, 1, 1)}, ErrProjectFieldsMissing},
		{"missing start", CreateProjectInput{Name: "P", ManagerID: "m"}, ErrProjectFieldsMissing},
		{"end before start", CreateProjectInput{Name: "P", StartDate: date(2025, 1, 1), EndDate: &before, ManagerID: "m"}, ErrInvalidDateRange},
		{"team size zero", CreateProjectInput{Name: "P", StartDate: date(2025, 1, 1), TeamSize: &zero, ManagerID: "m"}, ErrInvalidTeamSize},
		{"bad status", CreateProjectInput{Name: "P", StartDate: date(2025, 1, 1), Status: &archived, ManagerID: "m"}, ErrInvalidProjectStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProject(ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := svc.ListProjects(ctx)
	assert.ErrorIs(t, err, ErrNoProjects, "nothing persisted on validation failure")
}
