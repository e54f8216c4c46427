package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/resource-management-api/internal/models"
	"github.com/yukikurage/resource-management-api/internal/repository"
	"github.com/yukikurage/resource-management-api/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAvailableCapacity(t *testing.T) {
	end := date(2025, 3, 31)
	assignments := []models.Assignment{
		{AllocationPercentage: 30, StartDate: date(2025, 1, 1)},
		{AllocationPercentage: 50, StartDate: date(2025, 1, 1), EndDate: &end},
	}

	assert.Equal(t, 20, AvailableCapacity(100, assignments, nil))
	assert.Equal(t, 80, AllocatedCapacity(assignments, nil))
	assert.Equal(t, 100, AvailableCapacity(100, nil, nil))

	asOf := date(2025, 6, 1)
	assert.Equal(t, 70, AvailableCapacity(100, assignments, &asOf), "expired assignment excluded")

	before := date(2024, 12, 1)
	assert.Equal(t, 100, AvailableCapacity(100, assignments, &before), "future assignments excluded")
}

func TestAvailableCapacity_OverAllocated(t *testing.T) {
	assignments := []models.Assignment{
		{AllocationPercentage: 80},
		{AllocationPercentage: 60},
	}
	assert.Equal(t, -40, AvailableCapacity(100, assignments, nil))
}

func TestEngineerService_Capacity(t *testing.T) {
	store := repository.NewGormStore(testutil.NewTestDB(t))
	svc := NewEngineerService(store.Users, store.Assignments)
	ctx := context.Background()

	engineer := &models.User{
		ID: uuid.NewString(), Email: "eng@example.com", Name: "Eng", PasswordHash: "h",
		Role: models.RoleEngineer, MaxCapacity: 100,
	}
	require.NoError(t, store.Users.Create(ctx, engineer))

	for _, pct := range []int{30, 50} {
		require.NoError(t, store.Assignments.Create(ctx, &models.Assignment{
			ID: uuid.NewString(), EngineerID: engineer.ID, ProjectID: "p", AllocationPercentage: pct,
			StartDate: date(2025, 1, 1), Role: "Dev",
		}))
	}
	require.NoError(t, store.Assignments.Create(ctx, &models.Assignment{
		ID: uuid.NewString(), EngineerID: "someone-else", ProjectID: "p", AllocationPercentage: 90,
		StartDate: date(2025, 1, 1), Role: "Dev",
	}))

	first, err := svc.Capacity(ctx, engineer.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 20, first.Available)
	assert.Equal(t, 80, first.Allocated)
	assert.Equal(t, 100, first.Max)
	assert.Equal(t, "Eng", first.Engineer.Name)

	second, err := svc.Capacity(ctx, engineer.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, first.Available, second.Available, "capacity reads are idempotent")

	_, err = svc.Capacity(ctx, "missing", nil)
	assert.ErrorIs(t, err, ErrEngineerNotFound)
}

func TestEngineerService_ListEngineers(t *testing.T) {
	store := repository.NewGormStore(testutil.NewTestDB(t))
	svc := NewEngineerService(store.Users, store.Assignments)
	ctx := context.Background()

	for i, role := range []models.Role{models.RoleEngineer, models.RoleManager, models.RoleEngineer} {
		require.NoError(t, store.Users.Create(ctx, &models.User{
			ID: uuid.NewString(), Email: uuid.NewString() + "@example.com", Name: string(rune('A' + i)),
			PasswordHash: "h", Role: role, MaxCapacity: 100,
		}))
	}

	engineers, err := svc.ListEngineers(ctx)
	require.NoError(t, err)
	require.Len(t, engineers, 2)
	for _, e := range engineers {
		assert.Equal(t, models.RoleEngineer, e.Role)
	}
}
