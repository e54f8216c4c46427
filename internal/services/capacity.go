package services

import (
	"time"

	"github.com/yukikurage/resource-management-api/internal/models"
)

// AllocatedCapacity sums the allocation of the given assignments. With a
// nil asOf every assignment counts, expired ones included; otherwise only
// assignments active on asOf are summed.
func AllocatedCapacity(assignments []models.Assignment, asOf *time.Time) int {
	total := 0
	for _, a := range assignments {
		if asOf != nil && !a.ActiveOn(*asOf) {
			continue
		}
		total += a.AllocationPercentage
	}
	return total
}

// AvailableCapacity is maxCapacity minus the allocated sum. It is not
// clamped and goes negative for over-allocated engineers.
func AvailableCapacity(maxCapacity int, assignments []models.Assignment, asOf *time.Time) int {
	return maxCapacity - AllocatedCapacity(assignments, asOf)
}
