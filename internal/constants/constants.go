package constants

// Gin context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyEmail     = "user_email"
	ContextKeyRequestID = "request_id"
	ContextKeyLogger    = "logger"
)

// Domain defaults
const (
	DefaultMaxCapacity      = 100
	DefaultTeamSize         = 1
	MinAllocationPercentage = 0
	MaxAllocationPercentage = 100
)

// BcryptCost matches the cost the existing user records were hashed with.
const BcryptCost = 10

// APIPrefix is the path prefix shared by every REST route.
const APIPrefix = "/api"

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

// MongoDB collection names shared with existing document data.
const (
	UsersCollection       = "users"
	ProjectsCollection    = "projects"
	AssignmentsCollection = "assignments"
)
