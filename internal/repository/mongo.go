package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/resource-management-api/internal/constants"
	"github.com/yukikurage/resource-management-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoStore builds a Store on a MongoDB database.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Users:       &MongoUserRepository{coll: db.Collection(constants.UsersCollection)},
		Projects:    &MongoProjectRepository{coll: db.Collection(constants.ProjectsCollection)},
		Assignments: &MongoAssignmentRepository{
			coll:     db.Collection(constants.AssignmentsCollection),
			users:    db.Collection(constants.UsersCollection),
			projects: db.Collection(constants.ProjectsCollection),
		},
	}
}

func translateMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

func stampCreate(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

func byCreation() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
}

// MongoUserRepository is a MongoDB implementation of UserRepository
type MongoUserRepository struct {
	coll *mongo.Collection
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	stampCreate(&user.CreatedAt, &user.UpdatedAt)
	_, err := r.coll.InsertOne(ctx, user)
	return translateMongoError(err)
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, translateMongoError(err)
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translateMongoError(err)
	}
	return &user, nil
}

func (r *MongoUserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"role": role}, opts)
	if err != nil {
		return nil, translateMongoError(err)
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return translateMongoError(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoProjectRepository is a MongoDB implementation of ProjectRepository
type MongoProjectRepository struct {
	coll *mongo.Collection
}

func (r *MongoProjectRepository) Create(ctx context.Context, project *models.Project) error {
	stampCreate(&project.CreatedAt, &project.UpdatedAt)
	_, err := r.coll.InsertOne(ctx, project)
	return translateMongoError(err)
}

func (r *MongoProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&project); err != nil {
		return nil, translateMongoError(err)
	}
	return &project, nil
}

func (r *MongoProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, byCreation())
	if err != nil {
		return nil, translateMongoError(err)
	}
	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}

// MongoAssignmentRepository is a MongoDB implementation of AssignmentRepository.
// Expansion loads referenced users and projects with one $in query each.
type MongoAssignmentRepository struct {
	coll     *mongo.Collection
	users    *mongo.Collection
	projects *mongo.Collection
}

func (r *MongoAssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	stampCreate(&assignment.CreatedAt, &assignment.UpdatedAt)
	_, err := r.coll.InsertOne(ctx, assignment)
	return translateMongoError(err)
}

func (r *MongoAssignmentRepository) FindByID(ctx context.Context, id string, expand bool) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment); err != nil {
		return nil, translateMongoError(err)
	}
	if expand {
		expanded := []models.Assignment{assignment}
		if err := r.expand(ctx, expanded); err != nil {
			return nil, err
		}
		assignment = expanded[0]
	}
	return &assignment, nil
}

func (r *MongoAssignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error) {
	query := bson.M{}
	if filter.EngineerID != "" {
		query["engineerId"] = filter.EngineerID
	}
	if filter.ProjectID != "" {
		query["projectId"] = filter.ProjectID
	}

	cursor, err := r.coll.Find(ctx, query, byCreation())
	if err != nil {
		return nil, translateMongoError(err)
	}
	var assignments []models.Assignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}

	if filter.Expand {
		if err := r.expand(ctx, assignments); err != nil {
			return nil, err
		}
	}
	return assignments, nil
}

func (r *MongoAssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	assignment.UpdatedAt = time.Now().UTC()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": assignment.ID}, assignment)
	if err != nil {
		return translateMongoError(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAssignmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateMongoError(err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAssignmentRepository) expand(ctx context.Context, assignments []models.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	engineerIDs, projectIDs := referencedIDs(assignments)

	userOpts := options.Find().SetProjection(bson.M{"name": 1, "skills": 1})
	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": engineerIDs}}, userOpts)
	if err != nil {
		return fmt.Errorf("load engineers: %w", err)
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return fmt.Errorf("decode engineers: %w", err)
	}

	projectOpts := options.Find().SetProjection(bson.M{"name": 1})
	cursor, err = r.projects.Find(ctx, bson.M{"_id": bson.M{"$in": projectIDs}}, projectOpts)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return fmt.Errorf("decode projects: %w", err)
	}

	attachReferences(assignments, users, projects)
	return nil
}

// referencedIDs returns the distinct engineer and project ids in order of appearance.
func referencedIDs(assignments []models.Assignment) (engineerIDs, projectIDs []string) {
	seenEngineers := make(map[string]struct{})
	seenProjects := make(map[string]struct{})
	for _, a := range assignments {
		if _, ok := seenEngineers[a.EngineerID]; !ok {
			seenEngineers[a.EngineerID] = struct{}{}
			engineerIDs = append(engineerIDs, a.EngineerID)
		}
		if _, ok := seenProjects[a.ProjectID]; !ok {
			seenProjects[a.ProjectID] = struct{}{}
			projectIDs = append(projectIDs, a.ProjectID)
		}
	}
	return engineerIDs, projectIDs
}

// attachReferences sets Engineer and Project on each assignment. Dangling
// references are left nil.
func attachReferences(assignments []models.Assignment, users []models.User, projects []models.Project) {
	userByID := make(map[string]*models.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}
	projectByID := make(map[string]*models.Project, len(projects))
	for i := range projects {
		projectByID[projects[i].ID] = &projects[i]
	}

	for i := range assignments {
		assignments[i].Engineer = userByID[assignments[i].EngineerID]
		assignments[i].Project = projectByID[assignments[i].ProjectID]
	}
}
