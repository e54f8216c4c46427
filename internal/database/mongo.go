package database

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/resource-management-api/internal/constants"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoConnectTimeout = 10 * time.Second

// ConnectMongo connects to MongoDB and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, client.Database(database), nil
}

// MongoIndexes lists the indexes each collection needs.
func MongoIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		constants.UsersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
			},
			{
				Keys:    bson.D{{Key: "role", Value: 1}, {Key: "name", Value: 1}},
				Options: options.Index().SetName("idx_users_role_name"),
			},
		},
		constants.ProjectsCollection: {
			{
				Keys:    bson.D{{Key: "createdAt", Value: 1}},
				Options: options.Index().SetName("idx_projects_created_at"),
			},
		},
		constants.AssignmentsCollection: {
			{
				Keys:    bson.D{{Key: "engineerId", Value: 1}, {Key: "startDate", Value: 1}},
				Options: options.Index().SetName("idx_assignments_engineer_start"),
			},
			{
				Keys:    bson.D{{Key: "projectId", Value: 1}},
				Options: options.Index().SetName("idx_assignments_project"),
			},
		},
	}
}

// EnsureMongoIndexes creates the indexes from MongoIndexes. Existing indexes
// with the same definition are left alone by the server.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	for collection, models := range MongoIndexes() {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
