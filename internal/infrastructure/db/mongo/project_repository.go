package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trackhub/project-manager/internal/core/access"
	"github.com/trackhub/project-manager/internal/core/domain"
)

const projectCollection = "projects"

// MongoProjectRepository stores projects with their tasks embedded in one
// document. Project and task ids are ObjectID hex strings assigned here;
// soft-delete flags are part of every read filter.
type MongoProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{coll: db.Collection(projectCollection)}
}

// EnsureIndexes creates the owner index the scoped list query relies on.
func (r *MongoProjectRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "deleted", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create project indexes: %w", err)
	}
	return nil
}

func assignTaskIDs(tasks []domain.Task) {
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = primitive.NewObjectID().Hex()
		}
	}
}

// scopedFilter builds the visibility filter: never deleted, and owned by
// the scope's owner when the scope is restricted.
func scopedFilter(scope access.Scope) bson.M {
	filter := bson.M{"deleted": false}
	if scope.Restricted() {
		filter["owner_id"] = scope.OwnerID
	}
	return filter
}

func (r *MongoProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	doc := *project
	doc.ID = primitive.NewObjectID().Hex()
	doc.Tasks = append([]domain.Task(nil), project.Tasks...)
	assignTaskIDs(doc.Tasks)

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return &doc, nil
}

func (r *MongoProjectRepository) FindVisible(ctx context.Context, id string, scope access.Scope) (*domain.Project, error) {
	filter := scopedFilter(scope)
	filter["_id"] = id
	return r.findOne(ctx, filter)
}

func (r *MongoProjectRepository) FindActive(ctx context.Context, id string) (*domain.Project, error) {
	return r.findOne(ctx, bson.M{"_id": id, "deleted": false})
}

func (r *MongoProjectRepository) ListVisible(ctx context.Context, scope access.Scope) ([]*domain.Project, error) {
	cursor, err := r.coll.Find(ctx, scopedFilter(scope))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	var projects []*domain.Project
	for cursor.Next(ctx) {
		var p domain.Project
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (r *MongoProjectRepository) ReplaceContent(ctx context.Context, project *domain.Project) error {
	assignTaskIDs(project.Tasks)
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": project.ID, "deleted": false},
		bson.M{"$set": bson.M{
			"title":       project.Title,
			"description": project.Description,
			"tasks":       project.Tasks,
		}},
	)
	if err != nil {
		return fmt.Errorf("replace project content: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *MongoProjectRepository) MarkDeleted(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"deleted": true}},
	)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *MongoProjectRepository) AppendTask(ctx context.Context, projectID string, task *domain.Task) (*domain.Task, error) {
	t := *task
	t.ID = primitive.NewObjectID().Hex()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": projectID, "deleted": false},
		bson.M{"$push": bson.M{"tasks": t}},
	)
	if err != nil {
		return nil, fmt.Errorf("append task: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return &t, nil
}

func (r *MongoProjectRepository) UpdateTask(ctx context.Context, projectID string, task *domain.Task) error {
	return r.updateTaskFields(ctx, projectID, task.ID, bson.M{
		"tasks.$.title":       task.Title,
		"tasks.$.description": task.Description,
		"tasks.$.expires_at":  task.ExpiresAt,
	})
}

func (r *MongoProjectRepository) MarkTaskDeleted(ctx context.Context, projectID, taskID string) error {
	return r.updateTaskFields(ctx, projectID, taskID, bson.M{"tasks.$.deleted": true})
}

func (r *MongoProjectRepository) CompleteTask(ctx context.Context, projectID, taskID string) error {
	return r.updateTaskFields(ctx, projectID, taskID, bson.M{"tasks.$.completed": true})
}

// updateTaskFields targets the embedded task via the positional operator.
func (r *MongoProjectRepository) updateTaskFields(ctx context.Context, projectID, taskID string, set bson.M) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": projectID, "deleted": false, "tasks.id": taskID},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *MongoProjectRepository) findOne(ctx context.Context, filter bson.M) (*domain.Project, error) {
	var p domain.Project
	if err := r.coll.FindOne(ctx, filter).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &p, nil
}
