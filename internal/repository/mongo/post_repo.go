package mongo

import (
	"alcyxob/training-coach/internal/domain"
	"alcyxob/training-coach/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const postCollectionName = "posts"

type mongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates the community feed store.
func NewMongoPostRepository(db *mongo.Database) repository.PostRepository {
	return &mongoPostRepository{
		collection: db.Collection(postCollectionName),
	}
}

func (r *mongoPostRepository) Create(ctx context.Context, post *domain.Post) (primitive.ObjectID, error) {
	// 1. Validate required references
	if post.AuthorID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("post requires authorId")
	}

	// 2. Set server-owned fields
	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	// 3. Insert
	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted post ID")
	}
	return insertedID, nil
}

func (r *mongoPostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	var post domain.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *mongoPostRepository) ListRecent(ctx context.Context, limit int) ([]domain.Post, error) {
	posts := []domain.Post{}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, cursor.Err()
}

// ToggleLike tries to add the like first; the $ne filter makes that a no-match
// when the user already likes the post, in which case the like is pulled.
func (r *mongoPostRepository) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, error) {
	// 1. Like, unless already liked
	added, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID, "likedBy": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likedBy": userID}},
	)
	if err != nil {
		return false, err
	}
	if added.MatchedCount > 0 {
		return true, nil
	}

	// 2. Already liked (or missing): unlike
	removed, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID, "likedBy": userID},
		bson.M{"$pull": bson.M{"likedBy": userID}},
	)
	if err != nil {
		return false, err
	}
	if removed.MatchedCount == 0 {
		return false, repository.ErrNotFound
	}
	return false, nil
}

func postIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
}
