package repository

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveyportal/internal/model"
)

// stateRecord is the MongoDB shape of the stored document. The state is
// kept as a structured sub-document so it can be inspected with queries.
type stateRecord struct {
	Key       string         `bson:"_id"`
	State     model.Document `bson:"state"`
	UpdatedAt time.Time      `bson:"updatedAt"`
}

type mongoStateRepo struct {
	collection *mongo.Collection
	key        string
}

// NewMongoStateRepo upserts the document into the survey_state collection.
// BSON datetimes keep millisecond precision only.
func NewMongoStateRepo(db *mongo.Database, key string) StateRepo {
	if key == "" {
		key = DefaultStateKey
	}
	return &mongoStateRepo{
		collection: db.Collection("survey_state"),
		key:        key,
	}
}

func (r *mongoStateRepo) Load(ctx context.Context) ([]byte, error) {
	var record stateRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": r.key}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(record.State)
}

func (r *mongoStateRepo) Save(ctx context.Context, data []byte) error {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	record := stateRecord{
		Key:       r.key,
		State:     doc,
		UpdatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": r.key}, record, opts)
	return err
}
