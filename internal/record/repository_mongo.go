package record

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepository stores records as documents in a single collection.
type MongoRepository struct {
	coll *mongo.Collection
}

var _ Store = (*MongoRepository)(nil)

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) Save(ctx context.Context, rec Record) (Record, error) {
	rec.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (r *MongoRepository) SaveMany(ctx context.Context, recs []Record) ([]Record, error) {
	if len(recs) == 0 {
		return []Record{}, nil
	}
	saved := make([]Record, 0, len(recs))
	docs := make([]any, 0, len(recs))
	for _, rec := range recs {
		rec.ID = primitive.NewObjectID().Hex()
		saved = append(saved, rec)
		docs = append(docs, rec)
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *MongoRepository) FindByFirstNameAndEmail(ctx context.Context, firstName, email string) ([]Record, error) {
	cur, err := r.coll.Find(ctx, firstNameEmailFilter(firstName, email))
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func firstNameEmailFilter(firstName, email string) bson.D {
	return bson.D{
		{Key: "firstName", Value: firstName},
		{Key: "email", Value: email},
	}
}
