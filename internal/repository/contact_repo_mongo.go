package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ccm/recadastramento/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoContactRepository struct {
	coll      *mongo.Collection
	employees *mongo.Collection
	seq       *sequence
}

func NewMongoContactRepository(db *mongo.Database) *MongoContactRepository {
	return &MongoContactRepository{
		coll:      db.Collection("contacts"),
		employees: db.Collection("employees"),
		seq:       newSequence(db, "contacts"),
	}
}

func (r *MongoContactRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "employee_id", Value: 1}},
		Options: options.Index().SetName("idx_employee_id"),
	})
	return err
}

func (r *MongoContactRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]models.Contact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"employee_id": employeeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list contacts of employee %d: %w", employeeID, err)
	}
	defer cur.Close(ctx)

	list := []models.Contact{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *MongoContactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	var c models.Contact
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get contact %d: %w", id, err)
	}
	return &c, nil
}

// Create confere o funcionário antes de inserir (o Mongo não tem FK).
func (r *MongoContactRepository) Create(ctx context.Context, c *models.Contact) error {
	n, err := r.employees.CountDocuments(ctx, bson.M{"_id": c.EmployeeID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("check employee %d: %w", c.EmployeeID, err)
	}
	if n == 0 {
		return ErrEmployeeNotFound
	}

	id, err := r.seq.next(ctx)
	if err != nil {
		return err
	}
	c.ID = id
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		c.ID = 0
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

func (r *MongoContactRepository) Update(ctx context.Context, c *models.Contact) error {
	set := bson.M{
		"type":        c.Type,
		"value":       c.Value,
		"description": c.Description,
		"is_primary":  c.IsPrimary,
		"updated_at":  c.UpdatedAt,
	}
	res, err := r.coll.UpdateByID(ctx, c.ID, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update contact %d: %w", c.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoContactRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
