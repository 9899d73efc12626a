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

// MongoEmployeeRepository é a alternativa em MongoDB (STORE_DRIVER=mongo).
// Sem FK no Mongo: a exclusão em cascata dos contatos é feita aqui.
type MongoEmployeeRepository struct {
	coll     *mongo.Collection
	contacts *mongo.Collection
	seq      *sequence
}

func NewMongoEmployeeRepository(db *mongo.Database) *MongoEmployeeRepository {
	return &MongoEmployeeRepository{
		coll:     db.Collection("employees"),
		contacts: db.Collection("contacts"),
		seq:      newSequence(db, "employees"),
	}
}

func (r *MongoEmployeeRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys: bson.D{{Key: "cpf", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_cpf"),
	}
	_, err := r.coll.Indexes().CreateOne(ctx, model)
	if err == nil {
		return nil
	}
	// Se já existir com outra opção, tenta dropar e recriar
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 85 { // IndexOptionsConflict
		if _, dropErr := r.coll.Indexes().DropOne(ctx, "uniq_cpf"); dropErr != nil {
			return fmt.Errorf("drop index uniq_cpf: %w", dropErr)
		}
		_, createErr := r.coll.Indexes().CreateOne(ctx, model)
		return createErr
	}
	return err
}

func (r *MongoEmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cur.Close(ctx)

	list := []models.Employee{}
	for cur.Next(ctx) {
		var e models.Employee
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, cur.Err()
}

func (r *MongoEmployeeRepository) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoEmployeeRepository) GetByCPF(ctx context.Context, cpf string) (*models.Employee, error) {
	return r.findOne(ctx, bson.M{"cpf": cpf})
}

func (r *MongoEmployeeRepository) findOne(ctx context.Context, filter bson.M) (*models.Employee, error) {
	var e models.Employee
	err := r.coll.FindOne(ctx, filter).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return &e, nil
}

func (r *MongoEmployeeRepository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"cpf": cpf}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count employees by cpf: %w", err)
	}
	return n > 0, nil
}

func (r *MongoEmployeeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count employees by id: %w", err)
	}
	return n > 0, nil
}

func (r *MongoEmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	id, err := r.seq.next(ctx)
	if err != nil {
		return err
	}
	e.ID = id
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		e.ID = 0
		if isDuplicateKey(err) {
			return ErrDuplicateCPF
		}
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

func (r *MongoEmployeeRepository) Update(ctx context.Context, e *models.Employee) error {
	set := bson.M{
		"cpf":         e.CPF,
		"name":        e.Name,
		"social_name": e.SocialName,
		"birth_date":  e.BirthDate,
		"race_color":  e.RaceColor,
		"sex":         e.Sex,
		"nationality": e.Nationality,
		"birth_state": e.BirthState,
		"birth_city":  e.BirthCity,
		"phone":       e.Phone,
		"updated_at":  e.UpdatedAt,
	}

	res, err := r.coll.UpdateByID(ctx, e.ID, bson.M{"$set": set})
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateCPF
		}
		return fmt.Errorf("update employee %d: %w", e.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoEmployeeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete employee %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	if _, err := r.contacts.DeleteMany(ctx, bson.M{"employee_id": id}); err != nil {
		return fmt.Errorf("delete contacts of employee %d: %w", id, err)
	}
	return nil
}
