package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rewardsystem/rewards-api/internal/core/domain"
	"github.com/rewardsystem/rewards-api/internal/core/ports"
)

const transactionsCollection = "transactions"

// TransactionRepository implements ports.TransactionRepository using MongoDB.
type TransactionRepository struct {
	coll *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{coll: db.Collection(transactionsCollection)}
}

type mongoTransaction struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID int                `bson:"customer_id"`
	Amount     float64            `bson:"amount"`
	Date       primitive.DateTime `bson:"date"`
}

func (r *TransactionRepository) Insert(ctx context.Context, t *domain.Transaction) error {
	doc := mongoTransaction{
		CustomerID: t.CustomerID,
		Amount:     t.Amount,
		Date:       primitive.NewDateTimeFromTime(t.Date.UTC()),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid.Hex()
	}
	return nil
}

func (r *TransactionRepository) FindSince(ctx context.Context, from time.Time) ([]*domain.Transaction, error) {
	return r.find(ctx, bson.M{"date": bson.M{"$gte": primitive.NewDateTimeFromTime(from.UTC())}})
}

func (r *TransactionRepository) FindByCustomerSince(ctx context.Context, customerID int, from time.Time) ([]*domain.Transaction, error) {
	return r.find(ctx, bson.M{
		"customer_id": customerID,
		"date":        bson.M{"$gte": primitive.NewDateTimeFromTime(from.UTC())},
	})
}

func (r *TransactionRepository) find(ctx context.Context, filter bson.M) ([]*domain.Transaction, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeTransactions(ctx, cursor)
}

// List returns a page of transactions matching filter plus the total count.
func (r *TransactionRepository) List(ctx context.Context, filter ports.ListTransactionsFilter) ([]*domain.Transaction, int64, error) {
	query := bson.M{}
	if filter.CustomerID > 0 {
		query["customer_id"] = filter.CustomerID
	}
	dateRange := bson.M{}
	if !filter.DateFrom.IsZero() {
		dateRange["$gte"] = primitive.NewDateTimeFromTime(filter.DateFrom.UTC())
	}
	if !filter.DateTo.IsZero() {
		dateRange["$lte"] = primitive.NewDateTimeFromTime(filter.DateTo.UTC())
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	items, err := decodeTransactions(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func decodeTransactions(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for cursor.Next(ctx) {
		var mt mongoTransaction
		if err := cursor.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		out = append(out, &domain.Transaction{
			ID:         mt.ID.Hex(),
			CustomerID: mt.CustomerID,
			Amount:     mt.Amount,
			Date:       mt.Date.Time().UTC(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}
