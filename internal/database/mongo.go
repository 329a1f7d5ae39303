package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ophasebot/entity"
	"ophasebot/internal/config"
)

const (
	collectionGrants = "grants"
	maxGrantsLimit   = 500
)

// MongoDB stores the grant audit log. The invite use counter is never stored;
// it is taken from a live snapshot on every start.
type MongoDB struct {
	ctx           context.Context
	clientOptions *options.ClientOptions
	database      string
}

func NewMongoClient(conf *config.Config) *MongoDB {
	if !conf.Mongo.Enabled {
		return nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		ctx:           context.Background(),
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
	}
	return client
}

func (m *MongoDB) connect() (*mongo.Client, error) {
	connection, err := mongo.Connect(m.ctx, m.clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	return connection, nil
}

func (m *MongoDB) disconnect(connection *mongo.Client) {
	_ = connection.Disconnect(m.ctx)
}

func (m *MongoDB) SaveGrant(record *entity.GrantRecord) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionGrants)
	_, err = collection.InsertOne(m.ctx, record)
	if err != nil {
		return fmt.Errorf("mongodb insert: %w", err)
	}
	return nil
}

// GetGrants returns the latest records, newest first.
func (m *MongoDB) GetGrants(limit int) ([]*entity.GrantRecord, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionGrants)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(GrantsLimit(limit)))
	cursor, err := collection.Find(m.ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find: %w", err)
	}
	defer cursor.Close(m.ctx)

	var records []*entity.GrantRecord
	if err = cursor.All(m.ctx, &records); err != nil {
		return nil, fmt.Errorf("mongodb decode: %w", err)
	}
	return records, nil
}

// GrantsLimit clamps a requested page size to 1..500, defaulting to 50.
func GrantsLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > maxGrantsLimit {
		return maxGrantsLimit
	}
	return limit
}
