package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/freshfold/freshfold-server/internal/core"
	"github.com/freshfold/freshfold-server/internal/store"
)

const (
	usersCollection    = "users"
	messagesCollection = "messages"

	connectTimeout = 10 * time.Second
)

// MongoStore implements store.Store over the platform's MongoDB database.
type MongoStore struct {
	client   *mongo.Client
	users    *mongo.Collection
	messages *mongo.Collection
}

type userDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	DisplayName  string    `bson:"displayName"`
	Kind         string    `bson:"kind"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

type messageDoc struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	RoomID     string        `bson:"roomId"`
	SenderID   string        `bson:"senderId"`
	SenderName string        `bson:"senderName"`
	SenderKind string        `bson:"senderKind"`
	Body       string        `bson:"body"`
	SentAt     time.Time     `bson:"sentAt"`
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	return &MongoStore{
		client:   client,
		users:    db.Collection(usersCollection),
		messages: db.Collection(messagesCollection),
	}, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// CreateUser persists a new user and assigns its ID.
func (s *MongoStore) CreateUser(ctx context.Context, u *store.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	doc := userDoc{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		Kind:         string(u.Kind),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email.
func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*store.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

// GetUserByID retrieves a user by ID.
func (s *MongoStore) GetUserByID(ctx context.Context, id string) (*store.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*store.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &store.User{
		ID:           doc.ID,
		Email:        doc.Email,
		DisplayName:  doc.DisplayName,
		Kind:         core.Kind(doc.Kind),
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

// PersistMessage writes a chat message and returns its durable ID.
func (s *MongoStore) PersistMessage(ctx context.Context, msg core.ChatMessage) (string, error) {
	doc := messageDoc{
		RoomID:     msg.Room,
		SenderID:   msg.SenderID,
		SenderName: msg.SenderName,
		SenderKind: string(msg.SenderKind),
		Body:       msg.Body,
		SentAt:     msg.SentAt.UTC(),
	}
	res, err := s.messages.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert message: %w", err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// LoadRecentMessages returns up to limit messages for the room, oldest first.
func (s *MongoStore) LoadRecentMessages(ctx context.Context, room string, limit int) ([]core.ChatMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := s.messages.Find(ctx, bson.M{"roomId": room}, opts)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer cur.Close(ctx)

	var docs []messageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}

	// Newest first from the query; callers expect chronological order.
	out := make([]core.ChatMessage, len(docs))
	for i, doc := range docs {
		out[len(docs)-1-i] = core.ChatMessage{
			PersistedID: doc.ID.Hex(),
			Room:        doc.RoomID,
			SenderID:    doc.SenderID,
			SenderName:  doc.SenderName,
			SenderKind:  core.Kind(doc.SenderKind),
			Body:        doc.Body,
			SentAt:      doc.SentAt,
		}
	}
	return out, nil
}
