package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/creatorstation/creator-dashboard/internal/config"
)

var mongoDatabase *mongo.Database

// ConnectMongo establishes a connection to MongoDB. The generation audit log
// is best-effort, so a failed connection only logs.
func ConnectMongo() {
	ctx := context.Background()

	opts := options.Client().ApplyURI(config.MongoURI())
	mongoClient, err := mongo.Connect(ctx, opts)

	if err != nil {
		println("mongo.Connect failed")
		fmt.Println(err)

		return
	}

	mongoDatabase = mongoClient.Database("creator_dashboard")
}

// GetMongoDB returns the MongoDB database
func GetMongoDB() *mongo.Database {
	return mongoDatabase
}

// GenerationLog is one audit record for an LLM call.
type GenerationLog struct {
	Kind      string    `bson:"kind"`
	Model     string    `bson:"model"`
	Prompt    string    `bson:"prompt"`
	Response  string    `bson:"response"`
	Fallback  bool      `bson:"fallback"`
	CreatedAt time.Time `bson:"created_at"`
}

// LogGeneration appends an audit record. Never fails the caller.
func LogGeneration(entry GenerationLog) {
	if mongoDatabase == nil {
		return
	}
	entry.CreatedAt = time.Now().UTC()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := mongoDatabase.Collection("generation_logs").InsertOne(ctx, entry); err != nil {
		log.Printf("generation log insert failed: %v", err)
	}
}
