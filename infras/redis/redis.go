package redis

import (
	"context"
	"fmt"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"velvet/config"
)

// Connection holds the two logical Redis databases the service uses: a volatile
// cache keyspace and a durable document keyspace for booking detail snapshots.
type Connection struct {
	Cache    *goRedis.Client
	Document *goRedis.Client
}

func New(config *config.Config) *Connection {
	primary := config.Cache.Redis.Primary

	return &Connection{
		Cache:    connect(primary.Host, primary.Port, primary.Password, primary.DB),
		Document: connect(primary.Host, primary.Port, primary.Password, config.Cache.Redis.DocumentDB),
	}
}

func connect(host, port, password string, db int) *goRedis.Client {
	ctx := context.Background()
	client := goRedis.NewClient(&goRedis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       db,
	})

	_, err := client.Ping(ctx).Result()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
		panic(err)
	}

	log.Info().
		Int("db", db).
		Str("host", host).
		Str("port", port).
		Msg("Connected to Redis")

	return client
}
