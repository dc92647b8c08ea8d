package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis abre el cliente de go-redis a partir de la URL de conexión.
// Redis guarda el caché del catálogo y la cola de alertas; si no
// responde al arranque, el proceso no levanta.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
