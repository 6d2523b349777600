// Package redis backs storage.Storage with a Redis server so that authorization
// state survives across instances of a horizontally scaled application.
//
// Connect retries the connection according to Config, whose fields are read
// from the environment with github.com/caarlos0/env:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	st := storage.WithPrefix(redis.NewStorage(client, cfg.KeyTTL), storage.DefaultPrefix)
//
// Errors wrap the underlying go-redis errors with errors.Join so that both the
// sentinel and the cause match errors.Is.
package redis
