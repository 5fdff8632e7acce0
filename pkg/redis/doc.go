// Package redis opens go-redis clients from a Config and provides the
// health and shutdown hooks the application wires around them.
//
// Sessions kept server side use the client through pkg/cache:
//
//	client := redis.MustOpen(ctx, redis.Config{URL: os.Getenv("REDIS_URL")})
//	store := cache.NewRedis[*params.Object](client, nil, cache.WithPrefix("session"))
//
//	app := fnhttp.New(
//		fnhttp.WithSessionCodec(session.NewStoreCodec(store)),
//		fnhttp.WithHealthChecks(fnhttp.WithReadinessCheck("redis", redis.Healthcheck(client))),
//	)
//	err := app.Run(":8080", fnhttp.ShutdownHook(redis.Shutdown(client)))
package redis
