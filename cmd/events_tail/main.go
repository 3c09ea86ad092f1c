package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yungbote/talent-analytics-backend/internal/clients/redis"
	"github.com/yungbote/talent-analytics-backend/internal/platform/envutil"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

// events_tail prints every talent event published on the redis channel.
func main() {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus, err := redis.NewEventBus(log, redis.Config{
		Addr:     envutil.String("REDIS_ADDR", "localhost:6379"),
		Password: envutil.String("REDIS_PASSWORD", ""),
		DB:       envutil.Int("REDIS_DB", 0),
		Channel:  envutil.String("REDIS_CHANNEL", redis.DefaultChannel),
	})
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	defer bus.Close()

	enc := json.NewEncoder(os.Stdout)
	err = bus.StartForwarder(ctx, func(ev redis.Event) {
		_ = enc.Encode(ev)
	})
	if err != nil {
		log.Error("subscribe failed", "error", err)
		os.Exit(1)
	}
	<-ctx.Done()
}
