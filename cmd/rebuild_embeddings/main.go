package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yungbote/talent-analytics-backend/internal/app"
)

func main() {
	var roles, learning bool
	flag.BoolVar(&roles, "roles", true, "rebuild ROLE skill embeddings")
	flag.BoolVar(&learning, "learning", true, "rebuild LEARNING skill embeddings")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx)
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	svc := application.Services.SkillEmbedding
	if roles {
		res, err := svc.RebuildAllRoleEmbeddings(ctx)
		if err != nil {
			fmt.Printf("rebuild role embeddings: %v\n", err)
			application.Close()
			os.Exit(1)
		}
		fmt.Printf("role embeddings rebuilt: total=%d\n", res.TotalEmbeddings)
	}
	if learning {
		res, err := svc.RebuildAllLearningEmbeddings(ctx)
		if err != nil {
			fmt.Printf("rebuild learning embeddings: %v\n", err)
			application.Close()
			os.Exit(1)
		}
		fmt.Printf("learning embeddings rebuilt: total=%d\n", res.TotalEmbeddings)
	}
}
