package main

import (
	"context"
	"log"

	"github.com/a-mean-h/recepie-api-app/internal/server"
	"github.com/a-mean-h/recepie-api-app/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
