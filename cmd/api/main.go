package main

import (
	"context"
	"log"

	"github.com/Apurer/go-commerce-orders/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("api: %v", err)
	}
}
