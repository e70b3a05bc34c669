package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-processor
//
// This binary handles the S3 ObjectCreated notifications for uploaded bill
// PDFs and runs them through the extraction pipeline.

import (
	"context"
	"log"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"utilitycompare-backend/internal/bootstrap"
	"utilitycompare-backend/internal/shared/config"
)

var (
	initOnce sync.Once
	initErr  error
	app      *bootstrap.App
)

func initApp(ctx context.Context) {
	cfg := config.Load()
	built, err := bootstrap.Build(cfg)
	if err != nil {
		initErr = err
		return
	}
	if err := built.BuildPipeline(ctx); err != nil {
		initErr = err
		return
	}
	app = built
}

type response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

func handler(ctx context.Context, event events.S3Event) (response, error) {
	initOnce.Do(func() { initApp(ctx) })
	if initErr != nil {
		log.Printf("bootstrap error: %v", initErr)
		return response{}, initErr
	}

	if err := app.Pipeline.HandleEvent(ctx, event); err != nil {
		return response{}, err
	}
	return response{StatusCode: 200, Body: "Processing completed"}, nil
}

func main() {
	lambda.Start(handler)
}
