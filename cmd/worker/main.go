package main

// Long-running alternative to the S3-triggered Lambda: polls an SQS queue
// subscribed to the bucket's ObjectCreated notifications and runs each
// notification through the same pipeline.

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"utilitycompare-backend/internal/bootstrap"
	"utilitycompare-backend/internal/shared/config"
	"utilitycompare-backend/internal/shared/telemetry"
)

const (
	defaultVisibilitySeconds = 300
	defaultWaitSeconds       = 20
)

type sqsAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

func main() {
	cfg := config.Load()

	queueURL := strings.TrimSpace(os.Getenv("BILLS_SQS_QUEUE_URL"))
	if queueURL == "" {
		log.Fatal("BILLS_SQS_QUEUE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	visibilitySeconds := envInt("BILLS_SQS_VISIBILITY_TIMEOUT_SECONDS", defaultVisibilitySeconds)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}
	var sqsClient sqsAPI = sqs.NewFromConfig(awsCfg)

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	if err := app.BuildPipeline(ctx); err != nil {
		log.Fatalf("build pipeline: %v", err)
	}

	log.Printf("worker started queue=%s visibility=%ds", queueURL, visibilitySeconds)

	for {
		if ctx.Err() != nil {
			log.Printf("shutdown requested")
			return
		}

		resp, err := sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     defaultWaitSeconds,
			VisibilityTimeout:   int32(visibilitySeconds),
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				log.Printf("shutdown requested")
				return
			}
			log.Printf("receive message: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range resp.Messages {
			if handleMessage(ctx, app, msg) {
				deleteMessage(ctx, sqsClient, queueURL, msg)
			}
		}
	}
}

// handleMessage decodes one S3 notification body and runs it through the
// pipeline. It reports whether the message is done: either processed or
// undecodable, in which case retrying would never help.
func handleMessage(ctx context.Context, app *bootstrap.App, msg sqstypes.Message) bool {
	var event events.S3Event
	if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &event); err != nil || len(event.Records) == 0 {
		telemetry.Warn("worker.undecodable_message", map[string]any{
			"message_id": aws.ToString(msg.MessageId),
		})
		return true
	}

	if err := app.Pipeline.HandleEvent(ctx, event); err != nil {
		telemetry.Error("worker.event_failed", map[string]any{
			"message_id": aws.ToString(msg.MessageId),
			"error":      err.Error(),
		})
		return false
	}
	return true
}

func deleteMessage(ctx context.Context, client sqsAPI, queueURL string, msg sqstypes.Message) {
	_, err := client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		log.Printf("delete message %s: %v", aws.ToString(msg.MessageId), err)
	}
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
