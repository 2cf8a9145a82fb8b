// Package main runs the flashcard router as an AWS Lambda function behind
// API Gateway (REST API proxy integration).
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/scry-flashgen/internal/app"
	"github.com/phrazzld/scry-flashgen/internal/config"
	"github.com/phrazzld/scry-flashgen/internal/platform/logger"
)

// proxyHandler is the signature lambda.Start expects for API Gateway proxy events.
type proxyHandler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// newHandler adapts router to API Gateway proxy events.
func newHandler(router *chi.Mux) proxyHandler {
	adapter := chiadapter.New(router)
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	}
}

func main() {
	ctx := context.Background()

	// Configuration comes from the function's environment; there is no .env file.
	cfg, err := config.Load(config.WithEnvFile(""))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	application, err := app.New(ctx, cfg, logr)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router, err := application.Router()
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	logr.Info("Lambda handler initialized",
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model)

	lambda.Start(newHandler(router))
}
