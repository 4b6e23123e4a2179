// Eligibility Check Lambda entry point
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/handlers"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/utils"
)

func main() {
	// Initialize logger
	_ = utils.InitLogger("info")
	defer utils.Sync()

	// Create handler
	handler, err := handlers.NewEligibilityCheckHandler()
	if err != nil {
		panic("Failed to create handler: " + err.Error())
	}

	// Start Lambda
	lambda.Start(handler.Handle)
}
