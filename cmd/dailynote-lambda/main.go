package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/suparena/dailynote"
)

func main() {
	// .env is only read outside production; Lambda normally sets APP_ENV=production
	lambda.Start(dailynote.NewScheduledHandler(dailynote.WithDotenv()))
}
