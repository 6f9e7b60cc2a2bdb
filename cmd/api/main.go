package main

import (
	"log"

	_ "agency_configurator/docs"
	"agency_configurator/internal/adapter/http/routes"
	"agency_configurator/internal/config"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Agency Configurator API
// @version         1.0
// @description     Service catalog, configuration pricing and order intake backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey PaymentSignalSecret
// @in header
// @name X-Payment-Signal-Secret

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	routes.Run(cfg)
}
