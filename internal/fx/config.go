package fx

import (
	"log"

	"Tenure/config"
	"Tenure/internal/logger"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Invoke(loadEnvFiles),
	fx.Provide(
		config.Load,
	),
	fx.Invoke(
		initLogger,
		configureDecimal,
	),
)

func loadEnvFiles() error {
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: não foi possível carregar .env do diretório atual: %v", err)
	}
	if err := godotenv.Load("../../.env"); err != nil {
		log.Printf("Aviso: não foi possível carregar ../../.env: %v", err)
	}
	return nil
}

func initLogger(cfg *config.Config) {
	logger.Init(cfg)
}

// Valores monetários saem como número no JSON da API.
func configureDecimal() {
	decimal.MarshalJSONWithoutQuotes = true
}
