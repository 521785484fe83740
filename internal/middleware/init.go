package middleware

import (
	"database/sql"

	"github.com/kryptofolio/KryptoFolio_Api/internal/portfolio"
	"github.com/kryptofolio/KryptoFolio_Api/internal/repository"
	"github.com/kryptofolio/KryptoFolio_Api/internal/services"
	"go.uber.org/zap"
)

// Dependencias compartidas por los handlers, inicializadas una sola vez desde main
var (
	logger           *zap.SugaredLogger
	userRepo         *repository.UserRepository
	transactionRepo  *repository.TransactionRepository
	priceRepo        *repository.PriceRepository
	portfolioService *portfolio.Service
	geckoClient      *services.CoinGeckoClient

	priceUpdaterInstance *services.PriceUpdater
)

// Init construye los repositorios y el servicio de portafolio sobre la conexión dada
func Init(db *sql.DB, client *services.CoinGeckoClient, log *zap.SugaredLogger) {
	logger = log
	userRepo = repository.NewUserRepository(db)
	transactionRepo = repository.NewTransactionRepository(db)
	priceRepo = repository.NewPriceRepository(db)
	portfolioService = portfolio.NewService(transactionRepo, priceRepo)
	geckoClient = client
}

// SetPriceUpdater establece la instancia del actualizador de precios
func SetPriceUpdater(updater *services.PriceUpdater) {
	priceUpdaterInstance = updater
}
