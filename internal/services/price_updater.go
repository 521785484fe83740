package services

import (
	"sync"
	"time"

	"github.com/kryptofolio/KryptoFolio_Api/internal/models"
	"github.com/kryptofolio/KryptoFolio_Api/internal/repository"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// stalenessThreshold es la antigüedad a partir de la cual la caché se considera desactualizada
const stalenessThreshold = 10 * time.Minute

// PriceCache son las operaciones de escritura que el actualizador necesita de la caché
type PriceCache interface {
	Upsert(quote *models.PriceQuote) error
	LastUpdated() (time.Time, error)
}

// PriceUpdater refresca la caché de cotizaciones cada 5 minutos desde CoinGecko,
// con una actualización inmediata al arrancar
type PriceUpdater struct {
	client *CoinGeckoClient
	cache  PriceCache
	cron   *cron.Cron
	logger *zap.SugaredLogger

	mutex   sync.Mutex
	lastRun time.Time
}

func NewPriceUpdater(client *CoinGeckoClient, cache PriceCache, logger *zap.SugaredLogger) *PriceUpdater {
	return &PriceUpdater{
		client: client,
		cache:  cache,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start lanza la actualización inicial y programa las siguientes cada 5 minutos
func (p *PriceUpdater) Start() error {
	p.logger.Info("Iniciando el actualizador de precios (cada 5 minutos)...")

	go p.refresh()

	if _, err := p.cron.AddFunc("*/5 * * * *", p.refresh); err != nil {
		return err
	}
	p.cron.Start()

	return nil
}

// Stop detiene el planificador; las actualizaciones en curso terminan solas
func (p *PriceUpdater) Stop() {
	p.cron.Stop()
	p.logger.Info("Actualizador de precios detenido")
}

func (p *PriceUpdater) refresh() {
	updated, err := p.RefreshAll()
	if err != nil {
		p.logger.Errorf("Error al actualizar los precios: %v", err)
		return
	}
	p.logger.Infof("Cotizaciones actualizadas: %d", updated)
}

// RefreshAll obtiene las cotizaciones de todas las monedas soportadas y las
// guarda en la caché. Devuelve cuántas se actualizaron.
func (p *PriceUpdater) RefreshAll() (int, error) {
	quotes, err := p.client.FetchPrices()
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range quotes {
		if err := p.cache.Upsert(&quotes[i]); err != nil {
			p.logger.Errorf("Error al guardar la cotización de %s: %v", quotes[i].Symbol, err)
			continue
		}
		updated++
	}

	p.mutex.Lock()
	p.lastRun = time.Now()
	p.mutex.Unlock()

	return updated, nil
}

// IsStale indica si la caché lleva más de 10 minutos sin actualizarse.
// En caso de error se asume desactualizada.
func (p *PriceUpdater) IsStale() bool {
	latest, err := p.cache.LastUpdated()
	if err != nil || latest.IsZero() {
		return true
	}
	return time.Since(latest) > stalenessThreshold
}

// LastRun devuelve la última vez que este proceso completó una actualización
func (p *PriceUpdater) LastRun() time.Time {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.lastRun
}

var _ PriceCache = (*repository.PriceRepository)(nil)
