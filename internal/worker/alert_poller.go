package worker

// alert_poller.go
// Goroutine de fondo que cada tick consulta los lotes con stock cuya vigencia
// de precio vence dentro del umbral y publica el snapshot en Redis. El front
// de caja lee la clave para pintar las alertas sin pegarle a Postgres.

import (
	"context"
	"encoding/json"
	"time"

	"lotepos/internal/lote"
	"lotepos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// AlertasKey es la clave Redis donde vive el snapshot de alertas.
	AlertasKey = "alertas:lotes-por-vencer"

	alertasTTL = 30 * time.Minute
)

// AlertaLote es un renglón del snapshot publicado.
type AlertaLote struct {
	LoteID              string `json:"lote_id"`
	ProductoID          string `json:"producto_id"`
	Producto            string `json:"producto"`
	NumeroLote          int    `json:"numero_lote"`
	DiasParaVencimiento int    `json:"dias_para_vencimiento"`
	FechaVencimiento    string `json:"fecha_vencimiento"`
	StockActual         int    `json:"stock_actual"`
}

// AlertPollerConfig agrupa las dependencias del poller.
type AlertPollerConfig struct {
	LoteRepo   repository.LoteRepository
	RDB        *redis.Client
	UmbralDias int
	Interval   time.Duration
}

// StartAlertPoller lanza la goroutine. Respeta el contexto para el apagado
// ordenado. El poller solo lee: nunca muta lotes ni estado de venta.
func StartAlertPoller(ctx context.Context, cfg AlertPollerConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().
			Int("umbral_dias", cfg.UmbralDias).
			Dur("interval", cfg.Interval).
			Msg("alert_poller: started")

		// Primer snapshot inmediato, sin esperar el primer tick.
		publishSnapshot(ctx, cfg)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("alert_poller: shutting down")
				return
			case <-ticker.C:
				publishSnapshot(ctx, cfg)
			}
		}
	}()
}

func publishSnapshot(ctx context.Context, cfg AlertPollerConfig) {
	hoy := time.Now()
	limite := hoy.AddDate(0, 0, cfg.UmbralDias)

	lotes, err := cfg.LoteRepo.ListPorVencer(ctx, limite)
	if err != nil {
		log.Error().Err(err).Msg("alert_poller: failed to query lotes")
		return
	}

	enVentana := lotes[:0]
	for i := range lotes {
		if lote.PorVencer(&lotes[i], hoy, cfg.UmbralDias) {
			enVentana = append(enVentana, lotes[i])
		}
	}
	lote.OrdenarPorUrgencia(enVentana, hoy)

	alertas := make([]AlertaLote, 0, len(enVentana))
	for i := range enVentana {
		l := &enVentana[i]
		nombre := ""
		if l.Producto != nil {
			nombre = l.Producto.Nombre
		}
		alertas = append(alertas, AlertaLote{
			LoteID:              l.ID.String(),
			ProductoID:          l.ProductoID.String(),
			Producto:            nombre,
			NumeroLote:          l.NumeroLote,
			DiasParaVencimiento: lote.DiasParaVencimiento(l, hoy),
			FechaVencimiento:    l.FechaVencimiento.Format("2006-01-02"),
			StockActual:         l.StockActual,
		})
	}

	raw, err := json.Marshal(alertas)
	if err != nil {
		log.Error().Err(err).Msg("alert_poller: marshal snapshot")
		return
	}
	if err := cfg.RDB.Set(ctx, AlertasKey, raw, alertasTTL).Err(); err != nil {
		log.Error().Err(err).Msg("alert_poller: failed to publish snapshot")
		return
	}

	if len(alertas) > 0 {
		log.Info().Int("alertas", len(alertas)).Msg("alert_poller: snapshot published")
	}
}
