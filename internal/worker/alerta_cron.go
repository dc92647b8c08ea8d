package worker

// alerta_cron.go
// Goroutine de fondo que revisa cada pocos segundos los recordatorios
// vencidos y ocupa con el más antiguo el único slot de alarma. Mientras
// el operador no atienda la alarma no se carga la siguiente, igual que
// una alarma de cocina: suena una a la vez.

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/tatanjbr/gestion-almuerzos/internal/dto"
	"github.com/tatanjbr/gestion-almuerzos/internal/model"
	"github.com/tatanjbr/gestion-almuerzos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// QueueAlertas es la lista Redis donde se publica cada alerta que
	// entra al slot, para clientes que escuchan con BRPOP (una pantalla
	// secundaria, un bot de avisos). La publicación es mejor esfuerzo.
	QueueAlertas = "alertas:pedidos"

	alertaTickInterval = 15 * time.Second
)

// Job es el sobre genérico de los mensajes publicados en Redis.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AlertaPoller sondea los recordatorios y administra el slot de alarma.
// La entrega es al menos una vez: si el proceso no corría a la hora de
// alerta, el recordatorio sigue pendiente y suena en el siguiente tick.
type AlertaPoller struct {
	repo  repository.RecordatorioRepository
	rdb   *redis.Client
	ahora func() time.Time

	mu     sync.Mutex
	actual *model.Recordatorio
}

// NewAlertaPoller arma el poller. rdb puede ser nil; en ese caso no se
// publica en Redis y el slot funciona igual.
func NewAlertaPoller(repo repository.RecordatorioRepository, rdb *redis.Client) *AlertaPoller {
	return &AlertaPoller{repo: repo, rdb: rdb, ahora: time.Now}
}

// Start lanza la goroutine del poller. Respeta el contexto para el
// apagado ordenado.
func (p *AlertaPoller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(alertaTickInterval)
		defer ticker.Stop()

		log.Info().Msg("alerta_cron: iniciado")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("alerta_cron: apagando")
				return
			case <-ticker.C:
				p.Tick(ctx)
			}
		}
	}()
}

// Tick carga el slot con el recordatorio vencido más antiguo si el slot
// está libre. Expuesto para poder probarlo sin esperar al ticker.
func (p *AlertaPoller) Tick(ctx context.Context) {
	p.mu.Lock()
	ocupado := p.actual != nil
	p.mu.Unlock()
	if ocupado {
		return
	}

	vencidos, err := p.repo.ListVencidos(ctx, p.ahora(), 1)
	if err != nil {
		log.Error().Err(err).Msg("alerta_cron: no se pudieron consultar los recordatorios")
		return
	}
	if len(vencidos) == 0 {
		return
	}

	rec := &vencidos[0]
	p.mu.Lock()
	p.actual = rec
	p.mu.Unlock()

	log.Info().
		Str("recordatorio_id", rec.ID.String()).
		Str("pedido_id", rec.PedidoID.String()).
		Msg("alerta_cron: alarma sonando")

	p.publicar(ctx, rec)
}

// publicar empuja la alerta a Redis. Cualquier fallo solo se registra.
func (p *AlertaPoller) publicar(ctx context.Context, rec *model.Recordatorio) {
	if p.rdb == nil {
		return
	}
	payload, err := json.Marshal(alertaToResponse(rec))
	if err != nil {
		return
	}
	encoded, err := json.Marshal(Job{Type: "alerta", Payload: payload})
	if err != nil {
		return
	}
	if err := p.rdb.LPush(ctx, QueueAlertas, encoded).Err(); err != nil {
		log.Warn().Err(err).Msg("alerta_cron: no se pudo publicar la alerta en redis")
	}
}

// Actual devuelve la alarma que está sonando, o nil si el slot está
// libre.
func (p *AlertaPoller) Actual() *dto.AlertaResponse {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.actual == nil {
		return nil
	}
	return alertaToResponse(p.actual)
}

// Atender marca el recordatorio como completado y libera el slot para
// que el siguiente tick cargue la próxima alarma vencida.
func (p *AlertaPoller) Atender(ctx context.Context, id uuid.UUID) error {
	if _, err := p.repo.FindByID(ctx, id); err != nil {
		return errors.New("recordatorio no encontrado")
	}
	if err := p.repo.MarcarCompletado(ctx, id); err != nil {
		return err
	}
	p.mu.Lock()
	if p.actual != nil && p.actual.ID == id {
		p.actual = nil
	}
	p.mu.Unlock()
	return nil
}

func alertaToResponse(rec *model.Recordatorio) *dto.AlertaResponse {
	return &dto.AlertaResponse{
		RecordatorioID: rec.ID.String(),
		PedidoID:       rec.PedidoID.String(),
		HoraAlerta:     rec.HoraAlerta.Format(time.RFC3339),
		Mensaje:        rec.Mensaje,
	}
}
