package worker

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/tatanjbr/gestion-almuerzos/internal/model"
	"github.com/tatanjbr/gestion-almuerzos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRecordatorioRepo struct {
	recordatorios []*model.Recordatorio
}

func (r *stubRecordatorioRepo) Create(_ context.Context, rec *model.Recordatorio) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.recordatorios = append(r.recordatorios, rec)
	return nil
}

func (r *stubRecordatorioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Recordatorio, error) {
	for _, rec := range r.recordatorios {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRecordatorioRepo) ListVencidos(_ context.Context, ahora time.Time, limit int) ([]model.Recordatorio, error) {
	out := make([]model.Recordatorio, 0)
	for _, rec := range r.recordatorios {
		if !rec.Completado && !rec.HoraAlerta.After(ahora) {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HoraAlerta.Before(out[j].HoraAlerta) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubRecordatorioRepo) MarcarCompletado(_ context.Context, id uuid.UUID) error {
	for _, rec := range r.recordatorios {
		if rec.ID == id {
			rec.Completado = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubRecordatorioRepo) DeleteByPedidoID(_ context.Context, pedidoID uuid.UUID) error {
	quedan := r.recordatorios[:0]
	for _, rec := range r.recordatorios {
		if rec.PedidoID != pedidoID {
			quedan = append(quedan, rec)
		}
	}
	r.recordatorios = quedan
	return nil
}

var _ repository.RecordatorioRepository = (*stubRecordatorioRepo)(nil)

var ahoraFija = time.Date(2026, 8, 29, 12, 25, 0, 0, time.Local)

func recordatorio(mensaje string, horaAlerta time.Time) *model.Recordatorio {
	return &model.Recordatorio{
		ID:         uuid.New(),
		PedidoID:   uuid.New(),
		HoraAlerta: horaAlerta,
		Mensaje:    mensaje,
	}
}

func newPoller(recs ...*model.Recordatorio) (*AlertaPoller, *stubRecordatorioRepo) {
	repo := &stubRecordatorioRepo{recordatorios: recs}
	p := NewAlertaPoller(repo, nil)
	p.ahora = func() time.Time { return ahoraFija }
	return p, repo
}

func TestTickCargaElVencidoMasAntiguo(t *testing.T) {
	tarde := recordatorio("Pedido de Casa I1 para las 12:35", ahoraFija.Add(-5*time.Minute))
	temprano := recordatorio("Pedido de Portal D4 para las 12:20", ahoraFija.Add(-15*time.Minute))
	p, _ := newPoller(tarde, temprano)

	require.Nil(t, p.Actual())
	p.Tick(context.Background())

	actual := p.Actual()
	require.NotNil(t, actual)
	assert.Equal(t, temprano.ID.String(), actual.RecordatorioID)
	assert.Contains(t, actual.Mensaje, "Portal D4")
}

func TestTickNoPisaElSlotOcupado(t *testing.T) {
	primero := recordatorio("primero", ahoraFija.Add(-10*time.Minute))
	segundo := recordatorio("segundo", ahoraFija.Add(-5*time.Minute))
	p, _ := newPoller(primero, segundo)

	p.Tick(context.Background())
	p.Tick(context.Background())

	actual := p.Actual()
	require.NotNil(t, actual)
	assert.Equal(t, primero.ID.String(), actual.RecordatorioID)
}

func TestTickIgnoraLosNoVencidos(t *testing.T) {
	futuro := recordatorio("todavía no", ahoraFija.Add(3*time.Minute))
	p, _ := newPoller(futuro)

	p.Tick(context.Background())
	assert.Nil(t, p.Actual())
}

func TestAtenderLiberaElSlotYAvanza(t *testing.T) {
	primero := recordatorio("primero", ahoraFija.Add(-10*time.Minute))
	segundo := recordatorio("segundo", ahoraFija.Add(-5*time.Minute))
	p, repo := newPoller(primero, segundo)

	p.Tick(context.Background())
	require.NoError(t, p.Atender(context.Background(), primero.ID))
	assert.Nil(t, p.Actual())
	assert.True(t, repo.recordatorios[0].Completado)

	// El siguiente tick carga la próxima alarma pendiente.
	p.Tick(context.Background())
	actual := p.Actual()
	require.NotNil(t, actual)
	assert.Equal(t, segundo.ID.String(), actual.RecordatorioID)
}

func TestAtenderOtroIDNoLiberaElSlot(t *testing.T) {
	sonando := recordatorio("sonando", ahoraFija.Add(-10*time.Minute))
	otro := recordatorio("otro", ahoraFija.Add(-5*time.Minute))
	p, _ := newPoller(sonando, otro)

	p.Tick(context.Background())
	require.NoError(t, p.Atender(context.Background(), otro.ID))

	actual := p.Actual()
	require.NotNil(t, actual)
	assert.Equal(t, sonando.ID.String(), actual.RecordatorioID)
}

func TestAtenderInexistente(t *testing.T) {
	p, _ := newPoller()
	err := p.Atender(context.Background(), uuid.New())
	require.Error(t, err)
}
