package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tatanjbr/gestion-almuerzos/internal/dto"
	"github.com/tatanjbr/gestion-almuerzos/internal/model"
	"github.com/tatanjbr/gestion-almuerzos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PedidoService interface {
	// Disponibilidad evalúa el borrador completo sin persistir nada.
	Disponibilidad(ctx context.Context, req dto.BorradorRequest) (*dto.DisponibilidadResponse, error)
	// CrearPedido confirma el borrador: valida, congela precios,
	// descuenta stock y programa el recordatorio.
	CrearPedido(ctx context.Context, req dto.BorradorRequest) (*dto.PedidoResponse, error)
	ListPedidos(ctx context.Context, filter dto.PedidoFilter) ([]dto.PedidoResponse, error)
	Detalle(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.PedidoResponse, error)
	EditarTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) (*dto.PedidoResponse, error)
	RegistrarPago(ctx context.Context, id uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PedidoResponse, error)
	EliminarPedido(ctx context.Context, id uuid.UUID) error
	// ListClientes devuelve los identificadores conocidos para el
	// autocompletado del campo cliente.
	ListClientes(ctx context.Context) ([]dto.ClienteResponse, error)
}

// AnticipoRecordatorio es cuánto antes de la hora de entrega suena la
// alerta del pedido.
const AnticipoRecordatorio = 10 * time.Minute

type pedidoService struct {
	repo             repository.PedidoRepository
	productoRepo     repository.ProductoRepository
	stockRepo        repository.StockRepository
	clienteRepo      repository.ClienteRepository
	pagoRepo         repository.PagoRepository
	recordatorioRepo repository.RecordatorioRepository
	ahora            func() time.Time
}

func NewPedidoService(
	repo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	stockRepo repository.StockRepository,
	clienteRepo repository.ClienteRepository,
	pagoRepo repository.PagoRepository,
	recordatorioRepo repository.RecordatorioRepository,
) PedidoService {
	return &pedidoService{
		repo:             repo,
		productoRepo:     productoRepo,
		stockRepo:        stockRepo,
		clienteRepo:      clienteRepo,
		pagoRepo:         pagoRepo,
		recordatorioRepo: recordatorioRepo,
		ahora:            time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func fechaDe(t time.Time) string { return t.Format("2006-01-02") }

// resolverLineas convierte las líneas del request en líneas con producto
// y variante cargados. En modo estricto (commit) cualquier línea sin
// producto o con cantidad < 1 es error; en modo laxo (disponibilidad)
// esas líneas se descartan conservando el índice de las demás.
func (s *pedidoService) resolverLineas(ctx context.Context, items []dto.ItemBorradorRequest, estricto bool) ([]LineaBorrador, error) {
	lineas := make([]LineaBorrador, 0, len(items))
	productos := make(map[uuid.UUID]*model.Producto)

	for i, item := range items {
		if item.ProductoID == "" {
			if estricto {
				return nil, fmt.Errorf("la línea %d no tiene producto", i+1)
			}
			continue
		}
		if item.Cantidad < 1 {
			if estricto {
				return nil, fmt.Errorf("la línea %d tiene cantidad inválida", i+1)
			}
			continue
		}
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido en la línea %d: %w", i+1, err)
		}

		p, ok := productos[pid]
		if !ok {
			p, err = s.productoRepo.FindByID(ctx, pid)
			if err != nil {
				return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
			}
			productos[pid] = p
		}

		var variante *model.Variante
		if item.VarianteID != nil && *item.VarianteID != "" {
			vid, err := uuid.Parse(*item.VarianteID)
			if err != nil {
				return nil, fmt.Errorf("variante_id inválido en la línea %d: %w", i+1, err)
			}
			for vi := range p.Variantes {
				if p.Variantes[vi].ID == vid {
					variante = &p.Variantes[vi]
					break
				}
			}
			if variante == nil {
				return nil, fmt.Errorf("la variante no pertenece al producto %s", p.Nombre)
			}
		}

		lineas = append(lineas, LineaBorrador{
			Indice:   i,
			Producto: p,
			Variante: variante,
			Cantidad: item.Cantidad,
			Notas:    item.Notas,
		})
	}
	return lineas, nil
}

// snapshotStock toma la foto de stock del día para los productos del
// borrador. La ausencia de registro queda como ausencia de entrada.
func (s *pedidoService) snapshotStock(ctx context.Context, lineas []LineaBorrador, fecha string) (SnapshotStock, error) {
	snap := make(SnapshotStock)
	for _, l := range lineas {
		if _, visto := snap[l.Producto.ID]; visto {
			continue
		}
		st, err := s.stockRepo.FindByProductoFecha(ctx, l.Producto.ID, fecha)
		switch {
		case err == nil:
			snap[l.Producto.ID] = st
		case errors.Is(err, gorm.ErrRecordNotFound):
			snap[l.Producto.ID] = nil
		default:
			return nil, err
		}
	}
	return snap, nil
}

func (s *pedidoService) Disponibilidad(ctx context.Context, req dto.BorradorRequest) (*dto.DisponibilidadResponse, error) {
	lineas, err := s.resolverLineas(ctx, req.Items, false)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshotStock(ctx, lineas, fechaDe(s.ahora()))
	if err != nil {
		return nil, err
	}
	resp := EvaluarBorrador(lineas, snap, req.TotalManual)
	return &resp, nil
}

// CrearPedido es el commit del borrador. Valida en orden fijo (cliente,
// items, producto por línea, cantidad, stock por producto) y falla con
// el primer problema. La escritura del pedido con sus items y el
// descuento de stock van en una sola transacción; el recordatorio se
// programa después y su fallo no tumba el pedido ya confirmado.
func (s *pedidoService) CrearPedido(ctx context.Context, req dto.BorradorRequest) (*dto.PedidoResponse, error) {
	if req.Cliente == "" {
		return nil, errors.New("el pedido necesita un cliente")
	}
	lineas, err := s.resolverLineas(ctx, req.Items, true)
	if err != nil {
		return nil, err
	}
	if len(lineas) == 0 {
		return nil, errors.New("el pedido necesita al menos un item")
	}

	hoy := fechaDe(s.ahora())
	snap, err := s.snapshotStock(ctx, lineas, hoy)
	if err != nil {
		return nil, err
	}
	if err := ValidarStockCommit(lineas, snap); err != nil {
		return nil, err
	}

	cliente, err := s.resolverCliente(ctx, req.Cliente)
	if err != nil {
		return nil, err
	}

	tipoEntrega := req.TipoEntrega
	if tipoEntrega == "" {
		tipoEntrega = model.EntregaDomicilio
	}

	var horaEntrega *time.Time
	if req.HoraEntrega != "" {
		h, err := s.horaDelDia(req.HoraEntrega)
		if err != nil {
			return nil, err
		}
		horaEntrega = &h
	}

	// Precios y totales congelados al momento del commit.
	items := make([]model.PedidoItem, 0, len(lineas))
	totalCalculado := decimal.Zero
	for _, l := range lineas {
		precio := PrecioLinea(l)
		subtotal := precio.Mul(decimal.NewFromInt(int64(l.Cantidad)))
		totalCalculado = totalCalculado.Add(subtotal)
		items = append(items, model.PedidoItem{
			ProductoID:     l.Producto.ID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: precio,
			Subtotal:       subtotal,
			Notas:          notasDeLinea(l),
		})
	}
	total := totalCalculado
	if req.TotalManual != nil {
		total = *req.TotalManual
	}

	pedido := model.Pedido{
		ClienteID:   cliente.ID,
		Fecha:       hoy,
		TipoEntrega: tipoEntrega,
		Estado:      model.EstadoEnProceso,
		HoraEntrega: horaEntrega,
		Total:       total,
		Notas:       opcional(req.Notas),
		Items:       items,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &pedido); err != nil {
			return err
		}
		return s.descontarStock(lineas, snap, tx)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.programarRecordatorio(ctx, &pedido, cliente)

	guardado, err := s.repo.FindByID(ctx, pedido.ID)
	if err != nil {
		// El pedido quedó escrito; devolver lo que tenemos en memoria.
		pedido.Cliente = cliente
		return pedidoToResponse(&pedido), nil
	}
	return pedidoToResponse(guardado), nil
}

// descontarStock rebaja, por producto, la suma de consumo del pedido.
// Solo toca registros con cantidad controlada y nunca deja el contador
// por debajo de 0.
func (s *pedidoService) descontarStock(lineas []LineaBorrador, snap SnapshotStock, tx *gorm.DB) error {
	consumos := make(map[uuid.UUID]decimal.Decimal)
	for _, l := range lineas {
		consumos[l.Producto.ID] = consumos[l.Producto.ID].Add(ConsumoLinea(l))
	}
	for pid, consumo := range consumos {
		st := snap[pid]
		if st == nil || !st.Rastreado() || consumo.IsZero() {
			continue
		}
		nueva := st.CantidadDisponible.Sub(consumo)
		if nueva.IsNegative() {
			nueva = decimal.Zero
		}
		if err := s.stockRepo.UpdateCantidadTx(tx, st.ID, nueva.Round(2)); err != nil {
			return err
		}
	}
	return nil
}

func (s *pedidoService) resolverCliente(ctx context.Context, identificador string) (*model.Cliente, error) {
	cliente, err := s.clienteRepo.FindByIdentificador(ctx, identificador)
	switch {
	case err == nil:
		return cliente, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		nuevo := &model.Cliente{Identificador: identificador}
		if err := s.clienteRepo.Create(ctx, nuevo); err != nil {
			return nil, err
		}
		return nuevo, nil
	default:
		return nil, err
	}
}

// horaDelDia interpreta "HH:MM" como hora local del día actual.
func (s *pedidoService) horaDelDia(hhmm string) (time.Time, error) {
	h, err := time.ParseInLocation("15:04", hhmm, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("hora_entrega inválida: %w", err)
	}
	ahora := s.ahora()
	return time.Date(ahora.Year(), ahora.Month(), ahora.Day(), h.Hour(), h.Minute(), 0, 0, time.Local), nil
}

// programarRecordatorio agenda la alerta 10 minutos antes de la hora de
// entrega. Es mejor esfuerzo: si falla se registra y el pedido sigue.
func (s *pedidoService) programarRecordatorio(ctx context.Context, p *model.Pedido, cliente *model.Cliente) {
	if p.HoraEntrega == nil {
		return
	}
	rec := &model.Recordatorio{
		PedidoID:   p.ID,
		HoraAlerta: p.HoraEntrega.Add(-AnticipoRecordatorio),
		Mensaje:    fmt.Sprintf("Pedido de %s para las %s", cliente.Identificador, p.HoraEntrega.Format("15:04")),
	}
	if err := s.recordatorioRepo.Create(ctx, rec); err != nil {
		log.Warn().Err(err).Str("pedido_id", p.ID.String()).
			Msg("no se pudo programar el recordatorio")
	}
}

func (s *pedidoService) ListPedidos(ctx context.Context, filter dto.PedidoFilter) ([]dto.PedidoResponse, error) {
	fecha := filter.Fecha
	if fecha == "" {
		fecha = fechaDe(s.ahora())
	}
	pedidos, err := s.repo.ListByFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		p := &pedidos[i]
		if !pasaFiltroVista(p, filter.Vista) {
			continue
		}
		out = append(out, *pedidoToResponse(p))
	}
	return out, nil
}

func pasaFiltroVista(p *model.Pedido, vista string) bool {
	switch vista {
	case "", "todos":
		return true
	case "preparando":
		return EstadoVista(p) == "preparando"
	case "sin_pagar":
		return p.Pago == nil
	case "no_pagado":
		return EstadoVista(p) == "enviado_sin_pagar"
	case "completado":
		return EstadoVista(p) == "completado"
	default:
		return true
	}
}

func (s *pedidoService) Detalle(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	return pedidoToResponse(p), nil
}

// CambiarEstado avanza el pedido a su estado terminal: despachado para
// domicilios, entregado para pedidos en local. No hay vuelta atrás ni
// saltos cruzados.
func (s *pedidoService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.PedidoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	if p.Estado != model.EstadoEnProceso {
		return nil, fmt.Errorf("el pedido ya está %s", p.Estado)
	}
	switch estado {
	case model.EstadoDespachado:
		if p.TipoEntrega != model.EntregaDomicilio {
			return nil, errors.New("solo los domicilios se despachan")
		}
	case model.EstadoEntregado:
		if p.TipoEntrega != model.EntregaLocal {
			return nil, errors.New("solo los pedidos en local se entregan")
		}
	default:
		return nil, fmt.Errorf("estado inválido: %s", estado)
	}

	if err := s.repo.UpdateEstado(ctx, id, estado); err != nil {
		return nil, err
	}
	p.Estado = estado
	return pedidoToResponse(p), nil
}

// EditarTotal corrige el total de un pedido ya confirmado. Nunca toca
// stock ni el monto de un pago ya registrado.
func (s *pedidoService) EditarTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) (*dto.PedidoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	if !total.IsPositive() {
		return nil, errors.New("el total debe ser mayor a cero")
	}
	if err := s.repo.UpdateTotal(ctx, id, total); err != nil {
		return nil, err
	}
	p.Total = total
	return pedidoToResponse(p), nil
}

// RegistrarPago cobra el pedido una única vez, congelando como monto el
// total vigente.
func (s *pedidoService) RegistrarPago(ctx context.Context, id uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PedidoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	if _, err := s.pagoRepo.FindByPedidoID(ctx, id); err == nil {
		return nil, errors.New("el pedido ya tiene un pago registrado")
	}

	pago := &model.Pago{
		PedidoID:   p.ID,
		Monto:      p.Total,
		Metodo:     req.Metodo,
		Referencia: req.Referencia,
	}
	if err := s.pagoRepo.Create(ctx, pago); err != nil {
		return nil, err
	}
	p.Pago = pago
	return pedidoToResponse(p), nil
}

// EliminarPedido borra el pedido con sus items, pago y recordatorios
// pendientes (sin borrarlos, el poller haría sonar una alarma de un
// pedido inexistente). El stock descontado no se repone; si hace falta,
// el operador lo ajusta a mano en la pantalla de stock.
func (s *pedidoService) EliminarPedido(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("pedido no encontrado")
	}
	if err := s.recordatorioRepo.DeleteByPedidoID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *pedidoService) ListClientes(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.clienteRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		out = append(out, dto.ClienteResponse{ID: c.ID.String(), Identificador: c.Identificador})
	}
	return out, nil
}

// EstadoVista deriva el estado que ve el operador a partir del estado
// persistido y la existencia de pago. Nunca se guarda.
func EstadoVista(p *model.Pedido) string {
	if p.Estado == model.EstadoEnProceso {
		return "preparando"
	}
	if p.Pago == nil {
		return "enviado_sin_pagar"
	}
	return "completado"
}

func notasDeLinea(l LineaBorrador) *string {
	switch {
	case l.Variante != nil && l.Notas != "":
		n := l.Variante.Nombre + " - " + l.Notas
		return &n
	case l.Variante != nil:
		n := l.Variante.Nombre
		return &n
	case l.Notas != "":
		n := l.Notas
		return &n
	}
	return nil
}

func opcional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func pedidoToResponse(p *model.Pedido) *dto.PedidoResponse {
	items := make([]dto.ItemPedidoResponse, 0, len(p.Items))
	for _, item := range p.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		items = append(items, dto.ItemPedidoResponse{
			Producto:       nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
			Notas:          item.Notas,
		})
	}

	var hora *string
	if p.HoraEntrega != nil {
		h := p.HoraEntrega.Format("15:04")
		hora = &h
	}

	var pago *dto.PagoResponse
	if p.Pago != nil {
		pago = &dto.PagoResponse{
			Monto:      p.Pago.Monto,
			Metodo:     p.Pago.Metodo,
			Referencia: p.Pago.Referencia,
			CreatedAt:  p.Pago.CreatedAt.Format(time.RFC3339),
		}
	}

	clienteNombre := ""
	if p.Cliente != nil {
		clienteNombre = p.Cliente.Identificador
	}

	return &dto.PedidoResponse{
		ID:          p.ID.String(),
		Cliente:     clienteNombre,
		Fecha:       p.Fecha,
		TipoEntrega: p.TipoEntrega,
		Estado:      p.Estado,
		EstadoVista: EstadoVista(p),
		HoraEntrega: hora,
		Total:       p.Total,
		Notas:       p.Notas,
		Items:       items,
		Pago:        pago,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
