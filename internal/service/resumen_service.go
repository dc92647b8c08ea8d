package service

import (
	"context"
	"sort"
	"time"

	"github.com/tatanjbr/gestion-almuerzos/internal/dto"
	"github.com/tatanjbr/gestion-almuerzos/internal/repository"

	"github.com/shopspring/decimal"
)

// ResumenService arma el cierre del día: ventas, cobros, desglose por
// producto y por método de pago, stock restante y notas sin resolver.
type ResumenService interface {
	Resumen(ctx context.Context, fecha string) (*dto.ResumenResponse, error)
}

type resumenService struct {
	pedidoRepo repository.PedidoRepository
	stock      StockService
	notaRepo   repository.NotaRepository
	ahora      func() time.Time
}

func NewResumenService(pedidoRepo repository.PedidoRepository, stock StockService, notaRepo repository.NotaRepository) ResumenService {
	return &resumenService{pedidoRepo: pedidoRepo, stock: stock, notaRepo: notaRepo, ahora: time.Now}
}

func (s *resumenService) Resumen(ctx context.Context, fecha string) (*dto.ResumenResponse, error) {
	if fecha == "" {
		fecha = fechaDe(s.ahora())
	}

	pedidos, err := s.pedidoRepo.ListByFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}

	totalVentas := decimal.Zero
	totalCobrado := decimal.Zero
	sinPagar := make([]dto.PedidoSinPagar, 0)
	porEstado := make(map[string]int)
	porMetodo := make(map[string]decimal.Decimal)

	type acumulado struct {
		cantidad int
		total    decimal.Decimal
	}
	porProducto := make(map[string]*acumulado)

	for i := range pedidos {
		p := &pedidos[i]
		totalVentas = totalVentas.Add(p.Total)
		porEstado[EstadoVista(p)]++

		if p.Pago != nil {
			totalCobrado = totalCobrado.Add(p.Pago.Monto)
			porMetodo[p.Pago.Metodo] = porMetodo[p.Pago.Metodo].Add(p.Pago.Monto)
		} else {
			cliente := ""
			if p.Cliente != nil {
				cliente = p.Cliente.Identificador
			}
			sinPagar = append(sinPagar, dto.PedidoSinPagar{
				PedidoID: p.ID.String(),
				Cliente:  cliente,
				Total:    p.Total,
			})
		}

		for _, item := range p.Items {
			nombre := ""
			if item.Producto != nil {
				nombre = item.Producto.Nombre
			}
			acc, ok := porProducto[nombre]
			if !ok {
				acc = &acumulado{}
				porProducto[nombre] = acc
			}
			acc.cantidad += item.Cantidad
			acc.total = acc.total.Add(item.Subtotal)
		}
	}

	ventas := make([]dto.VentaProducto, 0, len(porProducto))
	for nombre, acc := range porProducto {
		porcentaje := 0
		if totalVentas.IsPositive() {
			porcentaje = int(acc.total.Div(totalVentas).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		}
		ventas = append(ventas, dto.VentaProducto{
			Producto:   nombre,
			Cantidad:   acc.cantidad,
			Total:      acc.total,
			Porcentaje: porcentaje,
		})
	}
	// Del que más vendió al que menos.
	sort.Slice(ventas, func(i, j int) bool {
		if !ventas[i].Total.Equal(ventas[j].Total) {
			return ventas[i].Total.GreaterThan(ventas[j].Total)
		}
		return ventas[i].Producto < ventas[j].Producto
	})

	stockRestante, err := s.stock.ListarStock(ctx, fecha)
	if err != nil {
		return nil, err
	}

	notas, err := s.notaRepo.ListPendientesByFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}
	notasPendientes := make([]string, 0, len(notas))
	for _, n := range notas {
		notasPendientes = append(notasPendientes, n.Contenido)
	}

	return &dto.ResumenResponse{
		Fecha:             fecha,
		TotalVentas:       totalVentas,
		TotalCobrado:      totalCobrado,
		Pendiente:         totalVentas.Sub(totalCobrado),
		PedidosPorEstado:  porEstado,
		VentasPorProducto: ventas,
		PagosPorMetodo:    porMetodo,
		PedidosSinPagar:   sinPagar,
		StockRestante:     stockRestante,
		NotasPendientes:   notasPendientes,
	}, nil
}
