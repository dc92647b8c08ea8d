package service

import (
	"fmt"

	"github.com/tatanjbr/gestion-almuerzos/internal/dto"
	"github.com/tatanjbr/gestion-almuerzos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Este archivo concentra la aritmética pura del borrador de pedido:
// consumo por línea, disponibilidad real descontando las demás líneas,
// precios y totales. No toca base de datos; trabaja sobre líneas ya
// resueltas y una foto de stock del día.

// SnapshotStock es la foto de stock del día para evaluar un borrador.
// La ausencia de entrada para un producto significa que no hay registro
// de stock ese día, es decir cantidad ilimitada.
type SnapshotStock map[uuid.UUID]*model.StockDiario

// LineaBorrador es una línea del borrador con producto y variante ya
// resueltos. Indice conserva la posición original en la pantalla del
// operador aunque se hayan descartado líneas incompletas.
type LineaBorrador struct {
	Indice   int
	Producto *model.Producto
	Variante *model.Variante
	Cantidad int
	Notas    string
}

var gramosPorKilo = decimal.NewFromInt(1000)

// ConsumoLinea calcula cuánto stock consume una línea. Productos por
// unidad consumen la cantidad tal cual; productos por peso consumen
// peso_gramos/1000 × cantidad en kilos, sin redondear: el redondeo a 2
// decimales ocurre recién al reportar disponibilidad o descontar stock.
// Una línea por peso sin variante (o con variante sin peso) consume 0:
// se tolera, pero el reporte de disponibilidad la deja en evidencia.
func ConsumoLinea(l LineaBorrador) decimal.Decimal {
	if l.Producto.EsPeso() {
		if l.Variante == nil || l.Variante.PesoGramos == 0 {
			return decimal.Zero
		}
		kilos := decimal.NewFromInt(int64(l.Variante.PesoGramos)).Div(gramosPorKilo)
		return kilos.Mul(decimal.NewFromInt(int64(l.Cantidad)))
	}
	return decimal.NewFromInt(int64(l.Cantidad))
}

// DisponibleBase traduce un registro de stock a cantidad disponible:
// nil significa sin límite. Sin registro = ilimitado; marcado no
// disponible = 0; registro sin cantidad inicial = ilimitado (el
// operador solo controla el interruptor, no la cantidad).
func DisponibleBase(s *model.StockDiario) *decimal.Decimal {
	if s == nil {
		return nil
	}
	if !s.Disponible {
		cero := decimal.Zero
		return &cero
	}
	if !s.Rastreado() {
		return nil
	}
	d := s.CantidadDisponible
	if d.IsNegative() {
		d = decimal.Zero
	}
	return &d
}

// DisponibleReal es lo que queda de un producto si se honran primero
// las demás líneas del borrador. excluir es el índice de la línea que
// se está evaluando (-1 para no excluir ninguna). Nunca baja de 0.
func DisponibleReal(lineas []LineaBorrador, snap SnapshotStock, productoID uuid.UUID, excluir int) *decimal.Decimal {
	base := DisponibleBase(snap[productoID])
	if base == nil {
		return nil
	}
	restante := *base
	for _, l := range lineas {
		if l.Indice == excluir || l.Producto.ID != productoID {
			continue
		}
		restante = restante.Sub(ConsumoLinea(l))
	}
	if restante.IsNegative() {
		restante = decimal.Zero
	}
	restante = restante.Round(2)
	return &restante
}

// PrecioLinea devuelve el precio unitario congelable de la línea: el de
// la variante cuando hay variante, el precio base del producto si no.
func PrecioLinea(l LineaBorrador) decimal.Decimal {
	if l.Variante != nil {
		return l.Variante.Precio
	}
	return l.Producto.Precio
}

// NormalizarCantidad recorta la cantidad de una línea por unidad al piso
// de lo disponible, solo cuando lo disponible es positivo: con 0 la línea
// conserva lo tecleado y el reporte la marca como insuficiente en vez de
// desaparecerla del total. Las líneas por peso no se recortan: su consumo
// viene de la variante, no de la cantidad.
func NormalizarCantidad(l LineaBorrador, disponible *decimal.Decimal) int {
	if disponible == nil || !disponible.IsPositive() || l.Producto.EsPeso() {
		return l.Cantidad
	}
	tope := int(disponible.IntPart())
	if l.Cantidad > tope {
		return tope
	}
	return l.Cantidad
}

// EvaluarBorrador arma el reporte de disponibilidad en vivo que la
// pantalla consulta en cada edición: por línea, cuánto queda, si alcanza
// y la cantidad recortada, más los totales calculado y final.
func EvaluarBorrador(lineas []LineaBorrador, snap SnapshotStock, totalManual *decimal.Decimal) dto.DisponibilidadResponse {
	items := make([]dto.ItemDisponibilidad, 0, len(lineas))
	total := decimal.Zero

	for _, l := range lineas {
		disp := DisponibleReal(lineas, snap, l.Producto.ID, l.Indice)
		consumo := ConsumoLinea(l)
		suficiente := disp == nil || consumo.LessThanOrEqual(*disp)
		cantidad := NormalizarCantidad(l, disp)
		precio := PrecioLinea(l)
		subtotal := precio.Mul(decimal.NewFromInt(int64(cantidad)))
		total = total.Add(subtotal)

		items = append(items, dto.ItemDisponibilidad{
			Indice:           l.Indice,
			ProductoID:       l.Producto.ID.String(),
			Disponible:       disp,
			Consumo:          consumo,
			Suficiente:       suficiente,
			CantidadAjustada: cantidad,
			PrecioUnitario:   precio,
			Subtotal:         subtotal,
		})
	}

	final := total
	if totalManual != nil {
		final = *totalManual
	}
	return dto.DisponibilidadResponse{Items: items, TotalCalculado: total, TotalFinal: final}
}

// StockInsuficienteError rechaza un commit completo nombrando el
// producto que no alcanza y lo que realmente queda.
type StockInsuficienteError struct {
	Producto string
	Restante decimal.Decimal
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: quedan %s", e.Producto, e.Restante.String())
}

// ProductoNoDisponibleError rechaza un commit cuando el producto está
// marcado como no disponible hoy.
type ProductoNoDisponibleError struct {
	Producto string
}

func (e *ProductoNoDisponibleError) Error() string {
	return fmt.Sprintf("%s no está disponible hoy", e.Producto)
}

// ValidarStockCommit valida el pedido completo contra la foto de stock
// sumando el consumo por producto. Falla con el primer producto que no
// alcanza; un solo producto corto tumba todo el pedido. Un registro sin
// cantidad inicial pasa siempre (no se controla cantidad), y un producto
// sin registro también.
func ValidarStockCommit(lineas []LineaBorrador, snap SnapshotStock) error {
	consumos := make(map[uuid.UUID]decimal.Decimal)
	orden := make([]uuid.UUID, 0, len(lineas))
	nombres := make(map[uuid.UUID]string)

	for _, l := range lineas {
		id := l.Producto.ID
		if _, visto := consumos[id]; !visto {
			orden = append(orden, id)
			nombres[id] = l.Producto.Nombre
		}
		consumos[id] = consumos[id].Add(ConsumoLinea(l))
	}

	for _, id := range orden {
		s := snap[id]
		if s == nil {
			continue
		}
		if !s.Disponible {
			return &ProductoNoDisponibleError{Producto: nombres[id]}
		}
		if !s.Rastreado() {
			continue
		}
		disponible := s.CantidadDisponible
		if disponible.IsNegative() {
			disponible = decimal.Zero
		}
		if disponible.IsPositive() && consumos[id].GreaterThan(disponible) {
			return &StockInsuficienteError{Producto: nombres[id], Restante: disponible}
		}
	}
	return nil
}
