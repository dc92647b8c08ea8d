package dto

import "github.com/shopspring/decimal"

// ─── Borrador ────────────────────────────────────────────────────────────────

// ItemBorradorRequest es una línea del borrador en composición. ProductoID
// puede venir vacío mientras el operador no ha seleccionado producto; el
// commit lo rechaza, el cálculo de disponibilidad simplemente lo ignora.
type ItemBorradorRequest struct {
	ProductoID string  `json:"producto_id" validate:"omitempty,uuid"`
	VarianteID *string `json:"variante_id" validate:"omitempty,uuid"`
	Cantidad   int     `json:"cantidad"    validate:"min=0"`
	Notas      string  `json:"notas"`
}

// BorradorRequest es el pedido en composición, tal cual vive en la pantalla
// del operador. Se envía completo tanto a /pedidos/disponibilidad (en cada
// edición) como a /pedidos (commit).
type BorradorRequest struct {
	Cliente     string                `json:"cliente"`
	TipoEntrega string                `json:"tipo_entrega" validate:"omitempty,oneof=domicilio local"`
	// HoraEntrega en formato HH:MM del día actual; opcional.
	HoraEntrega string                `json:"hora_entrega" validate:"omitempty,datetime=15:04"`
	Notas       string                `json:"notas"`
	Items       []ItemBorradorRequest `json:"items" validate:"dive"`
	// TotalManual pisa el total calculado al confirmar; el calculado se
	// sigue reportando como referencia.
	TotalManual *decimal.Decimal `json:"total_manual"`
}

// ─── Disponibilidad en vivo ──────────────────────────────────────────────────

// ItemDisponibilidad reporta, para una línea del borrador, cuánto queda del
// producto si se honran primero las demás líneas. Disponible nil significa
// stock sin rastrear (ilimitado).
type ItemDisponibilidad struct {
	Indice           int              `json:"indice"`
	ProductoID       string           `json:"producto_id"`
	Disponible       *decimal.Decimal `json:"disponible"`
	Consumo          decimal.Decimal  `json:"consumo"`
	Suficiente       bool             `json:"suficiente"`
	CantidadAjustada int              `json:"cantidad_ajustada"`
	PrecioUnitario   decimal.Decimal  `json:"precio_unitario"`
	Subtotal         decimal.Decimal  `json:"subtotal"`
}

type DisponibilidadResponse struct {
	Items          []ItemDisponibilidad `json:"items"`
	TotalCalculado decimal.Decimal      `json:"total_calculado"`
	TotalFinal     decimal.Decimal      `json:"total_final"`
}

// ─── Pedido persistido ───────────────────────────────────────────────────────

type ItemPedidoResponse struct {
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Notas          *string         `json:"notas"`
}

type PagoResponse struct {
	Monto      decimal.Decimal `json:"monto"`
	Metodo     string          `json:"metodo"`
	Referencia *string         `json:"referencia"`
	CreatedAt  string          `json:"created_at"`
}

type PedidoResponse struct {
	ID          string               `json:"id"`
	Cliente     string               `json:"cliente"`
	Fecha       string               `json:"fecha"`
	TipoEntrega string               `json:"tipo_entrega"`
	Estado      string               `json:"estado"`
	// EstadoVista se deriva de estado + pago, nunca se guarda:
	// "preparando" | "enviado_sin_pagar" | "completado".
	EstadoVista string               `json:"estado_vista"`
	HoraEntrega *string              `json:"hora_entrega"`
	Total       decimal.Decimal      `json:"total"`
	Notas       *string              `json:"notas"`
	Items       []ItemPedidoResponse `json:"items"`
	Pago        *PagoResponse        `json:"pago"`
	CreatedAt   string               `json:"created_at"`
}

// PedidoFilter filtra la lista del día por estado visual.
type PedidoFilter struct {
	Fecha string `form:"fecha"`                // YYYY-MM-DD; vacío = hoy
	Vista string `form:"vista,default=todos"`  // todos | preparando | no_pagado | completado | sin_pagar
}

type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=despachado entregado"`
}

type EditarTotalRequest struct {
	Total decimal.Decimal `json:"total" validate:"required"`
}

// ClienteResponse alimenta el autocompletado del campo cliente.
type ClienteResponse struct {
	ID            string `json:"id"`
	Identificador string `json:"identificador"`
}

type RegistrarPagoRequest struct {
	Metodo     string  `json:"metodo" validate:"required,oneof=efectivo nequi"`
	Referencia *string `json:"referencia"`
}
