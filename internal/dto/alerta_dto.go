package dto

// AlertaResponse es el recordatorio vencido que ocupa el slot de alarma del
// poller. Se muestra uno a la vez aunque haya varios vencidos.
type AlertaResponse struct {
	RecordatorioID string `json:"recordatorio_id"`
	PedidoID       string `json:"pedido_id"`
	HoraAlerta     string `json:"hora_alerta"`
	Mensaje        string `json:"mensaje"`
}
