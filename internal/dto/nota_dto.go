package dto

type CrearNotaRequest struct {
	Contenido string `json:"contenido" validate:"required"`
}

type NotaResponse struct {
	ID        string `json:"id"`
	Fecha     string `json:"fecha"`
	Contenido string `json:"contenido"`
	Resuelta  bool   `json:"resuelta"`
	CreatedAt string `json:"created_at"`
}

// NotaFilter: pendientes | resueltas | hoy | todas.
type NotaFilter struct {
	Filtro string `form:"filtro,default=pendientes"`
}
