package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// GuardarClienteRequest upserts a cached client. Identificacion is classified
// server-side: prefix V/E → CI, anything else → RIF.
type GuardarClienteRequest struct {
	Identificacion string `json:"identificacion" validate:"required,min=2"`
	Nombre         string `json:"nombre"         validate:"required,min=2"`
	Telefono       string `json:"telefono"`
	Direccion      string `json:"direccion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID        string  `json:"id"`
	CI        *string `json:"ci"`
	RIF       *string `json:"rif"`
	Nombre    string  `json:"nombre"`
	Telefono  string  `json:"telefono"`
	Direccion string  `json:"direccion"`
}
