package models

// ReorderItem es un par id/posición enviado por el cliente tras un drag-and-drop.
// Punteros para distinguir campo ausente de cero.
type ReorderItem struct {
	ID    *int64 `json:"id"`
	Order *int   `json:"order"`
}

// ReorderRequest representa la solicitud de reordenamiento de una lista completa.
type ReorderRequest struct {
	Items []ReorderItem `json:"items"`
	Type  string        `json:"type"` // "tasks" o "events"
}
