package models

// APIResponse es el sobre JSON uniforme de todos los endpoints.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	ID      *int64 `json:"id,omitempty"`
}

// ListResponse envuelve un listado paginado junto con el total sin paginar.
type ListResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Total   int  `json:"total"`
}
