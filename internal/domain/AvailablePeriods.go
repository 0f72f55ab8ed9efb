package domain

// AvailablePeriods representa os anos e categorias disponíveis na base de registros de vendas
type AvailablePeriods struct {
	Years      []int    `json:"years"`
	Categories []string `json:"categories"`
}
