package dto

// ClientReportResponse is the nested, denormalized body of GET /api/v1/clients/report.
// Field names are part of the public report format and must not change.
type ClientReportResponse struct {
	Data       ReportData      `json:"data"`
	Meta       ReportMeta      `json:"meta"`
	Redundante ReportRedundant `json:"redundante"`
}

type ReportData struct {
	Clientes []ReportClient `json:"clientes"`
}

type ReportMeta struct {
	RegistroTotal int `json:"registroTotal" example:"25"`
	Pagina        int `json:"pagina" example:"1"`
	Limite        int `json:"limite" example:"10"`
	UltimaPagina  int `json:"ultimaPagina" example:"3"`
}

// ReportRedundant is a static placeholder kept in every report.
type ReportRedundant struct {
	Status string `json:"status" example:"ok"`
}

// ReportClient is one client entry. Duplicado is attached at random; see service.ReportService.
type ReportClient struct {
	Info         ReportInfo       `json:"info"`
	Estatisticas ReportStats      `json:"estatisticas"`
	Duplicado    *ReportDuplicate `json:"duplicado,omitempty"`
}

type ReportInfo struct {
	NomeCompleto string        `json:"nomeCompleto" example:"Bruce Wayne"`
	Detalhes     ReportDetails `json:"detalhes"`
}

type ReportDetails struct {
	Email      string `json:"email" example:"wayne.enterprises@email.com"`
	Nascimento string `json:"nascimento" example:"1815-12-10"`
}

type ReportStats struct {
	Vendas []ReportSale `json:"vendas"`
}

type ReportSale struct {
	Data  string  `json:"data" example:"2023-10-26"`
	Valor float64 `json:"valor" example:"100.5"`
}

type ReportDuplicate struct {
	NomeCompleto string `json:"nomeCompleto" example:"Bruce Wayne"`
}
