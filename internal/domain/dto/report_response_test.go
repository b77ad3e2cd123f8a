package dto

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestReportClient_DuplicadoOmittedWhenNil(t *testing.T) {
	entry := ReportClient{
		Info:         ReportInfo{NomeCompleto: "Ana", Detalhes: ReportDetails{Email: "ana@x.com", Nascimento: "2000-02-02"}},
		Estatisticas: ReportStats{Vendas: []ReportSale{{Data: "2023-10-26", Valor: 100.5}}},
	}
	b, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "duplicado") {
		t.Fatalf("duplicado should be omitted: %s", b)
	}
	if !strings.Contains(string(b), `"vendas":[{"data":"2023-10-26","valor":100.5}]`) {
		t.Fatalf("unexpected vendas encoding: %s", b)
	}

	entry.Duplicado = &ReportDuplicate{NomeCompleto: "Ana"}
	b, _ = json.Marshal(entry)
	if !strings.Contains(string(b), `"duplicado":{"nomeCompleto":"Ana"}`) {
		t.Fatalf("duplicado missing: %s", b)
	}
}
