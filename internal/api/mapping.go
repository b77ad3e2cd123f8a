package api

import (
	"github.com/guttosm/salespulse/internal/domain/dto"
	"github.com/guttosm/salespulse/internal/domain/models"
)

func toClientResponse(c models.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		BirthDate: c.BirthDate.UTC().Format(dateLayout),
		CreatedAt: c.CreatedAt,
	}
}

func toSaleResponse(s models.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:       s.ID,
		Value:    s.Value.InexactFloat64(),
		SaleDate: s.SaleDate.UTC(),
		ClientID: s.ClientID,
	}
}

func toSaleWithClientResponse(s models.SaleWithClient) dto.SaleResponse {
	out := toSaleResponse(s.Sale)
	out.Client = &dto.ClientSummaryResponse{ID: s.Client.ID, Name: s.Client.Name, Email: s.Client.Email}
	return out
}
