package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salespulse/internal/domain/dto"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/service"
)

// ClientsHandler serves client CRUD, the rankings and the nested report.
type ClientsHandler struct {
	clients   service.ClientService
	analytics service.AnalyticsService
	report    service.ReportService
}

func NewClientsHandler(clients service.ClientService, analytics service.AnalyticsService, report service.ReportService) *ClientsHandler {
	return &ClientsHandler{clients: clients, analytics: analytics, report: report}
}

func clientFilter(c *gin.Context) models.ClientFilter {
	return models.ClientFilter{Name: c.Query("name"), Email: c.Query("email")}
}

// Create godoc
// @Summary      Create client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateClientRequest  true  "Client"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      409   {object}  dto.ErrorResponse  "Email already in use"
// @Router       /api/v1/clients [post]
func (h *ClientsHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	birth, err := dateField("birthDate", req.BirthDate)
	if err != nil {
		_ = c.Error(err)
		return
	}

	out, err := h.clients.Create(c.Request.Context(), models.Client{Name: req.Name, Email: req.Email, BirthDate: birth})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toClientResponse(*out))
}

// List godoc
// @Summary      List clients
// @Description  Paginated, newest first. name and email are case-insensitive partial filters.
// @Tags         clients
// @Produce      json
// @Param        name   query     string  false  "Name contains"
// @Param        email  query     string  false  "Email contains"
// @Param        page   query     int     false  "Page (default 1)"
// @Param        limit  query     int     false  "Page size (default 10)"
// @Success      200    {object}  dto.ClientListResponse
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Router       /api/v1/clients [get]
func (h *ClientsHandler) List(c *gin.Context) {
	q, err := pageQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page, err := h.clients.List(c.Request.Context(), clientFilter(c), q)
	if err != nil {
		_ = c.Error(err)
		return
	}

	data := make([]dto.ClientResponse, 0, len(page.Data))
	for _, cl := range page.Data {
		data = append(data, toClientResponse(cl))
	}
	c.JSON(http.StatusOK, dto.ClientListResponse{
		Data: data,
		Meta: dto.ListMeta{Total: page.Total, Page: page.Page, Limit: page.Limit, LastPage: page.LastPage},
	})
}

// Report godoc
// @Summary      Client report
// @Description  Nested report of clients and their sales. Entries randomly carry a "duplicado" field.
// @Tags         clients
// @Produce      json
// @Param        name   query     string  false  "Name contains"
// @Param        email  query     string  false  "Email contains"
// @Param        page   query     int     false  "Page (default 1)"
// @Param        limit  query     int     false  "Page size (default 10)"
// @Success      200    {object}  dto.ClientReportResponse
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Router       /api/v1/clients/report [get]
func (h *ClientsHandler) Report(c *gin.Context) {
	q, err := pageQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	out, err := h.report.ClientReport(c.Request.Context(), clientFilter(c), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// TopTotalSales godoc
// @Summary      Client with the highest total sales
// @Description  Returns null when there are no sales.
// @Tags         stats
// @Produce      json
// @Success      200  {object}  dto.TopClientByTotalResponse
// @Router       /api/v1/clients/stats/top-total-sales [get]
func (h *ClientsHandler) TopTotalSales(c *gin.Context) {
	top, err := h.analytics.TopClientByTotalSales(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if top == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, dto.TopClientByTotalResponse{
		ID:              top.ID,
		Name:            top.Name,
		Email:           top.Email,
		TotalSalesValue: top.TotalSalesValue.InexactFloat64(),
	})
}

// TopAverageSale godoc
// @Summary      Client with the highest average sale value
// @Description  Returns null when there are no sales.
// @Tags         stats
// @Produce      json
// @Success      200  {object}  dto.TopClientByAverageResponse
// @Router       /api/v1/clients/stats/top-average-sale [get]
func (h *ClientsHandler) TopAverageSale(c *gin.Context) {
	top, err := h.analytics.TopClientByAverageSaleValue(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if top == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, dto.TopClientByAverageResponse{
		ID:               top.ID,
		Name:             top.Name,
		Email:            top.Email,
		AverageSaleValue: top.AverageSaleValue.InexactFloat64(),
	})
}

// TopPurchaseFrequency godoc
// @Summary      Clients with the most distinct purchase days
// @Description  Every client tied at the maximum is returned.
// @Tags         stats
// @Produce      json
// @Success      200  {array}  dto.TopClientByFrequencyResponse
// @Router       /api/v1/clients/stats/top-purchase-frequency [get]
func (h *ClientsHandler) TopPurchaseFrequency(c *gin.Context) {
	top, err := h.analytics.TopClientsByPurchaseFrequency(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	out := make([]dto.TopClientByFrequencyResponse, 0, len(top))
	for _, t := range top {
		out = append(out, dto.TopClientByFrequencyResponse{ID: t.ID, Name: t.Name, Email: t.Email, UniqueSaleDays: t.UniqueSaleDays})
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary      Get client with sales
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Client UUID"
// @Success      200  {object}  dto.ClientResponse
// @Failure      400  {object}  dto.ErrorResponse  "Invalid id"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/clients/{id} [get]
func (h *ClientsHandler) Get(c *gin.Context) {
	id, err := clientIDParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	cl, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := toClientResponse(cl.Client)
	resp.Sales = make([]dto.SaleResponse, 0, len(cl.Sales))
	for _, s := range cl.Sales {
		resp.Sales = append(resp.Sales, toSaleResponse(s))
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Client UUID"
// @Param        body  body      dto.UpdateClientRequest  true  "Fields to change"
// @Success      200   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404   {object}  dto.ErrorResponse  "Not Found"
// @Failure      409   {object}  dto.ErrorResponse  "Email already in use"
// @Router       /api/v1/clients/{id} [patch]
func (h *ClientsHandler) Update(c *gin.Context) {
	id, err := clientIDParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req dto.UpdateClientRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	u := models.ClientUpdate{Name: req.Name, Email: req.Email}
	if req.BirthDate != nil {
		birth, err := dateField("birthDate", *req.BirthDate)
		if err != nil {
			_ = c.Error(err)
			return
		}
		u.BirthDate = &birth
	}

	out, err := h.clients.Update(c.Request.Context(), id, u)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toClientResponse(*out))
}

// Delete godoc
// @Summary      Delete client
// @Description  Refused with 409 while the client has sales, unless cascade=true.
// @Tags         clients
// @Param        id       path   string  true   "Client UUID"
// @Param        cascade  query  bool    false  "Also delete the client's sales"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse  "Invalid id"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Failure      409  {object}  dto.ErrorResponse  "Client has sales"
// @Router       /api/v1/clients/{id} [delete]
func (h *ClientsHandler) Delete(c *gin.Context) {
	id, err := clientIDParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	cascade := c.Query("cascade") == "true"
	if err := h.clients.Delete(c.Request.Context(), id, cascade); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
