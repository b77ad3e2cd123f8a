package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salespulse/internal/domain/dto"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/service"
)

// SalesHandler serves sale CRUD and the per-day statistics.
type SalesHandler struct {
	sales service.SalesService
}

func NewSalesHandler(sales service.SalesService) *SalesHandler {
	return &SalesHandler{sales: sales}
}

// Create godoc
// @Summary      Create sale
// @Description  saleDate defaults to now. The client must exist.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSaleRequest  true  "Sale"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      422   {object}  dto.ErrorResponse  "Client does not exist"
// @Router       /api/v1/sales [post]
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	clientID, err := clientIDValue(req.ClientID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	sale := models.Sale{Value: req.Value, ClientID: clientID}
	if req.SaleDate != nil {
		if sale.SaleDate, err = dateField("saleDate", *req.SaleDate); err != nil {
			_ = c.Error(err)
			return
		}
	}

	out, err := h.sales.Create(c.Request.Context(), sale)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toSaleResponse(*out))
}

// List godoc
// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/v1/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	sales, err := h.sales.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleWithClientResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// Stats godoc
// @Summary      Sales per day
// @Description  Number of sales per UTC calendar day. startDate/endDate take precedence over lastMonths, which takes precedence over year/month. Days without sales are omitted.
// @Tags         stats
// @Produce      json
// @Param        year        query     int     false  "Calendar year"
// @Param        month       query     int     false  "Month (1-12), requires year"
// @Param        lastMonths  query     int     false  "Trailing months from today"
// @Param        startDate   query     string  false  "Inclusive start (YYYY-MM-DD)"
// @Param        endDate     query     string  false  "Inclusive end day (YYYY-MM-DD)"
// @Success      200         {array}   dto.SalesPerDayResponse
// @Failure      400         {object}  dto.ErrorResponse  "Bad Request"
// @Router       /api/v1/sales/stats [get]
func (h *SalesHandler) Stats(c *gin.Context) {
	q, err := statsQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	days, err := h.sales.SalesPerDay(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	out := make([]dto.SalesPerDayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, dto.SalesPerDayResponse{Date: d.Day.UTC().Format(dateLayout), Total: d.Total})
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary      Get sale
// @Tags         sales
// @Produce      json
// @Param        id   path      int  true  "Sale id"
// @Success      200  {object}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse  "Invalid id"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/sales/{id} [get]
func (h *SalesHandler) Get(c *gin.Context) {
	id, err := saleIDParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	s, err := h.sales.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toSaleWithClientResponse(*s))
}

// Update godoc
// @Summary      Update sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Sale id"
// @Param        body  body      dto.UpdateSaleRequest  true  "Fields to change"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404   {object}  dto.ErrorResponse  "Not Found"
// @Failure      422   {object}  dto.ErrorResponse  "Client does not exist"
// @Router       /api/v1/sales/{id} [patch]
func (h *SalesHandler) Update(c *gin.Context) {
	id, err := saleIDParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req dto.UpdateSaleRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	u := models.SaleUpdate{Value: req.Value}
	if req.ClientID != nil {
		clientID, err := clientIDValue(*req.ClientID)
		if err != nil {
			_ = c.Error(err)
			return
		}
		u.ClientID = &clientID
	}
	if req.SaleDate != nil {
		when, err := dateField("saleDate", *req.SaleDate)
		if err != nil {
			_ = c.Error(err)
			return
		}
		u.SaleDate = &when
	}

	out, err := h.sales.Update(c.Request.Context(), id, u)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toSaleResponse(*out))
}

// Delete godoc
// @Summary      Delete sale
// @Tags         sales
// @Param        id   path  int  true  "Sale id"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse  "Invalid id"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/sales/{id} [delete]
func (h *SalesHandler) Delete(c *gin.Context) {
	id, err := saleIDParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.sales.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
