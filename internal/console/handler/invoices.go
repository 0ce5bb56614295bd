package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Invoices serves the billing documents list.
type Invoices struct {
	base
}

// NewInvoices creates the invoices handler family.
func NewInvoices(d Deps) *Invoices {
	return &Invoices{base: d.base("handler.invoices")}
}

// HandleList returns every invoice. Status is backend-owned; the
// console only folds it to the lowercase display vocabulary.
func (h *Invoices) HandleList(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	invoices, err := h.platform.ListInvoices(c.Request.Context(), token)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	for i := range invoices {
		invoices[i].Status = strings.ToLower(invoices[i].Status)
	}
	c.JSON(http.StatusOK, invoices)
}
