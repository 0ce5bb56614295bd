package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/i18n"
	"github.com/sahabhq/console/internal/platform"
	"github.com/sahabhq/console/internal/reports"
	"github.com/sahabhq/console/pkg/trace"
)

// Reports serves the billing aggregates and their CSV exports.
type Reports struct {
	base
}

// NewReports creates the reports handler family.
func NewReports(d Deps) *Reports {
	return &Reports{base: d.base("handler.reports")}
}

// HandleRevenue returns the monthly revenue series for the requested
// range. A failed fetch fails the endpoint; zeroed aggregates are never
// served.
func (h *Reports) HandleRevenue(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	r, ok := h.queryRange(c)
	if !ok {
		return
	}

	payments, err := h.platform.ListPayments(c.Request.Context(), token, c.Query("from"), c.Query("to"))
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, reports.RevenueSeries(payments, r, time.Now()))
}

// HandleSubscribers returns the monthly new/churned series.
func (h *Reports) HandleSubscribers(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	r, ok := h.queryRange(c)
	if !ok {
		return
	}

	subs, err := h.platform.ListSubscriptions(c.Request.Context(), token)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, reports.SubscriberSeries(subs, r, time.Now()))
}

// HandleConversion returns the converted versus not-converted split.
func (h *Reports) HandleConversion(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	r, ok := h.queryRange(c)
	if !ok {
		return
	}

	var (
		subs      []platform.Subscription
		companies []platform.Company
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		subs, err = h.platform.ListSubscriptions(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		companies, err = h.platform.ListCompanies(ctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		h.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, reports.Conversion(subs, companies, r, time.Now()))
}

// HandleRevenueExport streams the revenue series as a UTF-8 BOM CSV
// attachment.
func (h *Reports) HandleRevenueExport(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	r, ok := h.queryRange(c)
	if !ok {
		return
	}

	scope := trace.Tracer(cnst.TraceConsole).Start(c.Request.Context(), cnst.SpanReportExport).
		WithAttrs(attribute.String(cnst.AttrReportKind, "revenue"))
	defer scope.End()

	payments, err := h.platform.ListPayments(scope.Ctx, token, c.Query("from"), c.Query("to"))
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteRevenueCSV(&buf, reports.RevenueSeries(payments, r, time.Now())); err != nil {
		i18n.Error(i18n.ErrInternalServer.WithParam("Reason", err.Error())).Send(c)
		return
	}

	h.sendCSV(c, "revenue", buf.Bytes())
}

// HandleSubscribersExport streams the subscriber series as a CSV
// attachment.
func (h *Reports) HandleSubscribersExport(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}
	r, ok := h.queryRange(c)
	if !ok {
		return
	}

	scope := trace.Tracer(cnst.TraceConsole).Start(c.Request.Context(), cnst.SpanReportExport).
		WithAttrs(attribute.String(cnst.AttrReportKind, "subscribers"))
	defer scope.End()

	subs, err := h.platform.ListSubscriptions(scope.Ctx, token)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteSubscriberCSV(&buf, reports.SubscriberSeries(subs, r, time.Now())); err != nil {
		i18n.Error(i18n.ErrInternalServer.WithParam("Reason", err.Error())).Send(c)
		return
	}

	h.sendCSV(c, "subscribers", buf.Bytes())
}

func (h *Reports) queryRange(c *gin.Context) (reports.Range, bool) {
	r, err := reports.ParseRange(c.Query("from"), c.Query("to"))
	if err != nil {
		i18n.ErrorWithParam(i18n.ErrorReportRange, "Reason", err.Error()).Send(c)
		return reports.Range{}, false
	}
	return r, true
}

func (h *Reports) sendCSV(c *gin.Context, kind string, data []byte) {
	if h.metrics != nil {
		h.metrics.ExportBuilt(kind)
	}
	filename := fmt.Sprintf("%s-%s.csv", kind, time.Now().Format(cnst.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
