package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/diewo77/glasspro/httpx"
	"github.com/diewo77/glasspro/internal/printing"
	"github.com/diewo77/glasspro/internal/services"
	"github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	shop     *services.Shop
	log      logrus.FieldLogger
	currency string
	now      func() time.Time
}

func NewReportHandler(shop *services.Shop, log logrus.FieldLogger, currency string) *ReportHandler {
	return &ReportHandler{shop: shop, log: log, currency: currency, now: time.Now}
}

// Summary serves the dashboard figures, recomputed on every call.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.shop.Summary())
}

// Export downloads every document plus the summary as a workbook.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	docs := h.shop.Documents(services.DocumentFilter{})
	out, err := printing.Workbook(docs, h.shop.Workers(), h.shop.Summary(), h.currency)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	name := fmt.Sprintf("glasspro-%s.xlsx", h.now().Format("2006-01-02"))
	httpx.Attachment(w, xlsxContentType, name, out)
}
