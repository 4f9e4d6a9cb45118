package http

import (
	"net/http"
	"time"

	"ultracare-admin/internal/dashboard/application"
	"ultracare-admin/internal/dashboard/interfaces/export"
	"ultracare-admin/internal/dashboard/views"
	"ultracare-admin/internal/observability/metrics"
)

const (
	formatXLSX = "xlsx"
	formatPDF  = "pdf"
)

func (h *Handler) handleExportDevices(w http.ResponseWriter, r *http.Request) {
	c := h.pageFor(r).Devices()
	defer c.Close()
	exportSnapshot(h, w, r, c.Load(r.Context()), formatXLSX, "devices.xlsx", export.BuildDevicesXLSX)
}

func (h *Handler) handleExportAlertsXLSX(w http.ResponseWriter, r *http.Request) {
	c := h.pageFor(r).Alerts(r.URL.Query().Get("type"))
	defer c.Close()
	exportSnapshot(h, w, r, c.Load(r.Context()), formatXLSX, "alerts.xlsx", export.BuildAlertsXLSX)
}

func (h *Handler) handleExportAlertsPDF(w http.ResponseWriter, r *http.Request) {
	c := h.pageFor(r).Alerts(r.URL.Query().Get("type"))
	defer c.Close()
	generated := h.now()
	exportSnapshot(h, w, r, c.Load(r.Context()), formatPDF, "alerts.pdf", func(view views.AlertsView) ([]byte, error) {
		return export.BuildAlertsPDF(view, generated)
	})
}

func (h *Handler) handleExportSubscriptions(w http.ResponseWriter, r *http.Request) {
	c := h.pageFor(r).Subscriptions(nil)
	defer c.Close()
	exportSnapshot(h, w, r, c.Load(r.Context()), formatXLSX, "subscriptions.xlsx", func(data application.SubscriptionsData) ([]byte, error) {
		return export.BuildSubscriptionsXLSX(data.Rows)
	})
}

// exportSnapshot streams a file built from a loaded page. Load failures are
// answered the way the page itself would answer them.
func exportSnapshot[T any](h *Handler, w http.ResponseWriter, r *http.Request, snapshot application.Snapshot[T], format, filename string, build func(T) ([]byte, error)) {
	switch snapshot.State {
	case application.StateLoginRedirect:
		h.redirectToLogin(w, r)
		return
	case application.StateLoading:
		return
	case application.StateError:
		metrics.ObserveExport(format, metrics.ResultError, 0)
		http.Error(w, snapshot.Err, http.StatusBadGateway)
		return
	}

	start := time.Now()
	payload, err := build(snapshot.Data)
	if err != nil {
		metrics.ObserveExport(format, metrics.ResultError, time.Since(start))
		h.logger.Error().Err(err).Str("file", filename).Msg("export failed")
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport(format, metrics.ResultSuccess, time.Since(start))

	contentType := export.ContentTypeXLSX
	if format == formatPDF {
		contentType = export.ContentTypePDF
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(payload)
}
