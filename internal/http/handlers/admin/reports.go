package admin

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/middleware"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/render"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/slug"
)

type ReportsHandler struct {
	*Base
}

type reportsPage struct {
	Kind     kameroapi.ReportKind
	Kinds    []kameroapi.ReportKind
	Period   string
	Periods  []string
	From     string
	To       string
	Card     Card
	Download string
}

// Page shows one report with its series and a CSV download link.
func (h *ReportsHandler) Page(c *gin.Context) {
	api, ok := h.api(c)
	if !ok {
		return
	}
	kind, ok := kameroapi.ParseReportKind(c.Query("kind"))
	if !ok {
		kind = kameroapi.ReportRevenue
	}
	page := reportsPage{
		Kind:    kind,
		Kinds:   kameroapi.ReportKinds,
		Period:  pickPeriod(c.Query("period")),
		Periods: periods,
		From:    c.Query("from"),
		To:      c.Query("to"),
	}

	a, err := api.GetAnalytics(c.Request.Context(), kind, page.Period)
	if err != nil {
		h.fetchFailed(c, err, "Failed to load report")
		return
	}
	page.Card = newCard(a)
	page.Download = "/admin/reports/" + url.PathEscape(string(kind)) + "/download?" + downloadQuery(page.Period, page.From, page.To).Encode()
	render.Page(c, http.StatusOK, "reports", "Reports", page)
}

func downloadQuery(period, from, to string) url.Values {
	q := url.Values{"period": {period}}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	return q
}

// Download streams the backend CSV to the browser as an attachment.
func (h *ReportsHandler) Download(c *gin.Context) {
	api, ok := h.api(c)
	if !ok {
		return
	}
	kind, ok := kameroapi.ParseReportKind(c.Param("kind"))
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Unknown report."))
		return
	}

	dl, err := api.DownloadReport(c.Request.Context(), kind, downloadQuery(pickPeriod(c.Query("period")), c.Query("from"), c.Query("to")))
	if err != nil {
		h.failed(c, "/admin/reports?kind="+url.QueryEscape(string(kind)), apperr.FromAPI(err, "Failed to download report"))
		return
	}
	defer dl.Body.Close()

	c.Header("Content-Type", dl.ContentType)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": slug.Filename(dl.Filename, string(kind)+"-report.csv")}))
	if dl.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(dl.Size, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, dl.Body); err != nil {
		h.Logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "report_stream_aborted",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("kind", string(kind)),
			slog.Any("err", err),
		)
	}
}
