package kameroapi

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

type ReportKind string

const (
	ReportRevenue       ReportKind = "revenue"
	ReportSignups       ReportKind = "signups"
	ReportEvents        ReportKind = "events"
	ReportSubscriptions ReportKind = "subscriptions"
)

var ReportKinds = []ReportKind{ReportRevenue, ReportSignups, ReportEvents, ReportSubscriptions}

func ParseReportKind(s string) (ReportKind, bool) {
	for _, k := range ReportKinds {
		if strings.EqualFold(string(k), s) {
			return k, true
		}
	}
	return "", false
}

type Analytics struct {
	Kind     ReportKind    `json:"kind"`
	Period   string        `json:"period"`
	Total    float64       `json:"total"`
	Currency string        `json:"currency,omitempty"`
	Change   *float64      `json:"change,omitempty"`
	Series   []SeriesPoint `json:"series"`
}

type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Download is a streamed report file. Callers must close Body.
type Download struct {
	Body        io.ReadCloser
	Filename    string
	ContentType string
	Size        int64
}

func (a *API) GetAnalytics(ctx context.Context, kind ReportKind, period string) (Analytics, error) {
	var out Analytics
	q := url.Values{}
	if period != "" {
		q.Set("period", period)
	}
	err := a.get(ctx, "reports."+string(kind), "/admin/reports/"+escape(string(kind)), q, &out)
	if out.Kind == "" {
		out.Kind = kind
	}
	return out, err
}

// DownloadReport fetches the CSV for kind without buffering it.
func (a *API) DownloadReport(ctx context.Context, kind ReportKind, q url.Values) (Download, error) {
	resp, err := a.raw(ctx, "reports.download", http.MethodGet, "/admin/reports/"+escape(string(kind))+"/download", q, nil)
	if err != nil {
		return Download{}, err
	}

	d := Download{
		Body:        resp.Body,
		Filename:    fmt.Sprintf("%s-report.csv", kind),
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
	}
	if d.ContentType == "" {
		d.ContentType = "text/csv"
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		d.Filename = params["filename"]
	}
	return d, nil
}
