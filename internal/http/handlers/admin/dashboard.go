package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/render"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
)

// Periods the analytics endpoints understand.
var periods = []string{"7d", "30d", "90d", "12m"}

const defaultPeriod = "30d"

// AnalyticsSource is the report reader the overview and reports pages use.
type AnalyticsSource interface {
	GetAnalytics(ctx context.Context, kind kameroapi.ReportKind, period string) (kameroapi.Analytics, error)
}

type Card struct {
	Kind      kameroapi.ReportKind
	Title     string
	Value     string
	Change    string
	ChangeUp  bool
	Series    []kameroapi.SeriesPoint
	Error     string
	Available bool
}

type overviewPage struct {
	Period  string
	Periods []string
	Cards   []Card
}

type DashboardHandler struct {
	*Base
}

// Overview fetches every analytics card concurrently. A card whose fetch
// fails shows its error; the others still render.
func (h *DashboardHandler) Overview(c *gin.Context) {
	api, ok := h.api(c)
	if !ok {
		return
	}
	period := pickPeriod(c.Query("period"))
	render.Page(c, http.StatusOK, "overview", "Overview", overviewPage{
		Period:  period,
		Periods: periods,
		Cards:   loadCards(c.Request.Context(), api, period),
	})
}

func loadCards(ctx context.Context, src AnalyticsSource, period string) []Card {
	cards := make([]Card, len(kameroapi.ReportKinds))
	var g errgroup.Group
	g.SetLimit(4)
	for i, kind := range kameroapi.ReportKinds {
		g.Go(func() error {
			a, err := src.GetAnalytics(ctx, kind, period)
			if err != nil {
				cards[i] = Card{Kind: kind, Title: cardTitle(kind), Error: apperr.PublicMessage(apperr.FromAPI(err, "Could not load "+string(kind)+"."))}
				return nil
			}
			cards[i] = newCard(a)
			return nil
		})
	}
	_ = g.Wait()
	return cards
}

func newCard(a kameroapi.Analytics) Card {
	c := Card{Kind: a.Kind, Title: cardTitle(a.Kind), Series: a.Series, Available: true}
	if a.Currency != "" {
		c.Value = kameroapi.FormatAmount(a.Total, a.Currency)
	} else {
		c.Value = kameroapi.FormatAmount(a.Total, "")
		c.Value = strings.TrimSuffix(c.Value, ".00")
	}
	if a.Change != nil {
		c.ChangeUp = *a.Change >= 0
		sign := ""
		if c.ChangeUp {
			sign = "+"
		}
		c.Change = sign + strings.TrimSuffix(kameroapi.FormatAmount(*a.Change, ""), ".00") + "%"
	}
	return c
}

func cardTitle(k kameroapi.ReportKind) string {
	s := string(k)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func pickPeriod(p string) string {
	for _, v := range periods {
		if v == p {
			return p
		}
	}
	return defaultPeriod
}
