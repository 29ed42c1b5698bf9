package kameroapi

import (
	"encoding/json"
	"fmt"
)

// Page is one slice of a list endpoint. Endpoints disagree on naming, so both
// items/data and total/totalCount are accepted.
type Page[T any] struct {
	Items      []T
	Total      int64
	HasMore    bool
	NextCursor string
}

func (p *Page[T]) UnmarshalJSON(b []byte) error {
	var raw struct {
		Items      []T    `json:"items"`
		Data       []T    `json:"data"`
		Total      *int64 `json:"total"`
		TotalCount *int64 `json:"totalCount"`
		HasMore    bool   `json:"hasMore"`
		NextCursor string `json:"nextCursor"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p.Items = raw.Items
	if p.Items == nil {
		p.Items = raw.Data
	}
	switch {
	case raw.Total != nil:
		p.Total = *raw.Total
	case raw.TotalCount != nil:
		p.Total = *raw.TotalCount
	default:
		p.Total = int64(len(p.Items))
	}
	p.HasMore = raw.HasMore
	p.NextCursor = raw.NextCursor
	return nil
}

// Money is an amount in major units with its ISO currency code.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (m Money) String() string {
	return FormatAmount(m.Amount, m.Currency)
}

// FormatAmount renders an amount for display, e.g. "₹1,250.00".
func FormatAmount(amount float64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := int64(amount)
	frac := int64((amount-float64(whole))*100 + 0.5)
	if frac == 100 {
		whole++
		frac = 0
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, currencySymbol(currency), groupThousands(whole), frac)
}

func currencySymbol(code string) string {
	switch code {
	case "INR":
		return "₹"
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "AED":
		return "AED "
	case "":
		return ""
	default:
		return code + " "
	}
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	pre := len(s) % 3
	if pre > 0 {
		out = append(out, s[:pre]...)
	}
	for i := pre; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
