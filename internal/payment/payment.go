package payment

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
)

// CommissionRate is the platform share of every Gurudakshina.
const CommissionRate = 0.10

const DefaultAmount = 51.0

var PresetAmounts = []float64{11, 21, 51, 101}

var ErrInvalidAmount = errors.New("amount must be greater than zero")

func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func Commission(amount float64) float64 {
	return amount * CommissionRate
}

// LinkParams describes a UPI intent.
type LinkParams struct {
	PayeeUPI  string
	PayeeName string
	Amount    float64
	Note      string
}

// BuildUPILink renders upi://pay with the full amount and INR currency.
func BuildUPILink(p LinkParams) string {
	var b strings.Builder
	b.WriteString("upi://pay?pa=")
	b.WriteString(p.PayeeUPI)
	b.WriteString("&pn=")
	b.WriteString(EncodeURIComponent(p.PayeeName))
	b.WriteString("&am=")
	b.WriteString(fmt.Sprintf("%.2f", p.Amount))
	b.WriteString("&cu=INR&tn=")
	b.WriteString(EncodeURIComponent(p.Note))
	return b.String()
}

// EncodeURIComponent escapes like the browser function: spaces become %20
// and the marks -_.!~*'() stay literal.
func EncodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	r := strings.NewReplacer("%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")
	return r.Replace(escaped)
}
