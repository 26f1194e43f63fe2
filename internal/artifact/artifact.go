// Package artifact writes the plain-text files handed to users: the welcome
// note after registration and customer invoices.
package artifact

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/shopspring/decimal"
)

const stampLayout = "20060102150405"

var welcomeTmpl = template.Must(template.New("welcome").Parse(
	`Welcome to Business Management System, {{.Username}}!

Thank you for joining our platform. Here are your account details:
Username: {{.Username}}
Email: {{.Email}}

Getting Started:
1. Log in to your account
2. Explore the dashboard
3. Start managing your business
`))

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
}).Parse(`
INVOICE
=======
Date: {{.IssuedAt.Format "2006-01-02 15:04:05"}}
Invoice #: {{.Number}}

Customer Details:
---------------
Name: {{.CustomerName}}
Email: {{.Email}}
Phone: {{.Phone}}

Recent Purchases:
---------------
{{range .Recent}}{{.Date}}: {{money .Amount}}
{{end}}
Total Amount: {{money .TotalPurchases}}

Thank you for your business!
===========================
`))

type InvoiceLine struct {
	Date   string
	Amount decimal.Decimal
}

type Invoice struct {
	CustomerName   string
	Email          string
	Phone          string
	Recent         []InvoiceLine
	TotalPurchases decimal.Decimal
	IssuedAt       time.Time
}

// Number is the human invoice number, derived from the issue time.
func (i *Invoice) Number() string {
	return "INV-" + i.IssuedAt.Format(stampLayout)
}

type Writer struct {
	Dir string
	Now func() time.Time
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, Now: time.Now}
}

func (w *Writer) Welcome(username, email string) (string, error) {
	var buf bytes.Buffer
	err := welcomeTmpl.Execute(&buf, struct{ Username, Email string }{username, email})
	if err != nil {
		return "", err
	}
	return w.write("welcome_"+safeName(username)+".txt", buf.Bytes())
}

// Invoice renders inv and returns the written path. A zero IssuedAt is
// replaced by the writer's clock.
func (w *Writer) Invoice(inv *Invoice) (string, error) {
	if inv.IssuedAt.IsZero() {
		inv.IssuedAt = w.Now()
	}
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, inv); err != nil {
		return "", err
	}
	name := "invoice_" + safeName(inv.CustomerName) + "_" + inv.IssuedAt.Format(stampLayout) + ".txt"
	return w.write(name, buf.Bytes())
}

func (w *Writer) write(name string, content []byte) (string, error) {
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, s)
}
