package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-backoffice/internal/apperror"
	"github.com/fekuna/omnipos-backoffice/internal/artifact"
	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const recentSalesLimit = 5

// InvoiceWriter renders an invoice and returns where it was written.
type InvoiceWriter interface {
	Invoice(inv *artifact.Invoice) (string, error)
}

// Invoicer writes a plain-text invoice for one customer, listing the most
// recent sales recorded under the customer's name.
type Invoicer struct {
	db     database.Handle
	writer InvoiceWriter
	logger logger.ZapLogger
}

func NewInvoicer(db database.Handle, writer InvoiceWriter, log logger.ZapLogger) *Invoicer {
	return &Invoicer{db: db, writer: writer, logger: log}
}

// Generate returns the path of the written invoice.
func (i *Invoicer) Generate(ctx context.Context, id int64) (string, error) {
	const op = "customer.invoice"

	var c model.Customer
	err := i.db.GetContext(ctx, &c, `
		SELECT id, name, email, COALESCE(phone, '') AS phone, COALESCE(address, '') AS address,
			COALESCE(notes, '') AS notes, COALESCE(total_purchases, 0) AS total_purchases
		FROM customers WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperror.NotFound(op, "customer not found")
		}
		i.logger.Error("failed to load customer", zap.Int64("id", id), zap.Error(err))
		return "", apperror.Store(op, "failed to generate invoice", err)
	}

	var recent []artifact.InvoiceLine
	err = i.db.SelectContext(ctx, &recent, `
		SELECT date, total_amount AS amount FROM sales
		WHERE customer_name = ?
		ORDER BY date DESC LIMIT ?`, c.Name, recentSalesLimit)
	if err != nil {
		i.logger.Error("failed to load recent sales", zap.Int64("id", id), zap.Error(err))
		return "", apperror.Store(op, "failed to generate invoice", err)
	}

	path, err := i.writer.Invoice(&artifact.Invoice{
		CustomerName:   c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Recent:         recent,
		TotalPurchases: decimal.NewFromInt(c.TotalPurchases),
	})
	if err != nil {
		i.logger.Error("failed to write invoice", zap.Int64("id", id), zap.Error(err))
		return "", apperror.Store(op, fmt.Sprintf("failed to write invoice for %s", c.Name), err)
	}

	i.logger.Info("invoice generated", zap.Int64("customer_id", id), zap.String("path", path))
	return path, nil
}
