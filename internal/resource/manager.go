package resource

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-backoffice/internal/apperror"
	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/validate"
	"github.com/jmoiron/sqlx/reflectx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const msgMissingRequired = "please fill in all required fields"

var mapper = reflectx.NewMapperFunc("db", strings.ToLower)

// Manager is the list and detail controller for one table. T is the model
// struct the rows scan into; its db tags must cover id and every field of the
// descriptor.
//
// A Manager is driven from a single goroutine, like the screen it backs.
type Manager[T any] struct {
	desc     *Descriptor
	repo     Repository
	logger   logger.ZapLogger
	now      func() time.Time
	onChange []func(ctx context.Context)

	rows []Summary
	form FormState
}

func NewManager[T any](desc *Descriptor, repo Repository, log logger.ZapLogger) *Manager[T] {
	return &Manager[T]{
		desc:   desc,
		repo:   repo,
		logger: log.With(zap.String("resource", desc.Table)),
		now:    time.Now,
	}
}

// SetClock replaces the clock used for form defaults.
func (m *Manager[T]) SetClock(now func() time.Time) {
	m.now = now
}

// OnChange registers fn to run after every successful save or delete.
func (m *Manager[T]) OnChange(fn func(ctx context.Context)) {
	m.onChange = append(m.onChange, fn)
}

func (m *Manager[T]) Descriptor() *Descriptor { return m.desc }
func (m *Manager[T]) Name() string            { return m.desc.Title }
func (m *Manager[T]) Rows() []Summary         { return m.rows }

func (m *Manager[T]) State() FormState {
	st := m.form
	st.Values = m.form.Values.Clone()
	return st
}

// Refresh reloads the list; it satisfies the menu's view contract.
func (m *Manager[T]) Refresh(ctx context.Context) error {
	_, err := m.List(ctx)
	return err
}

// Reset drops the list and any unsaved edits.
func (m *Manager[T]) Reset() {
	m.rows = nil
	m.form = FormState{Mode: Empty}
}

// Close tears the view down; unsaved edits are discarded.
func (m *Manager[T]) Close() {
	m.Reset()
}

// List re-reads the whole table in the descriptor's order.
func (m *Manager[T]) List(ctx context.Context) ([]Summary, error) {
	var items []T
	if err := m.repo.List(ctx, m.desc, &items); err != nil {
		m.logger.Error("failed to load list", zap.Error(err))
		return nil, apperror.Store(m.op("list"), fmt.Sprintf("failed to load %ss", m.desc.Entity), err)
	}

	summaryFields := m.desc.SummaryFields()
	rows := make([]Summary, 0, len(items))
	for i := range items {
		v := reflect.ValueOf(&items[i]).Elem()
		id := idOf(v)
		values := make([]string, 0, len(summaryFields)+1)
		values = append(values, strconv.FormatInt(id, 10))
		for _, f := range summaryFields {
			values = append(values, display(mapper.FieldByName(v, f.Name)))
		}
		rows = append(rows, Summary{ID: id, Values: values})
	}

	m.rows = rows
	return rows, nil
}

// Select loads the full row and binds the detail form to it.
func (m *Manager[T]) Select(ctx context.Context, id int64) (*T, error) {
	item, err := m.get(ctx, id)
	if err != nil {
		return nil, err
	}
	m.form = FormState{Mode: Viewing, ID: id, Values: m.toForm(item)}
	return item, nil
}

// Load is Select for callers that only need the form state.
func (m *Manager[T]) Load(ctx context.Context, id int64) error {
	_, err := m.Select(ctx, id)
	return err
}

// BeginCreate resets the form to the descriptor's defaults.
func (m *Manager[T]) BeginCreate() Form {
	values := m.desc.Defaults(m.now())
	values[IDKey] = ""
	m.form = FormState{Mode: Editing, Values: values}
	return values.Clone()
}

// Edit changes one form value. Editing a viewed row moves the form to Editing.
func (m *Manager[T]) Edit(field, value string) error {
	if field == IDKey {
		return apperror.Validation(m.op("edit"), "id is read-only")
	}
	if _, ok := m.desc.Field(field); !ok {
		return apperror.Validation(m.op("edit"), fmt.Sprintf("unknown field %q", field))
	}
	if m.form.Mode == Empty {
		return apperror.Validation(m.op("edit"), fmt.Sprintf("select a %s or start a new one first", m.desc.Entity))
	}
	if m.form.Values == nil {
		m.form.Values = Form{}
	}
	m.form.Values[field] = value
	m.form.Mode = Editing
	return nil
}

// SaveCurrent saves the values held by the detail form.
func (m *Manager[T]) SaveCurrent(ctx context.Context) (int64, error) {
	if m.form.Mode == Empty {
		return 0, apperror.Validation(m.op("save"), fmt.Sprintf("select a %s or start a new one first", m.desc.Entity))
	}
	return m.Save(ctx, m.form.Values)
}

// Save validates the form and inserts (empty id) or updates (id present).
// On failure the form keeps the submitted values and stays in Editing.
func (m *Manager[T]) Save(ctx context.Context, form Form) (int64, error) {
	op := m.op("save")
	form = form.Clone()

	id, hasID, err := form.ID()
	if err != nil {
		m.form = FormState{Mode: Editing, Values: form}
		return 0, apperror.Conversion(op, "id", form[IDKey], err)
	}
	m.form = FormState{Mode: Editing, ID: id, Values: form}

	values, err := m.validate(ctx, op, form, id)
	if err != nil {
		return 0, err
	}

	if hasID {
		found, err := m.repo.Update(ctx, m.desc, id, values)
		if err != nil {
			return 0, m.storeError(op, "save", err)
		}
		if !found {
			return 0, apperror.NotFound(op, fmt.Sprintf("%s %d no longer exists", m.desc.Entity, id))
		}
	} else {
		id, err = m.repo.Insert(ctx, m.desc, values)
		if err != nil {
			return 0, m.storeError(op, "save", err)
		}
	}

	m.logger.Info("record saved", zap.Int64("id", id), zap.Bool("update", hasID))
	m.afterWrite(ctx)

	if item, err := m.get(ctx, id); err == nil {
		m.form = FormState{Mode: Viewing, ID: id, Values: m.toForm(item)}
	} else {
		form[IDKey] = strconv.FormatInt(id, 10)
		m.form = FormState{Mode: Viewing, ID: id, Values: form}
	}
	return id, nil
}

// Delete asks confirm and then removes the row by id. A declined
// confirmation returns false and leaves everything untouched. Deleting an id
// that does not exist is not an error.
func (m *Manager[T]) Delete(ctx context.Context, id int64, confirm Confirm) (bool, error) {
	prompt := fmt.Sprintf("Are you sure you want to delete this %s?", m.desc.Entity)
	if confirm == nil || !confirm(prompt) {
		return false, nil
	}

	if err := m.repo.Delete(ctx, m.desc, id); err != nil {
		return false, m.storeError(m.op("delete"), "delete", err)
	}

	m.logger.Info("record deleted", zap.Int64("id", id))
	if m.form.ID == id {
		m.form = FormState{Mode: Empty}
	}
	m.afterWrite(ctx)
	return true, nil
}

// Search returns every row of List, flagging those whose joined display
// values contain term, case-insensitively. An empty term flags nothing.
func (m *Manager[T]) Search(ctx context.Context, term string) ([]Match, error) {
	rows, err := m.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	out := make([]Match, len(rows))
	for i, row := range rows {
		hay := strings.ToLower(strings.Join(row.Values, " "))
		out[i] = Match{Summary: row, Match: needle != "" && strings.Contains(hay, needle)}
	}
	return out, nil
}

func (m *Manager[T]) validate(ctx context.Context, op string, form Form, id int64) ([]interface{}, error) {
	var missing []error
	for _, f := range m.desc.Fields {
		if f.Required && validate.Blank(form[f.Name]) {
			missing = append(missing, fmt.Errorf("%s is required", f.Label))
		}
	}
	if len(missing) > 0 {
		return nil, apperror.Validation(op, msgMissingRequired, missing...)
	}

	for _, f := range m.desc.Fields {
		v := form[f.Name]
		if f.Email && !validate.Email(v) {
			return nil, apperror.Validation(op, "please enter a valid email address")
		}
		if len(f.Options) > 0 && v != "" {
			if err := validate.Var(v, validate.OneOf(f.Options)); err != nil {
				return nil, apperror.Validation(op,
					fmt.Sprintf("%s must be one of %s", f.Label, strings.Join(f.Options, ", ")))
			}
		}
	}

	values := make([]interface{}, 0, len(m.desc.Fields))
	for _, f := range m.desc.Fields {
		v, err := coerce(f, form[f.Name])
		if err != nil {
			return nil, apperror.Conversion(op, strings.ToLower(f.Label), form[f.Name], err)
		}
		if f.NonNegative {
			if err := validate.Var(sign(v), validate.NonNegative); err != nil {
				return nil, apperror.Validation(op, fmt.Sprintf("%s cannot be negative", f.Label))
			}
		}
		values = append(values, v)
	}

	for _, f := range m.desc.Fields {
		if !f.Unique {
			continue
		}
		unique, err := m.repo.IsUnique(ctx, m.desc, f.Name, form[f.Name], id)
		if err != nil {
			return nil, m.storeError(op, "save", err)
		}
		if !unique {
			return nil, apperror.Conflict(op, fmt.Sprintf("%s already exists", f.Label), nil)
		}
	}
	return values, nil
}

func (m *Manager[T]) get(ctx context.Context, id int64) (*T, error) {
	var item T
	found, err := m.repo.Get(ctx, m.desc, id, &item)
	if err != nil {
		m.logger.Error("failed to load record", zap.Int64("id", id), zap.Error(err))
		return nil, apperror.Store(m.op("select"), fmt.Sprintf("failed to load %s", m.desc.Entity), err)
	}
	if !found {
		return nil, apperror.NotFound(m.op("select"), fmt.Sprintf("%s not found", m.desc.Entity))
	}
	return &item, nil
}

func (m *Manager[T]) toForm(item *T) Form {
	v := reflect.ValueOf(item).Elem()
	form := Form{IDKey: strconv.FormatInt(idOf(v), 10)}
	for _, f := range m.desc.Fields {
		form[f.Name] = display(mapper.FieldByName(v, f.Name))
	}
	return form
}

func (m *Manager[T]) afterWrite(ctx context.Context) {
	if _, err := m.List(ctx); err != nil {
		m.logger.Warn("list refresh after write failed", zap.Error(err))
	}
	for _, fn := range m.onChange {
		fn(ctx)
	}
}

func (m *Manager[T]) storeError(op, verb string, err error) error {
	msg := fmt.Sprintf("failed to %s %s", verb, m.desc.Entity)
	if database.IsUniqueViolation(err) {
		return apperror.Conflict(op, msg, err)
	}
	m.logger.Error(msg, zap.Error(err))
	return apperror.Store(op, msg, err)
}

func (m *Manager[T]) op(action string) string {
	return m.desc.Entity + "." + action
}

func coerce(f Field, raw string) (interface{}, error) {
	s := strings.TrimSpace(raw)
	switch f.Kind {
	case Integer:
		if s == "" {
			return int64(0), nil
		}
		return strconv.ParseInt(s, 10, 64)
	case Decimal:
		if s == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(s)
	default:
		return raw, nil
	}
}

// sign maps a coerced numeric value to -1, 0 or 1.
func sign(v interface{}) int {
	switch n := v.(type) {
	case int64:
		switch {
		case n < 0:
			return -1
		case n > 0:
			return 1
		}
	case decimal.Decimal:
		return n.Sign()
	}
	return 0
}

func idOf(v reflect.Value) int64 {
	f := mapper.FieldByName(v, IDKey)
	if !f.IsValid() {
		return 0
	}
	switch f.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return f.Int()
	}
	return 0
}

func display(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	switch x := v.Interface().(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case decimal.Decimal:
		// whole amounts keep one decimal place, as REAL values always printed
		if x.Equal(x.Truncate(0)) {
			return x.StringFixed(1)
		}
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
