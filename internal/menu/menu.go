// Package menu owns navigation between the back-office screens. Screens are
// only reachable while a session is active, and exactly one is open at a time.
package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-backoffice/internal/apperror"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/session"
	"go.uber.org/zap"
)

type Destination uint8

const (
	Dashboard Destination = iota
	Products
	Sales
	Customers
	Employees
	Suppliers
	Finance
)

var Destinations = []Destination{Dashboard, Products, Sales, Customers, Employees, Suppliers, Finance}

func (d Destination) String() string {
	switch d {
	case Dashboard:
		return "Dashboard"
	case Products:
		return "Products"
	case Sales:
		return "Sales"
	case Customers:
		return "Customers"
	case Employees:
		return "Employees"
	case Suppliers:
		return "Suppliers"
	case Finance:
		return "Finance"
	default:
		return fmt.Sprintf("Destination(%d)", uint8(d))
	}
}

// ParseDestination accepts a destination name in any case.
func ParseDestination(s string) (Destination, bool) {
	for _, d := range Destinations {
		if strings.EqualFold(d.String(), strings.TrimSpace(s)) {
			return d, true
		}
	}
	return 0, false
}

// Refresher reloads data from the store.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// View is a screen the menu can open. Close discards unsaved state.
type View interface {
	Refresher
	Close()
}

type entry struct {
	view   View
	panels []Refresher
}

type Menu struct {
	session *session.Session
	entries map[Destination]entry
	logger  logger.ZapLogger

	active    Destination
	hasActive bool
}

// New builds a menu bound to sess. Ending the session closes the open view.
func New(sess *session.Session, log logger.ZapLogger) *Menu {
	m := &Menu{
		session: sess,
		entries: make(map[Destination]entry),
		logger:  log,
	}
	sess.OnEnd(m.Close)
	return m
}

// Register binds dest to view. Panels are refreshed together with the view.
func (m *Menu) Register(dest Destination, view View, panels ...Refresher) {
	m.entries[dest] = entry{view: view, panels: panels}
}

// Open closes the current view and opens dest with fresh data.
func (m *Menu) Open(ctx context.Context, dest Destination) (View, error) {
	const op = "menu.open"

	if !m.session.Active() {
		return nil, apperror.Auth(op, "please log in first")
	}
	e, ok := m.entries[dest]
	if !ok {
		return nil, apperror.NotFound(op, fmt.Sprintf("%s is not available", dest))
	}

	m.Close()
	m.active, m.hasActive = dest, true

	if err := e.view.Refresh(ctx); err != nil {
		m.logger.Warn("failed to load view", zap.Stringer("destination", dest), zap.Error(err))
		return e.view, err
	}
	for _, p := range e.panels {
		if err := p.Refresh(ctx); err != nil {
			m.logger.Warn("failed to load panel", zap.Stringer("destination", dest), zap.Error(err))
			return e.view, err
		}
	}

	m.logger.Debug("view opened", zap.Stringer("destination", dest), zap.String("session_id", m.session.ID()))
	return e.view, nil
}

// Active returns the open destination, if any.
func (m *Menu) Active() (Destination, View, bool) {
	if !m.hasActive {
		return 0, nil, false
	}
	return m.active, m.entries[m.active].view, true
}

// Close tears down the open view. It is a no-op when nothing is open.
func (m *Menu) Close() {
	if !m.hasActive {
		return
	}
	if e, ok := m.entries[m.active]; ok {
		e.view.Close()
	}
	m.logger.Debug("view closed", zap.Stringer("destination", m.active))
	m.hasActive = false
}
