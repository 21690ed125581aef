// Package router is the single entry point from transports into the domain
// modules. It owns the module registry and turns every outcome, including a
// panic inside a module, into a response envelope.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"avenstudio/internal/contract"
	"avenstudio/internal/events"
	"avenstudio/internal/pkg/apperr"
	"avenstudio/internal/store"
)

// Publisher receives change events for successful writes.
type Publisher interface {
	Publish(ev events.Event)
}

type Router struct {
	modules   map[string]contract.Module
	publisher Publisher
	metrics   *metrics
	log       *slog.Logger
}

type Option func(*Router)

func WithPublisher(p Publisher) Option {
	return func(r *Router) { r.publisher = p }
}

// WithRegisterer registers the dispatch metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(r *Router) { r.metrics = newMetrics(reg) }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Router) { r.log = l }
}

// New builds the registry. Registering two modules under one name panics.
func New(modules []contract.Module, opts ...Option) *Router {
	r := &Router{
		modules: make(map[string]contract.Module, len(modules)),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = newMetrics(nil)
	}
	for _, m := range modules {
		if _, dup := r.modules[m.Name()]; dup {
			panic(fmt.Sprintf("router: module %q registered twice", m.Name()))
		}
		r.modules[m.Name()] = m
	}
	return r
}

// Modules lists the registered module names.
func (r *Router) Modules() []string {
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch hands req to its module.
func (r *Router) Dispatch(ctx context.Context, req contract.Request) (resp contract.Response) {
	route := req.Route()
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("router: module panicked",
				"module", route.Module,
				"action", route.Action,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			resp = contract.Response{
				Success: false,
				Error:   fmt.Sprintf("internal error: %v", rec),
				Kind:    apperr.KindInternal,
			}
		}
		r.finish(route, req, resp, time.Since(start))
	}()

	m, ok := r.modules[route.Module]
	if !ok {
		return contract.Fail(apperr.Validation("Unknown module: %s", route.Module))
	}
	return m.Handle(ctx, req)
}

// HandleRequest decodes an untyped request into its typed form and
// dispatches it.
func (r *Router) HandleRequest(ctx context.Context, raw contract.RawRequest) contract.Response {
	m, ok := r.modules[raw.Module]
	if !ok {
		err := apperr.Validation("Unknown module: %s", raw.Module)
		r.log.Warn("router: dispatch failed", "module", raw.Module, "action", raw.Action, "kind", apperr.KindOf(err), "error", err)
		r.metrics.observe(raw.Module, raw.Action, "rejected", 0)
		return contract.Fail(err)
	}
	req, err := r.decode(m, raw)
	if err != nil {
		outcome := "rejected"
		if apperr.KindOf(err) == apperr.KindInternal {
			outcome = string(apperr.KindInternal)
		}
		r.log.Warn("router: decode failed", "module", raw.Module, "action", raw.Action, "kind", apperr.KindOf(err), "error", err)
		r.metrics.observe(raw.Module, raw.Action, outcome, 0)
		return contract.Fail(err)
	}
	return r.Dispatch(ctx, req)
}

// decode runs the module's decoder, turning a panic into an internal error.
func (r *Router) decode(m contract.Module, raw contract.RawRequest) (req contract.Request, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("router: decode panicked",
				"module", raw.Module,
				"action", raw.Action,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			req, err = nil, fmt.Errorf("internal error: %v", rec)
		}
	}()
	return m.Decode(raw)
}

func (r *Router) finish(route contract.Route, req contract.Request, resp contract.Response, elapsed time.Duration) {
	outcome := "success"
	if !resp.Success {
		outcome = string(resp.Kind)
		if outcome == "" {
			outcome = string(apperr.KindInternal)
		}
		r.log.Warn("router: dispatch failed",
			"module", route.Module,
			"action", route.Action,
			"kind", outcome,
			"error", resp.Error,
		)
	}
	r.metrics.observe(route.Module, route.Action, outcome, elapsed)

	if resp.Success && r.publisher != nil && contract.Mutates(req) {
		r.publisher.Publish(events.Event{
			Type:      events.TypeRecordChanged,
			Module:    route.Module,
			Action:    route.Action,
			ProjectID: projectOf(resp.Data),
			Data:      resp.Data,
		})
	}
}

func projectOf(data any) string {
	switch d := data.(type) {
	case store.Record:
		return d.String("project_id")
	case interface{ ProjectRef() string }:
		return d.ProjectRef()
	}
	return ""
}
