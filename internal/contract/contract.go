// Package contract holds the types shared by the request router, the domain
// modules and the transports: typed requests, the response envelope and the
// Module interface every domain module implements.
package contract

import (
	"context"
	"encoding/json"

	"avenstudio/internal/pkg/apperr"
)

// Route names a (module, action) pair.
type Route struct {
	Module string `json:"module"`
	Action string `json:"action"`
}

func (r Route) String() string { return r.Module + "." + r.Action }

// Request is implemented by one struct per (module, action) pair.
type Request interface {
	Route() Route
}

// Write is embedded by requests that change stored state.
type Write struct{}

func (Write) Mutates() bool { return true }

// Mutates reports whether req changes stored state.
func Mutates(req Request) bool {
	m, ok := req.(interface{ Mutates() bool })
	return ok && m.Mutates()
}

// RawRequest is the untyped dispatch shape accepted by the generic dispatch
// endpoint and the CLI.
type RawRequest struct {
	Module  string          `json:"module"`
	Action  string          `json:"action"`
	ID      string          `json:"id,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Filters map[string]any  `json:"filters,omitempty"`
}

// Response is the uniform envelope returned by every module action.
type Response struct {
	Success bool        `json:"success"`
	Data    any         `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    apperr.Kind `json:"-"`
}

func OK(data any) Response {
	return Response{Success: true, Data: data}
}

func Fail(err error) Response {
	return Response{Success: false, Error: err.Error(), Kind: apperr.KindOf(err)}
}

// Module is one domain module. Handle must not panic on bad input; Decode
// turns a raw request into the module's typed request for its action.
type Module interface {
	Name() string
	Handle(ctx context.Context, req Request) Response
	Decode(raw RawRequest) (Request, error)
}

// Dispatcher routes a typed request to its module.
type Dispatcher interface {
	Dispatch(ctx context.Context, req Request) Response
}
