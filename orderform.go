// Package orderform is the top-level entry point for the cascading
// purchase-order form. It re-exports the common types and wires the
// packages under pkg/ together for callers that want one import.
package orderform

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-orderform/pkg/cascade"
	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/remote"
	"github.com/goliatone/go-orderform/pkg/renderers/tui"
	"github.com/goliatone/go-orderform/pkg/web"
)

// Option is the uniform dropdown entry.
type Option = model.Option

// ItemOption is an item entry with its pricing detail.
type ItemOption = model.ItemOption

// FormFields is the submitted purchase order.
type FormFields = model.FormFields

// Endpoints holds the backend list paths.
type Endpoints = remote.Endpoints

// NewClient exposes the backend client constructor from the top-level module.
func NewClient(options ...remote.Option) *remote.Client {
	return remote.New(options...)
}

// NewForm returns a bubbletea form bound to client.
func NewForm(client *remote.Client, options ...cascade.Option) *cascade.Form {
	return cascade.New(cascade.FromClient(client), options...)
}

// NewRouter returns the gin front-end for client. The backend URL defaults to
// the client's base URL.
func NewRouter(client *remote.Client, options ...web.OptionFn) (*gin.Engine, error) {
	opts := append([]web.OptionFn{web.WithBackendURL(client.BaseURL())}, options...)
	return web.NewRouter(client, opts...)
}

// FillPrompt walks the form as terminal prompts and returns the serialized
// order.
func FillPrompt(ctx context.Context, client *remote.Client, options ...tui.Option) ([]byte, error) {
	r, err := tui.New(cascade.FromClient(client), options...)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx)
}
