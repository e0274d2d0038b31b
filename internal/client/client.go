// Package client talks to a catalog server over HTTP and satisfies the same
// catalog.Catalog contract as the in-process store.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"api_catalog/internal/catalog"

	"resty.dev/v3"
)

var _ catalog.Catalog = (*Client)(nil)

// errorBody is the JSON error envelope written by the api package.
type errorBody struct {
	Error     string `json:"error"`
	Field     string `json:"field"`
	Detail    string `json:"detail"`
	ProductID string `json:"product_id"`
}

type listBody struct {
	Results  []catalog.Product `json:"results"`
	Metadata catalog.Summary   `json:"metadata"`
}

// Client is a remote catalog.
type Client struct {
	rc *resty.Client
}

// Option customizes a Client.
type Option func(*resty.Client)

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(rc *resty.Client) { rc.SetTimeout(d) }
}

// WithTransport sends requests through rt.
func WithTransport(rt http.RoundTripper) Option {
	return func(rc *resty.Client) { rc.SetTransport(rt) }
}

// New returns a Client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{rc: rc}
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.rc.Close()
}

// List fetches every product in insertion order.
func (c *Client) List(ctx context.Context) ([]catalog.Product, error) {
	products, _, err := c.ListWithSummary(ctx)
	return products, err
}

// ListWithSummary fetches every product together with the server's summary.
func (c *Client) ListWithSummary(ctx context.Context) ([]catalog.Product, catalog.Summary, error) {
	var out listBody
	res, err := c.rc.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&errorBody{}).
		Get("/products")
	if err != nil {
		return nil, catalog.Summary{}, fmt.Errorf("list products: %w", err)
	}
	if err := responseError(res, ""); err != nil {
		return nil, catalog.Summary{}, err
	}
	if out.Results == nil {
		out.Results = []catalog.Product{}
	}
	return out.Results, out.Metadata, nil
}

// Get fetches a single product.
func (c *Client) Get(ctx context.Context, id string) (catalog.Product, error) {
	var out catalog.Product
	res, err := c.rc.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&out).
		SetError(&errorBody{}).
		Get("/products/{id}")
	if err != nil {
		return catalog.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	if err := responseError(res, id); err != nil {
		return catalog.Product{}, err
	}
	return out, nil
}

// Create posts a new product.
func (c *Client) Create(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
	var out catalog.Product
	res, err := c.rc.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&out).
		SetError(&errorBody{}).
		Post("/products")
	if err != nil {
		return catalog.Product{}, fmt.Errorf("create product: %w", err)
	}
	if err := responseError(res, ""); err != nil {
		return catalog.Product{}, err
	}
	return out, nil
}

// Update patches the product with the given id.
func (c *Client) Update(ctx context.Context, id string, patch catalog.ProductPatch) (catalog.Product, error) {
	var out catalog.Product
	res, err := c.rc.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(patch).
		SetResult(&out).
		SetError(&errorBody{}).
		Patch("/products/{id}")
	if err != nil {
		return catalog.Product{}, fmt.Errorf("update product %s: %w", id, err)
	}
	if err := responseError(res, id); err != nil {
		return catalog.Product{}, err
	}
	return out, nil
}

// Reset asks the server to restore its seed data.
func (c *Client) Reset(ctx context.Context) error {
	res, err := c.rc.R().
		SetContext(ctx).
		SetError(&errorBody{}).
		Post("/admin/reset")
	if err != nil {
		return fmt.Errorf("reset catalog: %w", err)
	}
	return responseError(res, "")
}

// responseError turns a non-2xx response into the matching catalog error.
func responseError(res *resty.Response, id string) error {
	if !res.IsError() {
		return nil
	}

	body, _ := res.Error().(*errorBody)
	if body == nil {
		body = &errorBody{}
	}

	switch res.StatusCode() {
	case http.StatusNotFound:
		if body.ProductID != "" {
			id = body.ProductID
		}
		return &catalog.NotFoundError{ID: id}
	case http.StatusConflict:
		return &catalog.ConflictError{ID: body.ProductID}
	case http.StatusBadRequest:
		msg := body.Detail
		if msg == "" {
			msg = body.Error
		}
		return &catalog.ValidationError{Field: body.Field, Message: msg}
	default:
		return fmt.Errorf("catalog server returned %s: %s", res.Status(), body.Error)
	}
}
