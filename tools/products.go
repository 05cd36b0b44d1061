package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"shopping-agent/catalog"
	"shopping-agent/logger"
)

// ProductFetcher is the catalog operation the products tool depends on.
type ProductFetcher interface {
	Fetch(ctx context.Context) ([]catalog.Product, error)
}

// ProductsTool exposes the store catalog to the model as get_products.
type ProductsTool struct {
	fetcher ProductFetcher
	log     *logger.Logger
}

// ErrorPayload is what the model receives in place of products when the
// fetch fails.
type ErrorPayload struct {
	Error string       `json:"error"`
	Kind  catalog.Kind `json:"kind,omitempty"`
}

// NewProductsTool creates the products tool.
func NewProductsTool(fetcher ProductFetcher, log *logger.Logger) *ProductsTool {
	return &ProductsTool{
		fetcher: fetcher,
		log:     log.With("component", "products"),
	}
}

func (p *ProductsTool) Name() string {
	return "get_products"
}

func (p *ProductsTool) Description() string {
	return "Fetches the store's product list with title, price, discount, category, isNew and description for each product."
}

func (p *ProductsTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
		"required":   []string{},
	}
}

// Execute ignores args. Fetch failures are returned as an ErrorPayload
// document with a nil error so the model can explain them to the user.
func (p *ProductsTool) Execute(ctx context.Context, _ map[string]any) (string, error) {
	out, err := json.Marshal(p.Result(ctx))
	if err != nil {
		return "", fmt.Errorf("marshaling products: %w", err)
	}
	return string(out), nil
}

// Result fetches the catalog and flattens the outcome into a single value:
// []catalog.Product on success, ErrorPayload on failure.
func (p *ProductsTool) Result(ctx context.Context) any {
	products, err := p.fetcher.Fetch(ctx)
	if err != nil {
		p.log.Warn("fetching products failed", "kind", catalog.KindOf(err), "error", err)
		return ErrorPayload{Error: err.Error(), Kind: catalog.KindOf(err)}
	}
	p.log.Debug("fetched products", "count", len(products))
	return products
}
