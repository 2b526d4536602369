package lookup

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PriceResult is the outcome of a price lookup. Price is meaningful only
// when Status is StatusFound.
type PriceResult struct {
	Status Status
	Price  decimal.Decimal
}

// InventoryResult is the outcome of an inventory lookup. Quantity is
// meaningful only when Status is StatusFound.
type InventoryResult struct {
	Status   Status
	Quantity int
}

// PriceClient queries the pricing service.
type PriceClient struct {
	client *Client
}

// NewPriceClient constructs a client for the pricing service.
func NewPriceClient(cfg Config) *PriceClient {
	return &PriceClient{client: NewClient(cfg)}
}

// FetchPrice looks up the price record for a product. The error return is
// reserved for programming errors (invalid input); absence and peer
// failure are reported through the result status.
func (c *PriceClient) FetchPrice(ctx context.Context, productID int64) (PriceResult, error) {
	if err := validateProductID(productID); err != nil {
		return PriceResult{Status: StatusUnavailable}, err
	}

	q := url.Values{"productId": {strconv.FormatInt(productID, 10)}}
	status, data := c.client.get(ctx, "/com/api/price-service/getProductId", q)
	if status != StatusFound {
		return PriceResult{Status: status}, nil
	}

	var payload struct {
		Price decimal.Decimal `json:"price"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Warn().Err(err).Int64("product_id", productID).Msg("price payload malformed")
		return PriceResult{Status: StatusUnavailable}, nil
	}
	return PriceResult{Status: StatusFound, Price: payload.Price}, nil
}

// InventoryClient queries the inventory service.
type InventoryClient struct {
	client *Client
}

// NewInventoryClient constructs a client for the inventory service.
func NewInventoryClient(cfg Config) *InventoryClient {
	return &InventoryClient{client: NewClient(cfg)}
}

// FetchInventory looks up the inventory record for a product.
func (c *InventoryClient) FetchInventory(ctx context.Context, productID int64) (InventoryResult, error) {
	if err := validateProductID(productID); err != nil {
		return InventoryResult{Status: StatusUnavailable}, err
	}

	q := url.Values{"productId": {strconv.FormatInt(productID, 10)}}
	status, data := c.client.get(ctx, "/com/api/inventory-service/getByProductId", q)
	if status != StatusFound {
		return InventoryResult{Status: status}, nil
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Warn().Err(err).Int64("product_id", productID).Msg("inventory payload malformed")
		return InventoryResult{Status: StatusUnavailable}, nil
	}
	return InventoryResult{Status: StatusFound, Quantity: payload.Quantity}, nil
}

// ProductClient queries the product service. The pricing and inventory
// write paths use it to confirm a product exists before saving a record
// that references it.
type ProductClient struct {
	client *Client
}

// NewProductClient constructs a client for the product service.
func NewProductClient(cfg Config) *ProductClient {
	return &ProductClient{client: NewClient(cfg)}
}

// Exists reports whether the product is known to the product service.
func (c *ProductClient) Exists(ctx context.Context, productID int64) (Status, error) {
	if err := validateProductID(productID); err != nil {
		return StatusUnavailable, err
	}

	q := url.Values{"id": {strconv.FormatInt(productID, 10)}}
	status, _ := c.client.get(ctx, "/com/api/products/getByProductId", q)
	return status, nil
}
