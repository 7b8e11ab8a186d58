// Package domain defines the wire-level entities shared by the API client,
// the cart, and the stub backend, plus the validator they all use to check
// decoded payloads.
package domain

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// The backend speaks bare JSON numbers for monetary fields.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// StockItem is a sellable inventory record with price and on-hand quantity.
type StockItem struct {
	ID       int64           `json:"id"       validate:"required,gt=0"`
	Name     string          `json:"name"     validate:"required"`
	Quantity int64           `json:"quantity" validate:"gte=0"`
	Price    decimal.Decimal `json:"price"    validate:"gte=0"`
}

// StockItemRequest is the request body for creating or updating a stock item.
type StockItemRequest struct {
	Name     string          `json:"name"     validate:"required,max=100"`
	Quantity int64           `json:"quantity" validate:"gte=0"`
	Price    decimal.Decimal `json:"price"    validate:"gte=0"`
}

// Client is a customer directory entry. Contact follows the
// (DD) DDDDD-DDDD phone mask.
type Client struct {
	ID      int64  `json:"id"      validate:"required,gt=0"`
	Name    string `json:"name"    validate:"required"`
	Contact string `json:"contact" validate:"required,brphone"`
	Address string `json:"address" validate:"required"`
}

// ClientRequest is the request body for creating or updating a client.
type ClientRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Contact string `json:"contact" validate:"required,brphone"`
	Address string `json:"address" validate:"required"`
}

// Sale is an immutable record of a completed transaction. The backend embeds
// denormalized client and product snapshots taken at creation time; either
// may be absent on older records.
type Sale struct {
	ID          int64           `json:"id"          validate:"required,gt=0"`
	ProductName string          `json:"productName" validate:"required"`
	Quantity    int64           `json:"quantity"    validate:"gte=1"`
	TotalPrice  decimal.Decimal `json:"totalPrice"  validate:"gte=0"`
	Client      *Client         `json:"Client,omitempty"`
	Product     *StockItem      `json:"Product,omitempty"`
}

// SaleRequest is the request body for recording a sale.
type SaleRequest struct {
	ProductName string          `json:"productName"        validate:"required"`
	Quantity    int64           `json:"quantity"           validate:"gte=1"`
	TotalPrice  decimal.Decimal `json:"totalPrice"         validate:"gte=0"`
	ClientID    *int64          `json:"clientId,omitempty" validate:"omitempty,gt=0"`
}

var brPhoneRe = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)

// NewValidator builds a validator that understands decimal.Decimal fields and
// the brphone rule used for client contacts.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("brphone", func(fl validator.FieldLevel) bool {
		return brPhoneRe.MatchString(fl.Field().String())
	})
	return v
}
