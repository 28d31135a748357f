package receipt

import (
	"github.com/shopspring/decimal"

	"github.com/gastozero/backend/constants"
)

// LineItem is one purchased product or service within a Receipt. Items are
// owned exclusively by their parent receipt.
type LineItem struct {
	Name       string          `json:"nome"`
	Quantity   int             `json:"quantidade"`
	UnitPrice  decimal.Decimal `json:"valor_unitario"`
	TotalPrice decimal.Decimal `json:"valor_total"`
}

// Receipt is the canonical, normalized record the API returns. JSON field
// names follow the wire contract the clients already consume.
type Receipt struct {
	Store          string               `json:"loja"`
	PurchaseDate   *string              `json:"data_compra"` // free-form, expected DD/MM/YYYY
	Items          []LineItem           `json:"itens"`
	TotalAmount    decimal.Decimal      `json:"valor_total"`
	PaymentMethod  string               `json:"forma_pagamento"`
	Category       *constants.Category  `json:"categoria"`
	RawText        string               `json:"texto_bruto"`
	SourceFileName string               `json:"arquivo"`
}
