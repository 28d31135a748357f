package receipt

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gastozero/backend/constants"
	"github.com/gastozero/backend/internal/llm"
)

// Unidentified is the default for text fields the model could not extract.
const Unidentified = "Não identificado"

// Normalize coerces a provisional parse into the canonical Receipt. It is a
// total function: absent or invalid fields degrade to documented defaults,
// because partial data is more useful to the end user than a hard failure at
// this stage.
func Normalize(parsed llm.ParsedReceipt, sourceFileName string, logger *slog.Logger) Receipt {
	if logger == nil {
		logger = slog.Default()
	}

	rec := Receipt{
		Store:          Unidentified,
		PaymentMethod:  Unidentified,
		Items:          []LineItem{},
		SourceFileName: sourceFileName,
	}

	if parsed.Loja != nil && strings.TrimSpace(*parsed.Loja) != "" {
		rec.Store = strings.TrimSpace(*parsed.Loja)
	}
	if parsed.DataCompra != nil && strings.TrimSpace(*parsed.DataCompra) != "" {
		date := strings.TrimSpace(*parsed.DataCompra)
		rec.PurchaseDate = &date
	}
	if parsed.FormaPagamento != nil && strings.TrimSpace(*parsed.FormaPagamento) != "" {
		rec.PaymentMethod = strings.TrimSpace(*parsed.FormaPagamento)
	}
	if parsed.TextoBruto != nil {
		rec.RawText = *parsed.TextoBruto
	}

	// Only an exact enum value from the provider is trusted; anything else
	// stays nil and is deferred to the classifier.
	if parsed.Categoria != nil {
		if cat, tier := constants.Canonicalize(*parsed.Categoria); tier == constants.MatchExact {
			rec.Category = &cat
		}
	}

	dropped := 0
	for _, item := range parsed.Itens {
		li, ok := normalizeItem(item)
		if !ok {
			dropped++
			continue
		}
		rec.Items = append(rec.Items, li)
	}
	if dropped > 0 {
		logger.Warn("receipt.normalize.items_dropped", "dropped", dropped, "kept", len(rec.Items))
	}

	// The provider's stated total is authoritative even when it disagrees
	// with the item sum (taxes and discounts are often not itemized).
	if total, ok := coerceDecimal(parsed.ValorTotal); ok {
		rec.TotalAmount = total
	} else {
		sum := decimal.Zero
		for _, li := range rec.Items {
			sum = sum.Add(li.TotalPrice)
		}
		rec.TotalAmount = sum
	}

	return rec
}

// normalizeItem coerces one raw item. An item whose total cannot be made
// numeric is dropped; it never blocks the whole receipt.
func normalizeItem(item llm.ParsedItem) (LineItem, bool) {
	li := LineItem{
		Name:     strings.TrimSpace(item.Nome),
		Quantity: coerceQuantity(item.Quantidade),
	}
	if unit, ok := coerceDecimal(item.ValorUnitario); ok {
		li.UnitPrice = unit
	}

	switch {
	case item.ValorTotal != nil:
		total, ok := coerceDecimal(item.ValorTotal)
		if !ok {
			return LineItem{}, false
		}
		li.TotalPrice = total
	case item.Valor != nil:
		// Older prompt shape: a single per-item value.
		total, ok := coerceDecimal(item.Valor)
		if !ok {
			return LineItem{}, false
		}
		li.TotalPrice = total
	case !li.UnitPrice.IsZero():
		li.TotalPrice = li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
	default:
		return LineItem{}, false
	}
	return li, true
}

// coerceDecimal accepts the numeric shapes the model actually produces:
// JSON numbers, plain numeric strings, and strings with a currency prefix or
// comma decimal separator.
func coerceDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case string:
		s := strings.TrimSpace(t)
		s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
		if s == "" {
			return decimal.Zero, false
		}
		if strings.Contains(s, ",") && !strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ",", ".")
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

// coerceQuantity defaults to 1 and never drops an item on its own.
func coerceQuantity(v any) int {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil && n >= 1 {
			return int(n)
		}
		if f, err := t.Float64(); err == nil && f >= 1 {
			return int(f)
		}
	case float64:
		if t >= 1 {
			return int(t)
		}
	case int:
		if t >= 1 {
			return t
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n >= 1 {
			return n
		}
	}
	return 1
}
