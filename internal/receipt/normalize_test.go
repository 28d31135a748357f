package receipt

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastozero/backend/constants"
	"github.com/gastozero/backend/internal/llm"
)

func strPtr(s string) *string { return &s }

func TestNormalizeDefaults(t *testing.T) {
	rec := Normalize(llm.ParsedReceipt{}, "1_20250315_101500_cupom.jpg", nil)

	assert.Equal(t, Unidentified, rec.Store)
	assert.Equal(t, Unidentified, rec.PaymentMethod)
	assert.Nil(t, rec.PurchaseDate)
	assert.Nil(t, rec.Category)
	assert.Empty(t, rec.RawText)
	assert.Empty(t, rec.Items)
	assert.True(t, rec.TotalAmount.IsZero())
	assert.Equal(t, "1_20250315_101500_cupom.jpg", rec.SourceFileName)
}

func TestNormalizeProviderTotalWins(t *testing.T) {
	parsed := llm.ParsedReceipt{
		Itens: []llm.ParsedItem{
			{Nome: "A", ValorTotal: json.Number("30")},
			{Nome: "B", ValorTotal: json.Number("50")},
		},
		ValorTotal: json.Number("100"),
	}

	rec := Normalize(parsed, "f.jpg", nil)
	assert.True(t, rec.TotalAmount.Equal(decimal.NewFromInt(100)),
		"stated total must win over the item sum, got %s", rec.TotalAmount)
}

func TestNormalizeTotalFallsBackToItemSum(t *testing.T) {
	parsed := llm.ParsedReceipt{
		Itens: []llm.ParsedItem{
			{Nome: "A", ValorTotal: json.Number("30")},
			{Nome: "B", ValorTotal: json.Number("20")},
		},
	}

	rec := Normalize(parsed, "f.jpg", nil)
	assert.True(t, rec.TotalAmount.Equal(decimal.NewFromInt(50)))
}

func TestNormalizeDropsUncoercibleItems(t *testing.T) {
	parsed := llm.ParsedReceipt{
		Itens: []llm.ParsedItem{
			{Nome: "Válido", ValorTotal: json.Number("10.0")},
			{Nome: "Inválido", ValorTotal: "n/a"},
		},
	}

	rec := Normalize(parsed, "f.jpg", nil)
	require.Len(t, rec.Items, 1)
	assert.Equal(t, "Válido", rec.Items[0].Name)
	assert.True(t, rec.TotalAmount.Equal(decimal.NewFromInt(10)))
}

func TestNormalizeItemFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		item      llm.ParsedItem
		wantTotal string
		wantKept  bool
	}{
		{
			name:      "valor_total present",
			item:      llm.ParsedItem{Nome: "A", ValorTotal: json.Number("12.5")},
			wantTotal: "12.5",
			wantKept:  true,
		},
		{
			name:      "legacy valor field",
			item:      llm.ParsedItem{Nome: "B", Valor: json.Number("7.25")},
			wantTotal: "7.25",
			wantKept:  true,
		},
		{
			name:      "unit price times quantity",
			item:      llm.ParsedItem{Nome: "C", Quantidade: json.Number("3"), ValorUnitario: json.Number("2.00")},
			wantTotal: "6",
			wantKept:  true,
		},
		{
			name:     "no numeric value at all",
			item:     llm.ParsedItem{Nome: "D"},
			wantKept: false,
		},
		{
			name:      "currency string with comma",
			item:      llm.ParsedItem{Nome: "E", ValorTotal: "R$ 10,50"},
			wantTotal: "10.5",
			wantKept:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(llm.ParsedReceipt{Itens: []llm.ParsedItem{tt.item}}, "f.jpg", nil)
			if !tt.wantKept {
				assert.Empty(t, rec.Items)
				return
			}
			require.Len(t, rec.Items, 1)
			want, err := decimal.NewFromString(tt.wantTotal)
			require.NoError(t, err)
			assert.True(t, rec.Items[0].TotalPrice.Equal(want),
				"want %s, got %s", want, rec.Items[0].TotalPrice)
		})
	}
}

func TestNormalizeQuantityDefaults(t *testing.T) {
	parsed := llm.ParsedReceipt{
		Itens: []llm.ParsedItem{
			{Nome: "A", Quantidade: json.Number("0"), ValorTotal: json.Number("5")},
			{Nome: "B", Quantidade: "abc", ValorTotal: json.Number("5")},
			{Nome: "C", ValorTotal: json.Number("5")},
		},
	}
	rec := Normalize(parsed, "f.jpg", nil)
	require.Len(t, rec.Items, 3)
	for _, li := range rec.Items {
		assert.Equal(t, 1, li.Quantity)
	}
}

func TestNormalizeCategoryTrust(t *testing.T) {
	tests := []struct {
		name      string
		categoria *string
		want      *constants.Category
	}{
		{"exact enum value kept", strPtr("Food"), catPtr(constants.Food)},
		{"trailing period still exact", strPtr("Transport."), catPtr(constants.Transport)},
		{"chatty answer deferred to classifier", strPtr("I think this is Food"), nil},
		{"unknown value deferred", strPtr("Groceries"), nil},
		{"absent stays nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(llm.ParsedReceipt{Categoria: tt.categoria}, "f.jpg", nil)
			if tt.want == nil {
				assert.Nil(t, rec.Category)
				return
			}
			require.NotNil(t, rec.Category)
			assert.Equal(t, *tt.want, *rec.Category)
		})
	}
}

func TestNormalizeTrimsTextFields(t *testing.T) {
	parsed := llm.ParsedReceipt{
		Loja:           strPtr("  Mercado Central  "),
		DataCompra:     strPtr(" 15/03/2025 "),
		FormaPagamento: strPtr("  Pix "),
		TextoBruto:     strPtr("MERCADO CENTRAL\nCUPOM FISCAL"),
	}
	rec := Normalize(parsed, "f.jpg", nil)
	assert.Equal(t, "Mercado Central", rec.Store)
	require.NotNil(t, rec.PurchaseDate)
	assert.Equal(t, "15/03/2025", *rec.PurchaseDate)
	assert.Equal(t, "Pix", rec.PaymentMethod)
	assert.Equal(t, "MERCADO CENTRAL\nCUPOM FISCAL", rec.RawText)
}

func TestNormalizeBlankStringsFallToDefaults(t *testing.T) {
	parsed := llm.ParsedReceipt{
		Loja:       strPtr("   "),
		DataCompra: strPtr(""),
	}
	rec := Normalize(parsed, "f.jpg", nil)
	assert.Equal(t, Unidentified, rec.Store)
	assert.Nil(t, rec.PurchaseDate)
}

func catPtr(c constants.Category) *constants.Category { return &c }
