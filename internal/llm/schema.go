package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildReceiptJSONSchema returns the JSON-Schema (draft 2020-12 subset) for
// the extraction contract, as a generic map. Validation against it is
// advisory: the normalizer still accepts partial documents.
func BuildReceiptJSONSchema() map[string]any {
	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"nome":           map[string]any{"type": "string"},
			"quantidade":     map[string]any{"type": []string{"integer", "number", "string", "null"}},
			"valor_unitario": map[string]any{"type": []string{"number", "string", "null"}},
			"valor_total":    map[string]any{"type": []string{"number", "string", "null"}},
			"valor":          map[string]any{"type": []string{"number", "string", "null"}},
		},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"loja":            map[string]any{"type": []string{"string", "null"}},
			"data_compra":     map[string]any{"type": []string{"string", "null"}},
			"itens":           map[string]any{"type": "array", "items": item},
			"valor_total":     map[string]any{"type": []string{"number", "string", "null"}},
			"forma_pagamento": map[string]any{"type": []string{"string", "null"}},
			"categoria":       map[string]any{"type": []string{"string", "null"}},
			"texto_bruto":     map[string]any{"type": []string{"string", "null"}},
		},
		"required": []string{"itens"},
	}
}

// ValidateReceiptDocument validates a decoded completion against the
// extraction schema.
func ValidateReceiptDocument(data []byte) error {
	schemaMap := BuildReceiptJSONSchema()
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("receipt.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("receipt.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
