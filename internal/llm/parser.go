package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// ParsedItem is one raw line item as decoded from the completion. Numeric
// fields stay loosely typed (json.Number, string, null); coercion is the
// normalizer's job. "valor" is kept for an older prompt shape that carried a
// single per-item value.
type ParsedItem struct {
	Nome          string `json:"nome"`
	Quantidade    any    `json:"quantidade"`
	ValorUnitario any    `json:"valor_unitario"`
	ValorTotal    any    `json:"valor_total"`
	Valor         any    `json:"valor"`
}

// ParsedReceipt is the provisional decode of the completion text. It has not
// been validated against the canonical receipt schema yet.
type ParsedReceipt struct {
	Loja           *string      `json:"loja"`
	DataCompra     *string      `json:"data_compra"`
	Itens          []ParsedItem `json:"itens"`
	ValorTotal     any          `json:"valor_total"`
	FormaPagamento *string      `json:"forma_pagamento"`
	Categoria      *string      `json:"categoria"`
	TextoBruto     *string      `json:"texto_bruto"`
}

// ParseError reports a completion that could not be decoded as JSON. The
// completion is preserved verbatim for prompt-tuning diagnosis, alongside the
// cleaned text the decoder actually saw.
type ParseError struct {
	Detail  string
	RawText string // the completion exactly as the provider returned it
	Cleaned string // after wrapping artifacts were stripped
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid json in model completion: %s", e.Detail)
}

// StripWrapping removes markdown artifacts the provider is known to wrap JSON
// in: leading/trailing backtick fences and a leading "json" language tag. It
// runs unconditionally before decode is attempted.
func StripWrapping(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "`")
	s = strings.TrimSpace(s)
	if rest, ok := trimLanguageTag(s); ok {
		s = strings.TrimSpace(rest)
	}
	return s
}

func trimLanguageTag(s string) (string, bool) {
	for _, tag := range []string{"json", "JSON"} {
		if !strings.HasPrefix(s, tag) {
			continue
		}
		rest := s[len(tag):]
		if rest == "" {
			return "", true
		}
		switch rest[0] {
		case '\n', '\r', ' ', '\t', '{', '[':
			return rest, true
		}
	}
	return s, false
}

// Parse extracts and decodes the completion text from the provider envelope.
// On decode failure it returns a *ParseError carrying the verbatim completion;
// it never panics past this boundary. Schema validation of the decoded
// document is advisory only and logged, since the normalizer degrades
// missing or invalid fields to defaults anyway.
func Parse(extraction ReceiptExtraction, logger *slog.Logger) (ParsedReceipt, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cleaned := StripWrapping(extraction.Content)

	var out ParsedReceipt
	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		logger.Warn("llm.parse.invalid_json", "error", err, "raw_bytes", len(cleaned))
		return ParsedReceipt{}, &ParseError{Detail: err.Error(), RawText: extraction.Content, Cleaned: cleaned}
	}

	if err := ValidateReceiptDocument([]byte(cleaned)); err != nil {
		logger.Warn("llm.parse.schema_mismatch", "error", err)
	}

	return out, nil
}
