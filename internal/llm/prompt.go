package llm

import (
	"strings"

	"github.com/gastozero/backend/constants"
)

// SystemPrompt establishes the assistant's role for receipt extraction. The
// parser downstream assumes near-deterministic JSON shape, so the instruction
// forbids anything except the JSON object.
const SystemPrompt = "Você é um assistente que interpreta cupons fiscais brasileiros com precisão. " +
	"Responda APENAS com JSON válido, sem markdown e sem explicações."

// MaxPromptItems bounds the classification prompt to the first N item names
// (token-budget bound).
const MaxPromptItems = 10

// BuildExtractionPrompt returns the fixed instruction sent alongside the
// receipt image. The JSON shape is the provider contract; field names are the
// ones the parser and normalizer expect.
func BuildExtractionPrompt() string {
	return `Analise cuidadosamente o cupom fiscal brasileiro na imagem e extraia as seguintes informações.

Retorne APENAS um objeto JSON válido no formato abaixo (sem markdown, sem explicações):

{
  "loja": "Nome completo do estabelecimento",
  "data_compra": "DD/MM/YYYY",
  "itens": [
    {
      "nome": "Nome do produto ou serviço",
      "quantidade": 1,
      "valor_unitario": 0.00,
      "valor_total": 0.00
    }
  ],
  "valor_total": 0.00,
  "forma_pagamento": "Débito/Crédito/Dinheiro/PIX/Outro",
  "categoria": null,
  "texto_bruto": "Todo o texto visível no cupom"
}

INSTRUÇÕES IMPORTANTES:
1. Extraia TODOS os itens/produtos listados no cupom.
2. Valores devem ser números decimais com ponto (exemplo: 12.50).
3. Data no formato brasileiro DD/MM/YYYY.
4. Para quantidade, se não especificado, use 1.
5. Para valor_unitario e valor_total, se forem iguais, repita o valor.
6. Se não conseguir identificar algum campo, use null.
7. Em texto_bruto, transcreva todo o texto visível do cupom.
8. Retorne APENAS o JSON, sem ` + "```json" + `, sem explicações antes ou depois.`
}

// BuildClassificationPrompt lists the purchased item names and asks for
// exactly one category from the fixed enum.
func BuildClassificationPrompt(itemNames []string) string {
	if len(itemNames) > MaxPromptItems {
		itemNames = itemNames[:MaxPromptItems]
	}
	return `Classifique a seguinte lista de itens de compra em UMA das categorias abaixo:

Categorias disponíveis:
- Food (alimentos, bebidas, restaurantes, supermercado)
- Transport (combustível, transporte público, pedágio, estacionamento)
- Utility (contas, serviços, utilidades domésticas)
- Entertainment (lazer, diversão, streaming, jogos, cinema)

Itens comprados: ` + strings.Join(itemNames, ", ") + `

Responda APENAS com o nome da categoria em inglês (` + strings.Join(constants.AsStringSlice(), ", ") + `).
Não adicione explicações.`
}
