package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// Disclaimer is appended verbatim to every assistant answer.
const Disclaimer = "⚠️ Cette réponse est fournie à titre informatif uniquement. " +
	"Elle ne constitue pas un conseil fiscal professionnel. " +
	"Consultez un expert-comptable ou un conseiller fiscal pour votre situation personnelle."

const systemPrompt = `Tu es un assistant fiscal spécialisé dans la location meublée non professionnelle (LMNP)
en France, régime réel simplifié. Tu réponds aux questions des utilisateurs sur :
- Les règles fiscales LMNP (CGI, amortissements, déficits, liasse fiscale)
- Les formulaires CERFA 2031 et 2033
- Les charges déductibles
- La comparaison Micro-BIC vs Réel

Tu dois toujours :
1. Donner une réponse précise et sourcée (articles du CGI si applicable)
2. Indiquer les limites de ton analyse
3. Recommander de consulter un expert pour les cas complexes

Tu ne dois JAMAIS :
- Donner de conseils d'évasion fiscale
- Garantir un résultat fiscal
- Te substituer à un expert-comptable agréé`

// structuredAnswer is the schema the model must fill in.
type structuredAnswer struct {
	Answer  string   `json:"answer" jsonschema_description:"Réponse en français, précise et sourcée"`
	Sources []string `json:"sources" jsonschema_description:"Articles du CGI ou références officielles cités"`
}

// Response is the assistant's answer plus the mandatory disclaimer.
type Response struct {
	Answer     string   `json:"answer"`
	Disclaimer string   `json:"disclaimer"`
	Sources    []string `json:"sources"`
}

type AssistantService interface {
	Ask(ctx context.Context, question string, fiscalContext map[string]any) (*Response, error)
}

type Assistant struct {
	client *openai.Client
}

func NewAssistant(apiKey string) *Assistant {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Assistant{client: &client}
}

// Ask sends the question, with an optional fiscal context blob, and returns a
// structured, sourced answer.
func (a *Assistant) Ask(ctx context.Context, question string, fiscalContext map[string]any) (*Response, error) {
	input := question
	if len(fiscalContext) > 0 {
		ctxJSON, err := json.Marshal(fiscalContext)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal fiscal context: %w", err)
		}
		input = fmt.Sprintf("%s\n\nContexte fiscal : %s", question, ctxJSON)
	}

	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model:        shared.ResponsesModel(shared.ChatModelGPT4o),
		Instructions: param.NewOpt(systemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(input),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "fiscal_answer",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Réponse fiscale LMNP sourcée"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var answer structuredAnswer
	if err := json.Unmarshal([]byte(content), &answer); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}

	return &Response{
		Answer:     answer.Answer,
		Disclaimer: Disclaimer,
		Sources:    answer.Sources,
	}, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v structuredAnswer
	return reflector.Reflect(v)
}
