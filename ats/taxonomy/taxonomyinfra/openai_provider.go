package taxonomyinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/folioforge/ats/ats/taxonomy"
	"github.com/folioforge/ats/pkg/kernel"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// OpenAIProvider generates taxonomies for professions the static table does
// not know. Temperature 0 and JSON mode keep output shape stable; callers are
// expected to cache results so category membership stays fixed per deployment.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a generative taxonomy provider
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &OpenAIProvider{
		client: &client,
		model:  "gpt-4o-mini",
	}
}

func (p *OpenAIProvider) GetKeywords(ctx context.Context, profession kernel.Profession, level kernel.ExperienceLevel) (*taxonomy.Set, error) {
	systemPrompt := `You are an ATS keyword specialist. Return ONLY valid JSON.`

	userPrompt := fmt.Sprintf(`List the resume keywords an applicant tracking system would expect for the profession %q at %s level, in the following JSON structure:

{
  "technical_skills": string[] (8-12 tools, languages, technologies),
  "soft_skills": string[] (4-6 interpersonal skills),
  "certifications": string[] (1-3 recognized certifications),
  "experience_terms": string[] (4-6 activities or responsibilities),
  "education_requirements": string[] (2-3 typical degrees or fields)
}

IMPORTANT:
- Lowercase short phrases, no sentences
- No phrase may appear in more than one category
- Return ONLY the JSON, no explanatory text`, profession.String(), level.String())

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Model: p.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0), // Deterministic output
		MaxTokens:   openai.Int(800),
	})
	if err != nil {
		return nil, taxonomy.ErrProviderFailed(err).
			WithDetail("profession", profession.String())
	}

	if len(completion.Choices) == 0 {
		return nil, taxonomy.ErrProviderFailed(errors.New("no response from openai"))
	}

	content := stripCodeFences(completion.Choices[0].Message.Content)

	var set taxonomy.Set
	if err := json.Unmarshal([]byte(content), &set); err != nil {
		return nil, taxonomy.ErrProviderFailed(fmt.Errorf("failed to parse taxonomy JSON: %w", err))
	}

	normalized := set.Normalized()
	if err := normalized.Validate(); err != nil {
		return nil, taxonomy.ErrInvalidSet(err).
			WithDetail("profession", profession.String())
	}

	return normalized, nil
}

// stripCodeFences removes markdown code fences some models wrap JSON in
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
