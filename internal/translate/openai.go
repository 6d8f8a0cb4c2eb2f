package translate

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

// API endpoints an OpenAI provider can speak.
const (
	endpointResponses = "responses"
	endpointChat      = "chat/completions"
)

// OpenAIProvider implements Provider for the OpenAI API.
type OpenAIProvider struct {
	client   openai.Client
	model    string
	endpoint string
}

// NewOpenAIProvider creates a new OpenAI provider. endpoint selects between
// the Responses API (the default) and Chat Completions.
func NewOpenAIProvider(apiKey, baseURL, model, endpoint string) (*OpenAIProvider, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	if endpoint == "" {
		endpoint = endpointResponses
	}

	client := openai.NewClient(opts...)
	return &OpenAIProvider{
		client:   client,
		model:    model,
		endpoint: endpoint,
	}, nil
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// Test sends a test message and returns the response.
func (p *OpenAIProvider) Test(ctx context.Context) (string, error) {
	return p.complete(ctx, "", "Hello world")
}

// Translate renders text into the target language.
func (p *OpenAIProvider) Translate(ctx context.Context, text, targetLang string) (string, error) {
	result, err := p.complete(ctx, TranslationPrompt(targetLang), text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

func (p *OpenAIProvider) complete(ctx context.Context, systemPrompt, content string) (string, error) {
	if p.endpoint == endpointResponses {
		return p.completeWithResponses(ctx, systemPrompt, content)
	}
	return p.completeWithChat(ctx, systemPrompt, content)
}

// completeWithResponses uses the Responses API.
func (p *OpenAIProvider) completeWithResponses(ctx context.Context, systemPrompt, content string) (string, error) {
	inputItems := []responses.ResponseInputItemUnionParam{}
	if systemPrompt != "" {
		inputItems = append(inputItems, responses.ResponseInputItemParamOfMessage(systemPrompt, responses.EasyInputMessageRoleSystem))
	}
	inputItems = append(inputItems, responses.ResponseInputItemParamOfMessage(content, responses.EasyInputMessageRoleUser))

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(p.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam(inputItems),
		},
	}

	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return "", err
	}

	if len(resp.Output) == 0 {
		return "", nil
	}

	// Concatenate the text of all message output items
	var result strings.Builder
	for _, item := range resp.Output {
		if item.Type == "message" {
			msg := item.AsMessage()
			for _, content := range msg.Content {
				if content.Type == "output_text" {
					result.WriteString(content.Text)
				}
			}
		}
	}

	return result.String(), nil
}

// completeWithChat uses the Chat Completions API.
func (p *OpenAIProvider) completeWithChat(ctx context.Context, systemPrompt, content string) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(content))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: messages,
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
