package translate

// CompatibleProvider targets any OpenAI-compatible API. It always speaks
// Chat Completions, the endpoint such servers actually implement.
type CompatibleProvider struct {
	*OpenAIProvider
}

// NewCompatibleProvider creates a provider for an OpenAI-compatible server.
func NewCompatibleProvider(apiKey, baseURL, model string) (*CompatibleProvider, error) {
	inner, err := NewOpenAIProvider(apiKey, baseURL, model, endpointChat)
	if err != nil {
		return nil, err
	}
	return &CompatibleProvider{OpenAIProvider: inner}, nil
}

// Name returns the provider identifier.
func (p *CompatibleProvider) Name() string {
	return ProviderCompatible
}
