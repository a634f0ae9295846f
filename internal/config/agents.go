package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// AgentEnv maps a go-agents AgentConfig's fields to environment variable
// names. Each agent role gets its own set so the vision, text, and arbiter
// models can point at different providers.
type AgentEnv struct {
	ProviderName string
	BaseURL      string
	Token        string
	Deployment   string
	APIVersion   string
	AuthType     string
	ModelName    string
}

var visionAgentEnv = &AgentEnv{
	ProviderName: "DOSSIER_VISION_PROVIDER_NAME",
	BaseURL:      "DOSSIER_VISION_BASE_URL",
	Token:        "DOSSIER_VISION_TOKEN",
	Deployment:   "DOSSIER_VISION_DEPLOYMENT",
	APIVersion:   "DOSSIER_VISION_API_VERSION",
	AuthType:     "DOSSIER_VISION_AUTH_TYPE",
	ModelName:    "DOSSIER_VISION_MODEL_NAME",
}

var textAgentEnv = &AgentEnv{
	ProviderName: "DOSSIER_TEXT_PROVIDER_NAME",
	BaseURL:      "DOSSIER_TEXT_BASE_URL",
	Token:        "DOSSIER_TEXT_TOKEN",
	Deployment:   "DOSSIER_TEXT_DEPLOYMENT",
	APIVersion:   "DOSSIER_TEXT_API_VERSION",
	AuthType:     "DOSSIER_TEXT_AUTH_TYPE",
	ModelName:    "DOSSIER_TEXT_MODEL_NAME",
}

var arbiterAgentEnv = &AgentEnv{
	ProviderName: "DOSSIER_ARBITER_PROVIDER_NAME",
	BaseURL:      "DOSSIER_ARBITER_BASE_URL",
	Token:        "DOSSIER_ARBITER_TOKEN",
	Deployment:   "DOSSIER_ARBITER_DEPLOYMENT",
	APIVersion:   "DOSSIER_ARBITER_API_VERSION",
	AuthType:     "DOSSIER_ARBITER_AUTH_TYPE",
	ModelName:    "DOSSIER_ARBITER_MODEL_NAME",
}

// AgentsConfig holds the model configuration for each classification role.
type AgentsConfig struct {
	Vision  gaconfig.AgentConfig `toml:"vision"`
	Text    gaconfig.AgentConfig `toml:"text"`
	Arbiter gaconfig.AgentConfig `toml:"arbiter"`
}

// Finalize applies the three-phase finalize to every agent role.
func (c *AgentsConfig) Finalize() error {
	if err := FinalizeAgent(&c.Vision, "vision", visionAgentEnv); err != nil {
		return fmt.Errorf("vision: %w", err)
	}
	if err := FinalizeAgent(&c.Text, "text", textAgentEnv); err != nil {
		return fmt.Errorf("text: %w", err)
	}
	if err := FinalizeAgent(&c.Arbiter, "arbiter", arbiterAgentEnv); err != nil {
		return fmt.Errorf("arbiter: %w", err)
	}
	return nil
}

// Merge overlays every agent role's config.
func (c *AgentsConfig) Merge(overlay *AgentsConfig) {
	mergeAgent(&c.Vision, &overlay.Vision)
	mergeAgent(&c.Text, &overlay.Text)
	mergeAgent(&c.Arbiter, &overlay.Arbiter)
}

func mergeAgent(base, overlay *gaconfig.AgentConfig) {
	base.Merge(overlay)
}

// FinalizeAgent applies the three-phase finalize to a go-agents AgentConfig:
// defaults from go-agents DefaultAgentConfig, environment variable
// overrides, and validation. The role names the agent when the config
// leaves it unnamed.
func FinalizeAgent(c *gaconfig.AgentConfig, role string, env *AgentEnv) error {
	loadAgentDefaults(c)
	if c.Name == "" {
		c.Name = role
	}
	if env != nil {
		loadAgentEnv(c, env)
	}
	return validateAgent(c)
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults
}

func loadAgentEnv(c *gaconfig.AgentConfig, env *AgentEnv) {
	if c.Transport == nil {
		c.Transport = gaconfig.DefaultTransportConfig()
	}
	if c.Transport.Provider == nil {
		c.Transport.Provider = gaconfig.DefaultProviderConfig()
	}

	provider := c.Transport.Provider
	if provider.Options == nil {
		provider.Options = make(map[string]any)
	}
	if provider.Model == nil {
		provider.Model = gaconfig.DefaultModelConfig()
	}

	if v := os.Getenv(env.ProviderName); v != "" {
		provider.Name = v
	}
	if v := os.Getenv(env.BaseURL); v != "" {
		provider.BaseURL = v
	}
	if v := os.Getenv(env.ModelName); v != "" {
		provider.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if envVar == "" {
			return
		}
		if v := os.Getenv(envVar); v != "" {
			provider.Options[key] = v
		}
	}

	setOption(env.Token, "token")
	setOption(env.Deployment, "deployment")
	setOption(env.APIVersion, "api_version")
	setOption(env.AuthType, "auth_type")
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Transport == nil || c.Transport.Provider == nil {
		return fmt.Errorf("provider required")
	}
	if c.Transport.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Transport.Provider.Model == nil {
		return fmt.Errorf("model required")
	}
	return nil
}
