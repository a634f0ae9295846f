package config

import (
	"testing"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

func TestFinalizeAgentDefaults(t *testing.T) {
	var cfg gaconfig.AgentConfig
	if err := FinalizeAgent(&cfg, "vision", nil); err != nil {
		t.Fatalf("FinalizeAgent: %v", err)
	}

	if cfg.Transport == nil || cfg.Transport.Provider == nil {
		t.Fatal("finalize must populate the transport provider")
	}
	if cfg.Transport.Provider.Name != "ollama" {
		t.Errorf("provider = %q, want ollama default", cfg.Transport.Provider.Name)
	}
	if cfg.Transport.Provider.Model == nil {
		t.Error("finalize must populate the provider model")
	}
}

func TestFinalizeAgentEnvOverride(t *testing.T) {
	t.Setenv(visionAgentEnv.ProviderName, "azure")
	t.Setenv(visionAgentEnv.BaseURL, "https://models.example.com")
	t.Setenv(visionAgentEnv.ModelName, "gpt-4o")
	t.Setenv(visionAgentEnv.Token, "secret")

	var cfg gaconfig.AgentConfig
	if err := FinalizeAgent(&cfg, "vision", visionAgentEnv); err != nil {
		t.Fatalf("FinalizeAgent: %v", err)
	}

	provider := cfg.Transport.Provider
	if provider.Name != "azure" {
		t.Errorf("provider = %q, want azure", provider.Name)
	}
	if provider.BaseURL != "https://models.example.com" {
		t.Errorf("base url = %q", provider.BaseURL)
	}
	if provider.Model == nil || provider.Model.Name != "gpt-4o" {
		t.Errorf("model = %+v, want gpt-4o", provider.Model)
	}
	if provider.Options["token"] != "secret" {
		t.Errorf("token option = %v", provider.Options["token"])
	}
}

func TestValidateAgent(t *testing.T) {
	tests := []struct {
		name    string
		cfg     gaconfig.AgentConfig
		wantErr bool
	}{
		{
			name:    "missing transport",
			cfg:     gaconfig.AgentConfig{Name: "text"},
			wantErr: true,
		},
		{
			name: "missing provider name",
			cfg: gaconfig.AgentConfig{
				Name: "text",
				Transport: &gaconfig.TransportConfig{
					Provider: &gaconfig.ProviderConfig{Model: gaconfig.DefaultModelConfig()},
				},
			},
			wantErr: true,
		},
		{
			name: "missing model",
			cfg: gaconfig.AgentConfig{
				Name: "text",
				Transport: &gaconfig.TransportConfig{
					Provider: &gaconfig.ProviderConfig{Name: "ollama"},
				},
			},
			wantErr: true,
		},
		{
			name: "complete",
			cfg: gaconfig.AgentConfig{
				Name: "text",
				Transport: &gaconfig.TransportConfig{
					Provider: &gaconfig.ProviderConfig{
						Name:  "ollama",
						Model: gaconfig.DefaultModelConfig(),
					},
				},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAgent(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAgent() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
