package config

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// mockFileSystem pretends the listed paths exist and records .env loads.
type mockFileSystem struct {
	files     map[string]bool
	envLoaded []string
}

func (m *mockFileSystem) Exists(path string) bool { return m.files[path] }

func (m *mockFileSystem) LoadEnv(path string) error {
	m.envLoaded = append(m.envLoaded, path)
	return nil
}

func (m *mockFileSystem) Getwd() (string, error) { return "/app", nil }

func TestResolver_ExplicitPathsWin(t *testing.T) {
	fs := &mockFileSystem{files: map[string]bool{"./config.yml": true}}
	r := &Resolver{FileSystem: fs}

	files := r.ResolveFiles("engine", LoaderConfig{
		ConfigFile: "/etc/engine/config.yml",
		EnvFile:    "/etc/engine/.env",
	})
	if files.ConfigFile != "/etc/engine/config.yml" {
		t.Errorf("ConfigFile = %q, want the explicit path", files.ConfigFile)
	}
	if files.EnvFile != "/etc/engine/.env" {
		t.Errorf("EnvFile = %q, want the explicit path", files.EnvFile)
	}
}

func TestResolver_SearchOrder(t *testing.T) {
	fs := &mockFileSystem{files: map[string]bool{
		"./config/config.yml": true,
		"./config.yml":        true,
		".env":                true,
	}}
	r := &Resolver{FileSystem: fs}

	files := r.ResolveFiles("engine", LoaderConfig{})
	if files.ConfigFile != "./config/config.yml" {
		t.Errorf("ConfigFile = %q, want ./config/config.yml to win over ./config.yml", files.ConfigFile)
	}
	if files.EnvFile != ".env" {
		t.Errorf("EnvFile = %q, want .env", files.EnvFile)
	}
}

func TestResolver_AppEnvPreferred(t *testing.T) {
	fs := &mockFileSystem{files: map[string]bool{
		".env":        true,
		".env.engine": true,
	}}
	r := &Resolver{FileSystem: fs}

	files := r.ResolveFiles("engine", LoaderConfig{})
	if files.EnvFile != ".env.engine" {
		t.Errorf("EnvFile = %q, want the app-specific .env.engine", files.EnvFile)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`
name: demo
environment: staging
logging:
  level: debug
engine:
  workers: 4
  output_capacity: 10
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	var cfg EngineConfig
	if err := LoadConfig("demo", &cfg, WithConfigFile(path)); err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "demo" {
		t.Errorf("Name = %q, want demo", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("Environment = %q, want staging", cfg.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Engine.Workers != 4 || cfg.Engine.OutputCapacity != 10 {
		t.Errorf("Engine = %+v, want workers 4 and output capacity 10", cfg.Engine)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("ENGINE_WORKERS", "6")

	var cfg EngineConfig
	if err := LoadConfig("demo", &cfg, WithFileSystem(&mockFileSystem{})); err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.Workers != 6 {
		t.Errorf("Engine.Workers = %d, want 6 from ENGINE_WORKERS", cfg.Engine.Workers)
	}
}

func TestEngineConfig_ApplyDefaults(t *testing.T) {
	cfg := EngineConfig{Name: "demo"}
	cfg.ApplyDefaults()

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("expected Debug to default to true in development")
	}
	if cfg.Logging.ServiceName != "demo" {
		t.Errorf("Logging.ServiceName = %q, want the app name", cfg.Logging.ServiceName)
	}
	if cfg.Engine.OutputCapacity == 0 {
		t.Error("expected engine defaults to be applied")
	}
}

func TestEngineConfig_Validate(t *testing.T) {
	valid := EngineConfig{Name: "demo"}
	valid.ApplyDefaults()
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	noName := EngineConfig{}
	noName.ApplyDefaults()
	if err := noName.Validate(); err == nil {
		t.Error("expected an error for a missing name")
	}

	badEnv := EngineConfig{Name: "demo", Environment: "prod"}
	badEnv.Logging.ApplyDefaults()
	badEnv.Engine.ApplyDefaults()
	if err := badEnv.Validate(); err == nil {
		t.Error("expected an error for an unknown environment")
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"DEBUG", []string{"debug"}},
		{"ENGINE_WORKERS", []string{"engine_workers", "engine.workers"}},
		{
			"ENGINE_OUTPUT_CAPACITY",
			[]string{
				"engine_output_capacity",
				"engine.output.capacity",
				"engine.output_capacity",
				"engine.output.capacity",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := generateEnvKeyVariants(tt.key)
			gotSet := append([]string(nil), got...)
			wantSet := removeDuplicates(tt.want)
			sort.Strings(gotSet)
			sort.Strings(wantSet)
			if len(gotSet) != len(wantSet) {
				t.Fatalf("variants = %v, want %v", got, wantSet)
			}
			for i := range wantSet {
				if gotSet[i] != wantSet[i] {
					t.Fatalf("variants = %v, want %v", got, wantSet)
				}
			}
		})
	}
}
