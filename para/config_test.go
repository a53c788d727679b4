package para

import (
	"runtime"
	"testing"

	"github.com/parakit/parakit/errors"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.OutputCapacity != DefaultOutputCapacity {
		t.Errorf("OutputCapacity = %d, want %d", cfg.OutputCapacity, DefaultOutputCapacity)
	}
	if cfg.RelayCapacity != DefaultRelayCapacity {
		t.Errorf("RelayCapacity = %d, want %d", cfg.RelayCapacity, DefaultRelayCapacity)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0 (host parallelism)", cfg.Workers)
	}

	cfg = Config{OutputCapacity: 7, RelayCapacity: 3}
	cfg.ApplyDefaults()
	if cfg.OutputCapacity != 7 || cfg.RelayCapacity != 3 {
		t.Errorf("defaults overwrote explicit capacities: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{OutputCapacity: DefaultOutputCapacity, RelayCapacity: DefaultRelayCapacity}, false},
		{"negative workers allowed", Config{Workers: -3, OutputCapacity: 1, RelayCapacity: 1}, false},
		{"zero output capacity", Config{RelayCapacity: 1}, true},
		{"negative output capacity", Config{OutputCapacity: -1, RelayCapacity: 1}, true},
		{"zero relay capacity", Config{OutputCapacity: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewOptions(t *testing.T) {
	o, err := newOptions([]Option{WithWorkers(3), WithOutputCapacity(10)})
	if err != nil {
		t.Fatal(err)
	}
	if o.cfg.Workers != 3 || o.cfg.OutputCapacity != 10 || o.cfg.RelayCapacity != DefaultRelayCapacity {
		t.Errorf("unexpected resolved config: %+v", o.cfg)
	}
	if o.log == nil {
		t.Error("expected a default logger")
	}

	_, err = newOptions([]Option{WithOutputCapacity(-5)})
	if err == nil {
		t.Fatal("expected an error for a negative output capacity")
	}
	if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestResolveWorkerCount(t *testing.T) {
	host := runtime.GOMAXPROCS(0)
	tests := []struct {
		name      string
		requested int
		items     int
		want      int
	}{
		{"fewer workers than items", 2, 8, 2},
		{"more workers than items", 16, 3, 3},
		{"negative clamps to one", -4, 8, 1},
		{"exact fit", 5, 5, 5},
		{"host parallelism capped by items", 0, 2, min(host, 2)},
		{"host parallelism with many items", 0, 100000, host},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveWorkerCount(tt.requested, tt.items); got != tt.want {
				t.Errorf("resolveWorkerCount(%d, %d) = %d, want %d", tt.requested, tt.items, got, tt.want)
			}
		})
	}
}
