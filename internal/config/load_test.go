// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

const yamlConfig = `
controller:
  transport:
    kind: modbus-tcp
    endpoint: "10.0.0.7:502"
    unit_id: 1
    register: 40
  mirror:
    unit_id: 2
    base_register: 100
  chips:
    - id: preamp-a
      address: 1
      configure:
        zero_window: 2
        clock_divider: 3
        soft_step_clock: internal
      gain:
        left: 2
        right: 2
        link: true
      volume:
        left: 120
        right: 120
        soft_step: true
logging:
  level: debug
`

const tomlConfig = `
[controller.transport]
kind = "serial"
endpoint = "/dev/ttyUSB0"
baud_rate = 57600

[[controller.chips]]
id = "preamp-b"
address = 3
variant = "legacy"

[controller.chips.volume]
left = 64
right = 80
muted = true
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoad_YAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "muses.yaml", yamlConfig))
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}

	if cfg.Controller.Transport.Register != 40 {
		t.Fatalf("register=%d", cfg.Controller.Transport.Register)
	}
	if cfg.Controller.Mirror == nil || cfg.Controller.Mirror.BaseRegister != 100 {
		t.Fatalf("mirror=%+v", cfg.Controller.Mirror)
	}

	c, ok := cfg.Chip("preamp-a")
	if !ok {
		t.Fatalf("chip preamp-a missing")
	}
	if c.Address != 1 || c.Configure.SoftStepClock != "internal" || !c.Gain.Link || c.Volume.Left != 120 {
		t.Fatalf("chip=%+v", c)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() err=%v", err)
	}
}

func TestLoad_YAMLUnknownField(t *testing.T) {
	_, err := Load(writeFile(t, "bad.yml", "controller:\n  transprot: {}\n"))
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestLoad_TOML(t *testing.T) {
	cfg, err := Load(writeFile(t, "muses.toml", tomlConfig))
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}

	tr := cfg.Controller.Transport
	if tr.Kind != TransportSerial || tr.BaudRate != 57600 {
		t.Fatalf("transport=%+v", tr)
	}

	c, ok := cfg.Chip("preamp-b")
	if !ok {
		t.Fatalf("chip preamp-b missing")
	}
	if c.Variant != "legacy" || !c.Volume.Muted || c.Volume.Right != 80 {
		t.Fatalf("chip=%+v", c)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() err=%v", err)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	if _, err := Load(writeFile(t, "muses.json", "{}")); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestLoad_ShippedExamples(t *testing.T) {
	for _, p := range []string{"../../configs/musesctl.yaml", "../../configs/musesctl.toml"} {
		cfg, err := Load(p)
		if err != nil {
			t.Fatalf("%s: Load() err=%v", p, err)
		}
		if err := Validate(cfg); err != nil {
			t.Fatalf("%s: Validate() err=%v", p, err)
		}
		Normalize(cfg)
		if len(cfg.Controller.Chips) == 0 {
			t.Fatalf("%s: no chips", p)
		}
	}
}
