package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Signal.Rate != DefaultRate {
		t.Errorf("rate = %v, want %v", cfg.Signal.Rate, DefaultRate)
	}
	if cfg.Signal.Length != DefaultLength {
		t.Errorf("length = %v, want %v", cfg.Signal.Length, DefaultLength)
	}
	if cfg.Validate.Bits != DefaultBits {
		t.Errorf("bits = %v, want %v", cfg.Validate.Bits, DefaultBits)
	}

	if err := cfg.Params().Validate(); err != nil {
		t.Errorf("default estimator params invalid: %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nld.yaml")

	cfg := DefaultConfig()
	cfg.Estimator.FitLen = 7
	cfg.Signal.Name = "walk"
	cfg.Validate.Trials = 123

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Estimator.FitLen != 7 {
		t.Errorf("fit_len = %d, want 7", loaded.Estimator.FitLen)
	}
	if loaded.Signal.Name != "walk" {
		t.Errorf("signal = %s, want walk", loaded.Signal.Name)
	}
	if loaded.Validate.Trials != 123 {
		t.Errorf("trials = %d, want 123", loaded.Validate.Trials)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("gait")
	if cfg == nil {
		t.Fatal("expected gait preset")
	}
	if cfg.Signal.Rate != DefaultRate {
		t.Errorf("gait rate = %v, want %v", cfg.Signal.Rate, DefaultRate)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	cfg := GetPreset("hrv")
	if cfg == nil {
		t.Fatal("expected hrv preset")
	}
	original := cfg.Estimator.MaxBox

	cfg.Estimator.MaxBox = 9999
	cfg.Signal.Name = "scribbled"

	again := GetPreset("hrv")
	if again.Estimator.MaxBox != original {
		t.Errorf("preset table mutated: max_box = %d, want %d", again.Estimator.MaxBox, original)
	}
	if again.Signal.Name != "walk" {
		t.Errorf("preset table mutated: signal = %s, want walk", again.Signal.Name)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Error("preset names should be sorted")
		}
	}
}

func TestPresets_AllValid(t *testing.T) {
	for name, cfg := range Presets {
		if err := cfg.Params().Validate(); err != nil {
			t.Errorf("preset %s has invalid estimator params: %v", name, err)
		}
		if cfg.Signal.Length <= 0 || cfg.Signal.Rate <= 0 {
			t.Errorf("preset %s has invalid signal section", name)
		}
	}
}

func TestCampaign_Mapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Validate.Trials = 77
	cfg.Signal.Name = "white"

	campaign := cfg.Campaign()
	if campaign.Trials != 77 {
		t.Errorf("campaign trials = %d, want 77", campaign.Trials)
	}
	if campaign.Signal != "white" {
		t.Errorf("campaign signal = %s, want white", campaign.Signal)
	}
	if campaign.Params.Dim != cfg.Estimator.EmbeddingDim {
		t.Error("campaign params not mapped from estimator section")
	}
}
