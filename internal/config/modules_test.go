package config

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadSelection(t *testing.T) {
	path := writeTempConfig(t, `
[modules]
encoders = ["x264", "-vpx"]
csc = ["all"]
decoders = ["openh264"]
`)

	sel, err := LoadSelection(path)
	if err != nil {
		t.Fatalf("LoadSelection failed: %v", err)
	}

	want := Selection{
		Encoders: []string{"x264", "-vpx"},
		CSC:      []string{"all"},
		Decoders: []string{"openh264"},
	}
	if !reflect.DeepEqual(sel, want) {
		t.Errorf("LoadSelection = %+v, want %+v", sel, want)
	}
}

func TestLoadSelectionMissingFileUsesDefaults(t *testing.T) {
	sel, err := LoadSelection("nonexistent_file.toml")
	if err != nil {
		t.Fatalf("LoadSelection failed: %v", err)
	}
	if !reflect.DeepEqual(sel, DefaultSelection()) {
		t.Errorf("LoadSelection = %+v, want defaults", sel)
	}
}

func TestLoadSelectionPartialTable(t *testing.T) {
	path := writeTempConfig(t, `
[modules]
encoders = ["x264"]
`)

	sel, err := LoadSelection(path)
	if err != nil {
		t.Fatalf("LoadSelection failed: %v", err)
	}

	if !reflect.DeepEqual(sel.Encoders, []string{"x264"}) {
		t.Errorf("Encoders = %v, want [x264]", sel.Encoders)
	}
	// Lists absent from the table keep the default wildcard
	if !reflect.DeepEqual(sel.CSC, []string{"all"}) {
		t.Errorf("CSC = %v, want [all]", sel.CSC)
	}
	if !reflect.DeepEqual(sel.Decoders, []string{"all"}) {
		t.Errorf("Decoders = %v, want [all]", sel.Decoders)
	}
}

func TestLoadSelectionInvalidTOML(t *testing.T) {
	path := writeTempConfig(t, `[modules`)

	if _, err := LoadSelection(path); err == nil {
		t.Fatal("LoadSelection should fail for invalid TOML")
	}
}

func TestSaveSelectionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "modules.toml")

	want := Selection{
		Encoders: []string{"all", "-nvenc"},
		CSC:      []string{"libyuv"},
		Decoders: []string{"all"},
	}
	if err := SaveSelection(path, want); err != nil {
		t.Fatalf("SaveSelection failed: %v", err)
	}

	got, err := LoadSelection(path)
	if err != nil {
		t.Fatalf("LoadSelection failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
