package config

import "sort"

var Presets = map[string]*Config{
	"ambient": {
		InitialTemperature: 20,
		Schedule:           []SegmentConfig{{Input: "idle", Duration: 10}},
	},
	"boil": {
		InitialTemperature: 20,
		Schedule:           []SegmentConfig{{Input: "heat", Duration: 10}},
	},
	"freeze": {
		InitialTemperature: 20,
		Schedule:           []SegmentConfig{{Input: "cool", Duration: 6}},
	},
	"hold": {
		InitialTemperature: 20,
		Schedule:           []SegmentConfig{{Input: "idle", Duration: 30}},
		Controller: ControllerConfig{
			Type:     "pid",
			Target:   60,
			Deadband: 0.5,
			Kp:       1,
			Ki:       0.02,
		},
	},
	"frozen": {
		InitialTemperature: -15,
		Schedule:           []SegmentConfig{{Input: "idle", Duration: 30}},
	},
	"cycle": {
		InitialTemperature: 20,
		Schedule: []SegmentConfig{
			{Input: "heat", Duration: 8},
			{Input: "idle", Duration: 4},
			{Input: "cool", Duration: 10},
			{Input: "idle", Duration: 4},
		},
	},
}

// GetPreset returns a full config built from the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.InitialTemperature = p.InitialTemperature
	cfg.Schedule = append([]SegmentConfig(nil), p.Schedule...)
	cfg.Controller = p.Controller
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
