package config

import "sort"

// Presets holds ready-made requests per algorithm.
var Presets = map[string]map[string]*Config{
	"bubble_sort": {
		"classic": {
			Algorithm: "bubble_sort", Input: "64, 34, 25, 12, 22, 11, 90", DelayMS: DefaultDelayMS,
		},
		"reversed": {
			Algorithm: "bubble_sort", Input: "9, 8, 7, 6, 5, 4, 3, 2, 1", DelayMS: 600,
		},
		"sorted": {
			Algorithm: "bubble_sort", Input: "1, 2, 3, 4, 5, 6, 7, 8", DelayMS: 600,
		},
		"duplicates": {
			Algorithm: "bubble_sort", Input: "5, 1, 5, 3, 1, 5", DelayMS: DefaultDelayMS,
		},
		"pair": {
			Algorithm: "bubble_sort", Input: "2, 1", DelayMS: DefaultDelayMS,
		},
	},
	"binary_search": {
		"classic": {
			Algorithm: "binary_search", Input: "64, 34, 25, 12, 22, 11, 90", Target: "22", DelayMS: DefaultDelayMS,
		},
		"missing": {
			Algorithm: "binary_search", Input: "5, 3, 1", Target: "99", DelayMS: DefaultDelayMS,
		},
		"first": {
			Algorithm: "binary_search", Input: "10, 20, 30, 40, 50, 60, 70, 80, 90", Target: "10", DelayMS: DefaultDelayMS,
		},
		"duplicates": {
			Algorithm: "binary_search", Input: "7, 7, 7, 7, 7", Target: "7", DelayMS: DefaultDelayMS,
		},
		"long": {
			Algorithm: "binary_search", Input: "3, 6, 9, 12, 15, 18, 21, 24, 27, 30, 33, 36, 39, 42, 45, 48", Target: "40", DelayMS: 800,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(algorithm, preset string) *Config {
	algoPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	cfg, ok := algoPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(algorithm string) []string {
	algoPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(algoPresets))
	for name := range algoPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
