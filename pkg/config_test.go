package dupcmp

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	all := config.GetAllConfig()
	if all.Output.Format != FormatHuman {
		t.Errorf("Expected default format '%s', got '%s'", FormatHuman, all.Output.Format)
	}
	if all.Verbose.Level != 0 {
		t.Errorf("Expected default verbose level 0, got %d", all.Verbose.Level)
	}
	if len(all.Scan.Ignore) != 0 {
		t.Errorf("Expected no default ignore patterns, got %v", all.Scan.Ignore)
	}
	if all.Performance.CompareWorkers != 1 {
		t.Errorf("Expected 1 compare worker by default, got %d", all.Performance.CompareWorkers)
	}
	if all.Performance.CompareBuffer != "64K" {
		t.Errorf("Expected default compare buffer '64K', got '%s'", all.Performance.CompareBuffer)
	}
	if config.Path() != "" {
		t.Errorf("Expected no config path, got '%s'", config.Path())
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "dupcmp.ini")
	content := `[output]
format = fdupes

[verbose]
level = 2
debug = walk,compare

[scan]
ignore = ^\.git/
ignore = \.swp$

[performance]
compare_workers = 4
compare_buffer = 1M
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Path() != configPath {
		t.Errorf("Expected path %s, got %s", configPath, config.Path())
	}

	all := config.GetAllConfig()
	if all.Output.Format != FormatFdupes {
		t.Errorf("Expected format 'fdupes', got '%s'", all.Output.Format)
	}
	if all.Verbose.Level != 2 || all.Verbose.Debug != "walk,compare" {
		t.Errorf("Unexpected verbose config: %+v", all.Verbose)
	}
	if !slices.Equal(all.Scan.Ignore, []string{`^\.git/`, `\.swp$`}) {
		t.Errorf("Expected both ignore patterns, got %v", all.Scan.Ignore)
	}
	if all.Performance.CompareWorkers != 4 || all.Performance.CompareBuffer != "1M" {
		t.Errorf("Unexpected performance config: %+v", all.Performance)
	}
}

func TestConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.ini")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func TestConfigOverrides(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	err = config.ApplyOverrides([]string{
		"format:json",
		"level:2",
		"debug:walk,group",
		`ignore:\.tmp$`,
		"ignore:^vendor/",
		"workers:8",
		"buffer:256K",
	})
	if err != nil {
		t.Fatalf("Failed to apply overrides: %v", err)
	}

	allConfig := config.GetAllConfig()

	if allConfig.Output.Format != "json" {
		t.Errorf("Expected output format 'json' after override, got '%s'", allConfig.Output.Format)
	}
	if allConfig.Verbose.Level != 2 {
		t.Errorf("Expected verbose level 2 after override, got %d", allConfig.Verbose.Level)
	}
	if allConfig.Verbose.Debug != "walk,group" {
		t.Errorf("Expected debug flags 'walk,group' after override, got '%s'", allConfig.Verbose.Debug)
	}
	if !slices.Equal(allConfig.Scan.Ignore, []string{`\.tmp$`, "^vendor/"}) {
		t.Errorf("Expected both ignore overrides, got %v", allConfig.Scan.Ignore)
	}
	if allConfig.Performance.CompareWorkers != 8 {
		t.Errorf("Expected 8 compare workers after override, got %d", allConfig.Performance.CompareWorkers)
	}
	if allConfig.Performance.CompareBuffer != "256K" {
		t.Errorf("Expected compare buffer '256K' after override, got '%s'", allConfig.Performance.CompareBuffer)
	}
}

func TestConfigOverrideErrors(t *testing.T) {
	config, _ := LoadConfig("")

	if err := config.ApplyOverrides([]string{"noseparator"}); err == nil {
		t.Error("Expected an error for an override without ':'")
	}
	if err := config.ApplyOverrides([]string{"colour:red"}); err == nil {
		t.Error("Expected an error for an unknown override key")
	}
}

func TestConfigValidation(t *testing.T) {
	t.Run("OutputFormat", func(t *testing.T) {
		testCases := []struct {
			format string
			valid  bool
		}{
			{"human", true},
			{"json", true},
			{"fdupes", true},
			{"Human", true}, // case insensitive
			{"JSON", true},  // case insensitive
			{"xml", false},
			{"", false},
		}

		for _, tc := range testCases {
			err := ValidateOutputFormat(tc.format)
			if tc.valid && err != nil {
				t.Errorf("Format '%s' should be valid but got error: %v", tc.format, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("Format '%s' should be invalid but no error returned", tc.format)
			}
		}
	})

	t.Run("VerboseLevel", func(t *testing.T) {
		testCases := []struct {
			level int
			valid bool
		}{
			{0, true},
			{3, true},
			{-1, false},
			{4, false},
		}

		for _, tc := range testCases {
			err := ValidateVerboseLevel(tc.level)
			if tc.valid && err != nil {
				t.Errorf("Level %d should be valid but got error: %v", tc.level, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("Level %d should be invalid but no error returned", tc.level)
			}
		}
	})

	t.Run("CompareWorkers", func(t *testing.T) {
		testCases := []struct {
			workers int
			valid   bool
		}{
			{1, true},
			{64, true},
			{0, false},
			{65, false},
		}

		for _, tc := range testCases {
			err := ValidateCompareWorkers(tc.workers)
			if tc.valid && err != nil {
				t.Errorf("Workers %d should be valid but got error: %v", tc.workers, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("Workers %d should be invalid but no error returned", tc.workers)
			}
		}
	})

	t.Run("Whole", func(t *testing.T) {
		badOverrides := [][]string{
			{"format:xml"},
			{"level:9"},
			{"workers:0"},
			{"buffer:lots"},
			{"ignore:(["},
		}
		for _, overrides := range badOverrides {
			config, _ := LoadConfig("")
			if err := config.ApplyOverrides(overrides); err != nil {
				t.Fatalf("ApplyOverrides(%v) failed: %v", overrides, err)
			}
			if err := config.Validate(); err == nil {
				t.Errorf("Expected %v to fail validation", overrides)
			}
		}
	})
}
