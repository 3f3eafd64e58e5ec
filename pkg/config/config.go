// Package config handles action input loading and validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cicd-ai-toolkit/changed-files/pkg/errors"
	"github.com/cicd-ai-toolkit/changed-files/pkg/output"
)

// Default config file names searched in the workspace
var defaultConfigFiles = []string{
	".changed-files.yaml",
	".changed-files.yml",
}

// Config holds all parsed input values.
type Config struct {
	// Token authenticates API and remote git operations. Required.
	Token string

	// Format selects the output encoding. Defaults to space-delimited.
	Format string

	// Extensions filters outputs by file extension, leading dot included.
	// A list containing only the empty string keeps every file.
	Extensions []string
}

// fileDefaults is the optional yaml defaults file checked into the
// repository. Action inputs override anything set here.
type fileDefaults struct {
	Format string `yaml:"format"`
	Files  string `yaml:"files"`
}

// Load reads inputs from INPUT_* environment variables, applying defaults
// from the workspace config file when present. A .env file is loaded
// best-effort so local runs can mimic the runner environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	defaults, err := loadDefaults(workspaceDir())
	if err != nil {
		return nil, err
	}

	format := getInput("format", defaults.Format)
	if format == "" {
		format = string(output.FormatSpaceDelimited)
	}

	return &Config{
		Token:      getInput("token", ""),
		Format:     format,
		Extensions: strings.Split(getInput("files", defaults.Files), " "),
	}, nil
}

// Validate checks the loaded inputs.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.ConfigurationError("token input is required", nil)
	}

	if _, err := output.ParseFormat(c.Format); err != nil {
		return err
	}

	return nil
}

// loadDefaults parses the workspace defaults file if one exists.
func loadDefaults(dir string) (fileDefaults, error) {
	var defaults fileDefaults

	for _, name := range defaultConfigFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		if err := yaml.Unmarshal(data, &defaults); err != nil {
			return defaults, errors.ConfigurationError(fmt.Sprintf("failed to parse defaults file: %s", path), err)
		}
		break
	}

	return defaults, nil
}

func workspaceDir() string {
	if ws := os.Getenv("GITHUB_WORKSPACE"); ws != "" {
		return ws
	}
	return "."
}

func getInput(name, defaultValue string) string {
	key := "INPUT_" + strings.ToUpper(name)
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
