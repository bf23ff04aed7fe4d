package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/colonyops/reswed/internal/core/styles"
	"github.com/colonyops/reswed/internal/core/suggest"
	"github.com/colonyops/reswed/internal/core/validate"
	"github.com/colonyops/reswed/pkg/executil"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including file accessibility and provider credentials. The configPath
// argument specifies the config file location to validate (empty string
// skips the config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateSuggest(),
		criterio.Run("base_language", c.BaseLanguage, validate.Language),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if !slices.Contains(styles.ThemeNames(), c.TUI.Theme) {
		warnings = append(warnings, ValidationWarning{
			Category: "TUI",
			Item:     "theme",
			Message:  fmt.Sprintf("unknown theme %q, using %q (available: %s)", c.TUI.Theme, styles.DefaultTheme, strings.Join(styles.ThemeNames(), ", ")),
		})
	}

	if c.Suggest.Provider == suggest.ProviderNone && c.Suggest.Model != "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Suggest",
			Item:     "model",
			Message:  "model is set but suggestions are disabled",
		})
	}

	if c.BaseLanguage == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Languages",
			Item:     "base_language",
			Message:  "no base language; keys are taken from the first language alphabetically",
		})
	}

	return warnings
}

// validateFileAccess checks config file, data directory, resource root and
// copy command.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("root", c.Root, isDirectory),
		criterio.Run("copy_command", c.CopyCommand, commandExists),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateSuggest() error {
	var errs criterio.FieldErrorsBuilder

	if c.Suggest.Provider == suggest.ProviderOpenAI {
		switch {
		case c.Suggest.APIKeyEnv == "":
			errs = errs.Append("suggest.api_key_env", fmt.Errorf("required for the openai provider"))
		case c.Suggest.APIKey() == "":
			errs = errs.Append("suggest.api_key_env", fmt.Errorf("environment variable %s is not set", c.Suggest.APIKeyEnv))
		}
	}

	if c.Suggest.Provider != suggest.ProviderNone && c.Suggest.Timeout == 0 {
		errs = errs.Append("suggest.timeout", fmt.Errorf("must be greater than zero"))
	}

	return errs.ToError()
}

// commandExists validates that the first word of a shell command is on PATH.
func commandExists(command string) error {
	if strings.TrimSpace(command) == "" {
		return nil
	}
	if _, err := executil.Lookup(command); err != nil {
		return fmt.Errorf("executable not found: %s", strings.Fields(command)[0])
	}
	return nil
}

// isDirectory validates that a path exists and is a directory.
func isDirectory(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
