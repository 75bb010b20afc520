package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/sysgen"
	"github.com/yacobolo/sysgen/internal/logging"
	"github.com/yacobolo/sysgen/internal/theme"
	"github.com/yacobolo/sysgen/internal/usage"
	"github.com/yacobolo/sysgen/internal/watch"
)

const (
	defaultConfigFile = ".sysgen.yaml"
	envPrefix         = "SYSGEN_"
)

var (
	k = koanf.New(".")
	// configFile is the config file that was loaded, "" when there is none.
	configFile string
)

// tomlParser is a koanf parser for .sysgen.toml files.
type tomlParser struct{}

func (tomlParser) Unmarshal(b []byte) (map[string]any, error) {
	var out map[string]any
	if err := toml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (tomlParser) Marshal(m map[string]any) ([]byte, error) {
	return toml.Marshal(m)
}

// parserFor picks the koanf parser for a config file. JSON is read by the
// YAML parser.
func parserFor(path string) (koanf.Parser, error) {
	format, err := theme.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if format == theme.FormatTOML {
		return tomlParser{}, nil
	}
	return yaml.Parser(), nil
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	explicit := cmd.Flags().Changed("config")
	if !explicit || configPath == "" {
		configPath = findConfigFile()
	}

	if err := loadConfigFromPath(configPath, explicit); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence: only flags that were explicitly set,
	// defaults live in the getXWithFallback calls)
	if err := k.Load(posflag.ProviderWithFlag(cmd.Flags(), ".", k, func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(cmd.Flags(), f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	applyOutputSettings()
	return nil
}

// configFileNames are looked up in the working directory, in order.
var configFileNames = []string{defaultConfigFile, ".sysgen.yml", ".sysgen.toml", ".sysgen.json"}

func findConfigFile() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return defaultConfigFile
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
// A missing file is an error only when it was asked for explicitly.
func loadConfigFromPath(configPath string, required bool) error {
	configFile = ""

	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		parser, err := parserFor(configPath)
		if err != nil {
			return fmt.Errorf("config file %s: %w", configPath, err)
		}
		if err := k.Load(file.Provider(configPath), parser); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
		configFile = configPath
	} else if required {
		return fmt.Errorf("failed to read config file at %s: %w", configPath, err)
	}

	// 2. Environment variables (SYSGEN_* prefix)
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to its config key:
// SYSGEN_GENERATE__COMPONENTS_PATH -> generate.components-path,
// SYSGEN_VERBOSE -> verbose.
func envKey(s string) string {
	parts := strings.Split(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, "_", "-")
	}
	return strings.Join(parts, ".")
}

// resetConfig drops every loaded value, for reloading in watch mode.
func resetConfig() {
	k = koanf.New(".")
	configFile = ""
}

func applyOutputSettings() {
	console.quiet = getBoolWithFallback("quiet", "quiet", false)
	if getBoolWithFallback("color", "color", false) {
		color.NoColor = false
	}
}

// loadTheme returns the theme named by --theme or theme-file, else the
// config file's inline theme section, else nil for the built-in theme.
// Inline themes are decoded again from the file itself: scale order is
// significant and koanf's maps do not keep it.
func loadTheme(cmd *cobra.Command) (*theme.Theme, error) {
	path := k.String("theme-file")
	if f := cmd.Flags().Lookup("theme"); f != nil && f.Changed {
		path = f.Value.String()
	}
	if path != "" {
		th, err := theme.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load theme: %w", err)
		}
		return th, nil
	}

	if configFile == "" {
		return nil, nil
	}
	// #nosec G304 - path comes from the --config flag
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	format, err := theme.FormatFromPath(configFile)
	if err != nil {
		return nil, err
	}
	th, _, err := theme.ParseSection(data, format, "theme")
	if err != nil {
		return nil, fmt.Errorf("config file %s: theme: %w", configFile, err)
	}
	return th, nil
}

// themeFiles returns the files a theme is read from, for watching.
func themeFiles(cmd *cobra.Command) []string {
	var files []string
	if configFile != "" {
		files = append(files, configFile)
	}
	path := k.String("theme-file")
	if f := cmd.Flags().Lookup("theme"); f != nil && f.Changed {
		path = f.Value.String()
	}
	if path != "" {
		files = append(files, path)
	}
	return files
}

// buildLogger constructs the library logger from koanf state.
func buildLogger() (*slog.Logger, error) {
	level := "info"
	if getBoolWithFallback("verbose", "verbose", false) {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:  level,
		Format: getStringWithFallback("log-format", "log-format", logging.FormatText),
		Output: os.Stderr,
	})
}

// buildOptions constructs the library's Options struct from koanf state.
func buildOptions(cmd *cobra.Command) (sysgen.Options, error) {
	th, err := loadTheme(cmd)
	if err != nil {
		return sysgen.Options{}, err
	}
	mode, err := usage.ParseArrayMode(getStringWithFallback("array-values", "generate.array-values", string(usage.ArrayPositional)))
	if err != nil {
		return sysgen.Options{}, err
	}
	log, err := buildLogger()
	if err != nil {
		return sysgen.Options{}, err
	}

	return sysgen.Options{
		Theme:          th,
		Optimize:       getBoolWithFallback("optimize", "generate.optimize", false),
		ProjectPath:    getStringWithFallback("project-path", "generate.project-path", ""),
		ComponentsPath: getStringWithFallback("components-path", "generate.components-path", ""),
		StylesheetPath: getStringWithFallback("stylesheet-path", "generate.stylesheet-path", ""),
		TypesPath:      getStringWithFallback("types-path", "generate.types-path", ""),
		ArrayValues:    mode,
		Check:          getBoolWithFallback("check", "generate.check", false),
		Logger:         log,
	}, nil
}

// buildLintConfig constructs the library's LintConfig struct from koanf state.
func buildLintConfig(cmd *cobra.Command) (sysgen.LintConfig, error) {
	th, err := loadTheme(cmd)
	if err != nil {
		return sysgen.LintConfig{}, err
	}
	log, err := buildLogger()
	if err != nil {
		return sysgen.LintConfig{}, err
	}
	return sysgen.LintConfig{
		Theme:          th,
		ProjectPath:    getStringWithFallback("project-path", "generate.project-path", "."),
		ComponentsPath: getStringWithFallback("components-path", "generate.components-path", ""),
		MaxSameIssues:  getIntWithFallback("max-same-issues", "lint.max-same-issues", 0),
		Logger:         log,
	}, nil
}

// watchDebounce returns the quiet period of watch mode.
func watchDebounce() time.Duration {
	if k.Exists("debounce") {
		return k.Duration("debounce")
	}
	if k.Exists("generate.debounce") {
		return k.Duration("generate.debounce")
	}
	return watch.DefaultDebounce
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
