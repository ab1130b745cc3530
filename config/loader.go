package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/voicelist/logger"
)

// FileSystem is the file access LoadConfig needs; tests swap it out.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv exports the file's variables without overriding ones already set.
func (RealFileSystem) LoadEnv(path string) error { return godotenv.Load(path) }

type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // skips the search when set
	EnvFile    string // skips the search when set
}

type LoaderOption func(*LoaderConfig)

func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Resolver locates config.yml and .env relative to the working directory,
// so the binary finds them whether it runs from the repo root or from
// cmd/<service>.
type Resolver struct {
	FileSystem FileSystem
}

type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

func (r *Resolver) ResolveFiles(serviceName string, lc LoaderConfig) ResolvedFiles {
	return ResolvedFiles{
		ConfigFile: r.pick(lc.ConfigFile, configCandidates(serviceName)),
		EnvFile:    r.pick(lc.EnvFile, envCandidates(serviceName)),
	}
}

func (r *Resolver) pick(explicit string, candidates []string) string {
	if explicit != "" {
		return explicit
	}
	for _, p := range candidates {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

func configCandidates(service string) []string {
	cmdDir := "cmd/" + service + "/config.yml"
	return []string{"./" + cmdDir, "../" + cmdDir, "../../" + cmdDir, "./config/config.yml", "./config.yml"}
}

func envCandidates(service string) []string {
	var out []string
	for _, name := range []string{".env." + service, ".env"} {
		cmdFile := "cmd/" + service + "/" + name
		out = append(out, "./"+cmdFile, "../"+cmdFile, "./"+name, "../"+name, "../../"+name)
	}
	return out
}

// LoadConfig fills cfg for serviceName. Later sources override earlier
// ones: config.yml, then the process environment, then the .env file.
// A missing or unreadable file is logged and skipped. Environment names map
// onto nested keys, so GROQ_API_KEY sets groq.api_key.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}
	files := (&Resolver{FileSystem: lc.FileSystem}).ResolveFiles(serviceName, lc)

	v := viper.New()
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			logger.Warn("Config file ignored", logger.MergeWithError(logger.Fields("path", files.ConfigFile), err))
		}
	}

	v.AutomaticEnv()
	bindEnv(v)

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			logger.Warn("Env file ignored", logger.MergeWithError(logger.Fields("path", files.EnvFile), err))
		} else {
			bindEnv(v)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal %s: %w", serviceName, err)
	}
	return nil
}

func bindEnv(v *viper.Viper) {
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok {
			for _, k := range envKeyVariants(key) {
				v.Set(k, value)
			}
		}
	}
}

// envKeyVariants spells an environment name as every config key it might
// mean: all underscores, all dots, and each single dotted split on either
// side of an underscore run.
//
//	GROQ_API_KEY -> groq_api_key, groq.api.key, groq.api_key, groq_api.key
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	variants := []string{lower}
	add := func(s string) {
		if !slices.Contains(variants, s) {
			variants = append(variants, s)
		}
	}
	if len(parts) > 1 {
		add(strings.Join(parts, "."))
	}
	for i := 1; i < len(parts); i++ {
		head, tail := parts[:i], parts[i:]
		add(strings.Join(head, ".") + "." + strings.Join(tail, "_"))
		add(strings.Join(head, "_") + "." + strings.Join(tail, "."))
	}
	return variants
}
