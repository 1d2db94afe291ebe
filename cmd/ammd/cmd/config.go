package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/paw-chain/cpamm/app"
	"github.com/paw-chain/cpamm/x/amm/types"
)

const (
	envPrefix      = "AMMD"
	configDirName  = "config"
	configFileName = "config.toml"
	dataDirName    = "data"

	flagHome               = "home"
	flagLogLevel           = "log-level"
	flagOutput             = "output"
	flagDenomA             = "denom-a"
	flagDenomB             = "denom-b"
	flagTokenBContract     = "token-b-contract"
	flagShareTokenContract = "share-token-contract"
	flagFeeBps             = "fee-bps"
	flagShareMintFormula   = "share-mint-formula"
	flagDBBackend          = "db-backend"
	flagAPIAddress         = "api-address"

	keyAPIAddress          = "api.address"
	keyAPICORSOrigins      = "api.cors-origins"
	keyAPIRateLimit        = "api.rate-limit-rps"
	keyTelemetryEnabled    = "telemetry.enabled"
	keyTelemetryEndpoint   = "telemetry.otlp-endpoint"
	keyTelemetryPrometheus = "telemetry.prometheus-enabled"
	keyTelemetrySample     = "telemetry.sample-rate"
)

// Config is the resolved ammd configuration
type Config struct {
	Home               string
	LogLevel           string
	Output             string
	DenomA             string
	DenomB             string
	TokenBContract     string
	ShareTokenContract string
	FeeBps             uint32
	ShareMintFormula   types.ShareMintFormula
	DBBackend          string

	APIAddress     string
	APICORSOrigins []string
	APIRateLimit   int

	Telemetry app.TelemetryConfig
}

// DefaultHome returns the default home directory
func DefaultHome() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".ammd"
	}
	return filepath.Join(userHome, ".ammd")
}

// ConfigPath returns the config file location under home
func ConfigPath(home string) string {
	return filepath.Join(home, configDirName, configFileName)
}

// DataDir returns the database location under home
func DataDir(home string) string {
	return filepath.Join(home, dataDirName)
}

func setDefaults(v *viper.Viper) {
	params := types.DefaultParams()
	v.SetDefault(flagHome, DefaultHome())
	v.SetDefault(flagLogLevel, "info")
	v.SetDefault(flagOutput, "json")
	v.SetDefault(flagDenomA, types.DefaultDenomA)
	v.SetDefault(flagDenomB, types.DefaultDenomB)
	v.SetDefault(flagFeeBps, params.FeeBps)
	v.SetDefault(flagShareMintFormula, string(params.ShareMintFormula))
	v.SetDefault(flagDBBackend, "goleveldb")
	v.SetDefault(keyAPIAddress, "127.0.0.1:1318")
	v.SetDefault(keyAPICORSOrigins, []string{"http://localhost:3000"})
	v.SetDefault(keyAPIRateLimit, 100)
	v.SetDefault(keyTelemetryEnabled, false)
	v.SetDefault(keyTelemetryPrometheus, true)
	v.SetDefault(keyTelemetrySample, 1.0)
}

// bindFlags binds command-line flags to viper keys. Dashed API flags map to
// their nested keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return err
	}
	if f := flags.Lookup(flagAPIAddress); f != nil {
		if err := v.BindPFlag(keyAPIAddress, f); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig resolves configuration from flags, AMMD_* environment variables
// and $home/config/config.toml, in that order of precedence.
func LoadConfig(v *viper.Viper, flags *pflag.FlagSet) (Config, error) {
	setDefaults(v)
	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return Config{}, fmt.Errorf("failed to bind flags: %w", err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	home := v.GetString(flagHome)
	v.SetConfigFile(ConfigPath(home))
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	feeBps, err := cast.ToUint32E(v.Get(flagFeeBps))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", flagFeeBps, err)
	}
	rateLimit, err := cast.ToIntE(v.Get(keyAPIRateLimit))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", keyAPIRateLimit, err)
	}
	sampleRate, err := cast.ToFloat64E(v.Get(keyTelemetrySample))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", keyTelemetrySample, err)
	}

	cfg := Config{
		Home:               home,
		LogLevel:           v.GetString(flagLogLevel),
		Output:             v.GetString(flagOutput),
		DenomA:             v.GetString(flagDenomA),
		DenomB:             v.GetString(flagDenomB),
		TokenBContract:     v.GetString(flagTokenBContract),
		ShareTokenContract: v.GetString(flagShareTokenContract),
		FeeBps:             feeBps,
		ShareMintFormula:   types.ShareMintFormula(v.GetString(flagShareMintFormula)),
		DBBackend:          v.GetString(flagDBBackend),
		APIAddress:         v.GetString(keyAPIAddress),
		APICORSOrigins:     cast.ToStringSlice(v.Get(keyAPICORSOrigins)),
		APIRateLimit:       rateLimit,
		Telemetry: app.TelemetryConfig{
			Enabled:           v.GetBool(keyTelemetryEnabled),
			OTLPEndpoint:      v.GetString(keyTelemetryEndpoint),
			PrometheusEnabled: v.GetBool(keyTelemetryPrometheus),
			SampleRate:        sampleRate,
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that every command relies on
func (c Config) Validate() error {
	if c.Home == "" {
		return fmt.Errorf("home directory cannot be empty")
	}
	switch c.Output {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q: must be json or yaml", c.Output)
	}
	return c.Params().Validate()
}

// Params returns the pool params configured for init
func (c Config) Params() types.Params {
	return types.Params{FeeBps: c.FeeBps, ShareMintFormula: c.ShareMintFormula}
}

// WriteConfig persists the resolved pool settings to $home/config/config.toml
// unless a config file already exists.
func WriteConfig(cfg Config) error {
	path := ConfigPath(cfg.Home)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	v := viper.New()
	v.Set(flagLogLevel, cfg.LogLevel)
	v.Set(flagDenomA, cfg.DenomA)
	v.Set(flagDenomB, cfg.DenomB)
	v.Set(flagTokenBContract, cfg.TokenBContract)
	v.Set(flagShareTokenContract, cfg.ShareTokenContract)
	v.Set(flagFeeBps, cfg.FeeBps)
	v.Set(flagShareMintFormula, string(cfg.ShareMintFormula))
	v.Set(flagDBBackend, cfg.DBBackend)
	v.Set(keyAPIAddress, cfg.APIAddress)
	v.Set(keyAPICORSOrigins, cfg.APICORSOrigins)
	v.Set(keyAPIRateLimit, cfg.APIRateLimit)
	v.Set(keyTelemetryEnabled, cfg.Telemetry.Enabled)
	v.Set(keyTelemetryEndpoint, cfg.Telemetry.OTLPEndpoint)
	v.Set(keyTelemetryPrometheus, cfg.Telemetry.PrometheusEnabled)
	v.Set(keyTelemetrySample, cfg.Telemetry.SampleRate)
	return v.WriteConfigAs(path)
}
