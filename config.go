package zca

import (
	"fmt"
	"os"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/spf13/viper"
)

var (
	cfgOnce sync.Once
	config  = _zcaconfig{fuels: DefaultFuels, outputDir: "."}
	cfgErr  error

	logger = kitlog.NewNopLogger()
	logMu  sync.RWMutex
)

// _zcaconfig is a "hidden" struct, just use `zcaConfig`
type _zcaconfig struct {
	outputDir string
	fuels     FuelTable
}

// OutputDir returns the configured output directory.
func (c _zcaconfig) OutputDir() string {
	return c.outputDir
}

// Fuels returns the fuel table, with the overrides from the configuration file applied.
func (c _zcaconfig) Fuels() FuelTable {
	return c.fuels
}

// zcaConfig returns the process configuration. It is read once: from the `conf.toml` file in
// the directory named by the ZCA_CONFIG environment variable, or the defaults when the
// variable is unset.
func zcaConfig() (_zcaconfig, error) {
	cfgOnce.Do(func() {
		confPath := os.Getenv("ZCA_CONFIG")
		if confPath == "" {
			return
		}
		config, cfgErr = loadConfig(confPath)
	})
	return config, cfgErr
}

// Config returns the process configuration (output directory and fuel table).
func Config() (outputDir string, fuels FuelTable, err error) {
	c, err := zcaConfig()
	return c.outputDir, c.fuels, err
}

func loadConfig(dir string) (_zcaconfig, error) {
	v := viper.New()
	v.SetConfigName("conf")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		return _zcaconfig{}, fmt.Errorf("%s/conf.toml: %s", dir, err)
	}
	c := _zcaconfig{outputDir: v.GetString("general.output_path"), fuels: DefaultFuels}
	if c.outputDir == "" {
		c.outputDir = "."
	}
	for name := range v.GetStringMap("fuels") {
		ft, err := FuelTypeFromString(name)
		if err != nil {
			return _zcaconfig{}, fmt.Errorf("conf.toml: %w", err)
		}
		row := DefaultFuels[ft]
		key := "fuels." + name
		if v.IsSet(key + ".lhv") {
			if row.LHV, err = ParseQuantity(v.GetString(key + ".lhv")); err != nil {
				return _zcaconfig{}, err
			}
			if _, err = row.LHV.SI(SpecificEnergy); err != nil {
				return _zcaconfig{}, err
			}
		}
		if v.IsSet(key + ".density") {
			if row.Density, err = ParseQuantity(v.GetString(key + ".density")); err != nil {
				return _zcaconfig{}, err
			}
			if _, err = row.Density.SI(Density); err != nil {
				return _zcaconfig{}, err
			}
		}
		if v.IsSet(key + ".cost") {
			if row.Cost, err = ParseQuantity(v.GetString(key + ".cost")); err != nil {
				return _zcaconfig{}, err
			}
			if d, _ := row.Cost.Dimension(); d != MassCost && d != VolumeCost {
				return _zcaconfig{}, paramErr(ErrUnitMismatch, "conf.toml", "fuel cost must be per mass or per volume", "fuel", name, "cost", row.Cost)
			}
		}
		if v.IsSet(key + ".carbon_mass_fraction") {
			row.CarbonMassFraction = v.GetFloat64(key + ".carbon_mass_fraction")
		}
		c.fuels = c.fuels.With(ft, row)
	}
	return c, nil
}

// SetLogger sets the logger used by the solvers and sweeps. The library is silent by default.
func SetLogger(l kitlog.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	if l == nil {
		l = kitlog.NewNopLogger()
	}
	logger = l
}

// NewLogger returns a logfmt logger on stdout tagged with the provided subsystem.
func NewLogger(subsys string) kitlog.Logger {
	l := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	return kitlog.With(l, "subsys", subsys)
}

func currentLogger() kitlog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}
