package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/replenix/replenix/internal/replenishment"
)

// ReplenishmentConfig tunes the reorder-signal calculator and the login
// rate limiter.
type ReplenishmentConfig struct {
	Policy          replenishment.Policy `mapstructure:"policy"`
	LoginRatePerMin float64              `mapstructure:"loginRatePerMin"`
	LoginBurst      int                  `mapstructure:"loginBurst"`
}

func DefaultReplenishmentConfig() ReplenishmentConfig {
	return ReplenishmentConfig{
		Policy:          replenishment.DefaultPolicy(),
		LoginRatePerMin: 10,
		LoginBurst:      5,
	}
}

// ReplenishmentConfigHolder serves the current replenishment config and
// swaps it atomically on file change.
type ReplenishmentConfigHolder struct {
	current atomic.Value // holds ReplenishmentConfig
}

func NewReplenishmentConfigHolder() (*ReplenishmentConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("replenishment")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/replenix/config")
	v.AddConfigPath("/etc/replenix")
	v.AddConfigPath(".")

	v.SetEnvPrefix("REPLENIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultReplenishmentConfig()
	v.SetDefault("replenishment.policy.defaultServiceLevel", defaults.Policy.DefaultServiceLevel)
	v.SetDefault("replenishment.policy.surplusWindowDays", defaults.Policy.SurplusWindowDays)
	v.SetDefault("replenishment.loginRatePerMin", defaults.LoginRatePerMin)
	v.SetDefault("replenishment.loginBurst", defaults.LoginBurst)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg ReplenishmentConfig
	if err := v.UnmarshalKey("replenishment", &cfg); err != nil {
		return nil, err
	}
	if err := validateReplenishmentConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ReplenishmentConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ReplenishmentConfig
		if err := v.UnmarshalKey("replenishment", &updated); err != nil {
			log.Printf("[replenishment-config] reload failed: %v", err)
			return
		}
		if err := validateReplenishmentConfig(updated); err != nil {
			log.Printf("[replenishment-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[replenishment-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// Get returns the current config. A zero holder serves defaults, which
// keeps construction optional in tests.
func (h *ReplenishmentConfigHolder) Get() ReplenishmentConfig {
	if cfg, ok := h.current.Load().(ReplenishmentConfig); ok {
		return cfg
	}
	return DefaultReplenishmentConfig()
}

// Policy returns the calculator policy from the current config.
func (h *ReplenishmentConfigHolder) Policy() replenishment.Policy {
	return h.Get().Policy
}

func validateReplenishmentConfig(cfg ReplenishmentConfig) error {
	if cfg.Policy.DefaultServiceLevel <= 0 || cfg.Policy.DefaultServiceLevel >= 1 {
		return errors.New("replenishment.policy.defaultServiceLevel must be in (0, 1)")
	}
	if cfg.Policy.SurplusWindowDays < 1 {
		return errors.New("replenishment.policy.surplusWindowDays must be at least 1")
	}
	if cfg.LoginRatePerMin <= 0 || cfg.LoginBurst < 1 {
		return errors.New("replenishment login rate limit must be positive")
	}
	return nil
}
