package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Referral   ReferralConfig   `mapstructure:"referral"`
	Profit     ProfitConfig     `mapstructure:"profit"`
	Purchase   PurchaseConfig   `mapstructure:"purchase"`
	Withdrawal WithdrawalConfig `mapstructure:"withdrawal"`
	TikTok     TikTokConfig     `mapstructure:"tiktok"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// ReferralConfig holds the bonus percentage per upline level.
// Levels[0] is the direct sponsor (level 1).
type ReferralConfig struct {
	Levels []float64 `mapstructure:"levels"`
}

// MaxLevel returns how many upline levels receive a bonus.
func (c ReferralConfig) MaxLevel() int {
	return len(c.Levels)
}

// PercentForLevel returns the bonus percentage for a level (1-based),
// or 0 if no rule exists for that level.
func (c ReferralConfig) PercentForLevel(level int) float64 {
	if level < 1 || level > len(c.Levels) {
		return 0
	}
	return c.Levels[level-1]
}

type ProfitConfig struct {
	IntervalHours int `mapstructure:"interval_hours"`
}

type PurchaseConfig struct {
	PendingExpireDays    int `mapstructure:"pending_expire_days"`
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`
}

type WithdrawalConfig struct {
	MinAmountBs float64 `mapstructure:"min_amount_bs"`
}

type TikTokConfig struct {
	BonusPerTaskBs float64 `mapstructure:"bonus_per_task_bs"`
	MaxBonusBs     float64 `mapstructure:"max_bonus_bs"`
}

func Load(configPath string) (*Config, error) {
	// Prefer config.local.yaml when present (real secrets, not committed)
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
