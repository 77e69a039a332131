package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/moyu-x/minecraft-timer/internal"
)

type Config struct {
	Minecraft struct {
		Home  string
		Saves string
	}
	Watcher struct {
		Debounce time.Duration
	}
	Display struct {
		Refresh     time.Duration
		PollTimeout time.Duration `mapstructure:"poll_timeout"`
	}
	Scan struct {
		Workers int
	}
	Logging struct {
		Level string
		File  string
	}
}

var cfg Config

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath("$HOME/.minecraft-timer")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/minecraft-timer")

	viper.SetDefault("minecraft.home", "")
	viper.SetDefault("minecraft.saves", "")
	viper.SetDefault("watcher.debounce", internal.DefaultDebounce)
	viper.SetDefault("display.refresh", internal.DefaultRefresh)
	viper.SetDefault("display.poll_timeout", internal.DefaultPollTimeout)
	viper.SetDefault("scan.workers", internal.DefaultWorkers)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SavesDir 返回要监听的存档目录：显式配置的 saves 优先，其次是 <home>/saves，
// 都未配置时使用 $HOME/.minecraft/saves。无法确定用户目录属于致命错误。
func (c *Config) SavesDir() (string, error) {
	if c.Minecraft.Saves != "" {
		return filepath.Clean(c.Minecraft.Saves), nil
	}

	home := c.Minecraft.Home
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("无法确定用户目录: %w", err)
		}
		home = filepath.Join(userHome, internal.MinecraftDirName)
	}

	return filepath.Join(home, internal.SavesDirName), nil
}
