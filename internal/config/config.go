package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// ConfigScheme is loaded once at startup and shared by reference; runtime
// mutations (such as the owner changing the prefix) are visible to every
// consumer and persisted with SaveConfig.
type ConfigScheme struct {
	BotName       string   `mapstructure:"botname"`
	OwnerNumbers  []string `mapstructure:"owners"`
	SudoNumbers   []string `mapstructure:"sudoers"`
	CommandPrefix string   `mapstructure:"cmdprefix"`
	FloodRate     float64  `mapstructure:"floodrate"`
	FloodBurst    int      `mapstructure:"floodburst"`
	ReadMessages  bool     `mapstructure:"readmessages"`
	StickerTitle  string   `mapstructure:"stickertitle"`
	StickerAuthor string   `mapstructure:"stickerauthor"`
	Language      string   `mapstructure:"language"`
	PairWithCode  bool     `mapstructure:"pairwithcode"`

	v *viper.Viper
}

func LoadConfig(configPath string) (*ConfigScheme, error) {
	c := &ConfigScheme{}
	v := viper.New()

	v.SetConfigType(strings.ReplaceAll(filepath.Ext(configPath), ".", ""))
	v.SetConfigName(strings.ReplaceAll(filepath.Base(configPath), filepath.Ext(configPath), ""))
	v.AddConfigPath(filepath.Dir(configPath))

	v.SetDefault("cmdprefix", ".")
	v.SetDefault("floodrate", 0.5)
	v.SetDefault("floodburst", 3)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("Error reading config: %w", err)
	}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("Error unmarshalling config: %w", err)
	}
	c.v = v

	v.WatchConfig()
	return c, nil
}

// IsOwner reports whether number is one of the configured owner numbers.
func (c *ConfigScheme) IsOwner(number string) bool {
	return slices.Contains(c.OwnerNumbers, number)
}

// IsSudo reports whether number carries the bot-admin privilege. Owners are
// implicitly sudo.
func (c *ConfigScheme) IsSudo(number string) bool {
	return c.IsOwner(number) || slices.Contains(c.SudoNumbers, number)
}

func (c *ConfigScheme) SaveConfig() error {
	if c.v == nil {
		return fmt.Errorf("config was not loaded from a file")
	}

	val := reflect.ValueOf(c).Elem()
	typ := val.Type()

	for i := range val.NumField() {
		field := typ.Field(i)
		key := field.Tag.Get("mapstructure")

		if key == "" {
			continue
		}

		c.v.Set(key, val.Field(i).Interface())
	}

	return c.v.WriteConfig()
}
