package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"ophasebot/lib/validate"
)

type Listen struct {
	Enabled  bool   `yaml:"enabled" env-default:"false"`
	BindIp   string `yaml:"bind_ip" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env-default:"8080"`
	ApiToken string `yaml:"api_token" env-default:""`
}

type DiscordConfig struct {
	Token string `yaml:"token" env:"DISCORD_TOKEN" env-default:""`
	// GuildID limits slash command registration to one guild; empty registers globally
	GuildID       string        `yaml:"guild_id" env-default:""`
	PromptTimeout time.Duration `yaml:"prompt_timeout" env-default:"15m"`
}

// OPhase is the tracked invite block. All fields are required once any is set.
type OPhase struct {
	InviteCode  string `yaml:"invite_code" validate:"required"`
	RoleName    string `yaml:"role_name" validate:"required"`
	ChannelName string `yaml:"channel_name" validate:"required"`
	Password    string `yaml:"password" validate:"required"`
}

func (o OPhase) empty() bool {
	return o == OPhase{}
}

type TelegramConfig struct {
	Enabled  bool    `yaml:"enabled" env-default:"false"`
	ApiKey   string  `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
	AdminIds []int64 `yaml:"admin_ids"`
	MinLevel string  `yaml:"min_level" env-default:"error"`
}

type MongoConfig struct {
	Enabled  bool   `yaml:"enabled" env-default:"false"`
	Host     string `yaml:"host" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env-default:"27017"`
	User     string `yaml:"user" env-default:""`
	Password string `yaml:"password" env-default:""`
	Database string `yaml:"database" env-default:"ophase"`
}

type Config struct {
	Env      string         `yaml:"env" env-default:"local"`
	Discord  DiscordConfig  `yaml:"discord"`
	OPhase   OPhase         `yaml:"o_phase"`
	Telegram TelegramConfig `yaml:"telegram"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Listen   Listen         `yaml:"listen"`
}

// OPhaseConfig returns nil when the o_phase block is absent, which disables the feature.
func (c *Config) OPhaseConfig() *OPhase {
	if c.OPhase.empty() {
		return nil
	}
	o := c.OPhase
	return &o
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	once.Do(func() {
		conf, err := Load(path)
		if err != nil {
			log.Fatal(err)
		}
		instance = conf
	})
	return instance
}

func Load(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("config: %s; %s", err, desc)
	}
	if !conf.OPhase.empty() {
		if err := validate.Struct(conf.OPhase); err != nil {
			return nil, fmt.Errorf("config: o_phase: %w", err)
		}
	}
	if conf.Discord.Token == "" {
		return nil, fmt.Errorf("config: discord token is empty")
	}
	return conf, nil
}
