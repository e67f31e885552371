package config

import (
	"os"
	"sync"

	"nexuscrm/logutils"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`
	Postgres struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		DBName   string `yaml:"dbname"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		SSLMode  string `yaml:"sslmode"`
		TimeZone string `yaml:"TimeZone"`
	} `yaml:"postgres"`
	Auth struct {
		AccessTokenSecret      string `yaml:"accessTokenSecret"`
		RefreshTokenSecret     string `yaml:"refreshTokenSecret"`
		AccessTokenExpiryHour  int    `yaml:"accessTokenExpiryHour"`
		RefreshTokenExpiryHour int    `yaml:"refreshTokenExpiryHour"`
	} `yaml:"auth"`
}

var (
	once   sync.Once
	config *Config
)

func GetConfig() *Config {
	once.Do(func() {
		config = initConfig()
	})
	return config
}

// initConfig reads the YAML configuration file. The path can be
// overridden with the CONFIG_PATH environment variable, which is how
// deployments mount the file from a ConfigMap.
func initConfig() *Config {
	config := &Config{}
	configPath := "./etc/config.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	err := readConfig(configPath, config)
	if err != nil {
		logutils.Log.Error("init config", err)
		panic(err)
	}
	if config.Server.Addr == "" {
		config.Server.Addr = ":7320"
	}
	if config.Auth.AccessTokenExpiryHour == 0 {
		config.Auth.AccessTokenExpiryHour = 1
	}
	if config.Auth.RefreshTokenExpiryHour == 0 {
		config.Auth.RefreshTokenExpiryHour = 168
	}
	return config
}

func readConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return err
	}
	return nil
}
