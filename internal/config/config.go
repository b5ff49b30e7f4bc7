package config

import "github.com/kelseyhightower/envconfig"

// Config holds the top-level application configuration. The S3 and queue
// settings live with their packages; only cross-cutting settings go here.
type Config struct {
	Environment string `default:"production"`
	Metrics     struct {
		Address string `default:":8080" json:"address"`
	} `json:"metrics"`
}

const APP_CONF_PREFIX = "S3R"

func LoadConfig() (Config, error) {
	var conf Config
	err := envconfig.Process(APP_CONF_PREFIX, &conf)

	return conf, err
}
