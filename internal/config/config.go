package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"bizmatch-engine/internal/match"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Log struct {
		Level  string `yaml:"level" json:"level"`   // debug/info/warn/error
		Format string `yaml:"format" json:"format"` // json/console
	} `yaml:"log" json:"log"`

	Catalog struct {
		Files []string `yaml:"files" json:"files"`
	} `yaml:"catalog" json:"catalog"`

	Results struct {
		Sort     string `yaml:"sort" json:"sort"`
		PageSize int    `yaml:"page_size" json:"page_size"`
	} `yaml:"results" json:"results"`

	Interactions struct {
		Backend       string `yaml:"backend" json:"backend"` // sqlite/redis/memory
		RedisAddr     string `yaml:"redis_addr" json:"redis_addr"`
		RedisPassword string `yaml:"redis_password" json:"redis_password"`
		RedisDB       int    `yaml:"redis_db" json:"redis_db"`
	} `yaml:"interactions" json:"interactions"`

	Scoring match.Weights `yaml:"scoring" json:"scoring"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Default is what the engine boots with when the user has no config yet.
func Default() Config {
	var cfg Config
	cfg.App.Port = 38520
	cfg.App.DataDir = "."
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	cfg.Results.Sort = "newest"
	cfg.Results.PageSize = 9
	cfg.Interactions.Backend = "sqlite"
	cfg.Scoring = match.DefaultWeights()
	return cfg
}
