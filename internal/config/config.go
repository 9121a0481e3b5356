package config

import (
	"os"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server Server `yaml:"server"`
	Media  Media  `yaml:"media"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	SessionTTL    int    `yaml:"sessionTTL"` // hours, 0 means no expiry
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Media struct {
	Root string `yaml:"root"` // filesystem directory for stored images
	URL  string `yaml:"url"`  // public prefix the images are served under
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	config := Config{
		Server: Server{
			Listen: ":8000",
		},
		Media: Media{
			Root: "media",
			URL:  "/media",
		},
	}
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	return config, nil
}
