package config

type MapsConfig struct {
	Provider string        `yaml:"provider"`
	Google   *GoogleConfig `yaml:"google"`
	Region   string        `yaml:"region"`
	Language string        `yaml:"language"`
}

type GoogleConfig struct {
	APIKey string `yaml:"api_key"`
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		Provider: getEnv("MAPS_PROVIDER", "google"),
		Google: &GoogleConfig{
			APIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		},
		Region:   getEnv("MAPS_REGION", "in"),
		Language: getEnv("MAPS_LANGUAGE", "en"),
	}
}
