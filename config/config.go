package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iamNilotpal/zcodec/internal/core/domain"
)

type Config struct {
	Codec CodecConfig `yaml:"codec"`
}

// CodecConfig holds codec-specific configuration.
type CodecConfig struct {
	Level              uint8  `yaml:"level"`               // Compression level (1-4)
	EncoderConcurrency uint8  `yaml:"encoder_concurrency"` // Concurrent one-shot compressions
	DecoderConcurrency uint8  `yaml:"decoder_concurrency"` // Concurrent one-shot decompressions
	MaxDecodedSize     uint64 `yaml:"max_decoded_size"`    // Allocation cap for declared content sizes
	ChunkSize          uint32 `yaml:"chunk_size"`          // Streaming working-buffer size
}

// DefaultConfig returns a Config struct with reasonable default values.
func DefaultConfig() *Config {
	return &Config{
		Codec: CodecConfig{
			Level:          2,                  // Balanced (≈ zstd level 3)
			MaxDecodedSize: 1024 * 1024 * 1024, // 1GiB
			ChunkSize:      128 * 1024,         // 128KiB
		},
	}
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// CodecOptions converts the configuration into codec options. Zero values
// stay zero and are defaulted by the codec itself.
func (c *Config) CodecOptions() *domain.CodecOptions {
	return &domain.CodecOptions{
		Level:              c.Codec.Level,
		EncoderConcurrency: c.Codec.EncoderConcurrency,
		DecoderConcurrency: c.Codec.DecoderConcurrency,
		MaxDecodedSize:     c.Codec.MaxDecodedSize,
		ChunkSize:          c.Codec.ChunkSize,
	}
}

func validateConfig(config *Config) error {
	if config.Codec.Level > 4 {
		return fmt.Errorf("level must be between 1 and 4")
	}

	if config.Codec.ChunkSize != 0 && config.Codec.ChunkSize < 4096 {
		return fmt.Errorf("chunk_size must be at least 4096 bytes")
	}

	return nil
}
