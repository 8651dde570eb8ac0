package config

import (
	"fmt"
	"time"

	"github.com/bonitasoft/bonita-engine-sub039/analytics"
)

type StorageType string

const STORAGE_TYPE_REDIS StorageType = "redis"
const STORAGE_TYPE_INMEM StorageType = "memory"

type EncoderDecoderType string

const JSON_ENCODER_DECODER EncoderDecoderType = "JSON"
const YAML_ENCODER_DECODER EncoderDecoderType = "YAML"

type Config struct {
	RedisConfig        RedisStorageConfig
	HttpPort           int
	StorageType        StorageType
	EncoderDecoderType EncoderDecoderType
	AnalyticsConfig    analytics.DataCollectorConfig
	LogLevel           string
	TransientDataTTL   time.Duration
}

type RedisStorageConfig struct {
	Addrs     []string
	Namespace string
	PoolSize  int
	Password  string
}

func (c Config) HttpAddr() string {
	return fmt.Sprintf(":%d", c.HttpPort)
}

func (c Config) Validate() error {
	switch c.StorageType {
	case STORAGE_TYPE_INMEM:
	case STORAGE_TYPE_REDIS:
		if len(c.RedisConfig.Addrs) == 0 {
			return fmt.Errorf("redis storage needs at least one address")
		}
	default:
		return fmt.Errorf("unknown storage type %s", c.StorageType)
	}
	switch c.EncoderDecoderType {
	case "", JSON_ENCODER_DECODER, YAML_ENCODER_DECODER:
	default:
		return fmt.Errorf("unknown encoder decoder %s", c.EncoderDecoderType)
	}
	return nil
}
