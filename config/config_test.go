package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	for scenario, tc := range map[string]struct {
		conf  Config
		valid bool
	}{
		"memory":                {Config{StorageType: STORAGE_TYPE_INMEM}, true},
		"redis":                 {Config{StorageType: STORAGE_TYPE_REDIS, RedisConfig: RedisStorageConfig{Addrs: []string{"localhost:6379"}}}, true},
		"redis without address": {Config{StorageType: STORAGE_TYPE_REDIS}, false},
		"unknown storage":       {Config{StorageType: "dynamo"}, false},
		"unknown encoding":      {Config{StorageType: STORAGE_TYPE_INMEM, EncoderDecoderType: "PROTO"}, false},
	} {
		t.Run(scenario, func(t *testing.T) {
			err := tc.conf.Validate()
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestHttpAddr(t *testing.T) {
	require.Equal(t, ":8080", Config{HttpPort: 8080}.HttpAddr())
}
