/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package core

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const defaultConfigFile = "didholder.yaml"
const configFileFlag = "configfile"

const defaultPrefix = "DIDHOLDER_"
const defaultDelimiter = "."
const configValueListSeparator = ","

// redactedConfigKeys contains the config keys of which the values are not printed by PrintConfig.
var redactedConfigKeys = []string{
	"storage.redis.password",
}

// ServerConfig has global settings.
type ServerConfig struct {
	Verbosity    string     `koanf:"verbosity"`
	LoggerFormat string     `koanf:"loggerformat"`
	Strictmode   bool       `koanf:"strictmode"`
	Datadir      string     `koanf:"datadir"`
	HTTP         HTTPConfig `koanf:"http"`
	configMap    *koanf.Koanf
}

// HTTPConfig contains configuration for the HTTP interface and outbound HTTP calls.
type HTTPConfig struct {
	// Address holds the interface address the HTTP service must be bound to, in the format of `interface:port` (e.g. localhost:5555).
	Address string `koanf:"address"`
	// CORS holds the configuration for Cross Origin Resource Sharing.
	CORS HTTPCORSConfig `koanf:"cors"`
	// Client holds the configuration for outbound HTTP calls, e.g. to credential issuers.
	Client HTTPClientConfig `koanf:"client"`
}

// HTTPClientConfig contains configuration for outbound HTTP calls.
type HTTPClientConfig struct {
	// Timeout specifies the maximum duration of a single request.
	Timeout time.Duration `koanf:"timeout"`
	// RateLimit specifies the maximum number of requests per second. Zero or less disables rate limiting.
	RateLimit float64 `koanf:"ratelimit"`
	// RateBurst specifies the number of requests that may be sent at once before rate limiting kicks in.
	RateBurst int `koanf:"rateburst"`
}

// HTTPCORSConfig contains configuration for Cross Origin Resource Sharing.
type HTTPCORSConfig struct {
	// Origin specifies the AllowOrigin option. If no origins are given CORS is considered to be disabled.
	Origin []string `koanf:"origin"`
}

// Enabled returns whether CORS is enabled according to this configuration.
func (cors HTTPCORSConfig) Enabled() bool {
	return len(cors.Origin) > 0
}

// NewServerConfig creates an initialized empty server config
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		configMap: koanf.New(defaultDelimiter),
	}
}

// Load loads the server config, following the load order of flag defaults, config file, env vars and then commandline params.
// It also configures the global logger.
func (ngc *ServerConfig) Load(flags *pflag.FlagSet) error {
	if err := loadConfigMap(ngc.configMap, flags); err != nil {
		return err
	}

	if err := ngc.configMap.UnmarshalWithConf("", ngc, koanf.UnmarshalConf{
		FlatPaths: false,
	}); err != nil {
		return err
	}

	lvl, err := logrus.ParseLevel(ngc.Verbosity)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)

	switch ngc.LoggerFormat {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid formatter: '%s'", ngc.LoggerFormat)
	}

	return nil
}

// resolveConfigFilePath resolves the path of the config file using the following sources:
// 1. commandline params (using the given flags)
// 2. environment vars,
// 3. default location.
func resolveConfigFilePath(flags *pflag.FlagSet) string {
	k := koanf.New(defaultDelimiter)

	// can't return error
	_ = k.Load(env.Provider(defaultPrefix, defaultDelimiter, envKeyToConfigKey), nil)

	// without a parser, no error can be returned
	_ = k.Load(posflag.Provider(flags, defaultDelimiter, k), nil)

	return k.String(configFileFlag)
}

// FlagSet returns the default server flags
func FlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("server", pflag.ContinueOnError)
	flagSet.String(configFileFlag, defaultConfigFile, "Config file (YAML)")
	flagSet.String("verbosity", "info", "Log level (trace, debug, info, warn, error)")
	flagSet.String("loggerformat", "text", "Log format (text, json)")
	flagSet.Bool("strictmode", false, "When set, insecure settings are forbidden. Outbound calls must use HTTPS, which most credential issuers in development setups don't offer.")
	flagSet.String("datadir", "./data", "Directory where the wallet stores its files.")
	flagSet.String("http.address", ":8282", "Address and port the HTTP API will be listening to")
	flagSet.StringSlice("http.cors.origin", nil, "When set, enables CORS from the specified origins.")
	flagSet.Duration("http.client.timeout", 30*time.Second, "Request time-out for outbound HTTP calls (e.g. '10s').")
	flagSet.Float64("http.client.ratelimit", 10, "Maximum number of outbound HTTP requests per second, 0 disables rate limiting.")
	flagSet.Int("http.client.rateburst", 5, "Number of outbound HTTP requests that may be sent at once before rate limiting applies.")
	return flagSet
}

// PrintConfig return the current config in string form
func (ngc *ServerConfig) PrintConfig() string {
	keys := ngc.configMap.Keys()
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		if slices.Contains(redactedConfigKeys, key) {
			lines = append(lines, key+" -> (redacted)")
			continue
		}
		lines = append(lines, fmt.Sprintf("%s -> %v", key, ngc.configMap.Get(key)))
	}
	return strings.Join(lines, "\n")
}

// InjectIntoEngine takes the loaded config and sets the engine's config struct
func (ngc *ServerConfig) InjectIntoEngine(e Injectable) error {
	return unmarshalRecursive([]string{strings.ToLower(e.Name())}, e.Config(), ngc.configMap)
}

func elemType(ty reflect.Type) (reflect.Type, bool) {
	if ty.Kind() == reflect.Ptr {
		return ty.Elem(), true
	}
	return ty, false
}

func unmarshalRecursive(path []string, config interface{}, configMap *koanf.Koanf) error {
	decoderConfig := koanf.UnmarshalConf{
		FlatPaths: false,
	}
	if err := configMap.UnmarshalWithConf(strings.Join(path, "."), config, decoderConfig); err != nil {
		return err
	}

	configType, isPtr := elemType(reflect.TypeOf(config))
	if configType.Kind() != reflect.Struct {
		return nil
	}
	valueOfConfig := reflect.ValueOf(config)
	if isPtr {
		valueOfConfig = valueOfConfig.Elem()
	}
	// nested structs with a koanf tag are unmarshalled separately, so pointers to structs get initialized as well
	for i := 0; i < configType.NumField(); i++ {
		field := configType.Field(i)
		fieldType, fieldIsPtr := elemType(field.Type)
		tagValue := field.Tag.Get("koanf")
		if fieldType.Kind() != reflect.Struct || tagValue == "" {
			continue
		}
		fieldValue := valueOfConfig.Field(i)
		if fieldIsPtr {
			if fieldValue.IsNil() {
				fieldValue.Set(reflect.New(fieldType))
			}
			if err := unmarshalRecursive(append(path, tagValue), fieldValue.Interface(), configMap); err != nil {
				return err
			}
			continue
		}
		if err := unmarshalRecursive(append(path, tagValue), fieldValue.Addr().Interface(), configMap); err != nil {
			return err
		}
	}
	return nil
}
