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
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

func loadFromFile(configMap *koanf.Koanf, filepath string) error {
	if filepath == "" {
		return nil
	}
	// a missing config file is fine, everything can be configured through flags and env
	if err := configMap.Load(file.Provider(filepath), yaml.Parser()); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func loadFromEnv(configMap *koanf.Koanf) error {
	e := env.ProviderWithValue(defaultPrefix, defaultDelimiter, func(rawKey string, rawValue string) (string, interface{}) {
		key := envKeyToConfigKey(rawKey)

		// Support multiple values separated by a comma
		if strings.Contains(rawValue, configValueListSeparator) {
			values := strings.Split(rawValue, configValueListSeparator)
			for i, value := range values {
				values[i] = strings.TrimSpace(value)
			}
			return key, values
		}
		return key, rawValue
	})
	// errors can't occur for this provider
	return configMap.Load(e, nil)
}

func envKeyToConfigKey(rawKey string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(rawKey, defaultPrefix)), "_", defaultDelimiter)
}

// loadFromFlagSet loads flag values. Flags that weren't changed are only loaded when the key isn't set yet,
// so the first call loads the defaults and subsequent calls only apply flags given on the command line.
func loadFromFlagSet(configMap *koanf.Koanf, flags *pflag.FlagSet) error {
	return configMap.Load(posflag.Provider(flags, defaultDelimiter, configMap), nil)
}

// loadConfigMap populates the given map with values from flag defaults, the config file, environment and flags (in that order).
func loadConfigMap(configMap *koanf.Koanf, flags *pflag.FlagSet) error {
	if err := loadFromFlagSet(configMap, flags); err != nil {
		return err
	}
	if err := loadFromFile(configMap, resolveConfigFilePath(flags)); err != nil {
		return err
	}
	if err := loadFromEnv(configMap); err != nil {
		return err
	}
	return loadFromFlagSet(configMap, flags)
}
