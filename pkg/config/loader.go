package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/headline/pkg/errors"
	"github.com/arthur-debert/headline/pkg/logging"
)

// ConfigFileNames are the vault-level config files, tried in order.
var ConfigFileNames = []string{".headline.toml", "headline.toml"}

var validate = validator.New()

// Load builds the effective Settings for a vault: embedded defaults,
// overridden by a vault-level config file if one exists.
func Load(vaultRoot string) (Settings, error) {
	logger := logging.GetLogger("config.loader")

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	// 2. Vault config, if present
	for _, name := range ConfigFileNames {
		path := filepath.Join(vaultRoot, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Settings{}, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded vault config")
		break
	}

	return decode(k)
}

// Default returns the built-in settings without looking at any vault file.
func Default() Settings {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		// Embedded defaults are compiled in; failing to parse them is a bug.
		panic(err)
	}
	s, err := decode(k)
	if err != nil {
		panic(err)
	}
	return s
}

func decode(k *koanf.Koanf) (Settings, error) {
	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigParse, "failed to decode settings")
	}
	if err := validate.Struct(s); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigValid, "invalid settings")
	}
	return s, nil
}
