package config

import (
	_ "embed"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

//go:embed default_seed.yaml
var defaultSeed []byte

// LoadSeed loads seed data from a YAML file. An empty path loads the built-in demo data.
func LoadSeed(path string) (*model.Seed, error) {
	data := defaultSeed
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, goerr.Wrap(err, "seed file not found", goerr.V("path", path))
			}
			return nil, goerr.Wrap(err, "failed to read seed file", goerr.V("path", path))
		}
		data = raw
	}

	var seed model.Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse seed file", goerr.V("path", path))
	}
	if err := seed.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid seed file", goerr.V("path", path))
	}

	return &seed, nil
}
