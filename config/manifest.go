package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/clawstrap/secret"
)

// Manifest is the YAML document shape for a custom secret table:
//
//	secrets:
//	  - id: oauth-client
//	    env: GCAL_CLIENT_SECRET_B64
//	    target: /data/secrets/client_secret.json
//
// Target paths may reference environment variables as ${VAR}.
type Manifest struct {
	Secrets []secret.Entry `yaml:"secrets"`
}

// LoadManifest reads and validates a secret manifest.
func LoadManifest(path string) ([]secret.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Secrets) == 0 {
		return nil, errors.New("manifest declares no secrets")
	}

	seen := make(map[string]struct{}, len(m.Secrets))
	entries := make([]secret.Entry, 0, len(m.Secrets))
	for i, e := range m.Secrets {
		if e.ID == "" || e.EnvVar == "" || e.Target == "" {
			return nil, fmt.Errorf("manifest entry %d: id, env, and target are required", i)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("manifest entry %d: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = struct{}{}

		target, err := secret.ExpandPath(e.Target)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %q: %w", e.ID, err)
		}
		e.Target = target
		entries = append(entries, e)
	}
	return entries, nil
}
