package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// mergeINI overlays an INI document onto c. Each top-level section of the
// YAML layout maps to an INI section of the same name; keys missing from
// the file keep their current values.
//
//	[population]
//	size = 80
//	generation_length = 2000
//
//	[neural]
//	hidden_layers = 16, 8
func (c *Config) mergeINI(data []byte) error {
	f, err := ini.Load(data)
	if err != nil {
		return err
	}

	sections := []struct {
		name string
		dst  any
	}{
		{"world", &c.World},
		{"population", &c.Population},
		{"creature", &c.Creature},
		{"food", &c.Food},
		{"neural", &c.Neural},
		{"mutation", &c.Mutation},
		{"fitness", &c.Fitness},
		{"hall_of_fame", &c.HallOfFame},
		{"telemetry", &c.Telemetry},
	}
	for _, s := range sections {
		if !f.HasSection(s.name) {
			continue
		}
		if err := f.Section(s.name).MapTo(s.dst); err != nil {
			return fmt.Errorf("section [%s]: %w", s.name, err)
		}
	}
	return nil
}
