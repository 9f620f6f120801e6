package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/amberin/jobradar/internal/model"
)

// LoadProfile reads and parses the candidate profile YAML at path.
// The profile is static input: loaded once at startup, never mutated.
func LoadProfile(path string) (model.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.CandidateProfile{}, fmt.Errorf("read profile: %w", err)
	}

	var profile model.CandidateProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return model.CandidateProfile{}, fmt.Errorf("parse profile: %w", err)
	}

	if profile.Summary == "" && len(profile.Skills) == 0 {
		return model.CandidateProfile{}, fmt.Errorf("profile at %s has neither summary nor skills", path)
	}
	return profile, nil
}
