package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckConfigCompatibility checks that a config file written for configVersion
// can be loaded by an engine at engineVersion.
//
// Compatibility Rules:
//   - "main" on either side (development build) skips the check
//   - An empty config version means "written for this engine"
//   - Major versions must match
//   - The engine minor must be at least the config minor, configs never silently
//     enable limits an older engine does not know about
//
// Examples:
//   - Engine 1.4.0, Config 1.2.0 -> OK
//   - Engine 1.4.0, Config 1.4.9 -> OK (patch differs)
//   - Engine 1.2.0, Config 1.4.0 -> ERROR (config needs a newer engine)
//   - Engine 2.0.0, Config 1.2.0 -> ERROR (major differs)
func CheckConfigCompatibility(engineVersion, configVersion string) error {
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if engineVersion == "main" || configVersion == "main" || configVersion == "" {
		return nil
	}

	engineSemver, err := semver.NewVersion(engineVersion)
	if err != nil {
		return fmt.Errorf("invalid engine version '%s': %w", engineVersion, err)
	}

	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return fmt.Errorf("invalid config version '%s': %w", configVersion, err)
	}

	// ~MAJOR.MINOR of the config, widened to any later minor on the same major
	constraint, err := semver.NewConstraint(fmt.Sprintf(">= %d.%d.0, < %d.0.0",
		configSemver.Major(), configSemver.Minor(), configSemver.Major()+1))
	if err != nil {
		return fmt.Errorf("invalid config version constraint: %w", err)
	}

	if engineSemver.Major() != configSemver.Major() {
		return fmt.Errorf("major version mismatch: engine is %d.x.x but config requires %d.x.x",
			engineSemver.Major(), configSemver.Major())
	}

	// Prerelease engines never satisfy plain constraints, compare the core version only
	core, err := semver.NewVersion(fmt.Sprintf("%d.%d.%d", engineSemver.Major(), engineSemver.Minor(), engineSemver.Patch()))
	if err != nil {
		return fmt.Errorf("invalid engine version '%s': %w", engineVersion, err)
	}

	if !constraint.Check(core) {
		return fmt.Errorf("config requires engine %d.%d.x or newer, engine is %s",
			configSemver.Major(), configSemver.Minor(), engineSemver.String())
	}

	return nil
}
