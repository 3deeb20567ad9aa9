package platforms

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

// versionRegex matches the first semantic version in a generator's --version output.
var versionRegex = regexp.MustCompile(`\d+\.\d+\.\d+`)

// parseVersionOutput extracts a semantic version from the --version output of the named generator.
func parseVersionOutput(generator string, output []byte) (*semver.Version, error) {
	versionStr := versionRegex.FindString(string(output))
	if versionStr == "" {
		return nil, errors.Errorf("could not parse %s version from output: %q", generator, string(output))
	}
	return semver.NewVersion(versionStr)
}

// CheckMinimumVersion verifies that the platform's generator satisfies its configured minimum version. If no minimum
// version is configured, the generator is not invoked.
func CheckMinimumVersion(platformConfig GeneratorConfig) error {
	minimumVersion := platformConfig.GetMinimumVersion()
	if minimumVersion == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(fmt.Sprintf(">= %s", minimumVersion))
	if err != nil {
		return errors.Wrapf(err, "invalid minimum version '%s' for platform '%s'", minimumVersion, platformConfig.Platform())
	}

	version, err := platformConfig.GetVersion()
	if err != nil {
		return err
	}

	if !constraint.Check(version) {
		return errors.Errorf("%s version %s is older than the required minimum version %s",
			platformConfig.Platform(), version, minimumVersion)
	}
	return nil
}
