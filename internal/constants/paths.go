package constants

// CLILogFileName is the name of the CLI log file, located in ~/.lint-staged/logs.
const CLILogFileName = "lint-staged.log"

// ConfigFileNames lists the project configuration files searched at the
// repository root, in lookup order. The first one found wins.
//
//nolint:gochecknoglobals // Read-only lookup table
var ConfigFileNames = []string{
	".lintstagedrc",
	".lintstagedrc.yaml",
	".lintstagedrc.yml",
	".lintstagedrc.json",
	PackageJSONFileName,
}

// PackageJSONFileName is the npm manifest that may carry a "lint-staged" key.
const PackageJSONFileName = "package.json"

// PackageJSONKey is the key holding the configuration inside package.json.
const PackageJSONKey = "lint-staged"
