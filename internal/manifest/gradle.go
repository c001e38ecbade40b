package manifest

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/javascan-dev/javascan/domain"
)

// Gradle build scripts are Groovy or Kotlin programs, so there is no schema
// to unmarshal; dependency extraction is line-oriented pattern matching over
// the common declaration styles.

const gradleConfigurations = `implementation|api|compile|testImplementation|testCompile|testApi|compileOnly|runtimeOnly|testRuntimeOnly|annotationProcessor`

var (
	gradleStringDep  = regexp.MustCompile(`^\s*(?:` + gradleConfigurations + `)\s*[(\s]\s*['"]([^'"]+)['"]`)
	gradleMapDep     = regexp.MustCompile(`^\s*(?:` + gradleConfigurations + `)\s*\(?\s*group\s*[:=]\s*['"]([^'"]+)['"]\s*,\s*name\s*[:=]\s*['"]([^'"]+)['"](?:\s*,\s*version\s*[:=]\s*['"]([^'"]+)['"])?`)
	gradleCatalogDep = regexp.MustCompile(`^\s*(?:` + gradleConfigurations + `)\s*\(?\s*(libs\.[\w.]+)`)

	gradleCompat    = regexp.MustCompile(`(?:sourceCompatibility|targetCompatibility)\s*=?\s*['"]?(?:JavaVersion\.VERSION_)?([0-9][0-9_.]*)`)
	gradleToolchain = regexp.MustCompile(`languageVersion(?:\.set)?\s*[=(]\s*JavaLanguageVersion\.of\(\s*(\d+)\s*\)`)
	gradlePluginID  = regexp.MustCompile(`^\s*id\s*\(?\s*['"]([^'"]+)['"]`)
)

// GradleParse is the result of parsing a single build.gradle(.kts)
type GradleParse struct {
	JavaVersion  string
	Dependencies []domain.Dependency
	Plugins      []string
}

// ParseGradleFile parses one Gradle build script line by line
func ParseGradleFile(root, path string) (*GradleParse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	result := &GradleParse{}
	source := relPath(root, path)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") {
			continue
		}

		if m := gradleStringDep.FindStringSubmatch(line); m != nil {
			if dep, ok := splitCoordinate(m[1], source); ok {
				result.Dependencies = append(result.Dependencies, dep)
			}
			continue
		}
		if m := gradleMapDep.FindStringSubmatch(line); m != nil {
			result.Dependencies = append(result.Dependencies, domain.Dependency{
				GroupID:    m[1],
				ArtifactID: m[2],
				Version:    m[3],
				Ecosystem:  domain.EcosystemGradle,
				SourceFile: source,
				Severity:   domain.SeverityOK,
			})
			continue
		}
		if m := gradleCatalogDep.FindStringSubmatch(line); m != nil {
			// Version catalog references resolve in libs.versions.toml or
			// buildSrc; the declared version is unknown here, and guessing
			// would be worse than saying so.
			result.Dependencies = append(result.Dependencies, domain.Dependency{
				ArtifactID: m[1],
				Ecosystem:  domain.EcosystemGradle,
				SourceFile: source,
				Severity:   domain.SeverityOK,
				Note:       "declared via version catalog; version not resolved",
			})
			continue
		}

		if result.JavaVersion == "" {
			if m := gradleToolchain.FindStringSubmatch(line); m != nil {
				result.JavaVersion = m[1]
			} else if m := gradleCompat.FindStringSubmatch(line); m != nil {
				result.JavaVersion = strings.ReplaceAll(m[1], "_", ".")
			}
		}

		if m := gradlePluginID.FindStringSubmatch(line); m != nil {
			result.Plugins = append(result.Plugins, m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scan %s: %w", path, err)
	}

	return result, nil
}

// splitCoordinate splits a group:artifact:version[:classifier] string
func splitCoordinate(coordinate, source string) (domain.Dependency, bool) {
	parts := strings.Split(coordinate, ":")
	if len(parts) < 2 {
		return domain.Dependency{}, false
	}
	dep := domain.Dependency{
		GroupID:    parts[0],
		ArtifactID: parts[1],
		Ecosystem:  domain.EcosystemGradle,
		SourceFile: source,
		Severity:   domain.SeverityOK,
	}
	if len(parts) > 2 {
		dep.Version = parts[2]
	}
	return dep, true
}

// ParseGradle locates and parses every build.gradle(.kts) under root
func ParseGradle(root string, locator *Locator) domain.ManifestResult {
	result := domain.ManifestResult{Dependencies: []domain.Dependency{}}

	_, gradles := locator.Locate(root)
	if len(gradles) == 0 {
		return result
	}
	result.Found = true

	for _, path := range gradles {
		parsed, err := ParseGradleFile(root, path)
		if err != nil {
			result.Warnings = append(result.Warnings, err.Error())
			if parsed == nil {
				continue
			}
		}
		if result.JavaVersion == "" {
			result.JavaVersion = parsed.JavaVersion
		}
		result.Dependencies = append(result.Dependencies, parsed.Dependencies...)
		result.Plugins = append(result.Plugins, parsed.Plugins...)
	}

	return result
}
