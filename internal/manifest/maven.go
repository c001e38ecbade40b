package manifest

import (
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/javascan-dev/javascan/domain"
)

// pomProject mirrors the subset of the POM schema the analyzer reads
type pomProject struct {
	XMLName      xml.Name        `xml:"project"`
	Properties   pomProperties   `xml:"properties"`
	Dependencies []pomDependency `xml:"dependencies>dependency"`
	Build        pomBuild        `xml:"build"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
}

type pomBuild struct {
	Plugins []pomPlugin `xml:"plugins>plugin"`
}

type pomPlugin struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// pomProperties collects <properties> children as a name/value map
type pomProperties struct {
	values map[string]string
}

func (p *pomProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	p.values = make(map[string]string)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			p.values[t.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

var propertyPlaceholder = regexp.MustCompile(`^\$\{([^}]+)\}$`)

// resolveProperty resolves simple ${name} placeholders against the same
// file's <properties> block. Properties defined elsewhere (parent poms,
// profiles) stay unresolved by design.
func resolveProperty(value string, props map[string]string) string {
	for range [5]struct{}{} {
		m := propertyPlaceholder.FindStringSubmatch(value)
		if m == nil {
			return value
		}
		resolved, ok := props[m[1]]
		if !ok {
			return value
		}
		value = resolved
	}
	return value
}

// javaVersionProperties lists the property names consulted for the declared
// language version, in priority order
var javaVersionProperties = []string{
	"maven.compiler.release",
	"maven.compiler.target",
	"maven.compiler.source",
	"java.version",
}

// MavenParse is the result of parsing a single pom.xml
type MavenParse struct {
	JavaVersion  string
	Dependencies []domain.Dependency
	BuildPlugins []domain.BuildPlugin
}

// ParseMavenFile parses one pom.xml. The returned error indicates a
// malformed file; the caller records it as a warning and keeps going.
func ParseMavenFile(root, path string) (*MavenParse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var pom pomProject
	if err := xml.Unmarshal(data, &pom); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	props := pom.Properties.values
	if props == nil {
		props = map[string]string{}
	}

	result := &MavenParse{}
	for _, name := range javaVersionProperties {
		if v, ok := props[name]; ok && v != "" {
			result.JavaVersion = v
			break
		}
	}

	source := relPath(root, path)
	for _, dep := range pom.Dependencies {
		if dep.ArtifactID == "" {
			continue
		}
		scope := dep.Scope
		if scope == "" {
			scope = "compile"
		}
		result.Dependencies = append(result.Dependencies, domain.Dependency{
			GroupID:    resolveProperty(strings.TrimSpace(dep.GroupID), props),
			ArtifactID: resolveProperty(strings.TrimSpace(dep.ArtifactID), props),
			Version:    resolveProperty(strings.TrimSpace(dep.Version), props),
			Scope:      scope,
			Ecosystem:  domain.EcosystemMaven,
			SourceFile: source,
			Severity:   domain.SeverityOK,
		})
	}

	for _, plugin := range pom.Build.Plugins {
		if plugin.ArtifactID == "" {
			continue
		}
		result.BuildPlugins = append(result.BuildPlugins, domain.BuildPlugin{
			GroupID:    resolveProperty(strings.TrimSpace(plugin.GroupID), props),
			ArtifactID: resolveProperty(strings.TrimSpace(plugin.ArtifactID), props),
			Version:    resolveProperty(strings.TrimSpace(plugin.Version), props),
		})
	}

	return result, nil
}

// ParseMaven locates and parses every pom.xml under root into one
// ManifestResult. A missing manifest is not an error: Found stays false.
func ParseMaven(root string, locator *Locator) domain.ManifestResult {
	result := domain.ManifestResult{Dependencies: []domain.Dependency{}}

	poms, _ := locator.Locate(root)
	if len(poms) == 0 {
		return result
	}
	result.Found = true

	for _, path := range poms {
		parsed, err := ParseMavenFile(root, path)
		if err != nil {
			result.Warnings = append(result.Warnings, err.Error())
			continue
		}
		if result.JavaVersion == "" {
			result.JavaVersion = parsed.JavaVersion
		}
		result.Dependencies = append(result.Dependencies, parsed.Dependencies...)
		result.BuildPlugins = append(result.BuildPlugins, parsed.BuildPlugins...)
	}

	return result
}
