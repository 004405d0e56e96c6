package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sitegen/internal/generator"
)

const (
	buildSiteMessageType = "sitegen.site.build"
	diffSiteMessageType  = "sitegen.site.diff"
	cleanSiteMessageType = "sitegen.site.clean"
)

// ResultCallback receives build results produced by generator operations. The
// callback is optional and is invoked synchronously from the handler when a
// BuildResult is available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a site command execution that produced
// a BuildResult.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand executes a generator build. The content directory is fixed
// at wiring time; Slugs optionally narrows the run to the named posts.
type BuildSiteCommand struct {
	Slugs          []string       `json:"slugs,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures an explicitly supplied slug selection is well-formed.
func (m BuildSiteCommand) Validate() error {
	return validateSlugs(m.Slugs, "sitegen.site.build.slug_invalid")
}

// DiffSiteCommand performs a dry-run build to surface what would change without
// writing artifacts.
type DiffSiteCommand struct {
	Slugs          []string       `json:"slugs,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (DiffSiteCommand) Type() string { return diffSiteMessageType }

// Validate ensures an explicitly supplied slug selection is well-formed.
func (m DiffSiteCommand) Validate() error {
	return validateSlugs(m.Slugs, "sitegen.site.diff.slug_invalid")
}

func validateSlugs(slugs []string, code string) error {
	errs := validation.Errors{}
	for _, slug := range slugs {
		if strings.TrimSpace(slug) == "" {
			errs["slugs"] = validation.NewError(code, "slugs must not contain empty values")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CleanSiteCommand clears generator artifacts from the configured output store.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }

// FeatureGates exposes runtime switches used to guard handler execution.
type FeatureGates struct {
	GeneratorEnabled func() bool
}

func (g FeatureGates) generatorEnabled() bool {
	if g.GeneratorEnabled == nil {
		return false
	}
	return g.GeneratorEnabled()
}
