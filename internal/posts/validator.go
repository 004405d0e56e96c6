package posts

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// ValidatorConfig toggles the optional corpus checks.
type ValidatorConfig struct {
	// RequireTags rejects posts that declare no tags. Categories are always
	// mandatory; tags only when the site configuration says so.
	RequireTags bool
}

// Validator enforces corpus-wide invariants over parsed posts. Rejections are
// local to the offending post; the batch always continues.
type Validator struct {
	cfg    ValidatorConfig
	logger interfaces.Logger
}

// Rejected pairs a failed post with the error that excluded it.
type Rejected struct {
	SourcePath string
	Err        error
}

// NewValidator constructs a validator. A nil logger falls back to no-op.
func NewValidator(cfg ValidatorConfig, logger interfaces.Logger) *Validator {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Validator{cfg: cfg, logger: logger}
}

// Validate partitions the batch into accepted posts and rejections, applying
// checks in order: slug uniqueness (first occurrence wins), date validity,
// then collection presence. The registry must cover the whole corpus before
// any decision is final, so callers pass the posts of a complete parse run.
func (v *Validator) Validate(registry *Registry, batch []*interfaces.Post) ([]*interfaces.Post, []Rejected) {
	if registry == nil {
		registry = NewRegistry()
	}

	accepted := make([]*interfaces.Post, 0, len(batch))
	var rejected []Rejected

	for _, post := range batch {
		if post == nil {
			continue
		}
		if err := v.check(registry, post); err != nil {
			v.logger.Warn("post.rejected",
				"path", post.SourcePath,
				"slug", post.Slug,
				"code", CodeOf(err),
				"error", err,
			)
			rejected = append(rejected, Rejected{SourcePath: post.SourcePath, Err: err})
			continue
		}
		accepted = append(accepted, post)
	}

	return accepted, rejected
}

func (v *Validator) check(registry *Registry, post *interfaces.Post) error {
	if first, ok := registry.Claim(post.Slug, post.SourcePath); !ok {
		return duplicateSlug(post.Slug, first)
	}

	if post.PublishDate.IsZero() {
		return invalidDate(rawDate(post))
	}

	if len(post.Categories) == 0 {
		return missingField("categories")
	}
	if v.cfg.RequireTags && len(post.Tags) == 0 {
		return missingField("tags")
	}

	return nil
}

func rawDate(post *interfaces.Post) string {
	if post.FrontMatter.Raw == nil {
		return ""
	}
	raw, ok := post.FrontMatter.Raw["date"]
	if !ok {
		return ""
	}
	if value, ok := raw.(string); ok {
		return strings.TrimSpace(value)
	}
	return fmt.Sprint(raw)
}
