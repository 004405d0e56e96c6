package posts

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Sentinel errors for every way a post can drop out of a build. Callers
// match with errors.Is; the wrapped form carries a text code for manifests
// and structured logs.
var (
	ErrMalformedFrontMatter = errors.New("posts: front matter block missing or unterminated")
	ErrMissingField         = errors.New("posts: required front matter field missing")
	ErrDuplicateSlug        = errors.New("posts: slug already registered")
	ErrInvalidDate          = errors.New("posts: publish date missing or unparseable")
	ErrRenderFailed         = errors.New("posts: body could not be rendered")
)

const (
	CodeFrontMatterMalformed    = "FRONTMATTER_MALFORMED"
	CodeFrontMatterMissingField = "FRONTMATTER_MISSING_FIELD"
	CodeSlugDuplicate           = "SLUG_DUPLICATE"
	CodeDateInvalid             = "DATE_INVALID"
	CodeRenderFailed            = "RENDER_FAILED"
)

func malformedFrontMatter(cause error) error {
	wrapped := ErrMalformedFrontMatter
	if cause != nil {
		wrapped = errors.Join(ErrMalformedFrontMatter, cause)
	}
	return goerrors.Wrap(wrapped, goerrors.CategoryValidation, "front matter block missing or unterminated").
		WithTextCode(CodeFrontMatterMalformed)
}

func missingField(field string) error {
	return goerrors.Wrap(ErrMissingField, goerrors.CategoryValidation, "required front matter field "+field+" is missing").
		WithTextCode(CodeFrontMatterMissingField)
}

func duplicateSlug(slug, firstSource string) error {
	return goerrors.Wrap(ErrDuplicateSlug, goerrors.CategoryValidation, "slug "+slug+" already claimed by "+firstSource).
		WithTextCode(CodeSlugDuplicate)
}

func invalidDate(raw string) error {
	return goerrors.Wrap(ErrInvalidDate, goerrors.CategoryValidation, "publish date "+raw+" is not a recognized date").
		WithTextCode(CodeDateInvalid)
}

// RenderFailure wraps a renderer error so it carries the shared rejection
// code. The generator calls this for per-post render problems.
func RenderFailure(cause error) error {
	wrapped := ErrRenderFailed
	if cause != nil {
		wrapped = errors.Join(ErrRenderFailed, cause)
	}
	return goerrors.Wrap(wrapped, goerrors.CategoryValidation, "post body could not be rendered").
		WithTextCode(CodeRenderFailed)
}

// CodeOf maps a rejection error back to its manifest code. Unrecognized
// errors report an empty code so callers can surface them verbatim.
func CodeOf(err error) string {
	switch {
	case errors.Is(err, ErrMalformedFrontMatter):
		return CodeFrontMatterMalformed
	case errors.Is(err, ErrMissingField):
		return CodeFrontMatterMissingField
	case errors.Is(err, ErrDuplicateSlug):
		return CodeSlugDuplicate
	case errors.Is(err, ErrInvalidDate):
		return CodeDateInvalid
	case errors.Is(err, ErrRenderFailed):
		return CodeRenderFailed
	default:
		return ""
	}
}
