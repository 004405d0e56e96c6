package posts

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

func makePost(tb testing.TB, path, frontMatter string) *interfaces.Post {
	tb.Helper()
	source := "---\n" + frontMatter + "---\nbody\n"
	post, err := FromSource(path, []byte(source), time.Now())
	if err != nil {
		tb.Fatalf("FromSource(%s): %v", path, err)
	}
	return post
}

func TestValidator_AcceptsCleanBatch(t *testing.T) {
	validator := NewValidator(ValidatorConfig{}, nil)

	batch := []*interfaces.Post{
		makePost(t, "posts/a.md", "title: A\ndate: 2024-01-05\ncategories: [aws]\n"),
		makePost(t, "posts/b.md", "title: B\ndate: 2024-02-11\ncategories: [reliability]\n"),
	}

	accepted, rejected := validator.Validate(NewRegistry(), batch)
	if len(rejected) != 0 {
		t.Fatalf("unexpected rejections: %#v", rejected)
	}
	if len(accepted) != 2 {
		t.Fatalf("expected 2 accepted posts, got %d", len(accepted))
	}
}

func TestValidator_DuplicateSlugFirstWins(t *testing.T) {
	validator := NewValidator(ValidatorConfig{}, nil)

	batch := []*interfaces.Post{
		makePost(t, "posts/2024-01-05-retry-storms.md", "title: First\ndate: 2024-01-05\ncategories: [aws]\n"),
		makePost(t, "posts/2024-02-11-retry-storms.md", "title: Second\nslug: retry-storms\ndate: 2024-02-11\ncategories: [aws]\n"),
	}

	accepted, rejected := validator.Validate(NewRegistry(), batch)
	if len(accepted) != 1 || accepted[0].Title != "First" {
		t.Fatalf("expected first claimant to win, got %#v", accepted)
	}
	if len(rejected) != 1 {
		t.Fatalf("expected one rejection, got %#v", rejected)
	}
	if !errors.Is(rejected[0].Err, ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", rejected[0].Err)
	}
	if CodeOf(rejected[0].Err) != CodeSlugDuplicate {
		t.Fatalf("expected %s code, got %q", CodeSlugDuplicate, CodeOf(rejected[0].Err))
	}
}

func TestValidator_InvalidDate(t *testing.T) {
	validator := NewValidator(ValidatorConfig{}, nil)

	batch := []*interfaces.Post{
		makePost(t, "posts/a.md", "title: A\ndate: next tuesday\ncategories: [aws]\n"),
	}

	accepted, rejected := validator.Validate(NewRegistry(), batch)
	if len(accepted) != 0 {
		t.Fatalf("expected no accepted posts, got %#v", accepted)
	}
	if len(rejected) != 1 || !errors.Is(rejected[0].Err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %#v", rejected)
	}
}

func TestValidator_EmptyCategories(t *testing.T) {
	validator := NewValidator(ValidatorConfig{}, nil)

	batch := []*interfaces.Post{
		makePost(t, "posts/a.md", "title: A\ndate: 2024-01-05\ncategories: []\n"),
	}

	_, rejected := validator.Validate(NewRegistry(), batch)
	if len(rejected) != 1 || !errors.Is(rejected[0].Err, ErrMissingField) {
		t.Fatalf("expected empty categories rejection, got %#v", rejected)
	}
}

func TestValidator_RequireTags(t *testing.T) {
	batch := func() []*interfaces.Post {
		return []*interfaces.Post{
			makePost(t, "posts/a.md", "title: A\ndate: 2024-01-05\ncategories: [aws]\n"),
		}
	}

	relaxed := NewValidator(ValidatorConfig{}, nil)
	if _, rejected := relaxed.Validate(NewRegistry(), batch()); len(rejected) != 0 {
		t.Fatalf("tags should be optional by default, got %#v", rejected)
	}

	strict := NewValidator(ValidatorConfig{RequireTags: true}, nil)
	_, rejected := strict.Validate(NewRegistry(), batch())
	if len(rejected) != 1 || !errors.Is(rejected[0].Err, ErrMissingField) {
		t.Fatalf("expected tags rejection under RequireTags, got %#v", rejected)
	}
}

func TestValidator_PartialFailureKeepsBatchMoving(t *testing.T) {
	validator := NewValidator(ValidatorConfig{}, nil)

	batch := []*interfaces.Post{
		makePost(t, "posts/a.md", "title: A\ndate: 2024-01-05\ncategories: [aws]\n"),
		makePost(t, "posts/b.md", "title: B\ndate: bogus\ncategories: [aws]\n"),
		makePost(t, "posts/c.md", "title: C\ndate: 2024-03-02\ncategories: [aws]\n"),
	}

	accepted, rejected := validator.Validate(NewRegistry(), batch)
	if len(accepted) != 2 {
		t.Fatalf("expected the batch to continue past a rejection, got %#v", accepted)
	}
	if len(rejected) != 1 || rejected[0].SourcePath != "posts/b.md" {
		t.Fatalf("expected posts/b.md to be the only rejection, got %#v", rejected)
	}
}

func TestRegistry_ClaimAcrossBatches(t *testing.T) {
	registry := NewRegistry()

	if _, ok := registry.Claim("retry-storms", "posts/a.md"); !ok {
		t.Fatalf("first claim should succeed")
	}
	first, ok := registry.Claim("retry-storms", "posts/b.md")
	if ok {
		t.Fatalf("second claim should fail")
	}
	if first != "posts/a.md" {
		t.Fatalf("expected conflict to report original holder, got %q", first)
	}
	if registry.Len() != 1 {
		t.Fatalf("expected single registered slug, got %d", registry.Len())
	}
}

func TestCodeOf_UnknownError(t *testing.T) {
	if code := CodeOf(fmt.Errorf("boom")); code != "" {
		t.Fatalf("expected empty code for unrecognized error, got %q", code)
	}
}
