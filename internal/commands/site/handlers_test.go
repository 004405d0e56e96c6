package sitecmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-sitegen/internal/generator"
)

func TestSiteCommandMessages(t *testing.T) {
	if got := (BuildSiteCommand{}).Type(); got != "sitegen.site.build" {
		t.Fatalf("unexpected build message type %q", got)
	}
	if got := (DiffSiteCommand{}).Type(); got != "sitegen.site.diff" {
		t.Fatalf("unexpected diff message type %q", got)
	}
	if got := (CleanSiteCommand{}).Type(); got != "sitegen.site.clean" {
		t.Fatalf("unexpected clean message type %q", got)
	}
	if err := (BuildSiteCommand{DryRun: true}).Validate(); err != nil {
		t.Fatalf("build message without a selection should validate, got %v", err)
	}
	if err := (BuildSiteCommand{Slugs: []string{"retry-storms", "  "}}).Validate(); err == nil {
		t.Fatal("expected blank slug entry to fail validation")
	}
	if err := (DiffSiteCommand{Slugs: []string{""}}).Validate(); err == nil {
		t.Fatal("expected empty slug entry to fail validation")
	}
}

func TestBuildSiteHandler_Execute_SlugSelection(t *testing.T) {
	var capturedOpts generator.BuildOptions
	svc := &fakeGeneratorService{
		buildFunc: func(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
			capturedOpts = opts
			return &generator.BuildResult{PostsBuilt: 1}, nil
		},
	}

	handler := NewBuildSiteHandler(svc, nil, FeatureGates{GeneratorEnabled: alwaysTrue})
	cmd := BuildSiteCommand{Slugs: []string{"retry-storms"}}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute scoped build: %v", err)
	}
	if len(capturedOpts.Slugs) != 1 || capturedOpts.Slugs[0] != "retry-storms" {
		t.Fatalf("expected slug selection to propagate, got %#v", capturedOpts.Slugs)
	}
}

func TestBuildSiteHandler_Execute(t *testing.T) {
	var capturedOpts generator.BuildOptions
	callbackInvoked := false

	svc := &fakeGeneratorService{
		buildFunc: func(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
			capturedOpts = opts
			return &generator.BuildResult{PostsBuilt: 3}, nil
		},
	}

	handler := NewBuildSiteHandler(svc, nil, FeatureGates{GeneratorEnabled: alwaysTrue})

	cmd := BuildSiteCommand{
		ResultCallback: func(env ResultEnvelope) {
			callbackInvoked = true
			if env.Result == nil {
				t.Fatalf("expected build result, got nil")
			}
			if env.Result.PostsBuilt != 3 {
				t.Fatalf("expected PostsBuilt 3, got %d", env.Result.PostsBuilt)
			}
			if env.Metadata["operation"] != "build" {
				t.Fatalf("expected operation build, got %v", env.Metadata["operation"])
			}
		},
	}

	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute build: %v", err)
	}
	if capturedOpts.DryRun {
		t.Fatalf("expected DryRun false")
	}
	if !callbackInvoked {
		t.Fatal("expected callback to be invoked")
	}
}

func TestBuildSiteHandler_Execute_DryRun(t *testing.T) {
	var capturedOpts generator.BuildOptions
	svc := &fakeGeneratorService{
		buildFunc: func(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
			capturedOpts = opts
			return &generator.BuildResult{DryRun: true}, nil
		},
	}

	handler := NewBuildSiteHandler(svc, nil, FeatureGates{GeneratorEnabled: alwaysTrue})
	if err := handler.Execute(context.Background(), BuildSiteCommand{DryRun: true}); err != nil {
		t.Fatalf("execute dry run: %v", err)
	}
	if !capturedOpts.DryRun {
		t.Fatal("expected DryRun to propagate")
	}
}

func TestBuildSiteHandler_Execute_GeneratorDisabled(t *testing.T) {
	handler := NewBuildSiteHandler(&fakeGeneratorService{}, nil, FeatureGates{GeneratorEnabled: alwaysFalse})
	err := handler.Execute(context.Background(), BuildSiteCommand{})
	if !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}

func TestBuildSiteHandler_Execute_BuildError(t *testing.T) {
	sentinel := errors.New("disk full")
	svc := &fakeGeneratorService{
		buildFunc: func(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
			return &generator.BuildResult{}, sentinel
		},
	}

	callbackInvoked := false
	handler := NewBuildSiteHandler(svc, nil, FeatureGates{GeneratorEnabled: alwaysTrue})
	cmd := BuildSiteCommand{
		ResultCallback: func(env ResultEnvelope) {
			callbackInvoked = true
		},
	}

	err := handler.Execute(context.Background(), cmd)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped build error, got %v", err)
	}
	if !callbackInvoked {
		t.Fatal("callback should still fire when the build fails")
	}
}

func TestDiffSiteHandler_Execute(t *testing.T) {
	var capturedOpts generator.BuildOptions
	callbackInvoked := false

	svc := &fakeGeneratorService{
		buildFunc: func(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
			capturedOpts = opts
			return &generator.BuildResult{PostsBuilt: 2, DryRun: true}, nil
		},
	}

	handler := NewDiffSiteHandler(svc, nil, FeatureGates{GeneratorEnabled: alwaysTrue})
	cmd := DiffSiteCommand{
		ResultCallback: func(env ResultEnvelope) {
			callbackInvoked = true
			if env.Metadata["operation"] != "diff" {
				t.Fatalf("expected diff operation, got %v", env.Metadata["operation"])
			}
			if env.Result == nil || env.Result.PostsBuilt != 2 {
				t.Fatalf("unexpected diff result: %#v", env.Result)
			}
		},
	}

	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute diff: %v", err)
	}
	if !capturedOpts.DryRun {
		t.Fatal("expected DryRun to be true for diff")
	}
	if !callbackInvoked {
		t.Fatal("expected callback to be invoked")
	}
}

func TestDiffSiteHandler_Execute_GeneratorDisabled(t *testing.T) {
	handler := NewDiffSiteHandler(&fakeGeneratorService{}, nil, FeatureGates{GeneratorEnabled: alwaysFalse})
	err := handler.Execute(context.Background(), DiffSiteCommand{})
	if !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}

func TestCleanSiteHandler_Execute(t *testing.T) {
	cleanCalled := false
	svc := &fakeGeneratorService{
		cleanFunc: func(ctx context.Context) error {
			cleanCalled = true
			return nil
		},
	}

	handler := NewCleanSiteHandler(svc, nil, FeatureGates{GeneratorEnabled: alwaysTrue})
	if err := handler.Execute(context.Background(), CleanSiteCommand{}); err != nil {
		t.Fatalf("execute clean: %v", err)
	}
	if !cleanCalled {
		t.Fatal("expected Clean to be called")
	}
}

func TestCleanSiteHandler_Execute_GeneratorDisabled(t *testing.T) {
	handler := NewCleanSiteHandler(&fakeGeneratorService{}, nil, FeatureGates{GeneratorEnabled: alwaysFalse})
	err := handler.Execute(context.Background(), CleanSiteCommand{})
	if !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}

type fakeGeneratorService struct {
	buildFunc func(context.Context, generator.BuildOptions) (*generator.BuildResult, error)
	cleanFunc func(context.Context) error
}

func (f *fakeGeneratorService) Build(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	if f.buildFunc != nil {
		return f.buildFunc(ctx, opts)
	}
	return nil, nil
}

func (f *fakeGeneratorService) Clean(ctx context.Context) error {
	if f.cleanFunc != nil {
		return f.cleanFunc(ctx)
	}
	return nil
}

func alwaysTrue() bool  { return true }
func alwaysFalse() bool { return false }
