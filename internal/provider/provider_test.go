package provider

import (
	"context"
	"strings"
	"testing"
	"time"

	"codeberg.org/vibecode/server/internal/analyzer"
)

func fastConfig() Config {
	return Config{
		Latency:           time.Millisecond,
		RequestsPerSecond: 1000,
		Burst:             1000,
	}
}

func enrichedFor(kind string) EnrichedContext {
	return EnrichedContext{
		Request: analyzer.UserRequest{Message: "build a " + kind},
		Analysis: analyzer.IntentAnalysis{
			Intent:     analyzer.IntentCreateComponent,
			Confidence: 0.8,
			Entities:   analyzer.Entities{ComponentKind: kind},
		},
		Answers: map[string]string{
			"gap-platform": "Web",
		},
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := New(fastConfig())

	first, err := p.Generate(context.Background(), enrichedFor("dashboard"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	second, err := p.Generate(context.Background(), enrichedFor("dashboard"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if first.Code.Code != second.Code.Code {
		t.Error("identical input must produce identical code")
	}

	if first.Code.ComponentName != "Dashboard" {
		t.Errorf("expected Dashboard, got %s", first.Code.ComponentName)
	}

	if first.Code.Language != "tsx" {
		t.Errorf("expected tsx, got %s", first.Code.Language)
	}

	if first.Model == "" {
		t.Error("expected a model name")
	}
}

func TestGenerateTemplateSelection(t *testing.T) {
	p := New(fastConfig())

	tests := []struct {
		kind          string
		componentName string
	}{
		{"login form", "LoginForm"},
		{"dashboard", "Dashboard"},
		{"todo list", "TodoList"},
		{"card", "InfoCard"},
		{"button", "ActionButton"},
		{"", "GeneratedComponent"},
		{"spaceship", "GeneratedComponent"},
	}

	for _, tt := range tests {
		gen, err := p.Generate(context.Background(), enrichedFor(tt.kind))
		if err != nil {
			t.Fatalf("Generate(%q) failed: %v", tt.kind, err)
		}

		if gen.Code.ComponentName != tt.componentName {
			t.Errorf("kind %q: expected %s, got %s", tt.kind, tt.componentName, gen.Code.ComponentName)
		}
	}
}

func TestGenerateAppliesAnswers(t *testing.T) {
	p := New(fastConfig())

	enriched := enrichedFor("dashboard")
	enriched.Answers["gap-visual-style"] = "Dark"
	enriched.Answers["gap-data-shape"] = "monthly revenue"
	enriched.Answers["gap-platform"] = "Mobile (iOS)"

	gen, err := p.Generate(context.Background(), enriched)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(gen.Code.Code, "monthly revenue") {
		t.Error("expected data shape answer in generated code")
	}

	if !strings.Contains(gen.Code.Code, "390px") {
		t.Error("expected mobile width for a mobile platform answer")
	}

	if !strings.Contains(gen.Code.Code, "#111827") {
		t.Error("expected dark theme colors")
	}
}

func TestGenerateCancellation(t *testing.T) {
	cfg := fastConfig()
	cfg.Latency = 5 * time.Second
	p := New(cfg)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		_, err := p.Generate(ctx, enrichedFor("button"))
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected cancellation error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Generate did not return after cancellation")
	}
}

func TestGenerateRateLimited(t *testing.T) {
	p := New(Config{
		Latency:           0,
		RequestsPerSecond: 10,
		Burst:             1,
	})

	// first call consumes the burst token immediately
	if _, err := p.Generate(context.Background(), enrichedFor("button")); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// second call must wait for a token, so an expired context fails it
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	if _, err := p.Generate(ctx, enrichedFor("button")); err == nil {
		t.Fatal("expected rate limit error with an expired context")
	}
}
