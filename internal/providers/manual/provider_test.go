package manual_test

import (
	"context"
	"strings"
	"testing"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/manual"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers/testutil"
)

func TestManualProviderReturnsWorkflow(t *testing.T) {
	provider := manual.NewProvider()
	req := testutil.SampleRequest(models.ProviderManual)

	resp, err := provider.Run(context.Background(), &req)
	if err != nil {
		t.Fatalf("Manual provider must never fail: %v", err)
	}

	if resp.Manual == nil {
		t.Fatal("Expected a manual workflow payload")
	}
	if resp.RawText != "" {
		t.Errorf("Manual response must carry no raw text, got %q", resp.RawText)
	}
	if !strings.Contains(resp.Manual.Prompt, req.Brand) {
		t.Errorf("Prompt should reference the brand, got %q", resp.Manual.Prompt)
	}
	if !strings.Contains(resp.Manual.Prompt, "executive_snapshot") {
		t.Error("Prompt should spell out the report schema")
	}
	if len(resp.Manual.Instructions) == 0 {
		t.Fatal("Expected ordered operator instructions")
	}
	if resp.Manual.ProviderURL != manual.DefaultProviderURL {
		t.Errorf("Expected default provider URL, got %s", resp.Manual.ProviderURL)
	}
	// The last instruction must tell the operator how the output re-enters
	// the pipeline.
	last := resp.Manual.Instructions[len(resp.Manual.Instructions)-1]
	if !strings.Contains(strings.ToLower(last), "resubmit") {
		t.Errorf("Final instruction should cover resubmission, got %q", last)
	}
}

func TestManualProviderKind(t *testing.T) {
	if kind := manual.NewProvider().Kind(); kind != models.ProviderManual {
		t.Errorf("Expected manual kind, got %s", kind)
	}
}
