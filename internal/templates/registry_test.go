package templates

import (
	"errors"
	"reflect"
	"testing"

	"digitalium/internal/domain"
	"digitalium/internal/domain/models/filing"
	"digitalium/internal/domain/models/org"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return registry
}

func TestNewRegistry(t *testing.T) {
	registry := newTestRegistry(t)

	if got := len(registry.ListTemplates()); got != len(org.Templates) {
		t.Errorf("expected %d templates in the catalog, got %d", len(org.Templates), got)
	}
}

func TestPreset(t *testing.T) {
	registry := newTestRegistry(t)

	t.Run("known template", func(t *testing.T) {
		preset, err := registry.Preset(org.TemplateEnterprise)
		if err != nil {
			t.Fatalf("Preset: %v", err)
		}
		if preset.DisplayName != "Entreprise" {
			t.Errorf("unexpected display name %q", preset.DisplayName)
		}
		if len(preset.Units) != 1 || preset.Units[0].Name != "Direction generale" {
			t.Errorf("unexpected unit skeleton %+v", preset.Units)
		}
	})

	t.Run("resolution is deterministic", func(t *testing.T) {
		first, err := registry.Preset(org.TemplateInstitutionMinistry)
		if err != nil {
			t.Fatalf("Preset: %v", err)
		}
		second, err := registry.Preset(org.TemplateInstitutionMinistry)
		if err != nil {
			t.Fatalf("Preset: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("resolving the same template twice returned different presets")
		}

		// Mutating a returned copy must not leak into the catalog.
		first.Units[0].Name = "mutated"
		third, err := registry.Preset(org.TemplateInstitutionMinistry)
		if err != nil {
			t.Fatalf("Preset: %v", err)
		}
		if third.Units[0].Name == "mutated" {
			t.Error("preset copy shares backing storage with the catalog")
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		if _, err := registry.Preset("cooperative"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected not found error, got %v", err)
		}
	})
}

func TestWorkflowLookups(t *testing.T) {
	registry := newTestRegistry(t)

	archive, err := registry.ArchiveWorkflows(org.TemplateInstitutionMinistry)
	if err != nil {
		t.Fatalf("ArchiveWorkflows: %v", err)
	}
	if len(archive) != 1 || archive[0].Kind != org.WorkflowArchive {
		t.Errorf("unexpected archive workflows %+v", archive)
	}
	if len(archive[0].Steps) != 4 {
		t.Errorf("expected 4 intake steps, got %d", len(archive[0].Steps))
	}

	signature, err := registry.SignatureWorkflows(org.TemplateInstitutionMinistry)
	if err != nil {
		t.Fatalf("SignatureWorkflows: %v", err)
	}
	if len(signature) != 1 || signature[0].Kind != org.WorkflowSignature {
		t.Errorf("unexpected signature workflows %+v", signature)
	}

	signers := 0
	for _, step := range signature[0].Steps {
		if step.RequiresSignature {
			signers++
		}
	}
	if signers != 2 {
		t.Errorf("expected 2 signing steps for a double-signature act, got %d", signers)
	}
}

func TestDefaultArchiveConfig(t *testing.T) {
	registry := newTestRegistry(t)

	t.Run("template override merges over global default", func(t *testing.T) {
		cfg, err := registry.DefaultArchiveConfig(org.TemplateCitizen)
		if err != nil {
			t.Fatalf("DefaultArchiveConfig: %v", err)
		}
		if cfg.DefaultRetentionYears != 3 {
			t.Errorf("expected citizen retention 3, got %d", cfg.DefaultRetentionYears)
		}
		if len(cfg.AllowedCategories) != 2 {
			t.Errorf("expected 2 allowed categories, got %d", len(cfg.AllowedCategories))
		}
		// Fields without an override keep the global default.
		if cfg.NamingPattern != "{unit}/{category}/{year}" {
			t.Errorf("unexpected naming pattern %q", cfg.NamingPattern)
		}
	})

	t.Run("template without override gets the global default", func(t *testing.T) {
		cfg, err := registry.DefaultArchiveConfig(org.TemplateInstitutionAgency)
		if err != nil {
			t.Fatalf("DefaultArchiveConfig: %v", err)
		}
		if cfg.DefaultRetentionYears != 5 {
			t.Errorf("expected global retention 5, got %d", cfg.DefaultRetentionYears)
		}
		if len(cfg.AllowedCategories) != len(filing.Categories) {
			t.Errorf("expected all categories, got %d", len(cfg.AllowedCategories))
		}
	})
}

func TestRequiresDoubleSignature(t *testing.T) {
	registry := newTestRegistry(t)

	cases := []struct {
		template org.TemplateID
		want     bool
	}{
		{org.TemplateCitizen, false},
		{org.TemplateEnterprise, false},
		{org.TemplateInstitutionMinistry, true},
		{org.TemplateInstitutionMunicipality, true},
		{org.TemplateInstitutionAgency, false},
	}
	for _, tc := range cases {
		got, err := registry.RequiresDoubleSignature(tc.template)
		if err != nil {
			t.Fatalf("RequiresDoubleSignature(%s): %v", tc.template, err)
		}
		if got != tc.want {
			t.Errorf("RequiresDoubleSignature(%s) = %v, want %v", tc.template, got, tc.want)
		}
	}
}

func TestRetentionDefault(t *testing.T) {
	registry := newTestRegistry(t)

	cases := []struct {
		category filing.ArchiveCategory
		want     int
	}{
		{filing.CategoryAdministrative, 5},
		{filing.CategoryFinancial, 10},
		{filing.CategoryLegal, 15},
		{filing.CategoryHR, 8},
		{filing.CategoryTechnical, 5},
	}
	for _, tc := range cases {
		if got := registry.RetentionDefault(tc.category); got != tc.want {
			t.Errorf("RetentionDefault(%s) = %d, want %d", tc.category, got, tc.want)
		}
	}

	// Unknown categories fall back to the global default.
	if got := registry.RetentionDefault("unknown"); got != 5 {
		t.Errorf("expected fallback retention 5, got %d", got)
	}
}
