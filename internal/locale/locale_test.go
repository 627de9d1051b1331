package locale

import (
	"testing"

	"github.com/abhisek/ideaforge/internal/pipeline"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		in   string
		want Locale
	}{
		{"", English},
		{"en", English},
		{"en-GB", English},
		{"es", Spanish},
		{"es-MX", Spanish},
		{"ja", English},
		{"not a locale!!", English},
	}
	for _, tt := range tests {
		if got := Match(tt.in); got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCatalogsCoverEveryModule(t *testing.T) {
	for _, l := range Supported() {
		c := For(l)
		for _, m := range pipeline.Modules() {
			if c.Question(m) == "" {
				t.Errorf("%s: missing question for %s", l, m)
			}
			if c.FollowUp(m) == "" {
				t.Errorf("%s: missing follow-up for %s", l, m)
			}
			if _, ok := c.Connectives[m]; !ok {
				t.Errorf("%s: missing connective for %s", l, m)
			}
			if c.ModuleName(m) == string(m) {
				t.Errorf("%s: missing display name for %s", l, m)
			}
		}
		if len(c.Quality.SpecificTerms) == 0 || len(c.Quality.GenericTerms) == 0 {
			t.Errorf("%s: empty quality vocabulary", l)
		}
	}
}

func TestForUnknownFallsBack(t *testing.T) {
	if For("xx") != For(Default) {
		t.Error("For(unknown) should return the default catalog")
	}
}

func TestLanguageNames(t *testing.T) {
	if got := Spanish.LanguageName(); got != "Spanish" {
		t.Errorf("Spanish.LanguageName() = %q", got)
	}
	if got := English.LanguageName(); got != "English" {
		t.Errorf("English.LanguageName() = %q", got)
	}
	if got := Spanish.NativeName(); got != "español" {
		t.Errorf("Spanish.NativeName() = %q", got)
	}
}
