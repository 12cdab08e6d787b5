package nameclean

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "uppercases and trims", raw: "  show_promo selects_vm ", want: "SHOW_PSEL_VM"},
		{name: "folds promotional selects", raw: "SHOW_PROMOTIONAL SELECTS_EM", want: "SHOW_PSEL_EM"},
		{name: "folds promoselects", raw: "SHOW_PROMOSELECTS_EM", want: "SHOW_PSEL_EM"},
		{name: "folds deleted scenes", raw: "051234_DELETED SCENES_AVP", want: "051234_DELS_AVP"},
		{name: "folds deletedscenes", raw: "051234_DELETEDSCENES_AVP", want: "051234_DELS_AVP"},
		{name: "folds graphics package", raw: "051234_GRAPHICS PACKAGE", want: "051234_GRFX"},
		{name: "folds gfxpackage", raw: "051234_GFXPACKAGE", want: "051234_GRFX"},
		{name: "collapses ampersand runs", raw: "CATS && DOGS_VM", want: "CATS AND DOGS_VM"},
		{name: "single ampersand", raw: "CATS & DOGS_VM", want: "CATS AND DOGS_VM"},
		{name: "no changes needed", raw: "051234_SHOW_EM_2", want: "051234_SHOW_EM_2"},
		{name: "empty input", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"  show_promo selects_vm ",
		"CATS && DOGS_VM",
		"051234_DELIVERABLES_AVP",
		"051234_SHOW_EM_2",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}

func TestNormalizeDoesNotFoldInsideWords(t *testing.T) {
	// PSEL boundary rules must not rewrite tokens embedded in larger words.
	got := Normalize("SHOW_SUPERDELS_VM")
	if got != "SHOW_SUPERDELS_VM" {
		t.Fatalf("Normalize rewrote an embedded token: %q", got)
	}
}

func TestTrafficCode(t *testing.T) {
	tests := []struct {
		name    string
		cleaned string
		want    string
	}{
		{name: "underscore delimiter", cleaned: "051234_SHOW_VM", want: "051234"},
		{name: "dash delimiter", cleaned: "051234-SHOW-VM", want: "051234"},
		{name: "mixed delimiters", cleaned: "051234-SHOW_VM", want: "051234"},
		{name: "no delimiter", cleaned: "051234", want: UnknownCode},
		{name: "leading delimiter", cleaned: "_SHOW_VM", want: UnknownCode},
		{name: "empty", cleaned: "", want: UnknownCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrafficCode(tt.cleaned)
			if got != tt.want {
				t.Fatalf("TrafficCode(%q) = %q, want %q", tt.cleaned, got, tt.want)
			}
		})
	}
}
