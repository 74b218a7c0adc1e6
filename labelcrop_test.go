package labelcrop

import (
	"strings"
	"testing"

	"github.com/tsawler/labelcrop/batch"
	"github.com/tsawler/labelcrop/crop"
)

func TestOpen_NonexistentFile(t *testing.T) {
	_, _, err := Open("nonexistent.pdf").Labels()
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestOpen_NoFilename(t *testing.T) {
	_, _, err := Open("").Labels()
	if err == nil {
		t.Error("expected error for empty filename")
	}
}

func TestConfigurationMethodsReturnNewInstance(t *testing.T) {
	base := Open("sheet.pdf")
	configured := base.Columns(4).Padding(10, 12).MinDigits(10).Parallel(8)

	if base == configured {
		t.Fatal("chain must not return the same instance")
	}
	if base.options.columns != 0 {
		t.Errorf("base columns mutated to %d", base.options.columns)
	}
	if configured.options.columns != 4 {
		t.Errorf("configured columns = %d, want 4", configured.options.columns)
	}
	if !configured.options.parallel || configured.options.workers != 8 {
		t.Errorf("parallel options = %v/%d, want true/8", configured.options.parallel, configured.options.workers)
	}
}

func TestInvalidOptionsFailFast(t *testing.T) {
	tests := []struct {
		name string
		ext  *Extractor
	}{
		{"zero columns", Open("x.pdf").Columns(0)},
		{"unknown grammar", Open("x.pdf").Grammar("nope")},
		{"negative reference", Open("x.pdf").FixedReference(-1, 10)},
		{"zero zoom", Open("x.pdf").Zoom(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ext.err == nil {
				t.Fatal("expected an accumulated option error")
			}
			if _, _, err := tt.ext.Labels(); err == nil {
				t.Error("terminal call must surface the option error")
			}
		})
	}
}

func TestRunConfig_PolicyMapping(t *testing.T) {
	tests := []struct {
		name       string
		ext        *Extractor
		wantPolicy crop.Policy
		wantWidth  float64
	}{
		{"fixed reference", Open("x.pdf").FixedReference(100, 50), crop.PolicyFixedReference, 100},
		{"first seen", Open("x.pdf").FirstSeenReference(), crop.PolicyFirstSeen, 0},
		{"none", Open("x.pdf").NoNormalize(), crop.PolicyNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := tt.ext.runConfig()
			if config.Normalizer == nil {
				t.Fatal("expected a configured normalizer")
			}
			got := config.Normalizer.Config()
			if got.Policy != tt.wantPolicy {
				t.Errorf("policy = %v, want %v", got.Policy, tt.wantPolicy)
			}
			if tt.wantWidth > 0 && got.ReferenceWidth != tt.wantWidth {
				t.Errorf("reference width = %f, want %f", got.ReferenceWidth, tt.wantWidth)
			}
		})
	}
}

func TestRunConfig_DefaultLeavesBatchDefaults(t *testing.T) {
	config := Open("x.pdf").runConfig()
	if config.Clusterer != nil || config.Grammar != nil || config.Locator != nil || config.Normalizer != nil {
		t.Errorf("default chain must defer to batch defaults, got %+v", config)
	}
}

func TestGrammarSelection(t *testing.T) {
	ext := Open("x.pdf").Grammar("referencia")
	if ext.err != nil {
		t.Fatalf("Grammar(referencia) error = %v", ext.err)
	}
	config := ext.runConfig()
	if config.Grammar == nil || config.Grammar.Name() != "referencia" {
		t.Errorf("grammar not resolved from registry: %+v", config.Grammar)
	}
}

func TestFormatWarnings(t *testing.T) {
	warnings := []Warning{
		{PageIndex: 0, Message: "text fragments: broken stream"},
		{PageIndex: 4, Message: "render: crop failed"},
	}
	got := FormatWarnings(warnings)
	if !strings.Contains(got, "page 1:") || !strings.Contains(got, "page 5:") {
		t.Errorf("FormatWarnings() = %q", got)
	}
	if len(strings.Split(got, "\n")) != 2 {
		t.Errorf("want one line per warning, got %q", got)
	}
}

func TestMustPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(Open("nonexistent.pdf").PageCount())
}

func TestMustLabelsPassesValueThrough(t *testing.T) {
	labels := []batch.Label{{Key: "C50039 0007 0001"}}
	got := MustLabels(labels, nil, nil)
	if len(got) != 1 || got[0].Key != "C50039 0007 0001" {
		t.Errorf("MustLabels() = %+v", got)
	}
}
