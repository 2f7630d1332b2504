package format

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "already formatted stays same",
			input: `meta {
  name = "Solarized"
}
`,
			expected: `meta {
  name = "Solarized"
}
`,
		},
		{
			name:     "extra whitespace normalized",
			input:    `meta   {   name   =   "Solarized"   }`,
			expected: `meta { name = "Solarized" }`,
		},
		{
			name:     "empty content",
			input:    "",
			expected: "",
		},
		{
			name:     "multiple blank lines collapsed to one",
			input:    "meta { name = \"Solarized\" }\n\n\n\npalette { base03 = \"#002b36\" }",
			expected: "meta { name = \"Solarized\" }\n\npalette { base03 = \"#002b36\" }",
		},
		{
			name:     "single blank line preserved",
			input:    "meta { name = \"Solarized\" }\n\npalette { base03 = \"#002b36\" }",
			expected: "meta { name = \"Solarized\" }\n\npalette { base03 = \"#002b36\" }",
		},
		{
			name:     "blank lines after and before braces both removed",
			input:    "palette {\n\n  base03 = \"#002b36\"\n\n}",
			expected: "palette {\n  base03 = \"#002b36\"\n}",
		},
		{
			name: "palette entries aligned",
			input: `palette {
  base03 = "#002b36"
  red = "#dc322f"
  accent = brighten(palette.red, 0.1)
}
`,
			expected: `palette {
  base03 = "#002b36"
  red    = "#dc322f"
  accent = brighten(palette.red, 0.1)
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Format(tt.input)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			// Normalize line endings for comparison
			result = strings.TrimSuffix(result, "\n")
			expected := strings.TrimSuffix(tt.expected, "\n")

			if result != expected {
				t.Errorf("Format() = %q, want %q", result, expected)
			}
		})
	}
}

func TestFormatInvalidHCL(t *testing.T) {
	// hclwrite.Format should handle partial/invalid HCL gracefully
	input := `meta { name = "Solarized"`
	_, err := Format(input)
	if err != nil {
		t.Errorf("Format() on incomplete HCL should not error, got: %v", err)
	}
}

func TestYAML(t *testing.T) {
	input := "# scheme\npalette:\n    base03: \"#002b36\"\n    red:   rgb(220, 50, 47)\nsource:\n    - '#000000'\n"
	want := "# scheme\npalette:\n  base03: \"#002b36\"\n  red: rgb(220, 50, 47)\nsource:\n  - '#000000'\n"

	got, err := YAML(input)
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	if got != want {
		t.Errorf("YAML() = %q, want %q", got, want)
	}

	again, err := YAML(got)
	if err != nil {
		t.Fatalf("YAML() second pass error = %v", err)
	}
	if again != got {
		t.Errorf("YAML() not stable: %q", again)
	}
}

func TestYAMLInvalid(t *testing.T) {
	if _, err := YAML("palette: [unclosed"); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestFileDispatch(t *testing.T) {
	got, err := File("scheme.yml", "a:    1\n")
	if err != nil {
		t.Fatal(err)
	}
	if got != "a: 1\n" {
		t.Errorf("File(.yml) = %q", got)
	}

	got, err = File("scheme.hcl", "a   =   1\n")
	if err != nil {
		t.Fatal(err)
	}
	if got != "a = 1\n" {
		t.Errorf("File(.hcl) = %q", got)
	}
}
