package split

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"stylesplit/config"
	"stylesplit/mozdoc"
	"stylesplit/state"
)

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	env.Cfg = cfg
	env.Format = cfg.Split.Format
	return ctx, env
}

var (
	testGlobal = mozdoc.Global{Code: "a{}"}
	testScoped = mozdoc.Scoped{Rules: []mozdoc.Rule{
		{Type: mozdoc.RuleTypeDomain, Value: "example.com"},
		{Type: mozdoc.RuleTypeUrl, Value: "http://example.org/"},
	}, Code: "b{}"}
)

func TestBuildDocumentPath(t *testing.T) {
	_, env := setupTestEnv(t)
	dst := filepath.FromSlash("/out")

	tests := []struct {
		name   string
		src    string
		noDirs bool
		format config.OutputFmt
		want   string
	}{
		{"single file", "site.user.css", false, config.OutputFmtYaml, "/out/site.yaml"},
		{"json", "site.css", false, config.OutputFmtJson, "/out/site.json"},
		{"keeps directories", "a/b/site.css", false, config.OutputFmtYaml, "/out/a/b/site.yaml"},
		{"no directories", "a/b/site.css", true, config.OutputFmtYaml, "/out/site.yaml"},
		{"transliterated", "My Style.css", false, config.OutputFmtYaml, "/out/my-style.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.NoDirs, env.Format = tt.noDirs, tt.format
			got := buildDocumentPath(filepath.FromSlash(tt.src), dst, env)
			if want := filepath.FromSlash(tt.want); got != want {
				t.Errorf("buildDocumentPath() = %q, want %q", got, want)
			}
		})
	}
}

func TestBuildSectionPath_DefaultTemplate(t *testing.T) {
	_, env := setupTestEnv(t)
	env.Format = config.OutputFmtFiles
	dst := filepath.FromSlash("/out")

	got := buildSectionPath("site.user.css", dst, 1, testGlobal, env)
	if want := filepath.FromSlash("/out/site/01-global.css"); got != want {
		t.Errorf("global = %q, want %q", got, want)
	}
	got = buildSectionPath(filepath.FromSlash("dir/site.user.css"), dst, 12, testScoped, env)
	if want := filepath.FromSlash("/out/dir/site/12-scoped-example-com.css"); got != want {
		t.Errorf("scoped = %q, want %q", got, want)
	}
}

func TestBuildSectionPath_Templates(t *testing.T) {
	_, env := setupTestEnv(t)
	env.Format = config.OutputFmtFiles
	env.Cfg.Split.FileNameTransliterate = false
	dst := filepath.FromSlash("/out")

	tests := []struct {
		name    string
		tmpl    string
		section mozdoc.Section
		want    string
	}{
		{"no template", "", testScoped, "/out/site/03-scoped.css"},
		{"flat", "{{ .Source }}-{{ .Index }}", testGlobal, "/out/site-3.css"},
		{"rules", "{{ range .Rules }}{{ .Type }}_{{ end }}", testScoped, "/out/domain_url_.css"},
		{"subdirectories", "{{ .Kind }}/{{ .Source | upper }}", testGlobal, "/out/global/SITE.css"},
		{"parent references dropped", "../../{{ .Source }}", testGlobal, "/out/site.css"},
		{"format", "{{ .Format }}/{{ .Index }}", testGlobal, "/out/files/3.css"},
		{"empty result", "{{ if false }}x{{ end }}", testGlobal, "/out/site/03-global.css"},
		{"broken template", "{{ .Source ", testGlobal, "/out/site/03-global.css"},
		{"unknown field", "{{ .Title }}", testGlobal, "/out/site/03-global.css"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.Cfg.Split.OutputNameTemplate = tt.tmpl
			got := buildSectionPath("site.css", dst, 3, tt.section, env)
			if want := filepath.FromSlash(tt.want); got != want {
				t.Errorf("buildSectionPath() = %q, want %q", got, want)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"a", []string{"a"}},
		{"a/b/c", []string{"a", "b", "c"}},
		{"/a/b/", []string{"a", "b"}},
		{"a//b", []string{"a", "b"}},
		{"./a/../b", []string{"a", "b"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		got := splitPath(filepath.FromSlash(tt.path))
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("splitPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestExpandTemplate(t *testing.T) {
	values := Values{
		Source: "site",
		Index:  2,
		Kind:   kindScoped,
		Rules:  buildRules(testScoped),
		Format: "files",
	}

	tests := []struct {
		name    string
		tmpl    string
		want    string
		wantErr bool
	}{
		{"text", "plain", "plain", false},
		{"context", "{{ .Context }}", string(config.OutputNameTemplateFieldName), false},
		{"sprig", `{{ printf "%03d" .Index }}-{{ .Kind | upper }}`, "002-SCOPED", false},
		{"first rule", "{{ (index .Rules 0).Type }}:{{ (index .Rules 0).Value }}", "domain:example.com", false},
		{"rules count", "{{ len .Rules }}", "2", false},
		{"invalid", "{{ .Source", "", true},
		{"missing field", "{{ .Title }}", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(config.OutputNameTemplateFieldName, tt.tmpl, values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandTemplate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildRules(t *testing.T) {
	if rules := buildRules(testGlobal); rules != nil {
		t.Errorf("buildRules(global) = %v", rules)
	}
	rules := buildRules(testScoped)
	if len(rules) != 2 || rules[1].Type != "url" || rules[1].Value != "http://example.org/" {
		t.Errorf("buildRules(scoped) = %v", rules)
	}
	if sectionKind(testGlobal) != kindGlobal || sectionKind(testScoped) != kindScoped {
		t.Error("sectionKind() mismatch")
	}
}
