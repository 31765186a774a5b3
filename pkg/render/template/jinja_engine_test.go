package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-tplhttp/pkg/render/template/jinja"
	"github.com/goliatone/go-tplhttp/pkg/testsupport"
)

//go:embed testdata/templates
var embeddedTemplates embed.FS

func TestJinjaEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("good_template.html", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestJinjaEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderString("hello {{ name }}!", map[string]any{"name": "<tide>"})
	if err != nil {
		t.Fatalf("render inline: %v", err)
	}
	if got != "hello <tide>!" {
		t.Fatalf("unexpected inline output %q", got)
	}
}

func TestJinjaEngine_NameIsNeverInlineSource(t *testing.T) {
	engine := newEngine(t)

	if _, err := engine.RenderTemplate("hello {{ name }}!", map[string]any{"name": "tide"}); err == nil {
		t.Fatalf("expected template source used as a name to fail lookup")
	}
}

func TestJinjaEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global.html", nil, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestJinjaEngine_GlobalContextRejectsScalars(t *testing.T) {
	engine := newEngine(t)

	if err := engine.GlobalContext("nope"); err == nil {
		t.Fatalf("expected scalar global context to be rejected")
	}
}

func TestJinjaEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}
	if err := engine.RegisterFilter("upper", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected builtin filter name to be rejected")
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter.html", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
}

func TestJinjaEngine_RegisterFilterParamAndError(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("suffix", func(input any, param any) (any, error) {
		if param == nil {
			return nil, fmt.Errorf("missing suffix")
		}
		return fmt.Sprint(input) + fmt.Sprint(param), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	got, err := engine.RenderString(`{{ name|suffix("!") }}`, map[string]any{"name": "Ada"})
	if err != nil || got != "Ada!" {
		t.Fatalf("render with param = %q, %v", got, err)
	}

	if _, err := engine.RenderString(`{{ name|suffix }}`, map[string]any{"name": "Ada"}); err == nil ||
		!strings.Contains(err.Error(), "missing suffix") {
		t.Fatalf("expected filter error to surface, got %v", err)
	}
}

func TestJinjaEngine_LoopAndSetBindings(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("loop.html", map[string]any{"items": []string{"a", "b"}})
	if err != nil {
		t.Fatalf("render loop: %v", err)
	}

	testsupport.AssertGolden(t, filepath.Join("testdata", "loop.golden"), got)
}

func TestJinjaEngine_ExtendsAndInclude(t *testing.T) {
	engine := newEngine(t, jinja.WithGlobalData(map[string]any{"site": "tplhttp"}))

	got, err := engine.RenderTemplate("page.html", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}

	testsupport.AssertGolden(t, filepath.Join("testdata", "page.golden"), got)
}

func TestJinjaEngine_StrictVariables(t *testing.T) {
	engine := newEngine(t)

	var buf strings.Builder
	got, err := engine.RenderTemplate("good_template.html", map[string]any{"framework": "tide"}, &buf)
	if err == nil {
		t.Fatalf("expected undefined variable error, got output %q", got)
	}
	if got != "" || buf.Len() != 0 {
		t.Fatalf("expected no partial output, got %q / %q", got, buf.String())
	}
	if !strings.Contains(err.Error(), `"name"`) {
		t.Fatalf("expected error to name the variable, got %v", err)
	}
	if !strings.Contains(err.Error(), "good_template.html") {
		t.Fatalf("expected error to name the template, got %v", err)
	}
}

func TestJinjaEngine_StrictVariablesInChain(t *testing.T) {
	engine := newEngine(t)

	_, err := engine.RenderTemplate("page.html", map[string]any{"name": "Ada"})
	if err == nil || !strings.Contains(err.Error(), `"site"`) {
		t.Fatalf("expected undefined site from parent layout, got %v", err)
	}
}

func TestJinjaEngine_StrictVariablesEveryPosition(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		data    map[string]any
		missing string
	}{
		{
			name:    "later operand",
			source:  "{{ greeting ~ name }}",
			data:    map[string]any{"greeting": "hi "},
			missing: "name",
		},
		{
			name:    "filter argument",
			source:  `{{ title|replace("x", suffix) }}`,
			data:    map[string]any{"title": "x"},
			missing: "suffix",
		},
		{
			name:    "loop source",
			source:  "{% for item in items %}{{ item }}{% endfor %}",
			missing: "items",
		},
		{
			name:    "attribute of defined map",
			source:  "{{ user.name }}",
			data:    map[string]any{"user": map[string]any{}},
			missing: "name",
		},
		{
			name:    "negated name",
			source:  "{{ not flag }}",
			missing: "flag",
		},
		{
			name:    "loop variable after loop",
			source:  "{% for item in items %}{% endfor %}{{ item }}",
			data:    map[string]any{"items": []string{"a"}},
			missing: "item",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newEngine(t, jinja.WithFS(fstest.MapFS{"case.txt": {Data: []byte(tc.source)}}))

			got, err := engine.RenderTemplate("case.txt", tc.data)
			if err == nil {
				t.Fatalf("expected undefined %s to fail, got %q", tc.missing, got)
			}
			if !strings.Contains(err.Error(), tc.missing) {
				t.Fatalf("expected error to mention %q, got %v", tc.missing, err)
			}
		})
	}
}

func TestJinjaEngine_GuardedUndefinedNames(t *testing.T) {
	cases := []struct {
		name   string
		source string
		data   map[string]any
		want   string
	}{
		{
			name:   "if guard",
			source: "{% if user %}hi {{ user }}{% endif %}ok",
			want:   "ok",
		},
		{
			name:   "if guard else",
			source: "{% if user %}{{ user }}{% else %}anon{% endif %}",
			want:   "anon",
		},
		{
			name:   "elif guard",
			source: "{% if admin %}{{ admin }}{% elif user %}{{ user }}{% else %}none{% endif %}",
			data:   map[string]any{"user": "ada"},
			want:   "ada",
		},
		{
			name:   "negated guard",
			source: "{% if not user %}anon{% endif %}",
			want:   "anon",
		},
		{
			name:   "attribute guard",
			source: "{% if user.name and user.name != '' %}{{ user.name }}{% endif %}.",
			data:   map[string]any{"user": map[string]any{}},
			want:   ".",
		},
		{
			name:   "defined test",
			source: "{% if user is defined %}{{ user }}{% else %}none{% endif %}",
			want:   "none",
		},
		{
			name:   "default filter",
			source: `{{ user|default("anon") }}`,
			want:   "anon",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newEngine(t, jinja.WithFS(fstest.MapFS{"case.txt": {Data: []byte(tc.source)}}))

			got, err := engine.RenderTemplate("case.txt", tc.data)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestJinjaEngine_GuardedBodyStillStrict(t *testing.T) {
	engine := newEngine(t, jinja.WithFS(fstest.MapFS{
		"case.txt": {Data: []byte("{% if user %}{{ user.missing }}{% endif %}")},
	}))

	if _, err := engine.RenderTemplate("case.txt", map[string]any{"user": map[string]any{"name": "ada"}}); err == nil {
		t.Fatalf("expected undefined attribute inside a taken branch to fail")
	}
}

func TestJinjaEngine_ComparisonOnUndefinedFails(t *testing.T) {
	engine := newEngine(t, jinja.WithFS(fstest.MapFS{
		"case.txt": {Data: []byte("{% if count > 1 %}many{% endif %}")},
	}))

	if _, err := engine.RenderTemplate("case.txt", nil); err == nil {
		t.Fatalf("expected comparison against an undefined name to fail")
	}
}

func TestJinjaEngine_StrictIgnoresCommentsAndDefaults(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("comment.html", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render comment template: %v", err)
	}
	if got != "untitled|Ada\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestJinjaEngine_StrictDisabled(t *testing.T) {
	engine := newEngine(t, jinja.WithStrictVariables(false))

	got, err := engine.RenderTemplate("good_template.html", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "hello !\n" {
		t.Fatalf("unexpected lenient output %q", got)
	}
}

func TestJinjaEngine_AutoescapeBySuffix(t *testing.T) {
	engine := newEngine(t)

	cases := []struct {
		name string
		data map[string]any
		want string
	}{
		{name: "note.txt", data: map[string]any{"heart": "<3"}, want: "Tom & Jerry <3\n"},
		{name: "data.json", data: map[string]any{"title": "a<b"}, want: `{"title": "a<b"}` + "\n"},
		{name: "good_template.html", data: map[string]any{"name": "Tom & Jerry"}, want: "hello Tom &amp; Jerry!\n"},
		{name: "no_extension", data: map[string]any{"name": "<b>"}, want: "hello <b>!\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.RenderTemplate(tc.name, tc.data)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestJinjaEngine_AutoescapeOverride(t *testing.T) {
	engine := newEngine(t, jinja.WithAutoescape(".txt"))

	got, err := engine.RenderTemplate("good_template.html", map[string]any{"name": "<b>"})
	if err != nil || got != "hello <b>!\n" {
		t.Fatalf("html render = %q, %v", got, err)
	}

	got, err = engine.RenderTemplate("note.txt", map[string]any{"heart": "<3"})
	if err != nil || got != "Tom & Jerry &lt;3\n" {
		t.Fatalf("txt render = %q, %v", got, err)
	}

	if jinja.DefaultAutoescape[0] != ".html" {
		t.Fatalf("override must not modify the default suffixes, got %v", jinja.DefaultAutoescape)
	}
}

func TestJinjaEngine_AutoescapeSuffixIsCaseSensitive(t *testing.T) {
	engine := newEngine(t, jinja.WithFS(fstest.MapFS{"PAGE.HTML": {Data: []byte("{{ v }}")}}))

	got, err := engine.RenderTemplate("PAGE.HTML", map[string]any{"v": "<i>"})
	if err != nil || got != "<i>" {
		t.Fatalf("render = %q, %v", got, err)
	}
}

func TestJinjaEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)

	if _, err := engine.RenderTemplate("missing.html", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestJinjaEngine_Extension(t *testing.T) {
	engine := newEngine(t, jinja.WithExtension("html"))

	got, err := engine.RenderTemplate("good_template", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "hello Ada!\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestJinjaEngine_GlobLoadsEagerly(t *testing.T) {
	engine := newEngine(t, jinja.WithGlob("good_template.html", "**/base.html", "partials/*.html"))

	names := engine.Templates()
	for _, want := range []string{"good_template.html", "layouts/base.html", "partials/greeting.html"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected %q to be loaded, got %v", want, names)
		}
	}
	for _, name := range names {
		if name == "no_extension" {
			t.Fatalf("glob should not load %q", name)
		}
	}
}

func TestJinjaEngine_GlobReportsParseErrors(t *testing.T) {
	files := fstest.MapFS{
		"ok.html":     {Data: []byte("{{ name }}")},
		"broken.html": {Data: []byte("{% for x in %}")},
	}

	if _, err := jinja.New(jinja.WithFS(files), jinja.WithGlob("*.html")); err == nil {
		t.Fatalf("expected parse error from eager loading")
	}
}

func TestJinjaEngine_Reload(t *testing.T) {
	files := fstest.MapFS{
		"page.html": {Data: []byte("v1 {{ name }}")},
	}
	engine, err := jinja.New(jinja.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("page.html", map[string]any{"name": "a"})
	if err != nil || got != "v1 a" {
		t.Fatalf("first render = %q, %v", got, err)
	}

	files["page.html"] = &fstest.MapFile{Data: []byte("v2 {{ name }}")}
	got, _ = engine.RenderTemplate("page.html", map[string]any{"name": "a"})
	if got != "v1 a" {
		t.Fatalf("expected cached template before reload, got %q", got)
	}

	if err := engine.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, err = engine.RenderTemplate("page.html", map[string]any{"name": "a"})
	if err != nil || got != "v2 a" {
		t.Fatalf("render after reload = %q, %v", got, err)
	}
}

func TestJinjaEngine_SanitizeAndMarkdownFilters(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderString(`{{ body|sanitize }}`, map[string]any{
		"body": `<b>bold</b><script>alert(1)</script>`,
	})
	if err != nil {
		t.Fatalf("render sanitize: %v", err)
	}
	if got != "<b>bold</b>" {
		t.Fatalf("unexpected sanitized output %q", got)
	}

	got, err = engine.RenderString(`{{ notes|markdown }}`, map[string]any{
		"notes": "# Title\n\n<script>x</script>",
	})
	if err != nil {
		t.Fatalf("render markdown: %v", err)
	}
	if !strings.Contains(got, "Title</h1>") {
		t.Fatalf("expected heading markup, got %q", got)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected script to be stripped, got %q", got)
	}
}

func TestJinjaEngine_SanitizedOutputIsNotEscapedAgain(t *testing.T) {
	engine := newEngine(t, jinja.WithFS(fstest.MapFS{"post.html": {Data: []byte("{{ body|sanitize }}")}}))

	got, err := engine.RenderTemplate("post.html", map[string]any{"body": "<em>hi</em>"})
	if err != nil || got != "<em>hi</em>" {
		t.Fatalf("render = %q, %v", got, err)
	}
}

func TestJinjaEngine_StructData(t *testing.T) {
	engine := newEngine(t)

	type person struct {
		Name string `json:"name"`
	}
	got, err := engine.RenderTemplate("good_template.html", &person{Name: "Grace"})
	if err != nil {
		t.Fatalf("render struct data: %v", err)
	}
	if got != "hello Grace!\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestJinjaEngine_ConcurrentRenders(t *testing.T) {
	engine := newEngine(t)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("user-%d", i)
			got, err := engine.RenderTemplate("good_template.html", map[string]any{"name": name})
			if err != nil {
				errs <- err
				return
			}
			if got != "hello "+name+"!\n" {
				errs <- fmt.Errorf("unexpected output %q", got)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatal(err)
	}
}

func TestJinjaEngine_ConcurrentConstruction(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			engine, err := jinja.New(jinja.WithFS(fstest.MapFS{
				"post.txt": {Data: []byte("{{ body|markdown }}")},
			}))
			if err != nil {
				errs <- err
				return
			}
			got, err := engine.RenderTemplate("post.txt", map[string]any{"body": "*hi*"})
			if err != nil {
				errs <- err
				return
			}
			if !strings.Contains(got, "<em>hi</em>") {
				errs <- fmt.Errorf("unexpected output %q", got)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatal(err)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := jinja.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
	if _, err := jinja.New(jinja.WithBaseDir(filepath.Join("testdata", "missing"))); err == nil {
		t.Fatalf("expected error for a missing base dir")
	}
}

func newEngine(t *testing.T, opts ...jinja.Option) *jinja.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := jinja.New(append([]jinja.Option{jinja.WithFS(templatesFS)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
