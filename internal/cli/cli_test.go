package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vehiclelookup/pkg/integrations/vehicles"
	"github.com/matzehuels/vehiclelookup/pkg/selection"
)

// upstream serves canned vehicle API responses.
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/vehicles/years":
			w.Write([]byte(`{"data":[2020,2022,2021]}`))
		case "/api/vehicles/makes":
			w.Write([]byte(`{"data":[{"id":1,"name":"Toyota"},{"id":2,"name":"Acura"}]}`))
		case "/api/vehicles/models":
			if r.URL.Query().Get("make") != "Land Rover" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(`{"data":[{"model":"Discovery"},{"model":"Defender"}]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// runCLI executes args against a config pointing at baseURL with a file
// store in a temp dir.
func runCLI(t *testing.T, baseURL string, args ...string) (string, string, error) {
	t.Helper()
	cfgPath := writeConfig(t, baseURL)
	return execute(t, New(&bytes.Buffer{}, LogInfo), append([]string{"--config", cfgPath}, args...)...)
}

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	cfg := "[api]\nbase_url = \"" + baseURL + "/api/vehicles\"\ntimeout = \"2s\"\n\n" +
		"[store]\nbackend = \"file\"\ndir = \"" + filepath.Join(dir, "selections") + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

func execute(t *testing.T, c *CLI, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, k := range []string{"VEHICLELOOKUP_BASE_URL", "VEHICLELOOKUP_STORE", "VEHICLELOOKUP_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	root := c.RootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestYearsCommand(t *testing.T) {
	srv := upstream(t)

	out, _, err := runCLI(t, srv.URL, "years")
	if err != nil {
		t.Fatalf("years error: %v", err)
	}
	i2022, i2020 := strings.Index(out, "2022"), strings.Index(out, "2020")
	if i2022 < 0 || i2020 < 0 || i2022 > i2020 {
		t.Errorf("years should be listed most recent first:\n%s", out)
	}
	if !strings.Contains(out, "3 total") {
		t.Errorf("missing count:\n%s", out)
	}
}

func TestYearsCommandJSON(t *testing.T) {
	srv := upstream(t)

	out, _, err := runCLI(t, srv.URL, "years", "--json")
	if err != nil {
		t.Fatalf("years --json error: %v", err)
	}
	var years []int
	if err := json.Unmarshal([]byte(out), &years); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(years) != 3 || years[0] != 2022 || years[2] != 2020 {
		t.Errorf("years = %v, want [2022 2021 2020]", years)
	}
}

func TestMakesCommand(t *testing.T) {
	srv := upstream(t)

	out, _, err := runCLI(t, srv.URL, "makes", "--year", "2020", "--json")
	if err != nil {
		t.Fatalf("makes error: %v", err)
	}
	var makes []string
	json.Unmarshal([]byte(out), &makes)
	if strings.Join(makes, ",") != "Acura,Toyota" {
		t.Errorf("makes = %v, want [Acura Toyota]", makes)
	}
}

func TestModelsCommand(t *testing.T) {
	srv := upstream(t)

	out, _, err := runCLI(t, srv.URL, "models", "--year", "2020", "--make", "Land Rover")
	if err != nil {
		t.Fatalf("models error: %v", err)
	}
	if strings.Index(out, "Defender") > strings.Index(out, "Discovery") {
		t.Errorf("models should be sorted:\n%s", out)
	}
}

func TestLookupCommandFailure(t *testing.T) {
	srv := upstream(t)

	_, _, err := runCLI(t, srv.URL, "models", "--year", "2020", "--make", "Nope")
	apiErr, ok := err.(*vehicles.APIError)
	if !ok {
		t.Fatalf("error = %T %v, want *vehicles.APIError", err, err)
	}
	if apiErr.Code != "FETCH_FAILED" || apiErr.Message != "Failed to fetch models" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestLookupCommandValidation(t *testing.T) {
	srv := upstream(t)

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"short year", []string{"makes", "--year", "99"}, "INVALID_YEAR"},
		{"blank make", []string{"models", "--year", "2020", "--make", "  "}, "INVALID_MAKE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, srv.URL, tt.args...)
			apiErr, ok := err.(*vehicles.APIError)
			if !ok || apiErr.Code != tt.code {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}

	if _, _, err := runCLI(t, srv.URL, "makes"); err == nil {
		t.Error("makes without --year should fail")
	}
}

func TestSelectionCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	storeDir := filepath.Join(dir, "selections")
	os.WriteFile(cfgPath, []byte("[store]\nbackend = \"file\"\ndir = \""+storeDir+"\"\n"), 0o600)

	store, err := selection.NewFileStore(storeDir)
	if err != nil {
		t.Fatal(err)
	}
	st := &vehicles.VehicleState{Years: []int{2021, 2020}}
	st.SelectYear(2020)
	st.Makes = []string{"Toyota"}
	st.SelectMake("Toyota")
	st.Models = []string{"Camry"}
	st.SelectModel("Camry")
	if err := store.Set(context.Background(), "garage", st); err != nil {
		t.Fatal(err)
	}

	run := func(args ...string) (string, error) {
		out, _, err := execute(t, New(&bytes.Buffer{}, LogInfo), append([]string{"--config", cfgPath, "--profile", "garage"}, args...)...)
		return out, err
	}

	out, err := run("selection", "show")
	if err != nil {
		t.Fatalf("selection show error: %v", err)
	}
	for _, want := range []string{"garage", "2020", "Toyota", "Camry"} {
		if !strings.Contains(out, want) {
			t.Errorf("selection show missing %q:\n%s", want, out)
		}
	}

	out, err = run("selection", "show", "--json")
	if err != nil {
		t.Fatalf("selection show --json error: %v", err)
	}
	if !strings.Contains(out, `"selectedModel": "Camry"`) {
		t.Errorf("JSON output:\n%s", out)
	}

	if _, err := run("selection", "clear"); err != nil {
		t.Fatalf("selection clear error: %v", err)
	}
	out, err = run("selection", "show")
	if err != nil {
		t.Fatalf("selection show error: %v", err)
	}
	if !strings.Contains(out, "No selection saved") {
		t.Errorf("expected empty selection message:\n%s", out)
	}
}

func TestInvalidProfile(t *testing.T) {
	srv := upstream(t)
	_, _, err := runCLI(t, srv.URL, "--profile", "../etc", "selection", "show")
	apiErr, ok := err.(*vehicles.APIError)
	if !ok || apiErr.Code != "INVALID_PROFILE" {
		t.Errorf("error = %v, want INVALID_PROFILE", err)
	}
}

func TestConfigCommands(t *testing.T) {
	srv := upstream(t)

	out, _, err := runCLI(t, srv.URL, "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	if !strings.Contains(out, srv.URL) {
		t.Errorf("config show should include the base URL:\n%s", out)
	}

	out, _, err = runCLI(t, srv.URL, "config", "path")
	if err != nil {
		t.Fatalf("config path error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "config.toml") {
		t.Errorf("config path = %q", out)
	}
}

func TestVerboseLogsLookups(t *testing.T) {
	srv := upstream(t)
	var logs bytes.Buffer
	c := New(&logs, LogInfo)

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(cfgPath, []byte("[api]\nbase_url = \""+srv.URL+"/api/vehicles\"\n"), 0o600)

	if _, _, err := execute(t, c, "--config", cfgPath, "-v", "years"); err != nil {
		t.Fatalf("years error: %v", err)
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Error("--verbose should switch to debug level")
	}
	if !strings.Contains(logs.String(), "Fetched years") {
		t.Errorf("debug log missing lookup timing:\n%s", logs.String())
	}
}

func TestLookupOverride(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.lookup = newFakeLookup()

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(cfgPath, []byte(""), 0o600)

	out, _, err := execute(t, c, "--config", cfgPath, "makes", "--year", "2021", "--json")
	if err != nil {
		t.Fatalf("makes error: %v", err)
	}
	if !strings.Contains(out, "Honda") {
		t.Errorf("output = %s", out)
	}
}

func TestFlagCompletion(t *testing.T) {
	srv := upstream(t)
	cfgPath := writeConfig(t, srv.URL)

	tests := []struct {
		name string
		args []string
		want []string
		omit []string
	}{
		{
			name: "years",
			args: []string{"makes", "--config", cfgPath, "--year", ""},
			want: []string{"2022", "2021", "2020"},
		},
		{
			name: "years by prefix",
			args: []string{"models", "--config", cfgPath, "--year", "202"},
			want: []string{"2022"},
		},
		{
			name: "makes",
			args: []string{"models", "--config", cfgPath, "--year", "2020", "--make", ""},
			want: []string{"Acura", "Toyota"},
		},
		{
			name: "makes by prefix",
			args: []string{"models", "--config", cfgPath, "--year", "2020", "--make", "to"},
			want: []string{"Toyota"},
			omit: []string{"Acura"},
		},
		{
			name: "makes without year",
			args: []string{"models", "--config", cfgPath, "--make", ""},
			omit: []string{"Acura", "Toyota"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{cobra.ShellCompRequestCmd}, tt.args...)
			out, _, err := execute(t, New(&bytes.Buffer{}, LogInfo), args...)
			if err != nil {
				t.Fatalf("completion failed: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w+"\n") {
					t.Errorf("completions missing %q:\n%s", w, out)
				}
			}
			for _, o := range tt.omit {
				if strings.Contains(out, o) {
					t.Errorf("completions contain %q:\n%s", o, out)
				}
			}
		})
	}
}

func TestCompletionScript(t *testing.T) {
	out, _, err := runCLI(t, "http://127.0.0.1:1", "completion", "bash")
	if err != nil {
		t.Fatalf("completion bash failed: %v", err)
	}
	if !strings.Contains(out, "vehiclelookup") {
		t.Errorf("bash completion does not mention vehiclelookup:\n%.200s", out)
	}
}
