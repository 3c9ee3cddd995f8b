package infra_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/Altair29/J-GLOW-sub002/internal/constants"
	"github.com/Altair29/J-GLOW-sub002/internal/infra"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListAnswerFilePaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.yaml"), "answers: {}")
	writeFile(t, filepath.Join(dir, "nested", "a.YML"), "answers: {}")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	loader := infra.NewAnswerFileLoader(constants.GetAnswerFileExtensions())
	got, err := loader.ListAnswerFilePaths(dir)
	if err != nil {
		t.Fatalf("ListAnswerFilePaths: %v", err)
	}
	want := []string{filepath.Join(dir, "b.yaml"), filepath.Join(dir, "nested", "a.YML")}
	if !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestLoadAnswerFile(t *testing.T) {
	dir := t.TempDir()
	loader := infra.NewAnswerFileLoader(constants.GetAnswerFileExtensions())

	ok := filepath.Join(dir, "ok.yaml")
	writeFile(t, ok, `
session_id: 6f1c2d3e-4b5a-4c7d-8e9f-0a1b2c3d4e5f
answers:
  worker_name: NGUYEN VAN A
  rest_days: [土曜日, 日曜日]
  overtime_exists: true
`)
	file, err := loader.LoadAnswerFile(ok)
	if err != nil {
		t.Fatalf("LoadAnswerFile: %v", err)
	}
	if file.Path != ok || file.Answers["worker_name"] != "NGUYEN VAN A" || file.Answers["overtime_exists"] != true {
		t.Errorf("file = %+v", file)
	}

	for name, content := range map[string]string{
		"no_answers.yaml":  "session_id: 6f1c2d3e-4b5a-4c7d-8e9f-0a1b2c3d4e5f\n",
		"bad_session.yaml": "session_id: abc\nanswers:\n  worker_name: x\n",
		"broken.yaml":      "answers: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			writeFile(t, path, content)
			if _, err := loader.LoadAnswerFile(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadActionScript(t *testing.T) {
	dir := t.TempDir()
	loader := infra.NewAnswerFileLoader(constants.GetAnswerFileExtensions())

	path := filepath.Join(dir, "script.yaml")
	writeFile(t, path, `
name: 育成就労の転籍条項
steps:
  - action: set
    key: visa_category
    value: 育成就労
  - action: next
  - action: jump
    step: 1
  - action: generate
`)
	script, err := loader.LoadActionScript(path)
	if err != nil {
		t.Fatalf("LoadActionScript: %v", err)
	}
	if len(script.Steps) != 4 || script.Steps[2].Step != 1 || script.Steps[0].Value != "育成就労" {
		t.Errorf("script = %+v", script)
	}

	invalid := map[string]string{
		"jump without step": "steps:\n  - action: jump\n",
		"set without key":   "steps:\n  - action: set\n    value: x\n",
		"unknown action":    "steps:\n  - action: submit\n",
		"no steps":          "name: empty\n",
	}
	for name, content := range invalid {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(dir, "invalid.yaml")
			writeFile(t, p, content)
			if _, err := loader.LoadActionScript(p); err == nil {
				t.Error("expected error")
			}
		})
	}
}
