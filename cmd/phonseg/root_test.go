package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/phonseg/internal/config"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"segment", "labels", "inventory"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q not found in root", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("expected --config persistent flag to be registered")
	}
}

func TestTraceLevel(t *testing.T) {
	if traceLevel("debug") != tracing.LevelDebug || traceLevel("INFO") != tracing.LevelInfo {
		t.Errorf("unexpected trace level mapping")
	}
	if traceLevel("whatever") != tracing.LevelError {
		t.Errorf("expected unknown levels to map to error")
	}
}

func TestRequireConfig_FailsWhenNotInitialized(t *testing.T) {
	orig := activeCfg
	t.Cleanup(func() { activeCfg = orig })
	activeCfg = config.Config{}
	if _, err := requireConfig(); err == nil {
		t.Fatal("expected error when config is not loaded")
	}
}

func TestSegmentCmd(t *testing.T) {
	input := "tɕʰi˧ | ʈʂʰæ˩ [laughs]\ndʑo˩ 😀\nʈʂʰɯ˧ [cut\n"
	out, errOut, err := execute(t, input, "segment", "--mode=phonemes_and_tones")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 4 || lines[0] != "tɕʰ i ˧ ʈʂʰ æ ˩" || lines[1] != "" || lines[2] != "ʈʂʰ ɯ ˧" {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(errOut, "1 segmented, 1 with warnings, 1 failed") {
		t.Errorf("unexpected summary %q", errOut)
	}
}

func TestSegmentCmd_KunwinjkuFromFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "utterances.txt")
	if err := os.WriteFile(in, []byte("Djdjarr ay\r\nBininj\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	outFile := filepath.Join(dir, "labels.txt")
	_, _, err := execute(t, "", "segment", "--variant=kunwinjku", "--mode=", "-o", outFile, in)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "djdj a rr ay\nb i n i nj\n" {
		t.Errorf("unexpected output %q", data)
	}
}

func TestSegmentCmd_UnknownOverride(t *testing.T) {
	out, _, err := execute(t, "tɕʰi😀\n", "segment", "--variant=na", "--mode=phonemes", "--unknown=lenient")
	if err != nil {
		t.Fatal(err)
	}
	if out != "tɕʰ i\n" {
		t.Errorf("expected unknown character to be skipped, have %q", out)
	}
}

func TestSegmentCmd_Encode(t *testing.T) {
	out, _, err := execute(t, "˧˥˩\n", "segment", "--variant=na", "--mode=tones", "--encode")
	if err != nil {
		t.Fatal(err)
	}
	// tones sorted: ˥ ˧ ˧˥ ˧˩ ˩ ˩˥ ˩˧
	if out != "3 5\n" {
		t.Errorf("unexpected indices %q", out)
	}
}

func TestLabelsCmd(t *testing.T) {
	out, _, err := execute(t, "", "labels", "--variant=na", "--mode=tones")
	if err != nil {
		t.Fatal(err)
	}
	var voc vocabulary
	if err := yaml.Unmarshal([]byte(out), &voc); err != nil {
		t.Fatal(err)
	}
	if voc.Variant != "na" || voc.Mode != "tones" || voc.Size != 8 || len(voc.Labels) != 8 {
		t.Errorf("unexpected vocabulary %+v", voc)
	}
	if voc.Labels[0] != "pad" {
		t.Errorf("expected pad at index 0, have %q", voc.Labels[0])
	}
}

func TestInventoryCmd(t *testing.T) {
	out, _, err := execute(t, "", "inventory", "--list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "kunwinjku v1.0") || !strings.Contains(out, "\nna v1.0 (nru") {
		t.Errorf("unexpected variant list %q", out)
	}
	out, _, err = execute(t, "", "inventory", "--variant=kunwinjku")
	if err != nil {
		t.Fatal(err)
	}
	var listing inventoryListing
	if err := yaml.Unmarshal([]byte(out), &listing); err != nil {
		t.Fatal(err)
	}
	if len(listing.Units["double-stop"]) != 5 || len(listing.Units["diphthong"]) != 8 {
		t.Errorf("unexpected listing %+v", listing)
	}
}

func TestCustomManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := `name: toy
version: "2"
unknown: strict
table: toy.tab
default_mode: all
modes:
  all: [phoneme]
`
	if err := os.WriteFile(filepath.Join(dir, "toy.yaml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "toy.tab"), []byte("a ; phoneme\nab ; phoneme\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "aba\n", "segment", "--manifest", filepath.Join(dir, "toy.yaml"), "--mode=")
	if err != nil {
		t.Fatal(err)
	}
	if out != "ab a\n" {
		t.Errorf("unexpected output %q", out)
	}
}
