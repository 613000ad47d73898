package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestList(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdList(&buf, []string{"weapon_*"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"weapon_makarov", "pistol_primary", "models/weapons/tt33.glb"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "tool_scanner") {
		t.Error("pattern did not filter tool_scanner")
	}
}

func TestListBadPattern(t *testing.T) {
	if err := cmdList(&bytes.Buffer{}, []string{"["}); err == nil {
		t.Error("expected pattern error")
	}
}

func TestShow(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdShow(&buf, []string{"tool_scanner"}); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(buf.String(), "typeId: tool_scanner") {
		t.Errorf("show output:\n%s", buf.String())
	}

	buf.Reset()
	if err := cmdShow(&buf, []string{"no_such_item"}); err != nil {
		t.Fatalf("show unknown: %v", err)
	}
	if !strings.Contains(buf.String(), "fallback") || !strings.Contains(buf.String(), "typeId: default") {
		t.Errorf("show unknown output:\n%s", buf.String())
	}
}

func TestStance(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdStance(&buf, []string{"weapon_stick", "ads"}); err != nil {
		t.Fatalf("stance: %v", err)
	}
	if !strings.Contains(buf.String(), "cannot aim") {
		t.Errorf("stance output:\n%s", buf.String())
	}

	if err := cmdStance(&bytes.Buffer{}, []string{"weapon_stick", "crouch"}); err == nil {
		t.Error("expected unknown stance error")
	}
	if err := cmdStance(&bytes.Buffer{}, []string{"weapon_stick"}); err == nil {
		t.Error("expected usage error")
	}
}

func TestValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poses.yaml")
	if err := os.WriteFile(path, []byte("items: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := cmdValidate(&bytes.Buffer{}, []string{path}); err == nil {
		t.Error("expected an invalid catalog to fail")
	}
}

func TestClassify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	scene := "drops:\n  - id: a\n    typeId: red_shard\n  - id: b\n    typeId: weapon_pipe\n  - id: c\n    typeId: red_shard\n"
	if err := os.WriteFile(path, []byte(scene), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := cmdClassify(&buf, []string{path}); err != nil {
		t.Fatalf("classify: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"hazard_shard", "a,c", "generic", "3 drops"} {
		if !strings.Contains(out, want) {
			t.Errorf("classify output missing %q:\n%s", want, out)
		}
	}
}

func TestStanceBob(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdStance(&buf, []string{"-motion", "walk", "-t", "0.25", "weapon_makarov", "hip"}); err != nil {
		t.Fatalf("stance: %v", err)
	}
	if !strings.Contains(buf.String(), "motion: walk") || !strings.Contains(buf.String(), "bob: [") {
		t.Errorf("stance output:\n%s", buf.String())
	}

	if err := cmdStance(&bytes.Buffer{}, []string{"-motion", "crawl", "weapon_makarov", "hip"}); err == nil {
		t.Error("expected unknown motion error")
	}
}

func TestConfig(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdConfig(&buf, nil); err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(buf.String(), "generic_size: 0.3") {
		t.Errorf("config output:\n%s", buf.String())
	}

	path := filepath.Join(t.TempDir(), "nested", "worlddrops.yaml")
	if err := cmdConfig(&bytes.Buffer{}, []string{"-o", path}); err != nil {
		t.Fatalf("config -o: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}
