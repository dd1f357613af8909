package embedded

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestBuiltinDataFiles(t *testing.T) {
	Init(nil)

	for _, name := range []string{"game", "map", "enemies", "towers", "waves"} {
		path := "data/" + name + ".yaml"
		if !Exists(path) {
			t.Errorf("Expected builtin file %s to exist", path)
			continue
		}
		data, err := ReadFile(path)
		if err != nil {
			t.Errorf("ReadFile(%s) failed: %v", path, err)
		}
		if len(data) == 0 {
			t.Errorf("Builtin file %s is empty", path)
		}
	}

	if !IsBuiltin() {
		t.Error("Expected builtin data after Init(nil)")
	}
}

func TestReadFileInvalidPrefix(t *testing.T) {
	_, err := ReadFile("assets/images/tower.png")
	if err == nil {
		t.Fatal("Expected error for unknown prefix")
	}
	if !strings.Contains(err.Error(), "unknown resource path prefix") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestReadFileNormalizesPath(t *testing.T) {
	Init(nil)
	if _, err := ReadFile("./data/game.yaml"); err != nil {
		t.Errorf("Expected ./ prefix to be accepted, got %v", err)
	}
}

func TestInitOverride(t *testing.T) {
	override := fstest.MapFS{
		"data/game.yaml": &fstest.MapFile{Data: []byte("tileSize: 32\n")},
	}
	Init(override)
	defer Init(nil)

	if IsBuiltin() {
		t.Error("Expected override filesystem to be active")
	}
	data, err := ReadFile("data/game.yaml")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "tileSize: 32\n" {
		t.Errorf("Expected override content, got %q", string(data))
	}
	if Exists("data/map.yaml") {
		t.Error("map.yaml should not exist in override filesystem")
	}
	if _, err := Builtin().Open("data/map.yaml"); err != nil {
		t.Errorf("Builtin() should ignore the override: %v", err)
	}
}

func TestGlob(t *testing.T) {
	Init(nil)
	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 5 {
		t.Errorf("Expected 5 yaml files, got %d: %v", len(matches), matches)
	}
}
