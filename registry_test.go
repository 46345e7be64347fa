package marqant

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := OpenRegistry(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { reg.Close() })
	return reg
}

func TestRegistryPutLookup(t *testing.T) {
	reg := testRegistry(t)

	dict := Dictionary{"\x01": "# ", "\x1b": "shared phrase\nwith newline"}
	if err := reg.Put("team-v1", dict); err != nil {
		t.Fatal(err)
	}

	got, err := reg.Lookup("team-v1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(dict) {
		t.Fatalf("entries = %d, want %d", len(got), len(dict))
	}
	for tok, pat := range dict {
		if got[tok] != pat {
			t.Errorf("token %q = %q, want %q", tok, got[tok], pat)
		}
	}
}

func TestRegistryLookupMiss(t *testing.T) {
	reg := testRegistry(t)

	dict, err := reg.Lookup("absent")
	if err != nil {
		t.Fatalf("miss became an error: %v", err)
	}
	if dict != nil {
		t.Errorf("miss returned %v", dict)
	}
}

func TestRegistryRejectsTraversalIDs(t *testing.T) {
	reg := testRegistry(t)

	for _, id := range []string{"", "../escape", "a/b", `a\b`, "x..y"} {
		if _, err := reg.Lookup(id); err == nil {
			t.Errorf("id %q accepted", id)
		}
		if err := reg.Put(id, Dictionary{"\x01": "# "}); err == nil {
			t.Errorf("Put with id %q accepted", id)
		}
	}
}

func TestRegistryMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := OpenRegistry(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer reg.Close()

	if _, err := reg.Lookup("bad"); err == nil {
		t.Error("malformed file accepted")
	}
}

func TestDecodeWithRegistry(t *testing.T) {
	reg := testRegistry(t)
	if err := reg.Put("team-v1", Dictionary{"\x01": "# "}); err != nil {
		t.Fatal(err)
	}

	doc := "MARQANT 0 7 11 -std:team-v1\n---\n\x01Hello"

	decoded, err := Decoder{Registry: reg}.Decode(doc)
	if err != nil {
		t.Fatal(err)
	}
	if decoded != "# Hello" {
		t.Errorf("decoded = %q, want %q", decoded, "# Hello")
	}
}

func TestDecodeRegistryBeforeResolver(t *testing.T) {
	reg := testRegistry(t)
	if err := reg.Put("team-v1", Dictionary{"\x01": "# "}); err != nil {
		t.Fatal(err)
	}

	remote := ResolverFunc(func(string) (Dictionary, error) {
		t.Error("remote consulted despite registry hit")
		return nil, nil
	})

	doc := "MARQANT 0 7 11 -std:team-v1\n---\n\x01Hello"

	if _, err := (Decoder{Registry: reg, Resolver: remote}).Decode(doc); err != nil {
		t.Fatal(err)
	}
}

func TestEncodeRegistryOmission(t *testing.T) {
	reg := testRegistry(t)
	if err := reg.Put("bullets-v1", Dictionary{"\x07": "- "}); err != nil {
		t.Fatal(err)
	}

	content := strings.Repeat("- item\n", 8)
	enc := Encoder{Now: func() int64 { return 0 }, Registry: reg}

	encoded, err := enc.Encode(content, "-std:bullets-v1")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(encoded, "\x07=") {
		t.Errorf("registry-known entry on the wire: %q", encoded)
	}

	decoded, err := Decoder{Registry: reg}.Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(decoded) != strings.TrimSpace(content) {
		t.Errorf("round trip mismatch: %q", decoded)
	}
}

func TestDecodeRegistryFailureSurfaces(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "team-v1.json"), []byte("??"), 0o644); err != nil {
		t.Fatal(err)
	}
	reg, err := OpenRegistry(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer reg.Close()

	doc := "MARQANT 0 7 11 -std:team-v1\n---\n\x01Hello"

	_, err = Decoder{Registry: reg}.Decode(doc)
	if !errors.Is(err, ErrDictResolution) {
		t.Errorf("Decode = %v, want ErrDictResolution", err)
	}
	if !strings.Contains(err.Error(), "team-v1") {
		t.Errorf("error does not name the id: %v", err)
	}
}
