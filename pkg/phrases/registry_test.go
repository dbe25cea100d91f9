package phrases

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setupRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "songs.txt"), []byte("Cat Nap\nBanana\nzork zork\n"), 0o644)
	os.WriteFile(filepath.Join(dir, "names.tsv"), []byte("Fred Flintstone\tcaveman\nBarney Rubble\tneighbour\n"), 0o644)

	reg := NewRegistry(testBuilder(t), map[string]string{
		"songs": filepath.Join(dir, "songs.txt"),
		"names": filepath.Join(dir, "names.tsv"),
	}, "songs", nil)
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return reg, dir
}

func TestRegistryLoad(t *testing.T) {
	reg, _ := setupRegistry(t)

	if reg.ListCount() != 2 {
		t.Errorf("ListCount = %d, want 2", reg.ListCount())
	}
	if reg.TotalEntries() != 4 {
		t.Errorf("TotalEntries = %d, want 4", reg.TotalEntries())
	}
}

func TestRegistryGet(t *testing.T) {
	reg, _ := setupRegistry(t)

	idx, err := reg.Get("")
	if err != nil {
		t.Fatalf("Get default: %v", err)
	}
	if idx.Entries() != 2 {
		t.Errorf("default list entries = %d, want 2", idx.Entries())
	}

	if _, err := reg.Get("names"); err != nil {
		t.Errorf("Get(names): %v", err)
	}

	def, err := reg.Default()
	if err != nil || def != idx {
		t.Errorf("Default() = %p, %v; want the songs index", def, err)
	}
	if reg.DefaultID() != "songs" {
		t.Errorf("DefaultID = %q", reg.DefaultID())
	}

	_, err = reg.Get("nope")
	if !errors.Is(err, ErrUnknownList) {
		t.Errorf("Get(nope) err = %v, want ErrUnknownList", err)
	}
}

func TestRegistryList(t *testing.T) {
	reg, _ := setupRegistry(t)

	infos := reg.List()
	if len(infos) != 2 {
		t.Fatalf("List = %d, want 2", len(infos))
	}
	if infos[0].ID != "names" || infos[1].ID != "songs" {
		t.Errorf("List order = %s,%s want names,songs", infos[0].ID, infos[1].ID)
	}
	if !infos[1].Default || infos[0].Default {
		t.Error("songs should be the only default list")
	}
	if infos[1].Dropped != 1 {
		t.Errorf("songs dropped = %d, want 1", infos[1].Dropped)
	}
}

func TestRegistryReload(t *testing.T) {
	reg, dir := setupRegistry(t)

	os.WriteFile(filepath.Join(dir, "songs.txt"), []byte("Cat Nap\nDog Day\nBanana\n"), 0o644)
	if err := reg.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	idx, _ := reg.Get("songs")
	if idx.Entries() != 3 {
		t.Errorf("entries after reload = %d, want 3", idx.Entries())
	}
}

func TestRegistryReload_KeepsOldOnError(t *testing.T) {
	reg, dir := setupRegistry(t)

	os.Remove(filepath.Join(dir, "names.tsv"))
	if err := reg.Reload(); err == nil {
		t.Fatal("expected reload error for missing file")
	}
	if reg.ListCount() != 2 {
		t.Errorf("ListCount after failed reload = %d, want 2", reg.ListCount())
	}
}
