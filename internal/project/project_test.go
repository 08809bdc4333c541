package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/pathcut/internal/model"
)

func TestAppConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultToolDiameter = 6.35
	cfg.RecentJobs = []string{"bracket.stl"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.DefaultToolDiameter != 6.35 {
		t.Errorf("tool diameter %v, want 6.35", loaded.DefaultToolDiameter)
	}
	if len(loaded.RecentJobs) != 1 || loaded.RecentJobs[0] != "bracket.stl" {
		t.Errorf("recent jobs %v", loaded.RecentJobs)
	}
}

func TestLoadAppConfig_MissingFileGivesDefaults(t *testing.T) {
	loaded, err := LoadAppConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if loaded.DefaultGCodeProfile != "Generic" {
		t.Errorf("expected defaults, got %+v", loaded)
	}
	if loaded.RecentJobs == nil {
		t.Error("RecentJobs must never be nil")
	}
}

func TestPresets_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")

	store := model.NewPresetStore()
	store.Add(model.NewPreset("finishing", "ball end finishing", model.DefaultCamConfig()))

	if err := SavePresets(path, store); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Presets) != 1 || loaded.Presets[0].Name != "finishing" {
		t.Errorf("loaded %+v", loaded)
	}
}

func TestLoadPresets_MissingFileGivesEmptyStore(t *testing.T) {
	loaded, err := LoadPresets(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Presets == nil || len(loaded.Presets) != 0 {
		t.Errorf("expected empty store, got %+v", loaded)
	}
}

func TestJobs_SaveLoadList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "jobs")

	job := model.NewJob("bracket", "bracket.stl", model.DefaultCamConfig(), model.JobStats{MoveCount: 42})
	path, err := SaveJob(dir, job)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadJob(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.ID != job.ID || loaded.Stats.MoveCount != 42 {
		t.Errorf("loaded %+v", loaded)
	}

	jobs, err := ListJobs(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 {
		t.Errorf("listed %d jobs, want 1", len(jobs))
	}
}

func TestListJobs_MissingDir(t *testing.T) {
	jobs, err := ListJobs(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 0 {
		t.Errorf("expected no jobs, got %d", len(jobs))
	}
}

func TestToolLibrary_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.json")

	tools := []model.LibraryTool{
		model.NewLibraryTool("1/8 upcut", model.DefaultTool()),
		model.NewLibraryTool("6mm ball", model.NewBallEnd(6, 15)),
	}
	if err := SaveToolLibrary(path, tools); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadToolLibrary(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 || loaded[1].Tool.Type != model.ToolBallEnd {
		t.Errorf("loaded %+v", loaded)
	}
}

func TestCustomProfiles_RoundTripClearsBuiltIn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")

	custom := model.GetProfile("Grbl")
	custom.Name = "MyGrbl"
	if err := SaveCustomProfiles(path, []model.GCodeProfile{custom}); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].Name != "MyGrbl" {
		t.Fatalf("loaded %+v", loaded)
	}
	if loaded[0].IsBuiltIn {
		t.Error("loaded profiles must not be marked built-in")
	}
}

func TestImportProfile_RequiresName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	p := model.GCodeProfile{}
	if err := ExportProfile(path, p); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportProfile(path); err == nil {
		t.Error("expected error for unnamed profile")
	}
}

func TestBackup_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	presets := model.NewPresetStore()
	presets.Add(model.NewPreset("slotting", "", model.DefaultCamConfig()))
	tools := []model.LibraryTool{model.NewLibraryTool("vbit", model.DefaultTool())}

	if err := ExportAllData(path, cfg, presets, tools); err != nil {
		t.Fatal(err)
	}
	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatal(err)
	}
	if backup.Version == "" || len(backup.Presets.Presets) != 1 || len(backup.Tools) != 1 {
		t.Errorf("backup %+v", backup)
	}
}

func TestImportAllData_MissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Error("expected error for backup without version")
	}
}
