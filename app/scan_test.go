package app

import (
	"testing"

	"github.com/spf13/afero"
)

func TestRunScan(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := [][2]string{
		{"/saves/Beta/stats/069a79f4-44e9-4726-a5be-fca90e38aaf5.json", `{"stats":{"minecraft:custom":{"minecraft:play_one_minute":72000}}}`},
		{"/saves/Alpha/stats/Steve.json", `{"stat.playOneMinute":1200}`},
		{"/saves/Alpha/stats/broken.json", `{"stats":{}}`},
		{"/saves/Alpha/level.dat", "nbt"},
	}
	for _, f := range files {
		if err := afero.WriteFile(fs, f[0], []byte(f[1]), 0644); err != nil {
			t.Fatalf("写入测试文件失败: %v", err)
		}
	}

	records, stats, err := RunScan(&ScanOptions{SavesDir: "/saves", Workers: 2, Fs: fs})
	if err != nil {
		t.Fatalf("RunScan() error = %v", err)
	}

	if stats.Worlds != 2 || stats.Files != 3 || stats.Failed != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].World != "Alpha" || records[2].World != "Beta" {
		t.Errorf("records not sorted by world: %s, %s, %s", records[0].World, records[1].World, records[2].World)
	}
	if records[2].Player.Seconds() != 3600 {
		t.Errorf("Beta player seconds = %v, want 3600", records[2].Player.Seconds())
	}
}

func TestRunScan_MissingSaves(t *testing.T) {
	if _, _, err := RunScan(&ScanOptions{SavesDir: "/missing", Fs: afero.NewMemMapFs()}); err == nil {
		t.Error("expected error for missing saves directory")
	}
}
