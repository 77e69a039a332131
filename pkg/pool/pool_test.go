package pool

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/minecraft-timer/pkg/scanner"
	"github.com/moyu-x/minecraft-timer/pkg/stats"
)

func TestReadPool_Results(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/saves/World/stats/p.json"
	if err := afero.WriteFile(fs, path, []byte(`{"minecraft:play_one_minute": 40}`), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	p := NewReadPool(fs, 2)
	if err := p.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	p.AddTask(scanner.StatsFile{World: "World", Path: path})

	select {
	case r := <-p.Results():
		if r.Err != nil {
			t.Fatalf("unexpected error: %v", r.Err)
		}
		if r.Player.TicksPlayed != 40 || r.World != "World" {
			t.Errorf("unexpected record: %+v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for result")
	}
	p.Close()
}

func TestReadPool_Close(t *testing.T) {
	p := NewReadPool(afero.NewMemMapFs(), 2)
	if err := p.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	p.Close()

	if _, ok := <-p.Results(); ok {
		t.Error("Results channel should be closed after Close()")
	}
}

func TestReadAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	var files []scanner.StatsFile
	for i := 0; i < 20; i++ {
		path := fmt.Sprintf("/saves/W%d/stats/p.json", i)
		if err := afero.WriteFile(fs, path, []byte(fmt.Sprintf(`{"play_one_minute": %d}`, i*20)), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		files = append(files, scanner.StatsFile{World: fmt.Sprintf("W%d", i), Path: path})
	}
	files = append(files, scanner.StatsFile{World: "Broken", Path: "/saves/Broken/stats/none.json"})
	if err := afero.WriteFile(fs, "/saves/Broken/stats/none.json", []byte(`{}`), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	records, err := ReadAll(fs, 4, files)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != len(files) {
		t.Fatalf("Expected %d records, got %d", len(files), len(records))
	}
	for i := 0; i < 20; i++ {
		if records[i].Err != nil {
			t.Errorf("record %d error: %v", i, records[i].Err)
			continue
		}
		if records[i].Player.TicksPlayed != uint64(i*20) {
			t.Errorf("record %d ticks = %d", i, records[i].Player.TicksPlayed)
		}
	}
	if !errors.Is(records[20].Err, stats.ErrNotFound) {
		t.Errorf("expected ErrNotFound for broken file, got %v", records[20].Err)
	}
}

func TestReadPool_StartSubmitFailure(t *testing.T) {
	p := NewReadPool(afero.NewMemMapFs(), 2)

	// 只容纳一个线程的非阻塞池，第二次提交会失败
	pool, err := ants.NewPool(1, ants.WithNonblocking(true))
	if err != nil {
		t.Fatalf("Failed to create ants pool: %v", err)
	}
	p.pool = pool

	if err := p.Start(); err == nil {
		t.Fatal("expected Start to fail when the pool is overloaded")
	}

	select {
	case _, ok := <-p.Results():
		if ok {
			t.Error("expected no results after a failed start")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("results channel not closed, submitted workers leaked")
	}
}
