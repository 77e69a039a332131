package app

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/minecraft-timer/internal"
	"github.com/moyu-x/minecraft-timer/pkg/logger"
	"github.com/moyu-x/minecraft-timer/pkg/pool"
	"github.com/moyu-x/minecraft-timer/pkg/scanner"
	"github.com/moyu-x/minecraft-timer/pkg/stats"
)

type ScanOptions struct {
	SavesDir string
	Workers  int
	Verbose  bool
	LogLevel string
	LogFile  string
	Fs       afero.Fs
}

// RunScan 一次性读取存档目录下所有统计文件
func RunScan(opts *ScanOptions) ([]internal.ScanRecord, *internal.ScanStats, error) {
	logLevel := opts.LogLevel
	if opts.Verbose {
		logLevel = "debug"
	}
	if err := logger.Init(logLevel, opts.LogFile, true); err != nil {
		return nil, nil, err
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	scanStats := &internal.ScanStats{StartTime: time.Now()}

	files, worlds, err := scanner.NewFileWalker(fs).StatsFiles(opts.SavesDir)
	if err != nil {
		return nil, nil, fmt.Errorf("扫描存档目录失败: %w", err)
	}
	scanStats.Worlds = worlds
	scanStats.Files = len(files)

	records, err := pool.ReadAll(fs, opts.Workers, files)
	if err != nil {
		return nil, nil, err
	}

	for _, r := range records {
		if r.Err != nil {
			scanStats.Failed++
			logger.Get().Debug().Err(r.Err).Msgf("读取统计文件失败: %s", r.Path)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].World != records[j].World {
			return records[i].World < records[j].World
		}
		return records[i].Player.ID < records[j].Player.ID
	})

	scanStats.EndTime = time.Now()
	return records, scanStats, nil
}

// ExtractFile 读取单个统计文件
func ExtractFile(path string) (*internal.PlayerStats, time.Time, error) {
	return stats.ReadFile(afero.NewOsFs(), path)
}
