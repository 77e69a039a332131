package pool

import (
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/minecraft-timer/internal"
	"github.com/moyu-x/minecraft-timer/pkg/logger"
	"github.com/moyu-x/minecraft-timer/pkg/scanner"
	"github.com/moyu-x/minecraft-timer/pkg/stats"
)

const bufferSize = 64

// ReadPool 并发读取统计文件
type ReadPool struct {
	workers int
	fs      afero.Fs
	tasks   chan scanner.StatsFile
	results chan internal.ScanRecord
	wg      sync.WaitGroup
	pool    *ants.Pool
}

func NewReadPool(fs afero.Fs, workers int) *ReadPool {
	if workers <= 0 {
		workers = internal.DefaultWorkers
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	logger.Get().Debug().Msgf("创建统计读取池，工作线程数: %d", workers)
	return &ReadPool{
		workers: workers,
		fs:      fs,
		tasks:   make(chan scanner.StatsFile, bufferSize),
		results: make(chan internal.ScanRecord, bufferSize),
	}
}

// Start 提交工作线程；提交失败时已启动的线程会被回收，结果通道随之关闭
func (p *ReadPool) Start() error {
	if p.pool == nil {
		var err error
		p.pool, err = ants.NewPool(p.workers)
		if err != nil {
			logger.Get().Error().Err(err).Msg("创建 goroutine 池失败")
			return err
		}
	}

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		if err := p.pool.Submit(p.worker); err != nil {
			p.wg.Done()
			logger.Get().Error().Err(err).Msg("提交工作线程失败")
			p.Close()
			return err
		}
	}
	return nil
}

func (p *ReadPool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		player, modTime, err := stats.ReadFile(p.fs, task.Path)
		record := internal.ScanRecord{
			World:        task.World,
			Path:         task.Path,
			LastModified: modTime,
			Err:          err,
		}
		if player != nil {
			record.Player = *player
		}
		p.results <- record
	}
}

func (p *ReadPool) AddTask(task scanner.StatsFile) {
	p.tasks <- task
}

func (p *ReadPool) Results() <-chan internal.ScanRecord {
	return p.results
}

// Close 等待已提交的任务处理完毕后关闭结果通道
func (p *ReadPool) Close() {
	close(p.tasks)
	p.wg.Wait()

	if p.pool != nil {
		p.pool.Release()
	}

	close(p.results)
}

// ReadAll 读取全部文件并按输入顺序返回结果
func ReadAll(fs afero.Fs, workers int, files []scanner.StatsFile) ([]internal.ScanRecord, error) {
	p := NewReadPool(fs, workers)
	if err := p.Start(); err != nil {
		return nil, err
	}

	go func() {
		for _, f := range files {
			p.AddTask(f)
		}
		p.Close()
	}()

	index := make(map[string]int, len(files))
	for i, f := range files {
		index[f.Path] = i
	}

	records := make([]internal.ScanRecord, len(files))
	for r := range p.Results() {
		records[index[r.Path]] = r
	}
	return records, nil
}
