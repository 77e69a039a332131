package scanner

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moyu-x/minecraft-timer/internal"
	"github.com/moyu-x/minecraft-timer/pkg/logger"
)

type FileWalker struct {
	Fs afero.Fs
}

func NewFileWalker(fs afero.Fs) *FileWalker {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileWalker{
		Fs: fs,
	}
}

// StatsFile 是存档树中的一个玩家统计文件
type StatsFile struct {
	World string
	Path  string
}

func (w *FileWalker) Walk(root string, callback func(path string, info os.FileInfo) error) error {
	return afero.Walk(w.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() {
			return nil
		}

		return callback(path, info)
	})
}

// Dirs 返回 root 及其下所有子目录
func (w *FileWalker) Dirs(root string) ([]string, error) {
	var dirs []string
	err := afero.Walk(w.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Get().Debug().Err(err).Msgf("跳过无法访问的路径: %s", path)
			return nil
		}
		if info.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}

// IsStatsFile 判断路径是否为 <...>/stats/<id>.json
func IsStatsFile(path string) bool {
	return filepath.Ext(path) == internal.StatsFileExt &&
		filepath.Base(filepath.Dir(path)) == internal.StatsDirName
}

// StatsFiles 遍历存档目录，返回所有统计文件以及存档数量
func (w *FileWalker) StatsFiles(savesRoot string) ([]StatsFile, int, error) {
	logger.Get().Info().Msgf("开始扫描存档目录: %s", savesRoot)

	entries, err := afero.ReadDir(w.Fs, savesRoot)
	if err != nil {
		logger.Get().Error().Err(err).Msgf("读取存档目录失败: %s", savesRoot)
		return nil, 0, err
	}

	var files []StatsFile
	worlds := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		worlds++

		world := entry.Name()
		statsDir := filepath.Join(savesRoot, world, internal.StatsDirName)
		err := w.Walk(statsDir, func(path string, info os.FileInfo) error {
			if IsStatsFile(path) {
				files = append(files, StatsFile{World: world, Path: path})
			}
			return nil
		})
		if err != nil {
			logger.Get().Error().Err(err).Msgf("扫描统计目录失败: %s", statsDir)
			return nil, 0, err
		}
	}

	logger.Get().Info().Msgf("扫描完成，共 %d 个存档，%d 个统计文件", worlds, len(files))
	return files, worlds, nil
}
