// Package stats 从玩家统计文件中提取游戏时长。
//
// 统计文件的键名随游戏版本变化（旧版带 "minecraft:" 前缀或使用 stat.playOneMinute，
// 新版去掉前缀），因此这里不做严格的 JSON 解析，只按子串匹配计数器。
package stats

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"github.com/moyu-x/minecraft-timer/internal"
)

var (
	ErrNotFound      = errors.New("stats: play time not found")
	ErrBinaryContent = errors.New("stats: binary content")
)

var (
	playOneMinutePattern = regexp.MustCompile(`inute":\s*(\d+)`)
	// 1.17 起计数器改名为 play_time
	playTimePattern = regexp.MustCompile(`play_time":\s*(\d+)`)
)

// Extract 返回内容中第一个游戏时长计数器的值（单位：游戏刻）
func Extract(content []byte) (uint64, bool) {
	for _, re := range []*regexp.Regexp{playOneMinutePattern, playTimePattern} {
		m := re.FindSubmatch(content)
		if m == nil {
			continue
		}
		ticks, err := strconv.ParseUint(string(m[1]), 10, 64)
		if err != nil {
			return 0, false
		}
		return ticks, true
	}
	return 0, false
}

// TicksToSeconds 是刻到秒的唯一换算点
func TicksToSeconds(ticks uint64) float64 {
	return internal.PlayerStats{TicksPlayed: ticks}.Seconds()
}

// PlayerID 从文件名推导玩家标识，能解析为 UUID 时返回规范形式
func PlayerID(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if id, err := uuid.Parse(stem); err == nil {
		return id.String()
	}
	return stem
}

// ReadFile 读取统计文件并提取游戏时长，同时返回文件修改时间
func ReadFile(fs afero.Fs, path string) (*internal.PlayerStats, time.Time, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("获取文件信息: %w", err)
	}

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("读取统计文件: %w", err)
	}

	if kind, _ := filetype.Match(content); kind != filetype.Unknown {
		return nil, time.Time{}, fmt.Errorf("%w: %s", ErrBinaryContent, kind.MIME.Value)
	}

	ticks, ok := Extract(content)
	if !ok {
		return nil, time.Time{}, ErrNotFound
	}

	return &internal.PlayerStats{
		ID:          PlayerID(path),
		TicksPlayed: ticks,
	}, info.ModTime(), nil
}
