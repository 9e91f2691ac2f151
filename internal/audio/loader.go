// Package audio 提供音效资源的磁盘加载。
//
// 游戏逻辑通过 game.AudioPlayer 播放音效，本包负责把 WAV 文件
// 解码成 PCM 数据并注册到音频管理器。资源目录不存在时静默跳过，
// 游戏在无音效的环境下照常运行。
package audio

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// RegisterFunc 接收一段解码后的 PCM 数据
// 音效ID取文件名（不含扩展名）
type RegisterFunc func(soundID string, pcm []byte)

// LoadSounds 加载目录下的全部 WAV 音效并逐个注册
//
// 目录不存在不是错误（返回 nil），单个文件解码失败记录日志后
// 跳过，不中断其余文件的加载。
func LoadSounds(dir string, sampleRate int, register RegisterFunc) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		log.Printf("[Audio] 音效目录 %s 不存在，跳过加载", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read sound directory %s: %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		pcm, err := decodeWAV(path, sampleRate)
		if err != nil {
			log.Printf("[Audio] 解码 %s 失败，跳过: %v", path, err)
			continue
		}

		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		register(id, pcm)
		loaded++
	}

	log.Printf("[Audio] 已加载 %d 个音效 (%s)", loaded, dir)
	return nil
}

// decodeWAV 把单个 WAV 文件解码为目标采样率的 PCM 数据
func decodeWAV(path string, sampleRate int) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid WAV data: %w", err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to decode WAV stream: %w", err)
	}
	return pcm, nil
}
