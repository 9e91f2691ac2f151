// levelcheck 校验关卡配置文件
//
// 加载指定目录下的全部关卡 YAML 并运行完整校验，
// 用于在提交新关卡前发现配置错误。
//
// 用法:
//
//	go run ./cmd/levelcheck [-dir data/levels]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gonewx/platformer/pkg/config"
)

func main() {
	dir := flag.String("dir", "data/levels", "关卡配置目录")
	flag.Parse()

	entries, err := os.ReadDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取目录失败: %v\n", err)
		os.Exit(1)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".yaml") {
			continue
		}
		paths = append(paths, filepath.Join(*dir, e.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "目录 %s 下没有关卡文件\n", *dir)
		os.Exit(1)
	}

	failures := 0
	for _, path := range paths {
		cfg, err := config.LoadLevelConfig(path)
		if err != nil {
			fmt.Printf("FAIL %s: %v\n", path, err)
			failures++
			continue
		}
		fmt.Printf("OK   %s: id=%s name=%q %gx%g platforms=%d enemies=%d collectibles=%d\n",
			path, cfg.ID, cfg.Name, cfg.Width, cfg.Height,
			len(cfg.Platforms), len(cfg.Enemies), len(cfg.Collectibles))
	}

	if failures > 0 {
		fmt.Printf("\n%d/%d 个关卡校验失败\n", failures, len(paths))
		os.Exit(1)
	}
	fmt.Printf("\n全部 %d 个关卡校验通过\n", len(paths))
}
