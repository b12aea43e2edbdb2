package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/gorustyt/terrainpath/common"
	"github.com/gorustyt/terrainpath/config"
	"github.com/gorustyt/terrainpath/demo/scene"
	"github.com/gorustyt/terrainpath/demo/view"
	"github.com/gorustyt/terrainpath/prefs"
)

func main() {
	configPath := flag.String("config", "", "YAML config file; defaults are used when empty")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	logger, err := common.NewLogger(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	var store prefs.Store
	if fileStore, err := prefs.OpenFile(cfg.Prefs.Path, logger); err != nil {
		logger.Warn("preferences unavailable, edits will not be kept", zap.String("path", cfg.Prefs.Path), zap.Error(err))
		store = prefs.NewMemStore()
	} else {
		store = fileStore
	}
	sc, err := scene.Build(cfg, store, logger)
	if err != nil {
		logger.Fatal("build scene", zap.Error(err))
	}
	if cfg.Demo.GridPath != "" {
		if err := sc.Load(cfg.Demo.GridPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("saved grid not loaded", zap.String("path", cfg.Demo.GridPath), zap.Error(err))
		}
	}

	v := view.New(sc, cfg.Demo, logger)
	w, h := v.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("terrainpath")
	if err := ebiten.RunGame(v); err != nil {
		logger.Fatal("demo stopped", zap.Error(err))
	}
}
