// objview displays a Wavefront OBJ model.
//
//	objview [flags] [model.obj]
//
// Drop an .obj file onto the window or press O to open another model.
// Drag to orbit and scroll to zoom.
//
//	R      reset the view        W    wireframe
//	Space  auto-rotation         H    statistics overlay
//	F      fullscreen            F5   reload
//	F12    screenshot            Esc  quit
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/UnkushB/toy-obj-viewer/internal/config"
	"github.com/UnkushB/toy-obj-viewer/internal/logger"
	"github.com/UnkushB/toy-obj-viewer/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.WriteConfigRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", filepath.Join(config.ConfigDir(), "objview.yaml"))
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("config: %+v", cfg)

	v, err := viewer.New(cfg, logger.Log, config.ModelPath())
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}
