package config

import "flag"

var (
	flagConfig          = flag.String("config", "", "Path to config file")
	flagDebug           = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed        = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen      = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth           = flag.Int("width", 0, "Window width")
	flagHeight          = flag.Int("height", 0, "Window height")
	flagUnknownMaterial = flag.String("unknown-material", "", "Undefined usemtl names: create or fallback")
	flagNoTextures      = flag.Bool("no-textures", false, "Skip texture maps")
	flagWriteConfig     = flag.Bool("write-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigRequested reports whether -write-config was given.
func WriteConfigRequested() bool {
	return *flagWriteConfig
}

// ModelPath returns the first positional argument, or "".
func ModelPath() string {
	return flag.Arg(0)
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagUnknownMaterial != "" {
		cfg.Loader.UnknownMaterial = *flagUnknownMaterial
	}
	if *flagNoTextures {
		cfg.Loader.Textures = false
	}
}
