package config

const (
	defaultScratchDir          = "~/.local/share/rvj/scratch"
	defaultLogDir              = "~/.local/share/rvj/logs"
	defaultFFmpegBinary        = "ffmpeg"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultStaleWorkspaceHours = 24
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ScratchDir: defaultScratchDir,
			LogDir:     defaultLogDir,
		},
		FFmpeg: FFmpeg{
			Binary: defaultFFmpegBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Export: Export{
			StaleWorkspaceHours: defaultStaleWorkspaceHours,
		},
	}
}
