package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the shared instance. Init replaces it; the zero setup logs
// to stdout at info level so library code can log before Init runs.
var Logger = logrus.StandardLogger()

// Config controls level, destination and rotation of the log output.
type Config struct {
	Level      string // debug, info, warn, error
	OutputFile string // optional; empty means console only
	MaxSize    int    // max size of a log file in MB before rotation
	MaxBackups int    // rotated files to keep
	MaxAge     int    // days to keep rotated files
	Compress   bool   // gzip rotated files
}

// Init builds a logrus logger from the config and installs it as the
// package instance. File output rotates through lumberjack.
func Init(config Config) (*logrus.Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "06-01-02 15:04:05",
	})

	writers := []io.Writer{os.Stdout}

	if config.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(config.OutputFile), 0o755); err != nil {
			return nil, err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   config.OutputFile,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}

	log.SetOutput(io.MultiWriter(writers...))

	Logger = log
	return log, nil
}
