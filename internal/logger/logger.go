package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding(json),
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderConfig(),
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	return logger, nil
}

// NewCandidateFile builds a logger that tees to stdout and to a dedicated
// per-candidate log file under logsDir. The directory is created on demand.
// The returned close func flushes the logger and releases the file; call it
// when the candidate's run is finished.
func NewCandidateFile(logsDir, safeName string, json bool, debug bool) (*zap.Logger, func() error, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, nil, err
	}

	logPath := filepath.Join(logsDir, safeName+".log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	var enc zapcore.Encoder
	if json {
		enc = zapcore.NewJSONEncoder(encoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(encoderConfig())
	}

	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), level),
		zapcore.NewCore(enc, zapcore.AddSync(file), level),
	)
	logger := zap.New(core, zap.AddCaller())

	closeFn := func() error {
		logger.Sync()
		return file.Close()
	}
	return logger, closeFn, nil
}

func encoding(json bool) string {
	if json {
		return "json"
	}
	return "console"
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey: "step",

		LevelKey:    "level",
		EncodeLevel: zapcore.LowercaseLevelEncoder,

		TimeKey:    "time",
		EncodeTime: zapcore.RFC3339TimeEncoder,

		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
}
