package logs

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EncodingType определяет формат вывода логов.
type EncodingType string

// LevelType определяет уровень логирования.
type LevelType string

// EncodingTypeConsole Форматирование для консоли.
// EncodingTypeJSON Форматирование в JSON.
const (
	EncodingTypeConsole EncodingType = "console"
	EncodingTypeJSON    EncodingType = "json"
)

// LevelTypeDebug Отладочный уровень.
// LevelTypeInfo Информационный уровень.
// LevelTypeError Уровень ошибок.
const (
	LevelTypeDebug LevelType = "debug"
	LevelTypeInfo  LevelType = "info"
	LevelTypeError LevelType = "error"
)

// LoggerOptions настройки логгера.
type LoggerOptions struct {
	Level         LevelType      // Уровень логирования
	Encoding      EncodingType   // Формат вывода
	InitialFields map[string]any // Начальные поля для каждой записи
}

// New создает новый логгер с указанными настройками.
// В релизном режиме (GIN_RELEASE=release) по умолчанию включается JSON формат
// и уровень info, иначе консольный вывод с уровнем debug.
func New(opts ...func(*LoggerOptions)) (*zap.Logger, error) {
	isProduction := os.Getenv("GIN_RELEASE") == "release"

	options := LoggerOptions{
		Level:    LevelTypeDebug,
		Encoding: EncodingTypeConsole,
	}
	if isProduction {
		options.Level = LevelTypeInfo
		options.Encoding = EncodingTypeJSON
	}

	for _, opt := range opts {
		opt(&options)
	}

	lvl, errLvl := zap.ParseAtomicLevel(string(options.Level))
	if errLvl != nil {
		return nil, fmt.Errorf("parse level: %s", errLvl.Error())
	}

	encoderConf := zap.NewProductionEncoderConfig()
	encoderConf.TimeKey = "ts"
	encoderConf.MessageKey = "msg"
	encoderConf.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConf.EncodeDuration = zapcore.StringDurationEncoder

	conf := zap.Config{
		Level:            lvl,
		Development:      !isProduction,
		Encoding:         string(options.Encoding),
		EncoderConfig:    encoderConf,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields:    options.InitialFields,
	}

	log, err := conf.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %s", err.Error())
	}
	return log, nil
}

// MustNew создает новый логгер с указанными настройками.
// В случае ошибки вызывает panic.
func MustNew(opts ...func(*LoggerOptions)) *zap.Logger {
	log, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return log
}
