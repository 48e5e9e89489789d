package config

import (
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

func NewLogger() (*logrus.Logger, error) {
	env := newEnv()
	log := logrus.New()

	if Development() {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	filename := env.GetString("LOG_FILE")
	if filename == "" {
		return log, nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   filename,
		MaxSize:    env.GetInt("LOG_MAX_SIZE_MB"),
		MaxBackups: env.GetInt("LOG_MAX_BACKUPS"),
		MaxAge:     env.GetInt("LOG_MAX_AGE_DAYS"),
		Level:      log.GetLevel(),
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return nil, err
	}
	log.AddHook(hook)

	return log, nil
}
