// Video Color Remapper - interactive color-range replacement for video.
package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"video-color-remap/internal/gui"
)

const (
	AppName    = "Video Color Remapper"
	AppID      = "com.videocolorremap.app"
	AppVersion = "1.0.0"
)

func main() {
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	flag.Parse()

	logger := initLogger(*debugMode)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode,
	}).Info("Starting Video Color Remapper")

	myApp := app.NewWithID(AppID)

	mainApp := gui.NewApplication(myApp, logger)
	mainApp.ShowAndRun()

	logger.Info("Application shutting down")
	os.Exit(0)
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
