package utils

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Quit blocks until SIGINT or SIGTERM arrives, then calls Close.
func Quit(serviceName string, Close func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	<-quit
	logrus.Infof("Closing %s", serviceName)
	Close()
}
