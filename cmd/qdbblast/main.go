package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/qdbblast/qdbblast/cmd/qdbblast/cmd"
	"github.com/qdbblast/qdbblast/internal/common"
)

func main() {
	common.ConfigureLogging()
	if err := cmd.RootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
