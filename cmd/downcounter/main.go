// Command downcounter simulates an 8-bit down-counter driven by a stimulus
// script.
package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
