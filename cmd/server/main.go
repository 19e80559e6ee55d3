package main

import (
	log "github.com/sirupsen/logrus"

	transport "github.com/Izrekatel/Yatube/internal/transport/http"
)

func main() {
	if err := transport.Run(); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
