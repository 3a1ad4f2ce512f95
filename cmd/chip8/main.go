package main

import (
	"log"
	"runtime"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	config := parseArgs()
	log.Println(Version())

	var err error
	switch config.Frontend {
	case FrontendTerm:
		err = runTerminal(config)
	default:
		err = NewApp(config).Run()
	}

	if err != nil {
		log.Fatal(err)
	}
}
