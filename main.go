package main

import (
	"flag"
	"log"

	"github.com/notionviews/relay/durable"
)

func init() {
	setupBugsnag()
}

func main() {
	service := flag.String("service", "http", "run a service")
	flag.Parse()

	store := durable.NewMemoryStore()

	switch *service {
	case "http":
		err := StartServer(store)
		if err != nil {
			log.Println(err)
		}
	}
}
