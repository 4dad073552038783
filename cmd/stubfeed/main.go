package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/zillafan80/inarbit-console/internal/stubs"
)

func main() {
	addr := flag.String("addr", ":8091", "listen address")
	interval := flag.Duration("interval", 200*time.Millisecond, "push frame cadence")
	flag.Parse()

	srv := stubs.NewServer(*interval)
	log.Printf("stub feed listening on %s", *addr)
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
