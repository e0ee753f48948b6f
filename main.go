package main

import (
	"log"

	"github.com/venturemesh/partnermatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
