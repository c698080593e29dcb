package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(os.Args); err != nil {
		fmt.Printf("clack: %s\n", err.Error())
		os.Exit(1)
	}
}
