package main

import "github.com/varalys/preflight/cmd/preflight"

func main() {
	preflight.Execute()
}
