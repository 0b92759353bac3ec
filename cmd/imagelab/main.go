package main

import "github.com/MeKo-Tech/imagelab/internal/cmd"

func main() {
	cmd.Execute()
}
