// cubetrainer - terminal trainer for Rubik's Cube algorithms.
package main

import (
	"github.com/SeamusWaldron/cubetrainer/internal/cli"
)

func main() {
	cli.Execute()
}
