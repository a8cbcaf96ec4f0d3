// cuboid - CLI application for solving the 3x3x2 cuboid puzzle.
package main

import (
	"github.com/SeamusWaldron/cuboid/internal/cli"
)

func main() {
	cli.Execute()
}
