package main

import "gridlock/internal/game"

func main() {
	game.RunDesktop()
}
