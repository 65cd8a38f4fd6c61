package main

import "flowerStore/cmd"

func main() {
	cmd.Execute()
}
