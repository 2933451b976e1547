package main

import "nemo/cmd"

func main() {
	cmd.Execute()
}
