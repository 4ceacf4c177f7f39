package main

import "github.com/chrisdamba/mealgen/cmd"

func main() {
	cmd.Execute()
}
