package main

import "homechef-api/cmd"

func main() {
	cmd.Execute()
}
