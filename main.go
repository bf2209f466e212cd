package main

import "storage-manager/cmd"

func main() {
	cmd.Execute()
}
