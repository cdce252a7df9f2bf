package main

import "github.com/akshayareddy2629/BillWatch/cmd"

func main() {
	cmd.Execute()
}
