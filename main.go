/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/moamenhredeen/oascurl/cmd"

func main() {
	cmd.Execute()
}
