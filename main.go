/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/usersdb/seeder/cmd"

func main() {
	cmd.Execute()
}
