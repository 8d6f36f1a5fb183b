/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/jwwisniewski/cashcard-spring-academy/cmd"

func main() {
	cmd.Execute()
}
