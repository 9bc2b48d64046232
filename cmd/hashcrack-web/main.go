package main

import (
	"hashcrack/internal/appshell"
	"hashcrack/internal/webapp"
)

func main() { appshell.Main(webapp.RunContext) }
