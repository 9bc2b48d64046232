package main

import (
	"hashcrack/internal/app"
	"hashcrack/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
