package main

import (
	"SpiderSQLAgent/app/cli"
)

func main() {
	cli.Execute()
}
