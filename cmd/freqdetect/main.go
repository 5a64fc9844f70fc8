package main

import (
	"github.com/mherrerarendon/freq-detector/internal/cli"
	"github.com/mherrerarendon/freq-detector/internal/recovery"
)

func main() {
	defer recovery.HandlePanic()
	cli.Execute()
}
