package main

import (
	"github.com/entropyd/entropyd/src/service_cmd/runner"
	"github.com/entropyd/entropyd/src/settings"
)

func main() {
	runner := runner.NewRunner(settings.NewSettings())
	runner.Run()
}
