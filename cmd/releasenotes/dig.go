package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/releasenotes/internal"
	"github.com/rios0rios0/releasenotes/internal/infrastructure/controllers"
)

func injectGenerateController() *controllers.GenerateController {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var generateController *controllers.GenerateController
	if err := container.Invoke(func(gc *controllers.GenerateController) {
		generateController = gc
	}); err != nil {
		panic(err)
	}

	return generateController
}
