package main

import (
	"go.uber.org/fx"

	"github.com/Qathar8/Arianna-beauty/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
