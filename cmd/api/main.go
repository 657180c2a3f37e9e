package main

import (
	_ "Tenure/docs"
	appfx "Tenure/internal/fx"

	"go.uber.org/fx"
)

// @title Tenure API
// @version 1.0
// @description Backend de contribuições do empregador para metas de poupança dos colaboradores.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
