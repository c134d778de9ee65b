package service

import "github.com/alexanderramin/plancad/internal/app"

type ScriptService interface {
	app.ExecuteScriptUseCase
}

type DrawingService interface {
	app.DrawingUseCase
	app.LayerUseCase
	app.TemplateUseCase
}

type CatalogService interface {
	app.CatalogUseCase
}

type DraftService interface {
	app.DraftScriptUseCase
}
