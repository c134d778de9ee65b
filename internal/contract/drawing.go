package contract

import "github.com/alexanderramin/plancad/internal/app"

type CreateDrawingRequest = app.CreateDrawingRequest

type DrawingSummary = app.DrawingSummary

type AddLayerRequest = app.AddLayerRequest

type AssignLayerRequest = app.AssignLayerRequest

type LayerFlagsRequest = app.LayerFlagsRequest

type SaveTemplateRequest = app.SaveTemplateRequest

type PlaceTemplateRequest = app.PlaceTemplateRequest

type PlaceTemplateResponse = app.PlaceTemplateResponse
