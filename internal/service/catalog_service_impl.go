package service

import "github.com/alexanderramin/plancad/internal/command"

type catalogService struct{}

func NewCatalogService() CatalogService {
	return catalogService{}
}

func (catalogService) Commands() []command.Spec {
	return command.Catalog()
}
