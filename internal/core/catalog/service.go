package catalog

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListCategories(context context.Context) ([]Category, error) {
	return service.repo.ListCategories(context)
}

func (service *Service) ListProducts(context context.Context) ([]Product, error) {
	return service.repo.ListProducts(context)
}

func (service *Service) ListProductsByCategories(context context.Context, categoryIDs []int) ([]Product, error) {
	return service.repo.ListProductsByCategories(context, categoryIDs)
}

func (service *Service) GetCategory(context context.Context, id int) (*Category, error) {
	return service.repo.GetCategory(context, id)
}

func (service *Service) GetProduct(context context.Context, id int) (*Product, error) {
	return service.repo.GetProduct(context, id)
}
