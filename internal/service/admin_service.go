package service

import (
	"context"
)

type CatalogInfo struct {
	Ready  bool `json:"ready"`
	Movies int  `json:"movies"`
}

type AdminService interface {
	ReloadCatalog(ctx context.Context) (CatalogInfo, error)
	CatalogInfo() CatalogInfo
}

type adminService struct {
	qs QuestionSource
}

func NewAdminService(qs QuestionSource) AdminService {
	return &adminService{qs: qs}
}

func (a *adminService) ReloadCatalog(ctx context.Context) (CatalogInfo, error) {
	if err := a.qs.LoadCatalog(ctx); err != nil {
		return CatalogInfo{}, err
	}
	return a.CatalogInfo(), nil
}

func (a *adminService) CatalogInfo() CatalogInfo {
	n := a.qs.CatalogSize()
	return CatalogInfo{Ready: n > 0, Movies: n}
}
