package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
	"github.com/mmynk/milkagency/pkg/api"
	"github.com/mmynk/milkagency/pkg/api/apiconnect"
)

// CatalogService manages companies and items. Anyone signed in can read
// the catalog; only staff change it. Customers never see frozen items.
type CatalogService struct {
	apiconnect.UnimplementedCatalogServiceHandler
	store storage.Store
}

func NewCatalogService(store storage.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) CreateCompany(ctx context.Context, req *connect.Request[api.CreateCompanyRequest]) (*connect.Response[api.CreateCompanyResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	company := &models.Company{Name: req.Msg.Name, Website: req.Msg.Website}
	if err := s.store.CreateCompany(ctx, company); err != nil {
		slog.Error("CreateCompany failed", "name", req.Msg.Name, "error", err)
		return nil, connectError(err)
	}
	slog.Info("Company created", "company_id", company.ID, "name", company.Name)
	return connect.NewResponse(&api.CreateCompanyResponse{Company: toAPICompany(company)}), nil
}

func (s *CatalogService) ListCompanies(ctx context.Context, req *connect.Request[api.ListCompaniesRequest]) (*connect.Response[api.ListCompaniesResponse], error) {
	companies, err := s.store.ListCompanies(ctx)
	if err != nil {
		return nil, connectError(err)
	}
	out := make([]*api.Company, len(companies))
	for i, c := range companies {
		out[i] = toAPICompany(c)
	}
	return connect.NewResponse(&api.ListCompaniesResponse{Companies: out}), nil
}

// checkCompany rejects an item pointing at a company that does not exist.
func (s *CatalogService) checkCompany(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if _, err := s.store.GetCompany(ctx, id); err != nil {
		return connectError(err)
	}
	return nil
}

func (s *CatalogService) CreateItem(ctx context.Context, req *connect.Request[api.CreateItemRequest]) (*connect.Response[api.CreateItemResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	if err := s.checkCompany(ctx, req.Msg.CompanyID); err != nil {
		return nil, err
	}

	item := &models.Item{StockQuantity: req.Msg.StockQuantity}
	applyItemFields(item, req.Msg.ItemFields)
	if err := s.store.CreateItem(ctx, item); err != nil {
		slog.Error("CreateItem failed", "name", req.Msg.Name, "error", err)
		return nil, connectError(err)
	}
	slog.Info("Item created", "item_id", item.ID, "name", item.Name, "stock", item.StockQuantity)
	return connect.NewResponse(&api.CreateItemResponse{Item: toAPIItem(item)}), nil
}

// UpdateItem rewrites the item's descriptive fields and prices. Stock
// moves only through AdjustStock and bills.
func (s *CatalogService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	if err := s.checkCompany(ctx, req.Msg.CompanyID); err != nil {
		return nil, err
	}

	item, err := s.store.GetItem(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}
	applyItemFields(item, req.Msg.ItemFields)
	if err := s.store.UpdateItem(ctx, item); err != nil {
		slog.Error("UpdateItem failed", "item_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.UpdateItemResponse{Item: toAPIItem(item)}), nil
}

func (s *CatalogService) GetItem(ctx context.Context, req *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	item, err := s.store.GetItem(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}
	if item.Frozen && isCustomer(ctx) {
		return nil, connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	}
	return connect.NewResponse(&api.GetItemResponse{Item: toAPIItem(item)}), nil
}

func (s *CatalogService) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	filter := models.ItemFilter{
		CompanyID:     req.Msg.CompanyID,
		Category:      req.Msg.Category,
		IncludeFrozen: req.Msg.IncludeFrozen && !isCustomer(ctx),
	}
	items, err := s.store.ListItems(ctx, filter)
	if err != nil {
		return nil, connectError(err)
	}
	out := make([]*api.Item, len(items))
	for i, item := range items {
		out[i] = toAPIItem(item)
	}
	return connect.NewResponse(&api.ListItemsResponse{Items: out}), nil
}

// AdjustStock records a delivery (positive delta) or a write-off.
func (s *CatalogService) AdjustStock(ctx context.Context, req *connect.Request[api.AdjustStockRequest]) (*connect.Response[api.AdjustStockResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	item, err := s.store.AdjustStock(ctx, req.Msg.ID, req.Msg.Delta)
	if err != nil {
		return nil, connectError(err)
	}
	slog.Info("Stock adjusted", "item_id", item.ID, "delta", req.Msg.Delta, "stock", item.StockQuantity)
	if item.StockQuantity < 0 {
		slog.Warn("Stock is negative", "item_id", item.ID, "stock", item.StockQuantity)
	}
	return connect.NewResponse(&api.AdjustStockResponse{Item: toAPIItem(item)}), nil
}

func (s *CatalogService) SetItemFrozen(ctx context.Context, req *connect.Request[api.SetItemFrozenRequest]) (*connect.Response[api.SetItemFrozenResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	if err := s.store.SetItemFrozen(ctx, req.Msg.ID, req.Msg.Frozen); err != nil {
		return nil, connectError(err)
	}
	item, err := s.store.GetItem(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.SetItemFrozenResponse{Item: toAPIItem(item)}), nil
}
