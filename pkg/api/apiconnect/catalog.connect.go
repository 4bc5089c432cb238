package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/pkg/api"
)

// CatalogServiceName is the fully-qualified name of the CatalogService service.
const CatalogServiceName = "milkagency.v1.CatalogService"

const (
	CatalogServiceCreateCompanyProcedure = "/" + CatalogServiceName + "/CreateCompany"
	CatalogServiceListCompaniesProcedure = "/" + CatalogServiceName + "/ListCompanies"
	CatalogServiceCreateItemProcedure    = "/" + CatalogServiceName + "/CreateItem"
	CatalogServiceUpdateItemProcedure    = "/" + CatalogServiceName + "/UpdateItem"
	CatalogServiceGetItemProcedure       = "/" + CatalogServiceName + "/GetItem"
	CatalogServiceListItemsProcedure     = "/" + CatalogServiceName + "/ListItems"
	CatalogServiceAdjustStockProcedure   = "/" + CatalogServiceName + "/AdjustStock"
	CatalogServiceSetItemFrozenProcedure = "/" + CatalogServiceName + "/SetItemFrozen"
)

// CatalogServiceClient is a client for the milkagency.v1.CatalogService service.
type CatalogServiceClient interface {
	CreateCompany(context.Context, *connect.Request[api.CreateCompanyRequest]) (*connect.Response[api.CreateCompanyResponse], error)
	ListCompanies(context.Context, *connect.Request[api.ListCompaniesRequest]) (*connect.Response[api.ListCompaniesResponse], error)
	CreateItem(context.Context, *connect.Request[api.CreateItemRequest]) (*connect.Response[api.CreateItemResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	GetItem(context.Context, *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error)
	ListItems(context.Context, *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error)
	AdjustStock(context.Context, *connect.Request[api.AdjustStockRequest]) (*connect.Response[api.AdjustStockResponse], error)
	SetItemFrozen(context.Context, *connect.Request[api.SetItemFrozenRequest]) (*connect.Response[api.SetItemFrozenResponse], error)
}

// NewCatalogServiceClient constructs a client for the milkagency.v1.CatalogService service. The
// JSON codec is always installed.
func NewCatalogServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CatalogServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &catalogServiceClient{
		createCompany: connect.NewClient[api.CreateCompanyRequest, api.CreateCompanyResponse](httpClient, baseURL+CatalogServiceCreateCompanyProcedure, opts...),
		listCompanies: connect.NewClient[api.ListCompaniesRequest, api.ListCompaniesResponse](httpClient, baseURL+CatalogServiceListCompaniesProcedure, opts...),
		createItem:    connect.NewClient[api.CreateItemRequest, api.CreateItemResponse](httpClient, baseURL+CatalogServiceCreateItemProcedure, opts...),
		updateItem:    connect.NewClient[api.UpdateItemRequest, api.UpdateItemResponse](httpClient, baseURL+CatalogServiceUpdateItemProcedure, opts...),
		getItem:       connect.NewClient[api.GetItemRequest, api.GetItemResponse](httpClient, baseURL+CatalogServiceGetItemProcedure, opts...),
		listItems:     connect.NewClient[api.ListItemsRequest, api.ListItemsResponse](httpClient, baseURL+CatalogServiceListItemsProcedure, opts...),
		adjustStock:   connect.NewClient[api.AdjustStockRequest, api.AdjustStockResponse](httpClient, baseURL+CatalogServiceAdjustStockProcedure, opts...),
		setItemFrozen: connect.NewClient[api.SetItemFrozenRequest, api.SetItemFrozenResponse](httpClient, baseURL+CatalogServiceSetItemFrozenProcedure, opts...),
	}
}

type catalogServiceClient struct {
	createCompany *connect.Client[api.CreateCompanyRequest, api.CreateCompanyResponse]
	listCompanies *connect.Client[api.ListCompaniesRequest, api.ListCompaniesResponse]
	createItem    *connect.Client[api.CreateItemRequest, api.CreateItemResponse]
	updateItem    *connect.Client[api.UpdateItemRequest, api.UpdateItemResponse]
	getItem       *connect.Client[api.GetItemRequest, api.GetItemResponse]
	listItems     *connect.Client[api.ListItemsRequest, api.ListItemsResponse]
	adjustStock   *connect.Client[api.AdjustStockRequest, api.AdjustStockResponse]
	setItemFrozen *connect.Client[api.SetItemFrozenRequest, api.SetItemFrozenResponse]
}

func (c *catalogServiceClient) CreateCompany(ctx context.Context, req *connect.Request[api.CreateCompanyRequest]) (*connect.Response[api.CreateCompanyResponse], error) {
	return c.createCompany.CallUnary(ctx, req)
}

func (c *catalogServiceClient) ListCompanies(ctx context.Context, req *connect.Request[api.ListCompaniesRequest]) (*connect.Response[api.ListCompaniesResponse], error) {
	return c.listCompanies.CallUnary(ctx, req)
}

func (c *catalogServiceClient) CreateItem(ctx context.Context, req *connect.Request[api.CreateItemRequest]) (*connect.Response[api.CreateItemResponse], error) {
	return c.createItem.CallUnary(ctx, req)
}

func (c *catalogServiceClient) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

func (c *catalogServiceClient) GetItem(ctx context.Context, req *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error) {
	return c.getItem.CallUnary(ctx, req)
}

func (c *catalogServiceClient) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	return c.listItems.CallUnary(ctx, req)
}

func (c *catalogServiceClient) AdjustStock(ctx context.Context, req *connect.Request[api.AdjustStockRequest]) (*connect.Response[api.AdjustStockResponse], error) {
	return c.adjustStock.CallUnary(ctx, req)
}

func (c *catalogServiceClient) SetItemFrozen(ctx context.Context, req *connect.Request[api.SetItemFrozenRequest]) (*connect.Response[api.SetItemFrozenResponse], error) {
	return c.setItemFrozen.CallUnary(ctx, req)
}

// CatalogServiceHandler is implemented by the server side of milkagency.v1.CatalogService.
type CatalogServiceHandler interface {
	CreateCompany(context.Context, *connect.Request[api.CreateCompanyRequest]) (*connect.Response[api.CreateCompanyResponse], error)
	ListCompanies(context.Context, *connect.Request[api.ListCompaniesRequest]) (*connect.Response[api.ListCompaniesResponse], error)
	CreateItem(context.Context, *connect.Request[api.CreateItemRequest]) (*connect.Response[api.CreateItemResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	GetItem(context.Context, *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error)
	ListItems(context.Context, *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error)
	AdjustStock(context.Context, *connect.Request[api.AdjustStockRequest]) (*connect.Response[api.AdjustStockResponse], error)
	SetItemFrozen(context.Context, *connect.Request[api.SetItemFrozenRequest]) (*connect.Response[api.SetItemFrozenResponse], error)
}

// NewCatalogServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewCatalogServiceHandler(svc CatalogServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return mount(CatalogServiceName, map[string]http.Handler{
		CatalogServiceCreateCompanyProcedure: connect.NewUnaryHandler(CatalogServiceCreateCompanyProcedure, svc.CreateCompany, opts...),
		CatalogServiceListCompaniesProcedure: connect.NewUnaryHandler(CatalogServiceListCompaniesProcedure, svc.ListCompanies, opts...),
		CatalogServiceCreateItemProcedure:    connect.NewUnaryHandler(CatalogServiceCreateItemProcedure, svc.CreateItem, opts...),
		CatalogServiceUpdateItemProcedure:    connect.NewUnaryHandler(CatalogServiceUpdateItemProcedure, svc.UpdateItem, opts...),
		CatalogServiceGetItemProcedure:       connect.NewUnaryHandler(CatalogServiceGetItemProcedure, svc.GetItem, opts...),
		CatalogServiceListItemsProcedure:     connect.NewUnaryHandler(CatalogServiceListItemsProcedure, svc.ListItems, opts...),
		CatalogServiceAdjustStockProcedure:   connect.NewUnaryHandler(CatalogServiceAdjustStockProcedure, svc.AdjustStock, opts...),
		CatalogServiceSetItemFrozenProcedure: connect.NewUnaryHandler(CatalogServiceSetItemFrozenProcedure, svc.SetItemFrozen, opts...),
	})
}

// UnimplementedCatalogServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedCatalogServiceHandler struct{}

func (UnimplementedCatalogServiceHandler) CreateCompany(context.Context, *connect.Request[api.CreateCompanyRequest]) (*connect.Response[api.CreateCompanyResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CatalogService.CreateCompany is not implemented"))
}

func (UnimplementedCatalogServiceHandler) ListCompanies(context.Context, *connect.Request[api.ListCompaniesRequest]) (*connect.Response[api.ListCompaniesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CatalogService.ListCompanies is not implemented"))
}

func (UnimplementedCatalogServiceHandler) CreateItem(context.Context, *connect.Request[api.CreateItemRequest]) (*connect.Response[api.CreateItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CatalogService.CreateItem is not implemented"))
}

func (UnimplementedCatalogServiceHandler) UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CatalogService.UpdateItem is not implemented"))
}

func (UnimplementedCatalogServiceHandler) GetItem(context.Context, *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CatalogService.GetItem is not implemented"))
}

func (UnimplementedCatalogServiceHandler) ListItems(context.Context, *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CatalogService.ListItems is not implemented"))
}

func (UnimplementedCatalogServiceHandler) AdjustStock(context.Context, *connect.Request[api.AdjustStockRequest]) (*connect.Response[api.AdjustStockResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CatalogService.AdjustStock is not implemented"))
}

func (UnimplementedCatalogServiceHandler) SetItemFrozen(context.Context, *connect.Request[api.SetItemFrozenRequest]) (*connect.Response[api.SetItemFrozenResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CatalogService.SetItemFrozen is not implemented"))
}
