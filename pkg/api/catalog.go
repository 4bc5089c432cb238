package api

import "github.com/shopspring/decimal"

type Company struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
}

type Item struct {
	ID            string          `json:"id"`
	Code          string          `json:"code,omitempty"`
	Name          string          `json:"name"`
	CompanyID     string          `json:"company_id,omitempty"`
	Category      string          `json:"category,omitempty"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	BuyingPrice   decimal.Decimal `json:"buying_price"`
	MRP           decimal.Decimal `json:"mrp"`
	StockQuantity int             `json:"stock_quantity"`
	PcsCount      int             `json:"pcs_count"`
	UnitVolumeML  int             `json:"unit_volume_ml"`
	Description   string          `json:"description,omitempty"`
	Frozen        bool            `json:"frozen"`
}

// ItemFields holds the editable catalog fields.
type ItemFields struct {
	Code         string          `json:"code" validate:"max=30"`
	Name         string          `json:"name" validate:"required,max=100"`
	CompanyID    string          `json:"company_id"`
	Category     string          `json:"category" validate:"max=30"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"gte=0"`
	BuyingPrice  decimal.Decimal `json:"buying_price" validate:"gte=0"`
	MRP          decimal.Decimal `json:"mrp" validate:"gte=0"`
	PcsCount     int             `json:"pcs_count" validate:"gte=0"`
	UnitVolumeML int             `json:"unit_volume_ml" validate:"gte=0"`
	Description  string          `json:"description" validate:"max=500"`
}

type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Website string `json:"website" validate:"omitempty,url"`
}

type CreateCompanyResponse struct {
	Company *Company `json:"company"`
}

type ListCompaniesRequest struct{}

type ListCompaniesResponse struct {
	Companies []*Company `json:"companies"`
}

type CreateItemRequest struct {
	ItemFields
	StockQuantity int `json:"stock_quantity"`
}

type CreateItemResponse struct {
	Item *Item `json:"item"`
}

type UpdateItemRequest struct {
	ID string `json:"id" validate:"required"`
	ItemFields
}

type UpdateItemResponse struct {
	Item *Item `json:"item"`
}

type GetItemRequest struct {
	ID string `json:"id" validate:"required"`
}

type GetItemResponse struct {
	Item *Item `json:"item"`
}

type ListItemsRequest struct {
	CompanyID     string `json:"company_id,omitempty"`
	Category      string `json:"category,omitempty"`
	IncludeFrozen bool   `json:"include_frozen,omitempty"`
}

type ListItemsResponse struct {
	Items []*Item `json:"items"`
}

// AdjustStockRequest adds Delta (which may be negative) to an item's stock.
type AdjustStockRequest struct {
	ID    string `json:"id" validate:"required"`
	Delta int    `json:"delta" validate:"ne=0"`
}

type AdjustStockResponse struct {
	Item *Item `json:"item"`
}

type SetItemFrozenRequest struct {
	ID     string `json:"id" validate:"required"`
	Frozen bool   `json:"frozen"`
}

type SetItemFrozenResponse struct {
	Item *Item `json:"item"`
}
