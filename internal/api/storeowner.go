package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dukerupert/dukanam/internal/model"
)

// MyStore returns the store owned by ownerID.
func (c *Client) MyStore(ctx context.Context, ownerID int64) (*model.Store, error) {
	q := url.Values{"ownerId": {id(ownerID)}}
	var s model.Store
	if err := c.do(ctx, http.MethodGet, "/store/my-store", q, nil, &s); err != nil {
		return nil, fmt.Errorf("get my store: %w", err)
	}
	return &s, nil
}

// RegisterStore creates the owner's store. logo may be nil.
func (c *Client) RegisterStore(ctx context.Context, ownerID int64, in model.StoreInput, logo *Upload) (*model.Store, error) {
	return c.saveStore(ctx, http.MethodPost, "/store/register", ownerID, in, logo)
}

func (c *Client) UpdateStore(ctx context.Context, ownerID int64, in model.StoreInput, logo *Upload) (*model.Store, error) {
	return c.saveStore(ctx, http.MethodPut, "/store/update", ownerID, in, logo)
}

func (c *Client) saveStore(ctx context.Context, method, path string, ownerID int64, in model.StoreInput, logo *Upload) (*model.Store, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	fields := url.Values{
		"storeName":     {in.StoreName},
		"storeAddress":  {in.StoreAddress},
		"contactNumber": {in.ContactNumber},
	}
	if in.Latitude != nil {
		fields.Set("latitude", formatFloat(*in.Latitude))
	}
	if in.Longitude != nil {
		fields.Set("longitude", formatFloat(*in.Longitude))
	}
	var files []filePart
	if logo != nil {
		files = append(files, filePart{field: "logo", file: *logo})
	}

	var s model.Store
	q := url.Values{"ownerId": {id(ownerID)}}
	if err := c.doMultipart(ctx, method, path, q, fields, files, &s); err != nil {
		return nil, fmt.Errorf("save store: %w", err)
	}
	return &s, nil
}

func (c *Client) OwnerCategories(ctx context.Context, storeID int64) ([]model.Category, error) {
	q := url.Values{"storeId": {id(storeID)}}
	var list []model.Category
	if err := c.do(ctx, http.MethodGet, "/store/categories", q, nil, &list); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

func (c *Client) CreateCategory(ctx context.Context, storeID int64, name string) (*model.Category, error) {
	q := url.Values{"storeId": {id(storeID)}}
	var cat model.Category
	if err := c.do(ctx, http.MethodPost, "/store/categories", q, map[string]string{"categoryName": name}, &cat); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &cat, nil
}

func (c *Client) UpdateCategory(ctx context.Context, categoryID int64, name string) (*model.Category, error) {
	var cat model.Category
	if err := c.do(ctx, http.MethodPut, "/store/categories/"+id(categoryID), nil, map[string]string{"categoryName": name}, &cat); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &cat, nil
}

// SetCategorySection moves a category under a storefront section heading.
func (c *Client) SetCategorySection(ctx context.Context, categoryID int64, section string) (*model.Category, error) {
	var cat model.Category
	if err := c.do(ctx, http.MethodPut, "/store/categories/"+id(categoryID)+"/section", nil, map[string]string{"section": section}, &cat); err != nil {
		return nil, fmt.Errorf("set category section: %w", err)
	}
	return &cat, nil
}

func (c *Client) DeleteCategory(ctx context.Context, categoryID int64) error {
	if err := c.do(ctx, http.MethodDelete, "/store/categories/"+id(categoryID), nil, nil, nil); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (c *Client) Subcategories(ctx context.Context, categoryID int64) ([]model.Subcategory, error) {
	var list []model.Subcategory
	if err := c.do(ctx, http.MethodGet, "/store/categories/"+id(categoryID)+"/subcategories", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	return list, nil
}

func (c *Client) CreateSubcategory(ctx context.Context, categoryID int64, name string) (*model.Subcategory, error) {
	var sub model.Subcategory
	body := map[string]string{"subcategoryName": name}
	if err := c.do(ctx, http.MethodPost, "/store/categories/"+id(categoryID)+"/subcategories", nil, body, &sub); err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return &sub, nil
}

func (c *Client) UpdateSubcategory(ctx context.Context, subcategoryID int64, name string) (*model.Subcategory, error) {
	var sub model.Subcategory
	body := map[string]string{"subcategoryName": name}
	if err := c.do(ctx, http.MethodPut, "/store/subcategories/"+id(subcategoryID), nil, body, &sub); err != nil {
		return nil, fmt.Errorf("update subcategory: %w", err)
	}
	return &sub, nil
}

func (c *Client) DeleteSubcategory(ctx context.Context, subcategoryID int64) error {
	if err := c.do(ctx, http.MethodDelete, "/store/subcategories/"+id(subcategoryID), nil, nil, nil); err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return nil
}

// ProductPlacement says where a product is listed in the owner's store.
type ProductPlacement struct {
	StoreID       int64
	CategoryID    int64
	SubcategoryID *int64
}

func (p ProductPlacement) query() url.Values {
	q := url.Values{
		"storeId":    {id(p.StoreID)},
		"categoryId": {id(p.CategoryID)},
	}
	if p.SubcategoryID != nil {
		q.Set("subcategoryId", id(*p.SubcategoryID))
	}
	return q
}

func productFields(in model.ProductInput) url.Values {
	return url.Values{
		"productName":     {in.ProductName},
		"description":     {in.Description},
		"price":           {formatFloat(in.Price)},
		"quantityInStock": {strconv.Itoa(in.QuantityInStock)},
	}
}

func imageParts(images []Upload) []filePart {
	parts := make([]filePart, 0, len(images))
	for _, img := range images {
		parts = append(parts, filePart{field: "images", file: img})
	}
	return parts
}

func (c *Client) CreateProduct(ctx context.Context, at ProductPlacement, in model.ProductInput, images []Upload) (*model.Product, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var p model.Product
	if err := c.doMultipart(ctx, http.MethodPost, "/store/products", at.query(), productFields(in), imageParts(images), &p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

// UpdateProduct replaces a product's fields. Images are appended when given.
func (c *Client) UpdateProduct(ctx context.Context, productID int64, at ProductPlacement, in model.ProductInput, images []Upload) (*model.Product, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var p model.Product
	if err := c.doMultipart(ctx, http.MethodPut, "/store/products/"+id(productID), at.query(), productFields(in), imageParts(images), &p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &p, nil
}

func (c *Client) OwnerProducts(ctx context.Context, storeID int64) ([]model.Product, error) {
	q := url.Values{"storeId": {id(storeID)}}
	var list []model.Product
	if err := c.do(ctx, http.MethodGet, "/store/products", q, nil, &list); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID int64) error {
	if err := c.do(ctx, http.MethodDelete, "/store/products/"+id(productID), nil, nil, nil); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
