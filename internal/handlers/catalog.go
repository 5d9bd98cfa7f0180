// internal/handlers/catalog.go
package handlers

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/catalog"
	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
	contentService *services.ContentService
	imageService   *services.ImageService
}

func NewCatalogHandler(catalogService *services.CatalogService, contentService *services.ContentService, imageService *services.ImageService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		contentService: contentService,
		imageService:   imageService,
	}
}

// ProductView is a catalog product with its storefront extras. It serializes
// as one flat object: the product fields plus price, images and thumbnails.
type ProductView struct {
	Product      models.Product
	Price        float64
	RegularPrice float64
	Images       []string
	Thumbnails   []string
}

func (v ProductView) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(v.Product)
	if err != nil {
		return nil, err
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	out["price"] = v.Price
	out["regularPrice"] = v.RegularPrice
	out["images"] = v.Images
	out["thumbnails"] = v.Thumbnails
	return json.Marshal(out)
}

type CategoryView struct {
	models.Category
	FullPath     string `json:"fullPath"`
	ProductCount int    `json:"productCount"`
}

func (h *CatalogHandler) productView(p models.Product, currentCategory string, withImages bool) ProductView {
	view := ProductView{
		Product:      p,
		Price:        h.catalogService.EffectivePrice(p.ID),
		RegularPrice: h.catalogService.Prices()[p.ID],
		Images:       []string{},
		Thumbnails:   h.imageService.Thumbnails(p, currentCategory),
	}
	if withImages {
		view.Images = h.imageService.ProductImages(p, currentCategory)
	}
	return view
}

func (h *CatalogHandler) productViews(products []models.Product, currentCategory string) []ProductView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = h.productView(p, currentCategory, false)
	}
	return views
}

func (h *CatalogHandler) categoryView(c models.Category) CategoryView {
	return CategoryView{
		Category:     c,
		FullPath:     h.catalogService.CategoryFullPath(c.Slug),
		ProductCount: len(h.catalogService.ProductsByCategory(c.Slug)),
	}
}

// paginate sorts and slices products and writes the paginated envelope.
func (h *CatalogHandler) paginate(c *gin.Context, products []models.Product, currentCategory string) {
	params := utils.GetPaginationParams(c)
	sorted := h.catalogService.SortProducts(products, params.Sort, params.Order == "desc")
	page := utils.Paginate(sorted, params)

	result := utils.CreatePaginationResult(h.productViews(page, currentCategory), int64(len(products)), params)
	utils.PaginatedResponse(c, result)
}

// GET /catalog/paths
func (h *CatalogHandler) GetPaths(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"paths": h.catalogService.StaticPaths(),
	})
}

// GET /categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories := h.catalogService.Categories()

	slugs := make([]string, 0, len(categories))
	for slug := range categories {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	views := make([]CategoryView, 0, len(slugs))
	for _, slug := range slugs {
		views = append(views, h.categoryView(categories[slug]))
	}

	utils.SuccessResponse(c, gin.H{
		"categories": views,
	})
}

// GET /categories/:slug
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.catalogService.Category(c.Param("slug"))
	if err != nil {
		h.notFound(c, err)
		return
	}

	view := h.categoryView(category)
	markdown := h.contentService.PageMarkdown(strings.Split(view.FullPath, "/"))
	if markdown == "" && view.FullPath != category.Slug {
		markdown = h.contentService.PageMarkdown([]string{category.Slug})
	}

	utils.SuccessResponse(c, gin.H{
		"category": view,
		"markdown": markdown,
	})
}

// GET /categories/:slug/products
func (h *CatalogHandler) GetCategoryProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	slug := c.Param("slug")

	if _, err := h.catalogService.Category(slug); err != nil {
		h.notFound(c, err)
		return
	}

	active, err := parseQueryFilters(c.Request.URL.Query())
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFiltersInvalid), err.Error())
		return
	}

	h.paginate(c, h.catalogService.FilteredProducts(slug, active), slug)
}

// POST /categories/:slug/products/search
func (h *CatalogHandler) SearchCategoryProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	slug := c.Param("slug")

	if _, err := h.catalogService.Category(slug); err != nil {
		h.notFound(c, err)
		return
	}

	var active models.ActiveFilters
	if err := c.ShouldBindJSON(&active); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFiltersInvalid), err.Error())
		return
	}

	h.paginate(c, h.catalogService.FilteredProducts(slug, active), slug)
}

// GET /categories/:slug/filters
func (h *CatalogHandler) GetCategoryFilters(c *gin.Context) {
	slug := c.Param("slug")
	if _, err := h.catalogService.Category(slug); err != nil {
		h.notFound(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"filters": h.catalogService.FilterConfigForCategory(slug),
	})
}

// GET /categories/:slug/products/:product
func (h *CatalogHandler) GetCategoryProduct(c *gin.Context) {
	slug := c.Param("slug")
	product, err := h.catalogService.ProductInCategory(slug, c.Param("product"))
	if err != nil {
		h.notFound(c, err)
		return
	}

	category, err := h.catalogService.Category(slug)
	if err != nil {
		category = models.Category{Slug: slug}
	}

	utils.SuccessResponse(c, gin.H{
		"product":  h.productView(product, slug, true),
		"category": h.categoryView(category),
		"markdown": h.contentService.PageMarkdown([]string{slug, product.Slug}),
	})
}

// GET /products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	h.paginate(c, h.catalogService.Products(), "")
}

// GET /products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.ProductBySlug(c.Param("slug"))
	if err != nil {
		h.notFound(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": h.productView(product, "", true),
	})
}

// GET /brands
func (h *CatalogHandler) GetBrands(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"brands": h.catalogService.Brands(),
	})
}

// GET /brands/:slug
func (h *CatalogHandler) GetBrand(c *gin.Context) {
	slug := c.Param("slug")
	name, ok := h.catalogService.Brands()[slug]
	if !ok {
		utils.NotFoundResponse(c, "brand")
		return
	}

	var products []models.Product
	for _, p := range h.catalogService.Products() {
		if p.Brand == slug {
			products = append(products, p)
		}
	}

	utils.SuccessResponse(c, gin.H{
		"slug":     slug,
		"name":     name,
		"markdown": h.contentService.BrandMarkdown(slug),
		"products": h.productViews(products, ""),
	})
}

// GET /pages/*path
func (h *CatalogHandler) GetPage(c *gin.Context) {
	var slug []string
	if path := strings.Trim(c.Param("path"), "/"); path != "" {
		slug = strings.Split(path, "/")
	}

	markdown := h.contentService.PageMarkdown(slug)
	if markdown == "" {
		utils.NotFoundResponse(c, "page")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"slug":     slug,
		"markdown": markdown,
	})
}

func (h *CatalogHandler) notFound(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrCategoryNotFound):
		utils.NotFoundResponse(c, "category")
	case errors.Is(err, catalog.ErrProductNotFound):
		utils.NotFoundResponse(c, "product")
	default:
		utils.InternalErrorResponse(c, "")
	}
}
