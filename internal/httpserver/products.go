package httpserver

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
	catalogsvc "storefront/internal/service/catalog"
)

type productHandlers struct {
	svc CatalogService
}

func (h *productHandlers) list(c *gin.Context) {
	filter := domain.ProductFilter{
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}
	if v := c.Query("minPrice"); v != "" {
		cents, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respond(c, http.StatusBadRequest, nil, "Invalid minPrice")
			return
		}
		filter.MinPriceCents = &cents
	}
	if v := c.Query("maxPrice"); v != "" {
		cents, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respond(c, http.StatusBadRequest, nil, "Invalid maxPrice")
			return
		}
		filter.MaxPriceCents = &cents
	}

	products, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Products not found")
		return
	}
	respond(c, http.StatusOK, products, "Products fetched successfully")
}

func (h *productHandlers) get(c *gin.Context) {
	product, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	respond(c, http.StatusOK, product, "Product fetched successfully")
}

func (h *productHandlers) create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respond(c, http.StatusBadRequest, nil, "Invalid multipart form")
		return
	}

	in := catalogsvc.CreateInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
	}
	if v := c.PostForm("price"); v != "" {
		cents, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respond(c, http.StatusBadRequest, nil, "Invalid price")
			return
		}
		in.PriceCents = cents
	}
	if v := c.PostForm("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			respond(c, http.StatusBadRequest, nil, "Invalid stock")
			return
		}
		in.Stock = stock
	}

	files, closeAll, err := openImageFiles(form.File["images"])
	if err != nil {
		respond(c, http.StatusBadRequest, nil, "Invalid image upload")
		return
	}
	defer closeAll()
	in.Files = files

	product, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	respond(c, http.StatusCreated, product, "Product created successfully")
}

func (h *productHandlers) update(c *gin.Context) {
	var in catalogsvc.UpdateInput
	if v, ok := c.GetPostForm("name"); ok {
		in.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		in.Description = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		in.Category = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		cents, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respond(c, http.StatusBadRequest, nil, "Invalid price")
			return
		}
		in.PriceCents = &cents
	}
	if v, ok := c.GetPostForm("stock"); ok {
		stock, err := strconv.Atoi(v)
		if err != nil {
			respond(c, http.StatusBadRequest, nil, "Invalid stock")
			return
		}
		in.Stock = &stock
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		files, closeAll, err := openImageFiles(form.File["images"])
		if err != nil {
			respond(c, http.StatusBadRequest, nil, "Invalid image upload")
			return
		}
		defer closeAll()
		in.Files = files
	}

	product, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	respond(c, http.StatusOK, product, "Product updated successfully")
}

func (h *productHandlers) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Product not found")
		return
	}
	respond(c, http.StatusOK, nil, "Product deleted successfully (soft delete)")
}

// openImageFiles opens every uploaded part and returns a single closer for
// all of them. On error the already-opened parts are closed before return.
func openImageFiles(headers []*multipart.FileHeader) ([]catalogsvc.ImageFile, func(), error) {
	var files []catalogsvc.ImageFile
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opened = append(opened, f)
		files = append(files, catalogsvc.ImageFile{Filename: header.Filename, Reader: f})
	}
	return files, closeAll, nil
}
