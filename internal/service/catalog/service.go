package catalog

import (
	"context"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"
	"storefront/internal/imagestore"
	productrepo "storefront/internal/repository/product"
)

const maxImages = 5

type productRepo interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, in productrepo.UpdateInput) (*domain.Product, error)
	SoftDelete(ctx context.Context, id string) error
}

// Service owns product CRUD and catalog queries. Image bytes are streamed
// through the external image store; only references are persisted.
type Service struct {
	repo   productRepo
	images imagestore.Store
	logger *log.Logger
}

func New(repo productrepo.Repository, images imagestore.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, images: images, logger: logger}
}

// ImageFile is one multipart upload from the admin form.
type ImageFile struct {
	Filename string
	Reader   io.Reader
}

type CreateInput struct {
	Name        string
	Description string
	PriceCents  int64
	Category    string
	Stock       int
	Files       []ImageFile
}

type UpdateInput struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Category    *string
	Stock       *int
	Files       []ImageFile
}

func (s *Service) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	if in.Name == "" {
		return nil, domain.Invalid("Product name is required")
	}
	if in.PriceCents < 0 {
		return nil, domain.Invalid("Price cannot be negative")
	}
	if in.Stock < 0 {
		return nil, domain.Invalid("Stock cannot be negative")
	}
	if len(in.Files) == 0 {
		return nil, domain.Invalid("At least one image is required")
	}
	if len(in.Files) > maxImages {
		return nil, domain.Invalid("A maximum of %d images is allowed", maxImages)
	}

	images, err := s.uploadAll(ctx, in.Files)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.Create(ctx, domain.Product{
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Category:    in.Category,
		Stock:       in.Stock,
		Images:      images,
	})
	if err != nil {
		s.discard(ctx, images)
		return nil, err
	}
	return product, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	if in.PriceCents != nil && *in.PriceCents < 0 {
		return nil, domain.Invalid("Price cannot be negative")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, domain.Invalid("Stock cannot be negative")
	}
	if len(in.Files) > maxImages {
		return nil, domain.Invalid("A maximum of %d images is allowed", maxImages)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var images []domain.ProductImage
	if len(in.Files) > 0 {
		images, err = s.uploadAll(ctx, in.Files)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, productrepo.UpdateInput{
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Category:    in.Category,
		Stock:       in.Stock,
		Images:      images,
	})
	if err != nil {
		s.discard(ctx, images)
		return nil, err
	}

	// New images replaced the old set; the old blobs are now orphans.
	if len(images) > 0 {
		s.discard(ctx, existing.Images)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	// Soft delete keeps the row (and its images) so placed orders can keep
	// joining product names.
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) uploadAll(ctx context.Context, files []ImageFile) ([]domain.ProductImage, error) {
	images := make([]domain.ProductImage, 0, len(files))
	for _, f := range files {
		up, err := s.images.Upload(ctx, f.Filename, f.Reader)
		if err != nil {
			s.discard(ctx, images)
			return nil, fmt.Errorf("Image upload failed: %w", err)
		}
		images = append(images, domain.ProductImage{URL: up.URL, PublicID: up.PublicID})
	}
	return images, nil
}

// discard removes uploads best-effort; failures are logged, not surfaced.
func (s *Service) discard(ctx context.Context, images []domain.ProductImage) {
	for _, img := range images {
		if err := s.images.Delete(ctx, img.PublicID); err != nil {
			s.logger.Printf("catalog: delete image %s: %v", img.PublicID, err)
		}
	}
}
