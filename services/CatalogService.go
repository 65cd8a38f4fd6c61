package services

import (
	"log"

	"flowerStore/entities"
	"flowerStore/models"
	"flowerStore/repository"
)

type CatalogService struct {
	pr repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return CatalogService{
		pr: productRepo,
	}
}

func (cs *CatalogService) GetProducts(category string) (prods []entities.Product, err error) {
	switch category {
	case "":
		prods = cs.pr.GetProducts()
	case entities.CategoryBouquet, entities.CategoryGift, entities.CategoryDecoration:
		prods = cs.pr.GetProductsByCategory(category)
	default:
		log.Printf("GetProducts: unknown category %q", category)
		err = models.ErrBadRequest
	}
	return
}

func (cs *CatalogService) GetProductById(id string) (p entities.Product, err error) {
	p, ex := cs.pr.GetProductById(id)
	if !ex {
		err = models.ErrNotFoundError
	}
	return
}

func (cs *CatalogService) GetServices() []entities.Service {
	return cs.pr.GetServices()
}

func (cs *CatalogService) GetTestimonials() []entities.Testimonial {
	return cs.pr.GetTestimonials()
}

// Reprice rebuilds line items from catalog prices and returns their total.
func (cs *CatalogService) Reprice(items []entities.OrderItem) (priced []entities.OrderItem, total int, err error) {
	priced = make([]entities.OrderItem, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			log.Printf("Reprice: product %q has quantity %d", it.Id, it.Quantity)
			err = models.ErrBadRequest
			return
		}
		p, ex := cs.pr.GetProductById(it.Id)
		if !ex {
			log.Printf("Reprice: product %q is no longer in the catalog", it.Id)
			err = models.ErrBadRequest
			return
		}
		priced = append(priced, entities.OrderItem{Product: p, Quantity: it.Quantity})
		total += p.Price * it.Quantity
	}
	return
}
