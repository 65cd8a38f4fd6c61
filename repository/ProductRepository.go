package repository

import (
	"flowerStore/entities"
)

type ProductRepository interface {
	GetProductById(id string) (p entities.Product, exists bool)
	GetProducts() []entities.Product
	GetProductsByCategory(category string) []entities.Product
	GetServices() []entities.Service
	GetTestimonials() []entities.Testimonial
}

// ProductRepo serves the fixed catalog compiled into the binary.
type ProductRepo struct {
	products     []entities.Product
	services     []entities.Service
	testimonials []entities.Testimonial
}

func NewProductRepository() ProductRepository {
	return &ProductRepo{
		products:     catalogProducts,
		services:     catalogServices,
		testimonials: catalogTestimonials,
	}
}

func (p *ProductRepo) GetProductById(id string) (prod entities.Product, exists bool) {
	for _, v := range p.products {
		if v.Id == id {
			return v, true
		}
	}
	return
}

func (p *ProductRepo) GetProducts() []entities.Product {
	res := make([]entities.Product, len(p.products))
	copy(res, p.products)
	return res
}

func (p *ProductRepo) GetProductsByCategory(category string) (prods []entities.Product) {
	prods = []entities.Product{}
	for _, v := range p.products {
		if v.Category == category {
			prods = append(prods, v)
		}
	}
	return
}

func (p *ProductRepo) GetServices() []entities.Service {
	res := make([]entities.Service, len(p.services))
	copy(res, p.services)
	return res
}

func (p *ProductRepo) GetTestimonials() []entities.Testimonial {
	res := make([]entities.Testimonial, len(p.testimonials))
	copy(res, p.testimonials)
	return res
}

var catalogProducts = []entities.Product{
	{
		Id:          "p1",
		Name:        "Eternal Crimson Box",
		Description: "Deep velvet roses in a premium signature keepsake box.",
		Price:       8500,
		Image:       "https://images.unsplash.com/photo-1561181286-d3fee7d55364?auto=format&fit=crop&q=80&w=800",
		Category:    entities.CategoryBouquet,
	},
	{
		Id:          "p2",
		Name:        "Pearl Lily Serenity",
		Description: "Virgin white lilies paired with seasonal eucalyptus greenery.",
		Price:       6800,
		Image:       "https://images.unsplash.com/photo-1525310238806-e0b75350b551?auto=format&fit=crop&q=80&w=800",
		Category:    entities.CategoryBouquet,
	},
	{
		Id:          "p3",
		Name:        "Golden Hour Glow",
		Description: "Vibrant marigolds and sunflowers for traditional celebrations.",
		Price:       4500,
		Image:       "https://images.unsplash.com/photo-1490750967868-88aa4486c946?auto=format&fit=crop&q=80&w=800",
		Category:    entities.CategoryBouquet,
	},
	{
		Id:          "p4",
		Name:        "Royal Orchid Tall",
		Description: "Rare purple dendrobiums in a tall handcrafted ceramic vase.",
		Price:       12500,
		Image:       "https://images.unsplash.com/photo-1520188129767-e17551936130?auto=format&fit=crop&q=80&w=800",
		Category:    entities.CategoryGift,
	},
}

var catalogServices = []entities.Service{
	{
		Id:          "car-decor",
		Title:       "Grand Wedding Car Decor",
		Description: "Bespoke designs using imported premium roses and exotic lilies.",
		PriceStart:  "Rs. 12,000",
		Image:       "https://images.unsplash.com/photo-1549417229-aa67d3263c09?auto=format&fit=crop&q=80&w=1200",
	},
	{
		Id:          "stage-decor",
		Title:       "Royal Stage Setups",
		Description: "Customized floral themes for Nikah, Barat, and Walima ceremonies.",
		PriceStart:  "Rs. 65,000",
		Image:       "https://images.unsplash.com/photo-1519225495810-751783d9a7a8?auto=format&fit=crop&q=80&w=1200",
	},
	{
		Id:          "bridal-bouquet",
		Title:       "Signature Bouquets",
		Description: "Hand-picked, long-stemmed luxury blooms for the discerning bride.",
		PriceStart:  "Rs. 5,500",
		Image:       "https://images.unsplash.com/photo-1519741497674-611481863552?auto=format&fit=crop&q=80&w=1200",
	},
	{
		Id:          "gajray",
		Title:       "Floral Jewelry",
		Description: "Delicate, fragrant jewelry pieces for Mehndi and Mayun festivities.",
		PriceStart:  "Rs. 3,500",
		Image:       "https://images.unsplash.com/photo-1594950195709-a14f66c24b2b?auto=format&fit=crop&q=80&w=1200",
	},
}

var catalogTestimonials = []entities.Testimonial{
	{Id: "1", Name: "Sara Khan", Text: "Breathtaking car decoration. The flowers stayed beautiful throughout the event.", ServiceType: "Car Decoration", Rating: 5},
	{Id: "2", Name: "Ahmed Malik", Text: "Their stage design transformed our venue into a dreamland.", ServiceType: "Stage Setup", Rating: 5},
	{Id: "3", Name: "Zoya Ali", Text: "Simplest booking process and the most elegant bouquets in Lahore.", ServiceType: "Luxury Gifting", Rating: 5},
}
