package catalog

import "github.com/lavibaby/shop/internal/models"

// seedProducts is the built-in listing the store opens with before any admin
// edit, and the fallback when the persisted catalog cannot be read.
func seedProducts() []models.Product {
	return []models.Product{
		{
			ID:            1,
			Name:          "Vestido Princesa Rosa",
			Price:         89.90,
			OriginalPrice: 129.90,
			Image:         "https://images.pexels.com/photos/1620760/pexels-photo-1620760.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:        5,
			Badge:         "Mais Vendido",
			BadgeColor:    "bg-gradient-to-r from-purple-500 to-pink-500",
			Description:   "Lindo vestido rosa perfeito para ocasiões especiais. Feito com tecido macio e confortável.",
			Sizes:         []string{"2", "4", "6", "8", "10"},
			Colors:        []string{"Rosa", "Lilás"},
			Category:      "meninas",
			InStock:       true,
		},
		{
			ID:            2,
			Name:          "Conjunto Aventureiro",
			Price:         69.90,
			OriginalPrice: 99.90,
			Image:         "https://images.pexels.com/photos/1620760/pexels-photo-1620760.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:        4,
			Badge:         "Oferta",
			BadgeColor:    "bg-gradient-to-r from-pink-500 to-blue-500",
			Description:   "Conjunto aventureiro ideal para brincadeiras ao ar livre. Resistente e estiloso.",
			Sizes:         []string{"2", "4", "6", "8"},
			Colors:        []string{"Azul", "Verde"},
			Category:      "meninos",
			InStock:       true,
		},
		{
			ID:            3,
			Name:          "Body Bebê Unicórnio",
			Price:         39.90,
			OriginalPrice: 59.90,
			Image:         "https://images.pexels.com/photos/1620760/pexels-photo-1620760.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:        5,
			Badge:         "Novo",
			BadgeColor:    "bg-gradient-to-r from-blue-500 to-purple-500",
			Description:   "Body fofo com estampa de unicórnio. 100% algodão, ideal para bebês.",
			Sizes:         []string{"RN", "P", "M", "G"},
			Colors:        []string{"Branco", "Rosa Claro"},
			Category:      "bebes",
			InStock:       false,
		},
		{
			ID:            4,
			Name:          "Macacão Colorido",
			Price:         79.90,
			OriginalPrice: 119.90,
			Image:         "https://images.pexels.com/photos/1620760/pexels-photo-1620760.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:        4,
			Badge:         "Promoção",
			BadgeColor:    "bg-gradient-to-r from-purple-500 to-pink-500",
			Description:   "Macacão colorido e divertido. Perfeito para o dia a dia dos pequenos.",
			Sizes:         []string{"1", "2", "3", "4"},
			Colors:        []string{"Colorido", "Arco-íris"},
			Category:      "meninas",
			InStock:       true,
		},
		{
			ID:            5,
			Name:          "Camiseta Super Herói",
			Price:         49.90,
			OriginalPrice: 69.90,
			Image:         "https://images.pexels.com/photos/1620760/pexels-photo-1620760.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:        5,
			Badge:         "Novo",
			BadgeColor:    "bg-gradient-to-r from-blue-500 to-green-500",
			Description:   "Camiseta de super herói para os pequenos aventureiros.",
			Sizes:         []string{"2", "4", "6", "8", "10"},
			Colors:        []string{"Azul", "Vermelho"},
			Category:      "meninos",
			InStock:       true,
		},
		{
			ID:            6,
			Name:          "Tiara Princesa",
			Price:         29.90,
			OriginalPrice: 39.90,
			Image:         "https://images.pexels.com/photos/1620760/pexels-photo-1620760.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:        4,
			Badge:         "Acessório",
			BadgeColor:    "bg-gradient-to-r from-pink-500 to-purple-500",
			Description:   "Linda tiara para completar o look de princesa.",
			Sizes:         []string{"Único"},
			Colors:        []string{"Rosa", "Dourado"},
			Category:      "acessorios",
			InStock:       true,
		},
	}
}
