package db

import (
	"context"
	"fmt"

	"travel_booking/internal/domain"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Bootstrap admin account
const (
	AdminEmail    = "admin@cvc.com"
	AdminPassword = "admin123"
	AdminName     = "Administrador CVC"
)

// Seed inserts the sample catalog and the admin account when they are absent.
// Running it again is a no-op.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var packages int64
		if err := tx.Model(&domain.Package{}).Count(&packages).Error; err != nil {
			return fmt.Errorf("count packages: %w", err)
		}
		if packages == 0 {
			sample := SamplePackages()
			if err := tx.Create(&sample).Error; err != nil {
				return fmt.Errorf("seed packages: %w", err)
			}
			logrus.WithField("count", len(sample)).Info("Sample packages seeded")
		}

		var admins int64
		if err := tx.Model(&domain.User{}).Where("email = ?", AdminEmail).Count(&admins).Error; err != nil {
			return fmt.Errorf("count admin: %w", err)
		}
		if admins == 0 {
			hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash admin password: %w", err)
			}
			admin := domain.User{Email: AdminEmail, PasswordHash: string(hash), Name: AdminName, IsAdmin: true}
			if err := tx.Create(&admin).Error; err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
			logrus.WithField("email", AdminEmail).Info("Admin account seeded")
		}
		return nil
	})
}

func samplePackage(title, destination, description string, price float64, duration int,
	category domain.Category, image, includes, hotel, transport string, featured bool) domain.Package {
	return domain.Package{
		Title:       title,
		Slug:        slug.Make(title),
		Destination: destination,
		Description: description,
		Price:       price,
		Duration:    duration,
		Category:    category,
		ImageURL:    image,
		Includes:    includes,
		Hotel:       hotel,
		Transport:   transport,
		Featured:    featured,
	}
}

// SamplePackages is the catalog installed on first start
func SamplePackages() []domain.Package {
	const img = "https://images.pexels.com/photos/%d/pexels-photo-%d.jpeg?auto=compress&cs=tinysrgb&w=800"
	image := func(id int) string { return fmt.Sprintf(img, id, id) }
	return []domain.Package{
		samplePackage("Pacote Completo - Cancún", "Cancún, México",
			"Desfrute das praias paradisíacas de Cancún com tudo incluso. Resort 5 estrelas, transfers e passeios inclusos. Uma experiência inesquecível no Caribe mexicano com águas cristalinas e areia branca.",
			2899.99, 7, domain.CategoryBeach, image(1371360),
			"All Inclusive, Transfers, Passeios, Seguro Viagem", "Resort Grand Oasis Cancún 5*", "Aéreo + Transfers", true),
		samplePackage("Rio de Janeiro Completo", "Rio de Janeiro, Brasil",
			"Conheça a Cidade Maravilhosa! Cristo Redentor, Pão de Açúcar, Copacabana e muito mais. Inclui passeios aos principais pontos turísticos e experiências únicas na cidade mais icônica do Brasil.",
			1299.99, 5, domain.CategoryCity, image(351448),
			"Hospedagem, Passeios, Café da manhã, Transfers", "Hotel Copacabana Palace 5*", "Aéreo", true),
		samplePackage("Aventura na Chapada Diamantina", "Chapada Diamantina, Brasil",
			"Trilhas, cachoeiras e paisagens deslumbrantes na Chapada Diamantina. Para os amantes da natureza e aventura. Inclui guia especializado e equipamentos para trilhas.",
			899.99, 4, domain.CategoryAdventure, image(1646953),
			"Hospedagem, Guia, Transfers, Equipamentos", "Pousada Villa Serrana 4*", "Terrestre", false),
		samplePackage("Disney Orlando - Família", "Orlando, EUA",
			"A magia da Disney para toda família! Ingressos para 4 parques e hospedagem em resort oficial. Viva momentos mágicos com Mickey, Minnie e todos os personagens Disney.",
			4299.99, 10, domain.CategoryFamily, image(164133),
			"Ingressos Disney, Hospedagem, Transfers, Fast Pass", "Disney Grand Floridian Resort 5*", "Aéreo + Transfers", true),
		samplePackage("Paris Romântico", "Paris, França",
			"A cidade do amor! Torre Eiffel, Louvre, passeio de barco no Sena e muito romantismo. Inclui jantar romântico e passeios pelos pontos mais icônicos de Paris.",
			3799.99, 8, domain.CategoryRomantic, image(338515),
			"Hospedagem, Passeios, Café da manhã, Jantar romântico", "Hotel Le Meurice 5*", "Aéreo", true),
		samplePackage("Maldivas Paradise", "Maldivas",
			"O paraíso na Terra! Bangalôs sobre a água cristalina e experiência inesquecível. Resort exclusivo com spa, mergulho e gastronomia internacional.",
			6999.99, 7, domain.CategoryHoneymoon, image(1483053),
			"Bangalô sobre a água, All Inclusive, Spa, Mergulho", "Centara Ras Fushi Resort 5*", "Aéreo + Hidroavião", true),
		samplePackage("Fernando de Noronha", "Fernando de Noronha, Brasil",
			"Paraíso ecológico brasileiro com praias cristalinas e vida marinha exuberante. Inclui mergulho com golfinhos e passeios ecológicos únicos.",
			2499.99, 5, domain.CategoryBeach, image(1450353),
			"Hospedagem, Passeios, Taxa ambiental, Mergulho", "Pousada Maravilha 4*", "Aéreo", false),
		samplePackage("Machu Picchu Místico", "Cusco, Peru",
			"Explore as ruínas incas e a cultura ancestral do Peru em uma jornada inesquecível. Inclui trem panorâmico e guia especializado em história inca.",
			1899.99, 6, domain.CategoryAdventure, image(2356045),
			"Hospedagem, Guia, Ingressos, Transfers, Trem", "Hotel Monasterio Cusco 5*", "Aéreo + Trem", false),
		samplePackage("Búzios Relax", "Búzios, Brasil",
			"Charme e sofisticação na Península de Búzios. Praias paradisíacas, gastronomia refinada e vida noturna agitada. O destino perfeito para relaxar.",
			899.99, 4, domain.CategoryBeach, image(1320684),
			"Hospedagem, Café da manhã, City tour, Transfer", "Pousada Casas Brancas 5*", "Terrestre", false),
		samplePackage("Nova York Urbano", "Nova York, EUA",
			"A cidade que nunca dorme! Times Square, Central Park, Estátua da Liberdade e Broadway. Viva a experiência completa da Big Apple.",
			3299.99, 7, domain.CategoryCity, image(466685),
			"Hospedagem, City tour, Ingressos, Transfers", "The Plaza Hotel 5*", "Aéreo", true),
	}
}
