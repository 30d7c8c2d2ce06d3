package catalog

import (
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

const imageBase = "https://images.unsplash.com/"

func product(id, name, description, price string, category domain.Category, image string, popularity int) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       decimal.RequireFromString(price),
		Category:    category,
		ImageURL:    imageBase + image,
		Popularity:  popularity,
	}
}

// defaultProducts is the fixed storefront assortment.
var defaultProducts = []domain.Product{
	product("1", "Smartphone Premium X", "Le tout dernier smartphone avec un appareil photo de 108MP, 8Go de RAM et 128Go de stockage.", "999.99", domain.CategoryElectronics, "photo-1598327105666-5b89351aff97", 9),
	product("2", "Casque Audio Sans Fil", "Casque bluetooth avec réduction de bruit active et autonomie de 30 heures.", "249.99", domain.CategoryElectronics, "photo-1505740420928-5e560c06d30e", 8),
	product("3", "Chemise Lin Premium", "Chemise légère 100% lin avec col italien.", "79.99", domain.CategoryClothing, "photo-1596755094514-f87e34085b2c", 7),
	product("4", "Montre Connectée Sport", "Montre connectée étanche avec GPS intégré et suivi de la fréquence cardiaque.", "199.99", domain.CategoryElectronics, "photo-1542496658-e33a6d0d50f6", 8),
	product("5", "Sac à Dos Voyage", "Sac à dos spacieux avec compartiment pour ordinateur portable et port USB.", "89.99", domain.CategoryClothing, "photo-1553062407-98eeb64c6a62", 6),
	product("6", "Roman Bestseller", "Le dernier roman du célèbre auteur qui a captivé des millions de lecteurs.", "24.99", domain.CategoryBooks, "photo-1589998059171-988d887df646", 7),
	product("7", "Chaise Design Moderne", "Chaise ergonomique au design scandinave avec assise en tissu et pieds en bois.", "149.99", domain.CategoryHome, "photo-1592078615290-033ee584e267", 5),
	product("8", "Crème Visage Premium", "Formule hydratante enrichie en acide hyaluronique et vitamines.", "59.99", domain.CategoryBeauty, "photo-1571781926291-c477ebfd024b", 6),
	product("9", "Veste Jean Vintage", "Veste en jean au style rétro avec finitions usées et boutons métalliques.", "119.99", domain.CategoryClothing, "photo-1551537482-f2075a1d41f2", 8),
	product("10", "Tablette Graphique", "Tablette graphique professionnelle avec stylet sensible à la pression.", "329.99", domain.CategoryElectronics, "photo-1557825835-80b1de560ed6", 7),
	product("11", "Enceinte Bluetooth Portable", "Enceinte étanche au son puissant et à l'autonomie de 24 heures.", "129.99", domain.CategoryElectronics, "photo-1608043152269-423dbba4e7e1", 9),
	product("12", "Sneakers Limited Edition", "Sneakers en édition limitée au design exclusif.", "159.99", domain.CategoryClothing, "photo-1600269452121-4f2416e55c28", 10),
	product("13", "Set de Cuisine Premium", "Ensemble de casseroles et poêles en acier inoxydable.", "199.99", domain.CategoryHome, "photo-1590794056499-2be15a6ff330", 6),
	product("14", "Parfum Luxe", "Eau de parfum aux notes boisées et florales.", "89.99", domain.CategoryBeauty, "photo-1594035910387-fea47794261f", 7),
	product("15", "Guide Voyage Illustré", "Guide de voyage richement illustré avec itinéraires et conseils.", "34.99", domain.CategoryBooks, "photo-1573592371950-348a8f1d9f38", 5),
	product("16", "Lampe Design Minimaliste", "Lampe de table au design épuré et à la lumière chaleureuse.", "79.99", domain.CategoryHome, "photo-1507473885765-e6ed057f782c", 6),
}
