package customizer

import "board-customizer/models"

func wheel(uid string) models.CustomizerOption {
	return models.CustomizerOption{
		UID:     uid,
		Label:   "Wheel " + uid,
		Texture: models.ImageField{URL: "https://images.prismic.io/board/" + uid + ".png"},
	}
}

func deck(uid string) models.CustomizerOption {
	return models.CustomizerOption{
		UID:     uid,
		Label:   "Deck " + uid,
		Texture: models.ImageField{URL: "https://images.prismic.io/board/" + uid + ".webp"},
	}
}

func finish(uid, color string) models.CustomizerOption {
	return models.CustomizerOption{UID: uid, Label: "Finish " + uid, Color: color}
}

func testDoc() *models.BoardCustomizer {
	return &models.BoardCustomizer{
		ID:       "board-customizer",
		Wheels:   []models.CustomizerOption{wheel("w1"), wheel("w2")},
		Decks:    []models.CustomizerOption{deck("d1"), deck("d2")},
		Textures: []models.CustomizerOption{finish("t1", "#111111"), finish("t2", "#222222")},
	}
}
