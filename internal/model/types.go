package model

import "time"

// Exercise is one record from the exercise database.
type Exercise struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	BodyPart     string   `json:"bodyPart"`
	Target       string   `json:"target"`
	Equipment    string   `json:"equipment"`
	GifURL       string   `json:"gifUrl"`
	Instructions []string `json:"instructions"`
}

// NewsArticle is one item from the health news feed.
// Description is optional and may be empty.
type NewsArticle struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link"`
}

// NutritionFacts holds the nutrient breakdown for one food item.
type NutritionFacts struct {
	Name                string  `json:"name"`
	ServingSizeG        float64 `json:"serving_size_g"`
	Calories            float64 `json:"calories"`
	ProteinG            float64 `json:"protein_g"`
	CarbohydratesTotalG float64 `json:"carbohydrates_total_g"`
	FatTotalG           float64 `json:"fat_total_g"`
	FatSaturatedG       float64 `json:"fat_saturated_g"`
	FiberG              float64 `json:"fiber_g"`
	SugarG              float64 `json:"sugar_g"`
	CholesterolMg       float64 `json:"cholesterol_mg"`
	SodiumMg            float64 `json:"sodium_mg"`
	PotassiumMg         float64 `json:"potassium_mg"`
}

// User is a registered account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  time.Time // zero value = never signed in
}
