package model

import "context"

// ExerciseSource reads pages of the exercise database.
type ExerciseSource interface {
	Exercises(ctx context.Context, page, limit int) ([]Exercise, error)
}

// NewsSource reads pages of the health news feed. Fewer than limit
// records signals the last page.
type NewsSource interface {
	News(ctx context.Context, page, limit int) ([]NewsArticle, error)
}

// NutritionSource looks up nutrient data for a free-text food query.
type NutritionSource interface {
	Nutrition(ctx context.Context, query string) ([]NutritionFacts, error)
}

// Authenticator is the identity provider contract used by the login wall.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (User, error)
	SignUp(ctx context.Context, username, email, password string) (User, error)
	SignOut(ctx context.Context) error
}

// ClickCounter is the read/increment view of the shared click tracker.
type ClickCounter interface {
	Increment()
	Value() int64
}
