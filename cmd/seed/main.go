package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/smith-matt-7272/recipe-app-api/internal/config"
	"github.com/smith-matt-7272/recipe-app-api/internal/db"
	"github.com/smith-matt-7272/recipe-app-api/internal/model"
	"github.com/smith-matt-7272/recipe-app-api/internal/repository"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "demo-pass"
)

type seedRecipe struct {
	title       string
	timeMinutes int
	price       string
	link        string
	description string
	tags        []string
	ingredients []string
}

var seedRecipes = []seedRecipe{
	{
		title:       "Thai prawn curry",
		timeMinutes: 30,
		price:       "12.50",
		link:        "https://example.com/thai-prawn-curry",
		description: "Fragrant red curry with king prawns.",
		tags:        []string{"Thai", "Dinner"},
		ingredients: []string{"Prawns", "Coconut milk", "Red curry paste"},
	},
	{
		title:       "Avocado toast",
		timeMinutes: 10,
		price:       "4.00",
		description: "Smashed avocado on sourdough.",
		tags:        []string{"Breakfast", "Vegan"},
		ingredients: []string{"Avocado", "Sourdough bread", "Lemon"},
	},
	{
		title:       "Chocolate cheesecake",
		timeMinutes: 90,
		price:       "15.00",
		tags:        []string{"Dessert"},
		ingredients: []string{"Cream cheese", "Dark chocolate", "Digestive biscuits"},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	ingredientRepo := repository.NewIngredientRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	switch err {
	case nil:
		log.Printf("Demo user %s already exists (id=%d), reusing", demoEmail, user.ID)
	case gorm.ErrRecordNotFound:
		hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
		if err != nil {
			log.Fatalf("Failed to hash demo password: %v", err)
		}
		user = &model.User{
			Email:        demoEmail,
			PasswordHash: string(hashed),
			Name:         "Demo User",
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %s (id=%d)", demoEmail, user.ID)
	default:
		log.Fatalf("Failed to look up demo user: %v", err)
	}

	created := 0
	for _, seed := range seedRecipes {
		price, err := decimal.NewFromString(seed.price)
		if err != nil {
			log.Fatalf("Invalid seed price %q: %v", seed.price, err)
		}

		recipe := &model.Recipe{
			UserID:      user.ID,
			Title:       seed.title,
			TimeMinutes: seed.timeMinutes,
			Price:       price,
			Link:        seed.link,
			Description: seed.description,
		}
		if err := recipeRepo.Create(ctx, recipe); err != nil {
			log.Fatalf("Failed to create recipe %q: %v", seed.title, err)
		}

		tags := make([]model.Tag, 0, len(seed.tags))
		for _, name := range seed.tags {
			tag, err := tagRepo.FindOrCreateByName(ctx, user.ID, name)
			if err != nil {
				log.Fatalf("Failed to resolve tag %q: %v", name, err)
			}
			tags = append(tags, *tag)
		}
		if err := recipeRepo.ReplaceTags(ctx, recipe, tags); err != nil {
			log.Fatalf("Failed to attach tags to %q: %v", seed.title, err)
		}

		ingredients := make([]model.Ingredient, 0, len(seed.ingredients))
		for _, name := range seed.ingredients {
			ingredient, err := ingredientRepo.FindOrCreateByName(ctx, user.ID, name)
			if err != nil {
				log.Fatalf("Failed to resolve ingredient %q: %v", name, err)
			}
			ingredients = append(ingredients, *ingredient)
		}
		if err := recipeRepo.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
			log.Fatalf("Failed to attach ingredients to %q: %v", seed.title, err)
		}

		created++
	}

	log.Printf("Seeded %d recipes for %s (password %q)", created, demoEmail, demoPassword)
}
