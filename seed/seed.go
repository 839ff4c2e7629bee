// Package seed fills an empty database with the sample catalog and its chefs.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"homechef-api/models"

	"github.com/jaswdr/faker"
	"github.com/schollz/progressbar/v3"
	"gorm.io/gorm"
)

type Options struct {
	Reset    bool      // delete every meal before inserting
	Fake     int       // extra generated meals on top of the sample catalog
	Progress io.Writer // progress bar output, nil for none
}

type Result struct {
	ChefsCreated int
	MealsCreated int
	MealsSkipped int
}

// Run inserts the sample chefs and meals. Existing chefs and meals with the
// same owner and name are left untouched so the command can be repeated.
func Run(ctx context.Context, db *gorm.DB, opts Options) (Result, error) {
	var res Result
	if opts.Fake < 0 {
		return res, fmt.Errorf("fake meal count must not be negative, got %d", opts.Fake)
	}
	w := opts.Progress
	if w == nil {
		w = io.Discard
	}
	db = db.WithContext(ctx)

	if opts.Reset {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Meal{}).Error; err != nil {
			return res, fmt.Errorf("reset meals: %w", err)
		}
	}

	chefs := make([]sampleChef, 0, len(sampleMeals))
	for _, m := range sampleMeals {
		chefs = append(chefs, m.Chef)
	}
	for _, c := range chefs {
		created, err := ensureChef(db, c)
		if err != nil {
			return res, err
		}
		if created {
			res.ChefsCreated++
		}
	}

	meals := make([]models.Meal, 0, len(sampleMeals)+opts.Fake)
	for _, m := range sampleMeals {
		meals = append(meals, m.record())
	}
	meals = append(meals, fakeMeals(chefs, opts.Fake)...)

	bar := progressbar.NewOptions(len(meals),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("seeding meals"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	for i := range meals {
		created, err := insertMeal(db, &meals[i])
		if err != nil {
			return res, err
		}
		if created {
			res.MealsCreated++
		} else {
			res.MealsSkipped++
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return res, nil
}

func ensureChef(db *gorm.DB, c sampleChef) (bool, error) {
	var existing models.User
	err := db.Where("email = ?", models.NormalizeEmail(c.Email)).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("lookup chef %s: %w", c.Email, err)
	}

	chefID := c.ChefID
	user := models.User{
		Name:    c.Name,
		Email:   c.Email,
		Address: c.Location,
		Role:    models.RoleChef,
		ChefID:  &chefID,
	}
	if err := db.Create(&user).Error; err != nil {
		return false, fmt.Errorf("create chef %s: %w", c.Email, err)
	}
	return true, nil
}

func insertMeal(db *gorm.DB, meal *models.Meal) (bool, error) {
	var n int64
	err := db.Model(&models.Meal{}).
		Where("owner_email = ? AND name = ?", models.NormalizeEmail(meal.OwnerEmail), meal.Name).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("lookup meal %q: %w", meal.Name, err)
	}
	if n > 0 {
		return false, nil
	}
	if err := db.Create(meal).Error; err != nil {
		return false, fmt.Errorf("create meal %q: %w", meal.Name, err)
	}
	return true, nil
}

func (m sampleMeal) record() models.Meal {
	return models.Meal{
		ChefID:                m.Chef.ChefID,
		OwnerEmail:            m.Chef.Email,
		ChefName:              m.Chef.Name,
		ChefLocation:          m.Chef.Location,
		Name:                  m.Name,
		Image:                 m.Image,
		Category:              m.Category,
		Description:           m.Description,
		Ingredients:           m.Ingredients,
		Price:                 m.Price,
		Rating:                m.Rating,
		EstimatedDeliveryTime: m.EstimatedDeliveryTime,
		Status:                models.MealAvailable,
	}
}

func fakeMeals(chefs []sampleChef, n int) []models.Meal {
	if n == 0 || len(chefs) == 0 {
		return nil
	}
	fake := faker.New()
	meals := make([]models.Meal, 0, n)
	for i := 0; i < n; i++ {
		chef := chefs[fake.IntBetween(0, len(chefs)-1)]
		word := fake.Lorem().Word()
		name := fmt.Sprintf("%s %s #%d", strings.ToUpper(word[:1])+word[1:], fake.RandomStringElement(dishes), i+1)

		ingredients := make([]string, fake.IntBetween(2, 6))
		for j := range ingredients {
			ingredients[j] = fake.RandomStringElement(pantry)
		}

		meals = append(meals, models.Meal{
			ChefID:                chef.ChefID,
			OwnerEmail:            chef.Email,
			ChefName:              chef.Name,
			ChefLocation:          chef.Location,
			Name:                  name,
			Category:              fake.RandomStringElement(Categories),
			Description:           fake.Lorem().Sentence(10),
			Ingredients:           ingredients,
			Price:                 fake.Float64(2, 5, 50),
			Rating:                fake.Float64(1, 3, 5),
			EstimatedDeliveryTime: fake.IntBetween(10, 60),
			Status:                models.MealAvailable,
		})
	}
	return meals
}
