package handlers

import (
	"net/http"

	"homechef-api/middleware"
	"homechef-api/services"

	"github.com/gin-gonic/gin"
)

type MealRequest struct {
	Name                  *string    `json:"name"`
	Image                 *string    `json:"image"`
	Category              *string    `json:"category"`
	Description           *string    `json:"description"`
	ChefName              *string    `json:"chefName"`
	ChefLocation          *string    `json:"chefLocation"`
	Ingredients           []string   `json:"ingredients"`
	Price                 *flexFloat `json:"price"`
	Rating                *flexFloat `json:"rating"`
	EstimatedDeliveryTime *flexInt   `json:"estimatedDeliveryTime"`
	Status                *string    `json:"status"`
}

func (r MealRequest) input() services.MealInput {
	return services.MealInput{
		Name:                  r.Name,
		Image:                 r.Image,
		Category:              r.Category,
		Description:           r.Description,
		ChefName:              r.ChefName,
		ChefLocation:          r.ChefLocation,
		Ingredients:           r.Ingredients,
		Price:                 r.Price.ptr(),
		Rating:                r.Rating.ptr(),
		EstimatedDeliveryTime: r.EstimatedDeliveryTime.ptr(),
		Status:                r.Status,
	}
}

// ListMeals supports ?status= (case-insensitive) and ?sort=asc|desc by price
func (h *Handler) ListMeals(c *gin.Context) {
	meals, err := h.svc.Meals.List(c.Request.Context(), services.MealFilter{
		Status: c.Query("status"),
		Sort:   c.Query("sort"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": meals})
}

// LatestMeals returns the six newest meals
func (h *Handler) LatestMeals(c *gin.Context) {
	meals, err := h.svc.Meals.Latest(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": meals})
}

// GetMeal returns a single meal document
func (h *Handler) GetMeal(c *gin.Context) {
	meal, err := h.svc.Meals.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// CreateMeal adds a meal owned by the calling chef
func (h *Handler) CreateMeal(c *gin.Context) {
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid meal")
		return
	}

	meal, err := h.svc.Meals.Create(c.Request.Context(), middleware.GetUser(c), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Meal added successfully", "data": meal})
}

// UpdateMeal edits one of the caller's meals
func (h *Handler) UpdateMeal(c *gin.Context) {
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid meal")
		return
	}

	meal, err := h.svc.Meals.Update(c.Request.Context(), c.Param("id"), middleware.GetEmail(c), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updatedMeal": meal})
}

// DeleteMeal removes one of the caller's meals
func (h *Handler) DeleteMeal(c *gin.Context) {
	if err := h.svc.Meals.Delete(c.Request.Context(), c.Param("id"), middleware.GetEmail(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Meal deleted successfully"})
}

// GetUserMeals returns the meals published by the caller
func (h *Handler) GetUserMeals(c *gin.Context) {
	meals, err := h.svc.Meals.ListByOwner(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": meals})
}
