package handlers

import (
	"net/http"

	"homechef-api/middleware"
	"homechef-api/services"

	"github.com/gin-gonic/gin"
)

type ReviewRequest struct {
	FoodID        string    `json:"foodId"`
	ReviewerName  string    `json:"reviewerName"`
	ReviewerImage string    `json:"reviewerImage"`
	Rating        flexFloat `json:"rating"`
	Comment       string    `json:"comment"`
}

type ReviewUpdateRequest struct {
	Rating  *flexFloat `json:"rating"`
	Comment *string    `json:"comment"`
}

type FavoriteRequest struct {
	MealID   string    `json:"mealId"`
	MealName string    `json:"mealName"`
	ChefID   string    `json:"chefId"`
	ChefName string    `json:"chefName"`
	Price    flexFloat `json:"price"`
}

// LatestReviews returns the six newest reviews
func (h *Handler) LatestReviews(c *gin.Context) {
	reviews, err := h.svc.Reviews.Latest(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reviews})
}

// GetMealReviews returns the reviews of one meal
func (h *Handler) GetMealReviews(c *gin.Context) {
	reviews, err := h.svc.Reviews.ListByFood(c.Request.Context(), c.Param("mealId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reviews})
}

// ListReviews answers ?foodId= with a bare array
func (h *Handler) ListReviews(c *gin.Context) {
	foodID := c.Query("foodId")
	if foodID == "" {
		h.badRequest(c, "foodId required")
		return
	}
	reviews, err := h.svc.Reviews.ListByFood(c.Request.Context(), foodID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReview stores a review by the logged-in user
func (h *Handler) CreateReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "foodId, rating, comment required")
		return
	}

	review, err := h.svc.Reviews.Create(c.Request.Context(), middleware.GetEmail(c), services.ReviewInput{
		FoodID:        req.FoodID,
		ReviewerName:  req.ReviewerName,
		ReviewerImage: req.ReviewerImage,
		Rating:        float64(req.Rating),
		Comment:       req.Comment,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": review.ID})
}

// UpdateReview edits one of the caller's reviews
func (h *Handler) UpdateReview(c *gin.Context) {
	var req ReviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid review")
		return
	}

	review, err := h.svc.Reviews.Update(c.Request.Context(), c.Param("id"), middleware.GetEmail(c), req.Rating.ptr(), req.Comment)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "modifiedCount": 1, "data": review})
}

// DeleteReview removes one of the caller's reviews
func (h *Handler) DeleteReview(c *gin.Context) {
	if err := h.svc.Reviews.Delete(c.Request.Context(), c.Param("id"), middleware.GetEmail(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deletedCount": 1})
}

// GetUserReviews returns reviews written by the email in the path
func (h *Handler) GetUserReviews(c *gin.Context) {
	h.reviewsBy(c, c.Param("email"))
}

// GetMyReviews returns reviews written by the logged-in user
func (h *Handler) GetMyReviews(c *gin.Context) {
	h.reviewsBy(c, middleware.GetEmail(c))
}

func (h *Handler) reviewsBy(c *gin.Context, email string) {
	reviews, err := h.svc.Reviews.ListByReviewer(c.Request.Context(), email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reviews})
}

// AddFavorite saves a meal to the caller's favorites; duplicates are reported, not stored
func (h *Handler) AddFavorite(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "mealId & mealName required")
		return
	}

	fav, created, err := h.svc.Favorites.Add(c.Request.Context(), middleware.GetEmail(c), services.FavoriteInput{
		MealID:   req.MealID,
		MealName: req.MealName,
		ChefID:   req.ChefID,
		ChefName: req.ChefName,
		Price:    float64(req.Price),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"insertedId": nil, "message": "Already in favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": fav.ID})
}

// GetMyFavorites returns the caller's favorites as a bare array
func (h *Handler) GetMyFavorites(c *gin.Context) {
	favs, err := h.svc.Favorites.List(c.Request.Context(), middleware.GetEmail(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favs)
}

// GetFavoritesByEmail returns the favorites of the email in the path
func (h *Handler) GetFavoritesByEmail(c *gin.Context) {
	favs, err := h.svc.Favorites.List(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": favs})
}

// DeleteFavorite removes one of the caller's favorites
func (h *Handler) DeleteFavorite(c *gin.Context) {
	if err := h.svc.Favorites.Delete(c.Request.Context(), c.Param("id"), middleware.GetEmail(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deletedCount": 1})
}
