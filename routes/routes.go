package routes

import (
	"log/slog"

	"homechef-api/handlers"
	"homechef-api/middleware"
	"homechef-api/models"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with global middleware and every route
func NewRouter(logger *slog.Logger, origins []string, h *handlers.Handler, sessions *middleware.SessionManager, users middleware.RoleResolver) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS(origins))
	SetupRoutes(r, h, sessions, users)
	r.NoRoute(h.NotFound)
	return r
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, sessions *middleware.SessionManager, users middleware.RoleResolver) {
	session := middleware.SessionRequired(sessions)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/")
	{
		public.GET("/", h.Root)
		public.GET("/health", h.Health)
		public.GET("/state-machine", h.GetStateMachineInfo)

		// Session
		public.POST("/jwt", h.IssueToken)
		public.POST("/logout", h.Logout)
		public.POST("/login", h.Login)
		public.POST("/users", h.Register)

		// Lookups and counters
		public.GET("/users/chefs", h.ListChefs)
		public.GET("/users/count", h.UserCount)
		public.GET("/check-role/:email", h.CheckRole)
		public.GET("/orders/delivered/count", h.DeliveredCount)
		public.GET("/orders/pending-payment/count", h.PendingPaymentCount)
		public.GET("/orders/paid/total", h.PaidTotal)
		public.GET("/api/stats", h.CatalogStats)

		// Catalog
		public.GET("/meals", h.ListMeals)
		public.GET("/meals/latest", h.LatestMeals)
		public.GET("/meals/:id", h.GetMeal)
		public.GET("/mealsd/:id", h.GetMeal)

		// Reviews
		public.GET("/reviews", h.ListReviews)
		public.GET("/reviews/latest", h.LatestReviews)
		public.GET("/reviews/:mealId", h.GetMealReviews)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/")
	auth.Use(session)
	{
		auth.GET("/my-profile", h.GetProfile)
		auth.PATCH("/my-profile", h.UpdateProfile)
		auth.POST("/role-request", h.SubmitRoleRequest)

		// Orders and payments
		auth.POST("/orders", h.PlaceOrder)
		auth.GET("/my-orders", h.GetMyOrders)
		auth.GET("/order-history/:id", h.GetOrderHistory)
		auth.POST("/orders/:orderId/pay", h.PayOrder)
		auth.POST("/create-checkout-session", h.CreateCheckoutSession)
		auth.GET("/verify-payment/:sessionId", h.VerifyPayment)
		auth.GET("/my-payments", h.GetMyPayments)

		// Reviews and favorites
		auth.POST("/reviews", h.CreateReview)
		auth.PATCH("/reviews/:id", h.UpdateReview)
		auth.DELETE("/reviews/:id", h.DeleteReview)
		auth.GET("/my-reviews", h.GetMyReviews)
		auth.POST("/favorites", h.AddFavorite)
		auth.GET("/favorites", h.GetMyFavorites)
		auth.GET("/my-favorites", h.GetMyFavorites)
		auth.DELETE("/favorites/:id", h.DeleteFavorite)
	}

	// ── Self-service routes (session email must match the path) ────
	self := r.Group("/")
	self.Use(session)
	{
		self.GET("/users/:email", middleware.SelfRequired("email"), h.GetUser)
		self.GET("/users/role/:email", middleware.SelfRequired("email"), h.GetUserRole)
		self.GET("/orders/:userEmail", middleware.SelfRequired("userEmail"), h.GetOrdersByEmail)
		self.GET("/chef-id/:email", middleware.SelfRequired("email"), h.GetChefID)
		self.GET("/user-meals/:email", middleware.SelfRequired("email"), h.GetUserMeals)
		self.GET("/user-reviews/:email", middleware.SelfRequired("email"), h.GetUserReviews)
		self.GET("/favorites/:email", middleware.SelfRequired("email"), h.GetFavoritesByEmail)
		self.GET("/user-chef-orders/:email", middleware.SelfRequired("email"), h.GetMealOwnerOrders)
	}

	// ── Chef routes ────────────────────────────────────────────────
	chef := r.Group("/")
	chef.Use(session, middleware.RoleRequired(users, models.RoleChef))
	{
		chef.POST("/meals", h.CreateMeal)
		chef.PUT("/meals/:id", h.UpdateMeal)
		chef.DELETE("/meals/:id", h.DeleteMeal)
		chef.GET("/chef-orders/:chefId", h.GetChefOrders)
	}

	// ── Order fulfilment (chef or admin) ───────────────────────────
	staff := r.Group("/orders")
	staff.Use(session, middleware.RoleRequired(users, models.RoleChef, models.RoleAdmin))
	{
		staff.PATCH("/accept/:id", h.AcceptOrder)
		staff.PATCH("/cancel/:id", h.CancelOrder)
		staff.PATCH("/deliver/:id", h.DeliverOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/")
	admin.Use(session, middleware.RoleRequired(users, models.RoleAdmin))
	{
		admin.GET("/users", h.AdminGetAllUsers)
		admin.GET("/users/admins", h.AdminGetAdmins)
		admin.PATCH("/users/:id/status", h.AdminSetUserStatus)
		admin.GET("/role-requests", h.AdminListRoleRequests)
		admin.PATCH("/role-requests/:id/approve", h.AdminApproveRoleRequest)
		admin.PATCH("/role-requests/:id/decline", h.AdminDeclineRoleRequest)
		admin.PATCH("/update-order-status/:id", h.AdminForceOrderStatus)
	}
}
