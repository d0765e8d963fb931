package main

import (
	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/shared/middleware"
)

// SetupRouter đăng ký middleware chain và toàn bộ routes.
// Reads là public; mutations yêu cầu auth + admin/librarian role.
func SetupRouter(app *application) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	staff := []gin.HandlerFunc{
		middleware.AuthMiddleware(app.jwtManager),
		middleware.RequireRole(model.RoleAdmin, model.RoleLibrarian),
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(app))

		setupAuthRoutes(v1, app)
		setupUserRoutes(v1, app, staff)
		setupAuthorRoutes(v1, app, staff)
		setupPublisherRoutes(v1, app, staff)
		setupGradeLevelRoutes(v1, app, staff)
		setupLocationRoutes(v1, app, staff)
		setupReaderTypeRoutes(v1, app, staff)
		setupReaderRoutes(v1, app, staff)
		setupBookRoutes(v1, app, staff)
		setupBookAuthorRoutes(v1, app, staff)
		setupBookGradeLevelRoutes(v1, app, staff)
		setupImageRoutes(v1, app, staff)
		setupReservationRoutes(v1, app, staff)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, app *application) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", app.userHandler.Login)
	}
}

// ========================================
// USER ROUTES (admin only)
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, app *application, staff []gin.HandlerFunc) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(app.jwtManager), middleware.AdminMiddleware())
	{
		users.POST("", app.userHandler.Create)
		users.POST("/bulk", app.userHandler.CreateMany)
		users.GET("", app.userHandler.GetAll)
		users.GET("/:id", app.userHandler.GetByID)
		users.PATCH("/:id/status", app.userHandler.SetActive)
		users.DELETE("/:id", app.userHandler.Delete)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, app *application, staff []gin.HandlerFunc) {
	authors := v1.Group("/authors")
	{
		authors.GET("", app.authorHandler.GetAll)
		authors.GET("/search", app.authorHandler.Search)
		authors.GET("/slug/:slug", app.authorHandler.GetBySlug)
		authors.GET("/:id", app.authorHandler.GetByID)
		authors.GET("/:id/books", app.bookAuthorHandler.ListBooksOfAuthor)

		authors.POST("", append(staff, app.authorHandler.Create)...)
		authors.POST("/bulk", append(staff, app.authorHandler.CreateMany)...)
		authors.PATCH("/slug/:slug", append(staff, app.authorHandler.UpdateBySlug)...)
		authors.PATCH("/:id", append(staff, app.authorHandler.Update)...)
		authors.DELETE("/slug/:slug", append(staff, app.authorHandler.DeleteBySlug)...)
		authors.DELETE("/:id", append(staff, app.authorHandler.Delete)...)
	}
}

// ========================================
// PUBLISHER ROUTES
// ========================================
func setupPublisherRoutes(v1 *gin.RouterGroup, app *application, staff []gin.HandlerFunc) {
	publishers := v1.Group("/publishers")
	{
		publishers.GET("", app.publisherHandler.GetAll)
		publishers.GET("/search", app.publisherHandler.Search)
		publishers.GET("/slug/:slug", app.publisherHandler.GetBySlug)
		publishers.GET("/:id", app.publisherHandler.GetByID)

		publishers.POST("", append(staff, app.publisherHandler.Create)...)
		publishers.POST("/bulk", append(staff, app.publisherHandler.CreateMany)...)
		publishers.PATCH("/slug/:slug", append(staff, app.publisherHandler.UpdateBySlug)...)
		publishers.PATCH("/:id", append(staff, app.publisherHandler.Update)...)
		publishers.DELETE("/slug/:slug", append(staff, app.publisherHandler.DeleteBySlug)...)
		publishers.DELETE("/:id", append(staff, app.publisherHandler.Delete)...)
	}
}

// ========================================
// GRADE LEVEL ROUTES
// ========================================
func setupGradeLevelRoutes(v1 *gin.RouterGroup, app *application, staff []gin.HandlerFunc) {
	gradeLevels := v1.Group("/grade-levels")
	{
		gradeLevels.GET("", app.gradeLevelHandler.GetAll)
		gradeLevels.GET("/search", app.gradeLevelHandler.Search)
		gradeLevels.GET("/slug/:slug", app.gradeLevelHandler.GetBySlug)
		gradeLevels.GET("/:id", app.gradeLevelHandler.GetByID)
		gradeLevels.GET("/:id/books", app.bookGradeLevelHandler.ListBooksOfGradeLevel)

		gradeLevels.POST("", append(staff, app.gradeLevelHandler.Create)...)
		gradeLevels.POST("/bulk", append(staff, app.gradeLevelHandler.CreateMany)...)
		gradeLevels.PATCH("/slug/:slug", append(staff, app.gradeLevelHandler.UpdateBySlug)...)
		gradeLevels.PATCH("/:id", append(staff, app.gradeLevelHandler.Update)...)
		gradeLevels.DELETE("/slug/:slug", append(staff, app.gradeLevelHandler.DeleteBySlug)...)
		gradeLevels.DELETE("/:id", append(staff, app.gradeLevelHandler.Delete)...)
	}
}

// ========================================
// SHELVING LOCATION ROUTES
// ========================================
func setupLocationRoutes(v1 *gin.RouterGroup, app *application, staff []gin.HandlerFunc) {
	locations := v1.Group("/locations")
	{
		locations.GET("", app.locationHandler.GetAll)
		locations.GET("/search", app.locationHandler.Search)
		locations.GET("/slug/:slug", app.locationHandler.GetBySlug)
		locations.GET("/:id", app.locationHandler.GetByID)

		locations.POST("", append(staff, app.locationHandler.Create)...)
		locations.POST("/bulk", append(staff, app.locationHandler.CreateMany)...)
		locations.PATCH("/slug/:slug", append(staff, app.locationHandler.UpdateBySlug)...)
		locations.PATCH("/:id", append(staff, app.locationHandler.Update)...)
		locations.DELETE("/slug/:slug", append(staff, app.locationHandler.DeleteBySlug)...)
		locations.DELETE("/:id", append(staff, app.locationHandler.Delete)...)
	}
}

// ========================================
// READER TYPE ROUTES
// ========================================
func setupReaderTypeRoutes(v1 *gin.RouterGroup, app *application, staff []gin.HandlerFunc) {
	readerTypes := v1.Group("/reader-types")
	{
		readerTypes.GET("", app.readerTypeHandler.GetAll)
		readerTypes.GET("/search", app.readerTypeHandler.Search)
		readerTypes.GET("/slug/:slug", app.readerTypeHandler.GetBySlug)
		readerTypes.GET("/:id", app.readerTypeHandler.GetByID)

		readerTypes.POST("", append(staff, app.readerTypeHandler.Create)...)
		readerTypes.POST("/bulk", append(staff, app.readerTypeHandler.CreateMany)...)
		readerTypes.PATCH("/slug/:slug", append(staff, app.readerTypeHandler.UpdateBySlug)...)
		readerTypes.PATCH("/:id", append(staff, app.readerTypeHandler.Update)...)
		readerTypes.DELETE("/slug/:slug", append(staff, app.readerTypeHandler.DeleteBySlug)...)
		readerTypes.DELETE("/:id", append(staff, app.readerTypeHandler.Delete)...)
	}
}

// ========================================
// READER ROUTES
// ========================================
func setupReaderRoutes(v1 *gin.RouterGroup, app *application, staff []gin.HandlerFunc) {
	readers := v1.Group("/readers")
	{
		readers.GET("", app.readerHandler.GetAll)
		readers.GET("/search", app.readerHandler.Search)
		readers.GET("/slug/:slug", app.readerHandler.GetBySlug)
		readers.GET("/card/:cardNumber", app.readerHandler.GetByCardNumber)
		readers.GET("/:id", app.readerHandler.GetByID)

		readers.POST("", append(staff, app.readerHandler.Create)...)
		readers.POST("/bulk", append(staff, app.readerHandler.CreateMany)...)
		readers.PATCH("/slug/:slug", append(staff, app.readerHandler.UpdateBySlug)...)
		readers.PATCH("/:id", append(staff, app.readerHandler.Update)...)
		readers.DELETE("/slug/:slug", append(staff, app.readerHandler.DeleteBySlug)...)
		readers.DELETE("/:id", append(staff, app.readerHandler.Delete)...)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, app *application, staff []gin.HandlerFunc) {
	books := v1.Group("/books")
	{
		books.GET("", app.bookHandler.GetAll)
		books.GET("/search", app.bookHandler.Search)
		books.GET("/slug/:slug", app.bookHandler.GetBySlug)
		books.GET("/:id", app.bookHandler.GetByID)
		books.GET("/:id/authors", app.bookAuthorHandler.ListAuthorsOfBook)
		books.GET("/:id/grade-levels", app.bookGradeLevelHandler.ListGradeLevelsOfBook)

		books.POST("", append(staff, app.bookHandler.Create)...)
		books.POST("/bulk", append(staff, app.bookHandler.CreateMany)...)
		books.PATCH("/slug/:slug", append(staff, app.bookHandler.UpdateBySlug)...)
		books.PATCH("/:id", append(staff, app.bookHandler.Update)...)
		books.DELETE("/slug/:slug", append(staff, app.bookHandler.DeleteBySlug)...)
		books.DELETE("/:id", append(staff, app.bookHandler.Delete)...)
	}
}

// ========================================
// BOOK-AUTHOR LINK ROUTES
// ========================================
func setupBookAuthorRoutes(v1 *gin.RouterGroup, app *application, staff []gin.HandlerFunc) {
	bookAuthors := v1.Group("/book-authors")
	bookAuthors.Use(staff...)
	{
		bookAuthors.POST("", app.bookAuthorHandler.Add)
		bookAuthors.DELETE("", app.bookAuthorHandler.Remove)
		bookAuthors.POST("/set-for-book", app.bookAuthorHandler.SetForBook)
	}
}

// ========================================
// BOOK-GRADE-LEVEL LINK ROUTES
// ========================================
func setupBookGradeLevelRoutes(v1 *gin.RouterGroup, app *application, staff []gin.HandlerFunc) {
	bookGradeLevels := v1.Group("/book-grade-levels")
	bookGradeLevels.Use(staff...)
	{
		bookGradeLevels.POST("", app.bookGradeLevelHandler.Add)
		bookGradeLevels.DELETE("", app.bookGradeLevelHandler.Remove)
		bookGradeLevels.POST("/set-for-book", app.bookGradeLevelHandler.SetForBook)
	}
}

// ========================================
// IMAGE ROUTES
// ========================================
func setupImageRoutes(v1 *gin.RouterGroup, app *application, staff []gin.HandlerFunc) {
	images := v1.Group("/images")
	{
		images.GET("", app.imageHandler.GetAll)
		images.GET("/search", app.imageHandler.Search)
		images.GET("/slug/:slug", app.imageHandler.GetBySlug)
		images.GET("/:id", app.imageHandler.GetByID)

		images.POST("", append(staff, app.imageHandler.Upload)...)
		images.DELETE("/slug/:slug", append(staff, app.imageHandler.DeleteBySlug)...)
		images.DELETE("/:id", append(staff, app.imageHandler.Delete)...)
	}
}

// ========================================
// RESERVATION ROUTES
// ========================================
func setupReservationRoutes(v1 *gin.RouterGroup, app *application, staff []gin.HandlerFunc) {
	reservations := v1.Group("/reservations")
	{
		reservations.GET("", app.reservationHandler.GetAll)
		reservations.GET("/:id", app.reservationHandler.GetByID)

		reservations.POST("", append(staff, app.reservationHandler.Create)...)
		reservations.POST("/:id/fulfill", append(staff, app.reservationHandler.Fulfill)...)
		reservations.POST("/:id/cancel", append(staff, app.reservationHandler.Cancel)...)
		reservations.DELETE("/:id", append(staff, app.reservationHandler.Delete)...)
	}
}
