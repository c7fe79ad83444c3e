package handlers

import (
	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/salidas/configs"
	"github.com/maheshrc27/salidas/internal/api/middleware"
	"github.com/maheshrc27/salidas/internal/service"
)

type Services struct {
	Auth     service.AuthService
	Events   service.EventService
	Media    service.MediaService
	Reviews  service.ReviewService
	Profiles service.ProfileService
}

// RegisterRoutes mounts the JSON API. Everything but login and logout sits
// behind the session middleware.
func RegisterRoutes(app *fiber.App, cfg config.Config, s Services) {
	sessionMiddleware := middleware.NewSessionMiddleware(cfg, s.Auth)

	auth := NewAuthHandler(cfg, s.Auth)
	app.Post("/api/auth/login", auth.Login)
	app.Post("/api/auth/logout", auth.Logout)

	api := app.Group("/api")
	api.Use(sessionMiddleware.RequireSession())

	api.Get("/auth/session", auth.Session)

	events := NewEventHandler(s.Events)
	api.Get("/events", events.ListEvents)
	api.Post("/events", events.CreateEvent)
	api.Get("/events/:id", events.GetEvent)
	api.Delete("/events/:id", events.RemoveEvent)
	api.Post("/events/:id/toggle", events.ToggleStatus)
	api.Put("/events/:id/date", events.AssignDate)
	api.Delete("/events/:id/date", events.ClearDate)
	api.Put("/events/:id/cover", events.ReplaceCover)
	api.Get("/events/:id/summary", events.Summary)

	media := NewMediaHandler(s.Media)
	api.Get("/events/:id/photos", media.ListPhotos)
	api.Post("/events/:id/photos", media.UploadPhotos)
	api.Delete("/photos/:id", media.RemovePhoto)
	api.Get("/events/:id/videos", media.ListVideos)
	api.Post("/events/:id/videos", media.UploadVideos)
	api.Delete("/videos/:id", media.RemoveVideo)

	reviews := NewReviewHandler(s.Reviews)
	api.Get("/events/:id/reviews", reviews.ListReviews)
	api.Put("/events/:id/reviews", reviews.SaveReview)

	profiles := NewProfileHandler(s.Profiles)
	api.Get("/profiles", profiles.ListProfiles)
	api.Get("/profile", profiles.GetProfile)
	api.Put("/profile", profiles.UpdateProfile)
	api.Put("/profile/avatar", profiles.UpdateAvatar)

	cal := NewCalendarHandler(s.Events)
	api.Get("/calendar/day", cal.Day)
	api.Get("/calendar/month", cal.Month)
	api.Get("/calendar/default-time", cal.DefaultTime)
	api.Get("/calendar.ics", cal.Feed)
}
