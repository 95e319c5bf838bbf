package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	router := chi.NewRouter()

	router.NotFound(app.notFoundErrorResponse)
	router.MethodNotAllowed(app.methodNotAllowedErrorResponse)

	router.Route("/api", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheckHandler)

		// user service
		r.Post("/users", app.registerUserHandler)
		r.Post("/users/login", app.loginUserHandler)
		r.Get("/user", app.requireAuthUser(app.getCurrentUserHandler))
		r.Put("/user", app.requireAuthUser(app.updateCurrentUserHandler))

		// profiles
		r.Get("/profiles/{username}", app.getProfileHandler)
		r.Post("/profiles/{username}/follow", app.requireAuthUser(app.followUserHandler))
		r.Delete("/profiles/{username}/follow", app.requireAuthUser(app.unfollowUserHandler))

		// article service
		r.Get("/articles", app.listArticlesHandler)
		r.Get("/articles/feed", app.requireAuthUser(app.feedArticlesHandler))
		r.Post("/articles", app.requireAuthUser(app.createArticleHandler))
		r.Get("/articles/{slug}", app.getArticleHandler)
		r.Put("/articles/{slug}", app.requireAuthUser(app.updateArticleHandler))
		r.Delete("/articles/{slug}", app.requireAuthUser(app.deleteArticleHandler))
		r.Post("/articles/{slug}/favorite", app.requireAuthUser(app.favoriteArticleHandler))
		r.Delete("/articles/{slug}/favorite", app.requireAuthUser(app.unfavoriteArticleHandler))

		// comments
		r.Get("/articles/{slug}/comments", app.listCommentsHandler)
		r.Post("/articles/{slug}/comments", app.requireAuthUser(app.addCommentHandler))
		r.Delete("/articles/{slug}/comments/{id}", app.requireAuthUser(app.deleteCommentHandler))

		// tags
		r.Get("/tags", app.listTagsHandler)
	})

	return app.recoverPanic(app.enableCORS(app.rateLimit(app.logRequest(app.authenticate(router)))))
}
