package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/tcp_snm/codetrack/middleware"
)

func NewV1Router() *chi.Mux {
	v1 := chi.NewRouter()
	auth := middleware.JWTMiddleware(jwtSecret)

	// configure all endpoints
	v1.Get("/healthz", apiConfig.HandlerReadiness)

	// auth layer
	v1.Post("/auth/signup", apiConfig.HandlerSignUp)
	v1.Post("/auth/login", apiConfig.HandlerLogin)
	v1.Post("/auth/logout", apiConfig.HandlerLogout)

	// questions layer
	v1.Get("/questions", auth(apiConfig.HandlerGetQuestions))
	v1.Post("/questions", auth(apiConfig.HandlerCreateQuestion))
	v1.Post("/questions/import", auth(apiConfig.HandlerImportQuestions))
	v1.Get("/questions/{platform_id}/{question_id}", auth(apiConfig.HandlerGetQuestion))
	v1.Put("/questions/{platform_id}/{question_id}", auth(apiConfig.HandlerUpdateQuestion))
	v1.Delete("/questions/{platform_id}/{question_id}", auth(apiConfig.HandlerDeleteQuestion))
	// company tags
	v1.Post("/questions/{platform_id}/{question_id}/companies", auth(apiConfig.HandlerAddQuestionCompany))
	v1.Delete("/questions/{platform_id}/{question_id}/companies", auth(apiConfig.HandlerRemoveQuestionCompany))

	// catalog layer
	v1.Get("/topics", auth(apiConfig.HandlerGetTopics))
	v1.Get("/companies", auth(apiConfig.HandlerGetCompanies))
	v1.Post("/companies", auth(apiConfig.HandlerCreateCompany))
	v1.Get("/platforms", auth(apiConfig.HandlerGetPlatforms))
	v1.Post("/platforms", auth(apiConfig.HandlerCreatePlatform))

	// users layer
	v1.Get("/me", auth(apiConfig.HandlerGetMe))
	v1.Put("/me", auth(apiConfig.HandlerUpdateMe))
	v1.Put("/me/password", auth(apiConfig.HandlerChangePassword))
	v1.Get("/users/{user_name}", auth(apiConfig.HandlerGetProfile))
	v1.Put("/users/{user_name}/admin", auth(apiConfig.HandlerSetAdmin))

	// friends
	v1.Get("/friends", auth(apiConfig.HandlerGetFriends))
	v1.Post("/friends", auth(apiConfig.HandlerAddFriend))
	v1.Delete("/friends/{friend_user_name}", auth(apiConfig.HandlerRemoveFriend))

	// solved marks
	v1.Get("/solved", auth(apiConfig.HandlerGetSolved))
	v1.Post("/solved", auth(apiConfig.HandlerMarkSolved))
	v1.Delete("/solved/{platform_id}/{question_id}", auth(apiConfig.HandlerUnmarkSolved))

	// problemset layer
	v1.Get("/problemset", auth(apiConfig.HandlerGetProblemset))
	v1.Post("/problemset", auth(apiConfig.HandlerAddToProblemset))
	v1.Post("/problemset/refresh", auth(apiConfig.HandlerRefreshProblemset))
	v1.Delete("/problemset/{platform_id}/{question_id}", auth(apiConfig.HandlerRemoveFromProblemset))

	return v1
}
