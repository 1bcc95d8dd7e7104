package main

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/tcp_snm/codetrack/internal/api"
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/locks"
	"github.com/tcp_snm/codetrack/internal/service"
	"github.com/tcp_snm/codetrack/internal/service/auth_service"
	"github.com/tcp_snm/codetrack/internal/service/catalog_service"
	"github.com/tcp_snm/codetrack/internal/service/import_service"
	"github.com/tcp_snm/codetrack/internal/service/problemset_service"
	"github.com/tcp_snm/codetrack/internal/service/user_service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var (
	apiConfig *api.Api
	jwtSecret []byte
)

func initLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func initDatabase() database.Store {
	// get the database url
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		panic("dbURL not found")
	}

	// bring the schema up to date before serving
	if err := database.RunMigrations(context.Background(), dbURL); err != nil {
		panic(err)
	}

	// create a conneciton to the database
	pool, err := database.Connect(context.Background(), dbURL)
	if err != nil {
		panic(err)
	}

	return database.NewStore(pool)
}

// initLocker shares refresh locks through redis when REDIS_ADDR is set,
// otherwise locks only hold within this process.
func initLocker() locks.Locker {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Warn("REDIS_ADDR not found in environment. using in-process locks")
		return locks.NewLocalLocker()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		panic(err)
	}
	log.WithField("addr", addr).Info("connected to redis")
	return &locks.RedisLocker{
		RDB:    rdb,
		Prefix: "codetrack:lock:",
	}
}

func problemsetTarget() int {
	raw := os.Getenv("DYNAMIC_PROBLEMSET_TARGET")
	if raw == "" {
		return problemset_service.DefaultTarget
	}
	target, err := strconv.Atoi(raw)
	if err != nil || target <= 0 {
		log.Warnf("invalid DYNAMIC_PROBLEMSET_TARGET %q. using default %d", raw, problemset_service.DefaultTarget)
		return problemset_service.DefaultTarget
	}
	return target
}

func initApi(db database.Store, locker locks.Locker) *api.Api {
	log.Info("initializing api config")
	us := user_service.NewUserService(db)
	log.Info("user service created")
	as := &auth_service.AuthService{
		DB:        db,
		JWTSecret: jwtSecret,
	}
	log.Info("auth service created")
	cs := &catalog_service.CatalogService{DB: db}
	log.Info("catalog service created")
	is := &import_service.ImportService{
		DB:      db,
		Catalog: cs,
	}
	log.Info("import service created")
	ps := &problemset_service.ProblemsetService{
		DB:     db,
		Locker: locker,
		Target: problemsetTarget(),
	}
	log.Info("problemset service created")
	return &api.Api{
		AuthServiceConfig:       as,
		UserServiceConfig:       us,
		CatalogServiceConfig:    cs,
		ImportServiceConfig:     is,
		ProblemsetServiceConfig: ps,
		SecureCookies:           os.Getenv("SECURE_COOKIES") == "true",
	}
}

func setup() {
	godotenv.Load()
	initLogger()
	service.InitializeServices()

	jwtSecret = []byte(os.Getenv(service.KeyJWTSecret))
	if len(jwtSecret) == 0 {
		panic("jwt secret not found")
	}

	db := initDatabase()
	apiConfig = initApi(db, initLocker())
}

func setCors(router *chi.Mux) {
	router.Use(
		cors.Handler(
			cors.Options{
				AllowedOrigins:   []string{"https://*", "http://*"},
				AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowedHeaders:   []string{"*"},
				AllowCredentials: true,
				ExposedHeaders:   []string{"Link"},
				MaxAge:           300,
			},
		),
	)
	log.Info("cors options has been set")
}

func main() {
	setup()

	// initialize a new router
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID, chimiddleware.Recoverer)
	setCors(router)

	// mount v1 router
	v1router := NewV1Router()
	router.Mount("/v1", v1router)
	log.Info("v1 router has been mounted")

	// find port for the server to start
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Warnf("port not found in environment. using default port %s", port)
	}

	// find the address to start the server
	apiAddress := os.Getenv("API_URL") + ":" + port

	log.Info("starting server")
	// create a server object to listen to all requests
	srv := http.Server{
		Handler: router,
		Addr:    apiAddress,
	}
	err := srv.ListenAndServe()
	if err != nil {
		log.Fatalf("Server cannot be started. Error: %v", err)
		return
	}

}
