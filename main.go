package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auth "github.com/jcooper21/Well-Injection-Calculation/internal/auth"
	batch "github.com/jcooper21/Well-Injection-Calculation/internal/calc/batch"
	hydraulics "github.com/jcooper21/Well-Injection-Calculation/internal/calc/hydraulics"
	importer "github.com/jcooper21/Well-Injection-Calculation/internal/calc/importer"
	report "github.com/jcooper21/Well-Injection-Calculation/internal/calc/report"
	history "github.com/jcooper21/Well-Injection-Calculation/internal/history"
	profile "github.com/jcooper21/Well-Injection-Calculation/internal/profile"
	repo "github.com/jcooper21/Well-Injection-Calculation/internal/repo"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB) {
	database := repo.NewPostgresDB(db)
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on the environment")
	}
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: database}
	profileH := &profile.ProfileHandler{Repo: database}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/profile", profileH.UpdateProfile).Methods("PATCH", "PUT")

	hydraulicsH := &hydraulics.Handler{}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	reportH := &report.Handler{}
	historyH := &history.Handler{Repo: database}

	secureApi.HandleFunc("/tools/hydraulics/calc", hydraulicsH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/hydraulics/batch", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/hydraulics/import", importerH.Segments).Methods("POST")
	secureApi.HandleFunc("/tools/hydraulics/report", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/runs", historyH.Save).Methods("POST")
	secureApi.HandleFunc("/runs", historyH.List).Methods("GET")
	secureApi.HandleFunc("/runs/{id}", historyH.Get).Methods("GET")

	mainFileServer := http.FileServer(http.Dir("./static/main"))
	mux.PathPrefix("/").
		Handler(mainFileServer)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	log.Println("Starting server on :443")
	HandleList(mux, db)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    ":443",
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutdown signal received!")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
