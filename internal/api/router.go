package api

import (
	"net/http"

	_ "github.com/AlexZinkM/kukai-seed/docs" // swagger spec
	"github.com/AlexZinkM/kukai-seed/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// SetupRouter sets up router with handlers
func SetupRouter(log *zap.Logger, maxBodyBytes int64) http.Handler {
	kukaiHandler := handler.NewKukaiHandler(log, maxBodyBytes)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Kukai endpoints
	mux.HandleFunc("/kukai/reveal", kukaiHandler.Reveal)
	mux.HandleFunc("/kukai/inspect", kukaiHandler.Inspect)

	return mux
}
